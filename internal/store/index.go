package store

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Index is a secondary ordered index mapping a sortable key S (chunk
// coordinate, cell coordinate, world position bucket) to the set of primary
// keys K sharing that value. It backs the range scans spec §5 calls out
// ("secondary indexes (btree) are used for range scans").
type Index[S constraints.Ordered, K comparable] struct {
	buckets map[S]map[K]struct{}
}

func NewIndex[S constraints.Ordered, K comparable]() *Index[S, K] {
	return &Index[S, K]{buckets: make(map[S]map[K]struct{})}
}

// Add records that primary key k is filed under secondary key s.
func (idx *Index[S, K]) Add(s S, k K) {
	b, ok := idx.buckets[s]
	if !ok {
		b = make(map[K]struct{})
		idx.buckets[s] = b
	}
	b[k] = struct{}{}
}

// Remove un-files primary key k from secondary key s.
func (idx *Index[S, K]) Remove(s S, k K) {
	b, ok := idx.buckets[s]
	if !ok {
		return
	}
	delete(b, k)
	if len(b) == 0 {
		delete(idx.buckets, s)
	}
}

// Move re-files k from oldS to newS in one call, the common case when a
// row's secondary key changes (an entity crosses a chunk boundary).
func (idx *Index[S, K]) Move(oldS, newS S, k K) {
	if oldS == newS {
		return
	}
	idx.Remove(oldS, k)
	idx.Add(newS, k)
}

// At returns the primary keys filed under exactly s.
func (idx *Index[S, K]) At(s S) []K {
	b, ok := idx.buckets[s]
	if !ok {
		return nil
	}
	out := make([]K, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	return out
}

// Range returns the primary keys filed under any secondary key in [lo, hi].
func (idx *Index[S, K]) Range(lo, hi S) []K {
	keys := make([]S, 0, len(idx.buckets))
	for s := range idx.buckets {
		if s >= lo && s <= hi {
			keys = append(keys, s)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	var out []K
	for _, s := range keys {
		for k := range idx.buckets[s] {
			out = append(out, k)
		}
	}
	return out
}
