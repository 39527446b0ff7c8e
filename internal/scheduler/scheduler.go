// Package scheduler drives the scheduled tables of spec §4.3: rows whose
// scheduled_at is either an absolute timestamp (one-shot) or an interval
// (periodic), dispatched by the reducer named on the row. Generalizes the
// teacher's core/system.Runner (a fixed phase list ticked once per frame)
// into a dynamic table of independently-timed rows that are inserted and
// deleted on demand as entities start and stop needing their tick.
package scheduler

import (
	"time"

	"github.com/soitun/survivalcore/internal/apperr"
	"github.com/soitun/survivalcore/internal/store"
)

// Identity distinguishes a client-originated call from a scheduler-originated
// one. Scheduled reducers are gated with RequireModule so a client can never
// invoke them directly (spec §4.3, §7 SchedulingOnly).
type Identity int

const (
	IdentityClient Identity = iota
	IdentityModule
)

// RequireModule implements spec §4.3's "clients cannot call scheduled
// reducers directly (the reducer must reject when sender != module
// identity)".
func RequireModule(sender Identity) error {
	if sender != IdentityModule {
		return apperr.New(apperr.SchedulingOnly, "this reducer only runs on a schedule")
	}
	return nil
}

// Timing is the discriminated union of spec §3's Schedule rows:
// "scheduled_at (Interval or Time)". Interval > 0 selects the periodic arm;
// Interval == 0 selects the one-shot absolute-timestamp arm.
type Timing struct {
	Interval time.Duration
	At       int64 // unix millis, used only when Interval == 0
}

func (t Timing) periodic() bool { return t.Interval > 0 }

// RowID identifies a scheduled-table row.
type RowID uint64

// Row is one scheduled-table entry: which handler to call, which entity it
// concerns, and when it's next due. Grounded on spec §3's "Schedule rows"
// row and §4.3's tick family list (global tick, per-appliance, per-player
// stats, decay, upkeep, hostile spawn, dawn cleanup, water-fill,
// dropped-item despawn, projectile step).
type Row struct {
	ID         RowID
	Kind       string
	EntityID   uint64
	Timing     Timing
	NextFireAt int64
}

// Handler is the reducer a Kind dispatches to; it always fires with
// IdentityModule, never IdentityClient.
type Handler func(row *Row, now int64)

// Scheduler owns the live set of scheduled rows and the Kind -> Handler
// registry. byKind is the secondary index over Kind so per-entity row
// lookups don't scan every tick family's rows.
type Scheduler struct {
	rows     *store.Table[RowID, *Row]
	byKind   *store.Index[string, RowID]
	handlers map[string]Handler
	ids      *store.HandleAllocator
}

func New() *Scheduler {
	return &Scheduler{
		rows:     store.New[RowID, *Row](),
		byKind:   store.NewIndex[string, RowID](),
		handlers: make(map[string]Handler),
		ids:      store.NewHandleAllocator(0),
	}
}

// deleteRow removes a row and its index entry; every deletion funnels
// through here so rows and byKind never drift.
func (s *Scheduler) deleteRow(r *Row) {
	s.rows.Delete(r.ID)
	s.byKind.Remove(r.Kind, r.ID)
}

// RegisterHandler binds a Kind name to the reducer invoked when rows of that
// kind come due. Called once per tick family at startup.
func (s *Scheduler) RegisterHandler(kind string, h Handler) {
	s.handlers[kind] = h
}

// Insert schedules a new row — spec §4.3's "insert the schedule row only
// while needed" half of the rescheduling discipline. For a periodic timing,
// the first fire is `now + Interval`, not immediate.
func (s *Scheduler) Insert(kind string, entityID uint64, timing Timing, now int64) RowID {
	id := RowID(s.ids.Next())
	next := timing.At
	if timing.periodic() {
		next = now + timing.Interval.Milliseconds()
	}
	s.rows.Put(id, &Row{ID: id, Kind: kind, EntityID: entityID, Timing: timing, NextFireAt: next})
	s.byKind.Add(kind, id)
	return id
}

// Cancel deletes a schedule row — spec §4.3's "...deletes it when idle" /
// "stale rows must be detected and deleted by the reducer when it discovers
// its entity is gone or idle."
func (s *Scheduler) Cancel(id RowID) {
	if r, ok := s.rows.Get(id); ok {
		s.deleteRow(r)
	}
}

// Has reports whether a row is still live, so a reducer can avoid inserting
// a duplicate schedule for an entity that already has one.
func (s *Scheduler) Has(id RowID) bool {
	_, ok := s.rows.Get(id)
	return ok
}

// FindByEntity returns the live row for (kind, entityID), if any. Backs the
// per-appliance rescheduling discipline: a reducer that toggles an entity's
// burning state checks here before inserting so the entity never carries two
// rows (spec §8 property 8: "exactly one schedule row").
func (s *Scheduler) FindByEntity(kind string, entityID uint64) (RowID, bool) {
	for _, id := range s.byKind.At(kind) {
		if r, ok := s.rows.Get(id); ok && r.EntityID == entityID {
			return id, true
		}
	}
	return 0, false
}

// CancelByEntity deletes the row for (kind, entityID) if one exists,
// reporting whether anything was removed.
func (s *Scheduler) CancelByEntity(kind string, entityID uint64) bool {
	id, ok := s.FindByEntity(kind, entityID)
	if ok {
		s.Cancel(id)
	}
	return ok
}

// Dispatch calls every due row's handler, then self-reschedules periodic
// rows and deletes one-shot rows after they fire (spec §4.3: "the reducer
// named by the table is called when due, with the row as argument"). A row
// whose Kind has no registered handler is dropped rather than retried
// forever, since that only happens for a row left behind by a removed tick
// family.
func (s *Scheduler) Dispatch(now int64) {
	var due []*Row
	s.rows.Range(func(_ RowID, r *Row) bool {
		if r.NextFireAt <= now {
			due = append(due, r)
		}
		return true
	})
	for _, r := range due {
		h, ok := s.handlers[r.Kind]
		if !ok {
			s.deleteRow(r)
			continue
		}
		h(r, now)
		if _, live := s.rows.Get(r.ID); !live {
			continue // the handler cancelled its own row; don't resurrect it
		}
		if r.Timing.periodic() {
			r.NextFireAt = now + r.Timing.Interval.Milliseconds()
			s.rows.Put(r.ID, r)
		} else {
			s.deleteRow(r)
		}
	}
}

// Len reports the number of live schedule rows, used by admin/metrics
// surfaces and tests asserting the rescheduling discipline (a row that
// should have been cancelled doesn't linger).
func (s *Scheduler) Len() int { return s.rows.Len() }
