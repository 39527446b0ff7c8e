package scheduler

import (
	"testing"
	"time"

	"github.com/soitun/survivalcore/internal/apperr"
)

func TestRequireModuleRejectsClient(t *testing.T) {
	if err := RequireModule(IdentityClient); err == nil {
		t.Fatal("expected SchedulingOnly error for client sender")
	} else if !apperr.Is(err, apperr.SchedulingOnly) {
		t.Fatalf("expected SchedulingOnly, got %v", err)
	}
	if err := RequireModule(IdentityModule); err != nil {
		t.Fatalf("expected module sender to pass, got %v", err)
	}
}

func TestDispatchFiresDueOneShotAndDeletes(t *testing.T) {
	s := New()
	var fired int
	s.RegisterHandler("despawn", func(row *Row, now int64) { fired++ })

	id := s.Insert("despawn", 42, Timing{At: 1000}, 0)
	if !s.Has(id) {
		t.Fatal("expected row to be present after Insert")
	}

	s.Dispatch(500)
	if fired != 0 {
		t.Fatalf("fired before due: got %d", fired)
	}

	s.Dispatch(1000)
	if fired != 1 {
		t.Fatalf("expected 1 fire at due time, got %d", fired)
	}
	if s.Has(id) {
		t.Fatal("one-shot row should be deleted after firing")
	}
}

func TestDispatchReschedulesPeriodic(t *testing.T) {
	s := New()
	var fired int
	s.RegisterHandler("stats_tick", func(row *Row, now int64) { fired++ })

	now := int64(0)
	id := s.Insert("stats_tick", 7, Timing{Interval: 2 * time.Second}, now)

	s.Dispatch(1000) // before the first 2s interval elapses
	if fired != 0 {
		t.Fatalf("fired too early: %d", fired)
	}

	s.Dispatch(2000)
	if fired != 1 {
		t.Fatalf("expected first fire at 2000ms, got %d fires", fired)
	}
	if !s.Has(id) {
		t.Fatal("periodic row must survive its own fire")
	}

	s.Dispatch(3999)
	if fired != 1 {
		t.Fatalf("fired before next interval elapsed: %d", fired)
	}

	s.Dispatch(4000)
	if fired != 2 {
		t.Fatalf("expected second fire at 4000ms, got %d", fired)
	}
}

func TestCancelRemovesRowBeforeItFires(t *testing.T) {
	s := New()
	s.RegisterHandler("cook_tick", func(row *Row, now int64) {
		t.Fatal("cancelled row must not fire")
	})
	id := s.Insert("cook_tick", 1, Timing{Interval: time.Second}, 0)
	s.Cancel(id)
	s.Dispatch(10_000)
	if s.Len() != 0 {
		t.Fatalf("expected no live rows, got %d", s.Len())
	}
}

func TestDispatchDropsRowWithNoHandler(t *testing.T) {
	s := New()
	id := s.Insert("unregistered_kind", 1, Timing{At: 0}, 0)
	s.Dispatch(1)
	if s.Has(id) {
		t.Fatal("row with no registered handler should be dropped, not retried forever")
	}
}

func TestFindByEntityAndCancelByEntity(t *testing.T) {
	s := New()
	s.RegisterHandler("cook_tick", func(row *Row, now int64) {})
	s.Insert("cook_tick", 42, Timing{Interval: time.Second}, 0)

	if _, ok := s.FindByEntity("cook_tick", 42); !ok {
		t.Fatal("expected to find the entity's row")
	}
	if _, ok := s.FindByEntity("cook_tick", 43); ok {
		t.Fatal("found a row for an entity that has none")
	}
	if !s.CancelByEntity("cook_tick", 42) {
		t.Fatal("expected CancelByEntity to remove the row")
	}
	if s.Len() != 0 {
		t.Fatalf("expected no live rows, got %d", s.Len())
	}
}

func TestHandlerCancellingOwnRowStopsPeriodicReschedule(t *testing.T) {
	s := New()
	fired := 0
	s.RegisterHandler("cook_tick", func(row *Row, now int64) {
		fired++
		s.Cancel(row.ID)
	})
	s.Insert("cook_tick", 7, Timing{Interval: time.Second}, 0)

	s.Dispatch(1000)
	s.Dispatch(2000)
	if fired != 1 {
		t.Fatalf("expected exactly one fire before self-cancel, got %d", fired)
	}
	if s.Len() != 0 {
		t.Fatalf("expected the self-cancelled row gone, got %d rows", s.Len())
	}
}
