package tick

import (
	"reflect"
	"testing"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(2, func() { got = append(got, "a") })
	s.After(1, func() { got = append(got, "b") })
	s.After(2, func() { got = append(got, "c") })

	s.Tick()
	if !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("after first tick got %v", got)
	}
	s.Tick()
	if !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("after second tick got %v", got)
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d; want 0", s.Len())
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	ran := false
	id := s.After(1, func() { ran = true })
	if !s.Cancel(id) {
		t.Fatalf("Cancel reported not pending")
	}
	if s.Cancel(id) {
		t.Fatalf("second Cancel reported pending")
	}
	s.Tick()
	if ran {
		t.Fatalf("cancelled callback ran")
	}
}

func TestSchedulerNestedScheduleWaitsForNextTick(t *testing.T) {
	var s Scheduler
	count := 0
	s.After(1, func() {
		count++
		s.After(1, func() { count++ })
	})
	s.Tick()
	if count != 1 {
		t.Fatalf("count = %d after first tick; want 1", count)
	}
	s.Tick()
	if count != 2 {
		t.Fatalf("count = %d after second tick; want 2", count)
	}
}

func TestSchedulerFlush(t *testing.T) {
	var s Scheduler
	count := 0
	s.After(100, func() { count++ })
	s.After(5, func() { count++ })
	s.Flush()
	if count != 2 || s.Len() != 0 {
		t.Fatalf("count=%d len=%d; want 2 and 0", count, s.Len())
	}
}
