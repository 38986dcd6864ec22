package tick

// ID identifies a scheduled callback.
type ID uint64

type entry struct {
	id   ID
	left int
	fn   func()
}

// Scheduler runs callbacks after a number of logic ticks. It replaces
// wait-N-frames coroutines: entries are plain countdowns advanced by Tick.
// Not safe for concurrent use; it belongs to the game goroutine.
type Scheduler struct {
	entries []entry
	next    ID
}

// After schedules fn to run on the ticks-th call to Tick. A non-positive
// delay runs fn on the next Tick.
func (s *Scheduler) After(ticks int, fn func()) ID {
	if fn == nil {
		return 0
	}
	if ticks < 1 {
		ticks = 1
	}
	s.next++
	s.entries = append(s.entries, entry{id: s.next, left: ticks, fn: fn})
	return s.next
}

// Cancel drops a pending callback. It reports whether it was still pending.
func (s *Scheduler) Cancel(id ID) bool {
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Tick advances every countdown by one and runs the callbacks that are due,
// in the order they were scheduled. Callbacks may schedule new entries; those
// are first counted on the following Tick.
func (s *Scheduler) Tick() {
	if len(s.entries) == 0 {
		return
	}
	var due []func()
	keep := s.entries[:0]
	for _, e := range s.entries {
		e.left--
		if e.left <= 0 {
			due = append(due, e.fn)
			continue
		}
		keep = append(keep, e)
	}
	s.entries = keep
	for _, fn := range due {
		fn()
	}
}

// Flush runs every pending callback immediately, oldest first. Used on
// teardown so nothing is left waiting across a session boundary.
func (s *Scheduler) Flush() {
	for len(s.entries) > 0 {
		pending := s.entries
		s.entries = nil
		for _, e := range pending {
			e.fn()
		}
	}
}

// Len returns the number of pending callbacks.
func (s *Scheduler) Len() int {
	return len(s.entries)
}
