package main

import (
	"testing"
)

func TestEntryEditing(t *testing.T) {
	e := entry{}
	e.insert([]rune("héllo"))
	e.move(-2)
	e.insert([]rune("XY"))
	if got := string(e.text); got != "hélXYlo" || e.pos != 5 {
		t.Fatalf("insert: %q pos %d", got, e.pos)
	}
	e.backspace()
	e.delete()
	if got := string(e.text); got != "hélXo" || e.pos != 4 {
		t.Fatalf("backspace/delete: %q pos %d", got, e.pos)
	}
	e.move(-100)
	e.backspace()
	e.move(100)
	e.delete()
	if got := string(e.text); got != "hélXo" || e.pos != 5 {
		t.Fatalf("edges: %q pos %d", got, e.pos)
	}
}

func TestRecall(t *testing.T) {
	h, _, _ := newTestHUD(t)
	if _, ok := h.recallPrev(); ok {
		t.Fatalf("recall on empty history")
	}
	for _, l := range []string{"one", "two", "two", "three"} {
		h.remember(l)
	}
	steps := []struct {
		prev bool
		want string
	}{
		{true, "three"},
		{true, "two"},
		{true, "one"},
		{true, "one"},
		{false, "two"},
		{false, "three"},
		{false, ""},
	}
	for i, s := range steps {
		var got string
		if s.prev {
			got, _ = h.recallPrev()
		} else {
			got, _ = h.recallNext()
		}
		if got != s.want {
			t.Fatalf("step %d = %q; want %q", i, got, s.want)
		}
	}
}
