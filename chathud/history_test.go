package chathud

import (
	"reflect"
	"testing"
)

func texts(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Text
	}
	return out
}

func TestHistoryDropsOldestWhenFull(t *testing.T) {
	h := NewHistory(3)
	for _, s := range []string{"a", "b", "c"} {
		h.Record(Record{Text: s})
	}
	if got := texts(h.All()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("All() = %v", got)
	}
	h.Record(Record{Text: "d"})
	if got := texts(h.All()); !reflect.DeepEqual(got, []string{"b", "c", "d"}) {
		t.Fatalf("All() after overflow = %v", got)
	}
	if h.Len() != 3 || h.Cap() != 3 {
		t.Fatalf("Len()=%d Cap()=%d; want 3 and 3", h.Len(), h.Cap())
	}
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	h := NewHistory(DefaultHistoryCapacity)
	for i := 0; i < DefaultHistoryCapacity*3+1; i++ {
		h.Record(Record{Text: string(rune('a' + i%26))})
		if h.Len() > h.Cap() {
			t.Fatalf("Len() = %d exceeds Cap() = %d", h.Len(), h.Cap())
		}
	}
}

func TestHistoryLastAndClear(t *testing.T) {
	h := NewHistory(5)
	for _, s := range []string{"a", "b", "c", "d"} {
		h.Record(Record{Text: s})
	}
	cases := []struct {
		n    int
		want []string
	}{
		{2, []string{"c", "d"}},
		{0, []string{}},
		{10, []string{"a", "b", "c", "d"}},
		{-1, []string{"a", "b", "c", "d"}},
	}
	for _, c := range cases {
		if got := texts(h.Last(c.n)); !reflect.DeepEqual(got, c.want) {
			t.Errorf("Last(%d) = %v; want %v", c.n, got, c.want)
		}
	}
	h.Clear()
	if h.Len() != 0 || len(h.All()) != 0 {
		t.Fatalf("history not empty after Clear")
	}
}

func TestHistoryAllIsSnapshot(t *testing.T) {
	h := NewHistory(2)
	h.Record(Record{Text: "a"})
	snap := h.All()
	snap[0].Text = "changed"
	if h.All()[0].Text != "a" {
		t.Fatalf("All() returned shared storage")
	}
}
