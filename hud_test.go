package main

import (
	"image/color"
	"reflect"
	"strings"
	"testing"
	"time"

	"ghud/chathud"
	"ghud/meadow"
)

func newTestHUD(t *testing.T) (*hud, *meadow.Loopback, *int) {
	t.Helper()
	drainConsoleCh()
	lb := meadow.NewLoopback("Alice")
	h := newHUD(lb, gsdef)
	beeps := 0
	h.beep = func() { beeps++ }
	return h, lb, &beeps
}

func lineTexts(h *hud) []string {
	var out []string
	for _, l := range h.log.Lines() {
		out = append(out, l.Sender+": "+l.Text)
	}
	return out
}

func TestHUDDeliversInbox(t *testing.T) {
	h, lb, beeps := newTestHUD(t)
	lb.SetColor("Bob", color.RGBA{0x60, 0xa0, 0xff, 0xff})
	lb.Inject("Bob", "yo")
	lb.Inject("", "server notice")
	h.tick()
	if got, want := lineTexts(h), []string{"Bob: yo", ": server notice"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q; want %q", got, want)
	}
	if *beeps != 1 {
		t.Fatalf("beeps = %d; want 1", *beeps)
	}
	if c := h.log.Lines()[0].Color; c != (color.RGBA{0x60, 0xa0, 0xff, 0xff}) {
		t.Fatalf("Bob colour = %v", c)
	}
}

func TestHUDPicksUpColorChange(t *testing.T) {
	h, lb, _ := newTestHUD(t)
	red, blue := color.RGBA{0xff, 0, 0, 0xff}, color.RGBA{0x40, 0x40, 0xff, 0xff}
	lb.SetColor("Bob", red)
	lb.Inject("Bob", "one")
	h.tick()
	lb.SetColor("Bob", blue)
	lb.Inject("Bob", "two")
	h.tick()
	lines := h.log.Lines()
	if len(lines) != 2 || lines[0].Color != red || lines[1].Color != blue {
		t.Fatalf("colours = %v, %v; want %v, %v", lines[0].Color, lines[1].Color, red, blue)
	}
}

func TestHUDResizeKeepsBottomMargin(t *testing.T) {
	h, _, _ := newTestHUD(t)
	margin := referenceHeight - gsdef.AnchorY
	h.resize(720)
	if got := h.log.Layout().Anchor; got.Y != 720-margin || got.X != gsdef.AnchorX {
		t.Fatalf("anchor at 720 = %+v", got)
	}
	h.resize(referenceHeight)
	if got := h.log.Layout().Anchor.Y; got != gsdef.AnchorY {
		t.Fatalf("anchor at %d = %v; want %v", referenceHeight, got, gsdef.AnchorY)
	}
	h.resize(10)
	if got := h.log.Layout().Anchor.Y; got != h.log.Layout().RowHeight {
		t.Fatalf("anchor on tiny screen = %v", got)
	}
}

func TestHUDInboxIsRateBounded(t *testing.T) {
	h, lb, _ := newTestHUD(t)
	for i := 0; i < maxInboxPerTick+3; i++ {
		lb.Inject("Bob", "spam")
	}
	h.tick()
	if h.log.Len() != maxInboxPerTick {
		t.Fatalf("Len() = %d after one tick; want %d", h.log.Len(), maxInboxPerTick)
	}
	h.tick()
	if h.log.Len() != maxInboxPerTick+3 {
		t.Fatalf("Len() = %d after two ticks", h.log.Len())
	}
}

func TestHUDConsoleMessage(t *testing.T) {
	h, _, _ := newTestHUD(t)
	consoleMessage("  hello  ")
	consoleMessage("   ")
	h.tick()
	if got := lineTexts(h); !reflect.DeepEqual(got, []string{": hello"}) {
		t.Fatalf("lines = %q", got)
	}
	if h.log.Lines()[0].Color != chathud.SystemColor {
		t.Fatalf("console line not system coloured")
	}
}

func TestHUDSubmitSendsAndEchoes(t *testing.T) {
	h, lb, _ := newTestHUD(t)
	if !h.gate.Open() {
		t.Fatalf("Open() refused while online")
	}
	h.gate.SetText("hi all", 6)
	h.gate.Submit()
	if !reflect.DeepEqual(lb.Sent(), []string{"hi all"}) {
		t.Fatalf("sent = %v", lb.Sent())
	}
	lines := h.log.Lines()
	if len(lines) != 1 || lines[0].Sender != "Alice" || lines[0].Color != chathud.Green {
		t.Fatalf("echo = %+v", lines)
	}
	if !h.gate.Locked() {
		t.Fatalf("lock released on the submitting tick")
	}
	for i := 0; i < gsdef.InputReleaseTicks; i++ {
		h.tick()
	}
	if h.gate.Locked() {
		t.Fatalf("lock not released")
	}
	if !reflect.DeepEqual(h.recall, []string{"hi all"}) {
		t.Fatalf("recall = %v", h.recall)
	}
}

func TestHUDOfflineChat(t *testing.T) {
	h, lb, _ := newTestHUD(t)
	lb.SetOnline(false)
	if h.gate.Open() || h.gate.Locked() {
		t.Fatalf("opened while offline")
	}

	h.offlineChat = true
	if !h.gate.Open() {
		t.Fatalf("offline chat refused")
	}
	h.gate.SetText("anyone?", 7)
	h.gate.Submit()
	lines := h.log.Lines()
	if len(lines) != 1 || lines[0].Color != chathud.Yellow {
		t.Fatalf("offline echo = %+v", lines)
	}
	if len(lb.Sent()) != 0 {
		t.Fatalf("sent while offline: %v", lb.Sent())
	}
}

func TestHUDOpenRefusedWhenBlocked(t *testing.T) {
	h, _, _ := newTestHUD(t)
	h.blocked = func() bool { return true }
	if h.gate.Open() {
		t.Fatalf("opened behind a modal")
	}
	h.blocked = nil
	h.focused = func() bool { return false }
	if h.gate.Open() {
		t.Fatalf("opened while unfocused")
	}
}

func TestHUDCommandIsNotEchoed(t *testing.T) {
	h, lb, _ := newTestHUD(t)
	h.gate.Open()
	h.gate.SetText("/kick bob", 9)
	h.gate.Submit()
	if len(lb.Sent()) != 0 {
		t.Fatalf("command sent: %v", lb.Sent())
	}
	lines := h.log.Lines()
	if len(lines) != 1 || lines[0].Sender != "" || !strings.Contains(lines[0].Text, "Unknown command /kick") {
		t.Fatalf("lines = %q", lineTexts(h))
	}
}

func TestHUDTypingOpensHistory(t *testing.T) {
	h, lb, _ := newTestHUD(t)
	lb.Inject("Bob", "yo")
	h.tick()
	h.gate.Open()
	h.tick()
	if !h.log.HistoryEnabled() {
		t.Fatalf("history view closed while typing")
	}
	h.gate.Cancel()
	h.log.ToggleHistory()
	if h.log.HistoryEnabled() {
		t.Fatalf("history view stuck open")
	}
}

func TestHUDTeardown(t *testing.T) {
	h, lb, _ := newTestHUD(t)
	lb.Inject("Bob", "yo")
	h.tick()
	h.gate.Open()
	h.gate.SetText("draft", 5)
	h.teardown()
	if h.log.Len() != 0 || h.gate.Typing() || h.gate.Locked() {
		t.Fatalf("len=%d typing=%v locked=%v", h.log.Len(), h.gate.Typing(), h.gate.Locked())
	}
	if h.log.History().Len() != 1 {
		t.Fatalf("history len = %d", h.log.History().Len())
	}
}

func TestHUDTimestamps(t *testing.T) {
	h, _, _ := newTestHUD(t)
	h.stamps = true
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	h.receive(meadow.Message{Sender: "Bob", Text: "yo", Time: at})
	h.receive(meadow.Message{Sender: "Bob", Text: "no time"})
	if got, want := lineTexts(h), []string{"Bob: [09:30] yo", "Bob: no time"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q; want %q", got, want)
	}
}

func TestHUDDisplayNameFallback(t *testing.T) {
	drainConsoleCh()
	s := gsdef
	s.PlayerName = "Configured"
	h := newHUD(meadow.NewOffline(""), s)
	if got := h.DisplayName(); got != "Configured" {
		t.Fatalf("DisplayName() = %q", got)
	}
}

func TestMentions(t *testing.T) {
	cases := []struct {
		text, name string
		want       bool
	}{
		{"hey alice, look", "Alice", true},
		{"hello world", "Alice", false},
		{"anything", "", false},
	}
	for _, c := range cases {
		if got := mentions(c.text, c.name); got != c.want {
			t.Errorf("mentions(%q, %q) = %v; want %v", c.text, c.name, got, c.want)
		}
	}
}
