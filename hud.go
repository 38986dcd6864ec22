package main

import (
	"strings"
	"time"

	"ghud/chathud"
	"ghud/inputgate"
	"ghud/meadow"
	"ghud/tick"
)

// maxInboxPerTick bounds how many network messages enter the log per tick
// so a burst cannot stall a frame.
const maxInboxPerTick = 8

// consoleCh carries system lines from any goroutine to the game goroutine.
// Lines logged before the HUD exists wait here.
var consoleCh = make(chan string, 64)

// consoleMessage shows msg as a system line in the chat log.
func consoleMessage(msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	select {
	case consoleCh <- msg:
	default:
	}
}

// hud ties the chat log, the input gate and the network adapter together.
// Everything here runs on the game goroutine.
type hud struct {
	log     *chathud.Log
	gate    *inputgate.Gate
	sched   *tick.Scheduler
	adapter meadow.Adapter
	box     inputBox

	prefix      string
	name        string
	offlineChat bool
	started     time.Time
	ticks       int
	sound       bool
	stamps      bool
	stampFmt    string

	// layout is the configured chat layout for a referenceHeight tall
	// screen; screenH is the height it was last fitted to.
	layout  chathud.Layout
	screenH int

	// focused and blocked are consulted by the open predicate. Nil means
	// focused and not blocked.
	focused func() bool
	blocked func() bool

	// beep plays the message sound. Replaced in tests.
	beep func()

	recall    []string
	recallPos int
}

func newHUD(a meadow.Adapter, s settings) *hud {
	h := &hud{
		sched:       &tick.Scheduler{},
		adapter:     a,
		prefix:      s.CommandPrefix,
		name:        s.PlayerName,
		offlineChat: s.OfflineChat,
		started:     time.Now(),
		sound:       s.MessageSound,
		stamps:      s.Timestamps,
		stampFmt:    s.TimestampFormat,
		beep:        playMessageSound,
	}
	if a.Version() != meadow.Version {
		logWarn("chat adapter version %d, want %d", a.Version(), meadow.Version)
	}
	h.log = chathud.New(chathud.Options{
		Layout: chathud.Layout{
			Anchor:     chathud.Point{X: s.AnchorX, Y: s.AnchorY},
			RowHeight:  s.RowHeight,
			MaxVisible: s.MaxVisibleLines,
		},
		History: chathud.NewHistory(s.HistoryCapacity),
		Colors:  a,
	})
	h.gate = inputgate.New(inputgate.Options{
		CanOpen:       h.canOpen,
		Sender:        a,
		Identity:      h,
		Echo:          h.echo,
		History:       h.log,
		Scheduler:     h.sched,
		ReleaseTicks:  s.InputReleaseTicks,
		CommandPrefix: s.CommandPrefix,
	})
	h.log.SetFocus(h.gate)
	h.layout = h.log.Layout()
	h.gate.OnSubmit(func(text string, delivered bool) {
		h.remember(text)
		if !delivered {
			logDebug("message shown locally only: %q", text)
		}
	})
	h.gate.OnCommand(func(args []string) {
		h.remember(strings.Join(args, " "))
		h.runCommand(args)
	})
	h.gate.OnCancel(func() { h.recallPos = len(h.recall) })
	return h
}

// canOpen allows a chat session while connected (or when offline chat is
// enabled) and no modal blocks the window.
func (h *hud) canOpen() bool {
	if h.blocked != nil && h.blocked() {
		return false
	}
	if h.focused != nil && !h.focused() {
		return false
	}
	return h.adapter.IsOnline() || h.offlineChat
}

// DisplayName resolves the local player's name: the session's first, then
// the configured name.
func (h *hud) DisplayName() string {
	if name := strings.TrimSpace(h.adapter.DisplayName()); name != "" {
		return name
	}
	return h.name
}

func (h *hud) echo(sender, text string, delivered bool) {
	h.log.AddLocal(sender, h.stamp(time.Now(), text), delivered)
}

func (h *hud) stamp(t time.Time, text string) string {
	if !h.stamps || t.IsZero() {
		return text
	}
	return "[" + t.Format(h.stampFmt) + "] " + text
}

// tick advances the HUD by one logic tick.
func (h *hud) tick() {
	h.ticks++
	h.drainConsole()
	if w, ok := h.adapter.(meadow.ColorWatcher); ok {
		meadow.Drain(w.ColorChanges(), 0, h.log.ForgetColor)
	}
	meadow.Drain(h.adapter.Inbox(), maxInboxPerTick, h.receive)
	h.sched.Tick()
	h.log.Update()
	h.box.update(h.gate, measureChat)
}

// referenceHeight is the screen height the anchor settings are given for.
const referenceHeight = initialWindowH

// resize keeps the chat anchor at its configured distance from the bottom
// edge of a screen height pixels tall.
func (h *hud) resize(height int) {
	if height <= 0 || height == h.screenH {
		return
	}
	h.screenH = height
	l := h.layout
	l.Anchor.Y = float64(height) - (referenceHeight - h.layout.Anchor.Y)
	if l.Anchor.Y < l.RowHeight {
		l.Anchor.Y = l.RowHeight
	}
	h.log.SetLayout(l)
}

func (h *hud) drainConsole() {
	for {
		select {
		case msg := <-consoleCh:
			h.log.AddMessage("", msg)
		default:
			return
		}
	}
}

func (h *hud) receive(m meadow.Message) {
	if h.log.AddMessage(m.Sender, h.stamp(m.Time, m.Text)) == nil {
		return
	}
	if m.Sender == "" {
		return
	}
	if h.sound && h.beep != nil {
		h.beep()
	}
	if h.focused != nil && !h.focused() && mentions(m.Text, h.DisplayName()) {
		go notifyDesktop(m.Sender, m.Text)
	}
}

// mentions reports whether text names the player.
func mentions(text, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(name))
}

// remember keeps submitted lines for recall with the arrow keys.
func (h *hud) remember(line string) {
	if line == "" {
		return
	}
	if n := len(h.recall); n == 0 || h.recall[n-1] != line {
		h.recall = append(h.recall, line)
	}
	h.recallPos = len(h.recall)
}

// teardown closes the session and drops every line at once, for a session
// or scene change.
func (h *hud) teardown() {
	h.gate.Deactivate()
	h.sched.Flush()
	h.log.Teardown()
	h.box = inputBox{}
}
