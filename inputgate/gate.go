// Package inputgate owns the chat text-entry session and the input lock the
// host uses to keep gameplay keys away from the game while the player types.
package inputgate

import (
	"log"
	"strings"
	"unicode/utf8"

	"ghud/tick"
)

// State is the session state of a Gate.
type State int

const (
	Closed State = iota
	Open
	Submitted
	Cancelled
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// DefaultName is used when no display name can be resolved.
const DefaultName = "Player"

// DefaultReleaseTicks is how long the input lock outlives a closed session.
const DefaultReleaseTicks = 2

// DefaultCommandPrefix marks submitted text as a local command.
const DefaultCommandPrefix = "/"

// Predicate reports whether a chat session may be opened right now.
type Predicate func() bool

// Sender forwards a chat message to the network. Any error, or a panic, means
// the message stays local.
type Sender interface {
	SendMessage(text string) error
}

// Identity resolves the local player's display name.
type Identity interface {
	DisplayName() string
}

// HistoryToggler flips the chat history view.
type HistoryToggler interface {
	ToggleHistory()
}

// EchoFunc shows the player's own message in the chat log.
type EchoFunc func(sender, text string, delivered bool)

// Options configures a Gate. Nil collaborators are treated as absent.
type Options struct {
	CanOpen       Predicate
	Sender        Sender
	Identity      Identity
	Echo          EchoFunc
	History       HistoryToggler
	Scheduler     *tick.Scheduler
	ReleaseTicks  int
	CommandPrefix string
}

// Gate is the text-entry state machine. Like the chat log it is owned by
// the game goroutine.
type Gate struct {
	opts Options

	state  State
	text   string
	caret  int
	locked bool

	release   tick.ID
	releasing bool

	processing [actionCount]bool

	onFocus   []func()
	onChange  []func(text string, caret int)
	onSubmit  []func(text string, delivered bool)
	onCancel  []func()
	onCommand []func(args []string)
}

// New returns a closed Gate.
func New(opts Options) *Gate {
	if opts.ReleaseTicks < 0 {
		opts.ReleaseTicks = 0
	}
	if opts.CommandPrefix == "" {
		opts.CommandPrefix = DefaultCommandPrefix
	}
	return &Gate{opts: opts}
}

// OnFocus registers fn to run when a session opens.
func (g *Gate) OnFocus(fn func()) { g.onFocus = append(g.onFocus, fn) }

// OnChange registers fn to run when the session text changes.
func (g *Gate) OnChange(fn func(text string, caret int)) { g.onChange = append(g.onChange, fn) }

// OnSubmit registers fn to run after a chat message was submitted.
func (g *Gate) OnSubmit(fn func(text string, delivered bool)) { g.onSubmit = append(g.onSubmit, fn) }

// OnCancel registers fn to run when a session closes without a message.
func (g *Gate) OnCancel(fn func()) { g.onCancel = append(g.onCancel, fn) }

// OnCommand registers fn to receive the tokens of submitted commands. The
// first token keeps its prefix, so "/kick bob" arrives as ["/kick", "bob"].
func (g *Gate) OnCommand(fn func(args []string)) { g.onCommand = append(g.onCommand, fn) }

// State returns the current session state.
func (g *Gate) State() State { return g.state }

// Typing reports whether a session is open.
func (g *Gate) Typing() bool { return g.state == Open }

// Locked reports whether gameplay input must be suppressed. It stays set for
// a few ticks after a session closes.
func (g *Gate) Locked() bool { return g.locked }

// Session returns the text and caret of the open session.
func (g *Gate) Session() (text string, caret int, ok bool) {
	if g.state != Open {
		return "", 0, false
	}
	return g.text, g.caret, true
}

// CanOpen asks the host predicate whether a session may start.
func (g *Gate) CanOpen() bool {
	if g.opts.CanOpen == nil {
		return true
	}
	return g.opts.CanOpen()
}

// Open starts a session. It reports false when a session was already open or
// the host refused.
func (g *Gate) Open() bool {
	if g.state == Open {
		return false
	}
	if !g.CanOpen() {
		log.Printf("inputgate: open refused")
		return false
	}
	g.cancelRelease()
	g.state = Open
	g.text, g.caret = "", 0
	g.locked = true
	for _, fn := range g.onFocus {
		fn()
	}
	return true
}

// SetText replaces the session buffer. The caret is a rune index and is
// clamped to the text.
func (g *Gate) SetText(text string, caret int) {
	if g.state != Open {
		return
	}
	n := utf8.RuneCountInString(text)
	if caret < 0 {
		caret = 0
	}
	if caret > n {
		caret = n
	}
	if text == g.text && caret == g.caret {
		return
	}
	g.text, g.caret = text, caret
	for _, fn := range g.onChange {
		fn(text, caret)
	}
}

// Submit closes the session and acts on its text: commands go to the command
// observers, anything else is sent and echoed. Blank text cancels.
func (g *Gate) Submit() {
	if g.state != Open {
		return
	}
	text := normalize(g.text)
	if text == "" {
		g.Cancel()
		return
	}
	g.state = Submitted
	g.text, g.caret = "", 0

	if args, ok := parseCommand(text, g.opts.CommandPrefix); ok {
		for _, fn := range g.onCommand {
			fn(args)
		}
	} else {
		delivered := g.send(text)
		if g.opts.Echo != nil {
			g.opts.Echo(g.displayName(), text, delivered)
		}
		for _, fn := range g.onSubmit {
			fn(text, delivered)
		}
	}
	g.close()
}

// Cancel closes the session without sending anything.
func (g *Gate) Cancel() {
	if g.state != Open {
		return
	}
	g.state = Cancelled
	g.text, g.caret = "", 0
	g.close()
	for _, fn := range g.onCancel {
		fn()
	}
}

// Deactivate tears the session down from outside, for example on a scene
// change. The lock is released at once and scheduled callbacks are flushed.
func (g *Gate) Deactivate() {
	wasOpen := g.state == Open
	g.state = Closed
	g.text, g.caret = "", 0
	g.cancelRelease()
	g.locked = false
	if g.opts.Scheduler != nil {
		g.opts.Scheduler.Flush()
	}
	if wasOpen {
		for _, fn := range g.onCancel {
			fn()
		}
	}
}

func (g *Gate) close() {
	g.state = Closed
	if g.opts.Scheduler == nil || g.opts.ReleaseTicks == 0 {
		g.locked = false
		return
	}
	g.cancelRelease()
	g.releasing = true
	g.release = g.opts.Scheduler.After(g.opts.ReleaseTicks, func() {
		g.releasing = false
		if g.state != Open {
			g.locked = false
		}
	})
}

func (g *Gate) cancelRelease() {
	if !g.releasing {
		return
	}
	g.releasing = false
	if g.opts.Scheduler != nil {
		g.opts.Scheduler.Cancel(g.release)
	}
}

func (g *Gate) send(text string) (delivered bool) {
	if g.opts.Sender == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("inputgate: send panic: %v", r)
			delivered = false
		}
	}()
	if err := g.opts.Sender.SendMessage(text); err != nil {
		log.Printf("inputgate: send: %v", err)
		return false
	}
	return true
}

func (g *Gate) displayName() (name string) {
	if g.opts.Identity == nil {
		return DefaultName
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("inputgate: display name panic: %v", r)
			name = DefaultName
		}
	}()
	name = strings.TrimSpace(g.opts.Identity.DisplayName())
	if name == "" {
		name = DefaultName
	}
	return name
}
