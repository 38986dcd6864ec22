package inputgate

// Action is a logical key binding the gate reacts to.
type Action int

const (
	// ActionChat opens a session, or submits the open one (Enter).
	ActionChat Action = iota
	// ActionCancel closes the open session (Escape).
	ActionCancel
	// ActionHistory toggles the chat history view (Tab).
	ActionHistory

	actionCount
)

// Press handles the down edge of a key. Each physical press produces at most
// one logical action; repeats before the matching Release are ignored. It
// reports whether the press was consumed.
func (g *Gate) Press(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	if g.processing[a] {
		return false
	}
	g.processing[a] = true
	switch a {
	case ActionChat:
		if g.state == Open {
			g.Submit()
			return true
		}
		return g.Open()
	case ActionCancel:
		if g.state != Open {
			return false
		}
		g.Cancel()
		return true
	case ActionHistory:
		if g.state == Open || g.opts.History == nil {
			return false
		}
		g.opts.History.ToggleHistory()
		return true
	}
	return false
}

// Release handles the up edge of a key and re-arms its action.
func (g *Gate) Release(a Action) {
	if a < 0 || a >= actionCount {
		return
	}
	g.processing[a] = false
}
