package inputgate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// normalize composes IME output and trims surrounding white space,
// including the ideographic space.
func normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// parseCommand splits text into tokens when it starts with prefix. Only the
// command name is width folded, so "／sound" typed through an IME matches
// while the arguments reach handlers as typed. A bare prefix is still a
// command; it simply names no handler.
func parseCommand(text, prefix string) ([]string, bool) {
	if prefix == "" {
		return nil, false
	}
	if !strings.HasPrefix(width.Fold.String(text), prefix) {
		return nil, false
	}
	args := strings.Fields(text)
	if len(args) == 0 {
		return nil, false
	}
	args[0] = width.Fold.String(args[0])
	return args, true
}
