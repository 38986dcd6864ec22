package main

import (
	"context"
	"image/color"
	"time"

	"ghud/meadow"
)

// fakeChatter is the script played in fake mode, one line per step.
var fakeChatter = []struct {
	sender, text string
}{
	{"Bob", "Hello there!"},
	{"John", "psst... over here"},
	{"", "Server restart in 10 minutes"},
	{"Bob", "Watch out!"},
	{"Mira", "こんにちは、みなさん"},
	{"John", "I wonder what is past the ridge"},
	{"Bob", "Anyone up for a run through the caves? Bring a lantern, it gets dark fast."},
	{"Mira", "on my way"},
}

var fakeColors = map[string]color.RGBA{
	"Bob":  {0x60, 0xa0, 0xff, 0xff},
	"John": {0x20, 0x10, 0x40, 0xff},
	"Mira": {0xff, 0x80, 0xc0, 0xff},
}

// runFakeMode feeds sample chatter into a loopback session so the HUD can be
// exercised without a server.
func runFakeMode(ctx context.Context, lb *meadow.Loopback, every time.Duration) {
	for sender, c := range fakeColors {
		lb.SetColor(sender, c)
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		step := 0
		for {
			select {
			case <-ctx.Done():
				lb.Close()
				return
			case <-ticker.C:
			}
			m := fakeChatter[step%len(fakeChatter)]
			if err := lb.Inject(m.sender, m.text); err != nil {
				logDebug("fake mode: %v", err)
				return
			}
			step++
		}
	}()
}
