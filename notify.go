package main

import (
	"os"
	"runtime"

	"github.com/gen2brain/beeep"
)

// headless reports whether there is no display to notify on.
func headless() bool {
	return runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// notifyDesktop shows a desktop notification, best-effort and non-fatal.
func notifyDesktop(title, body string) {
	if body == "" {
		return
	}
	// Skip on headless Linux; beeep would error.
	if headless() {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		logDebug("notify: %v", err)
	}
}

// playMessageSound beeps for an incoming chat message without blocking the
// game loop.
func playMessageSound() {
	if headless() {
		return
	}
	go func() {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration/4); err != nil {
			logDebug("message sound: %v", err)
		}
	}()
}
