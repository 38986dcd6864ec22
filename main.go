package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ghud/meadow"

	"github.com/hajimehoshi/ebiten/v2"
	clipboard "golang.design/x/clipboard"
)

var (
	host    string
	name    string
	fake    bool
	silent  bool
	doDebug bool
)

func main() {
	flag.StringVar(&host, "host", "", "chat server websocket URL (overrides settings)")
	flag.StringVar(&name, "name", "", "player name (overrides settings)")
	flag.StringVar(&settingsPath, "config", "", "settings file path")
	flag.BoolVar(&fake, "fake", false, "simulate chat traffic without connecting")
	flag.BoolVar(&silent, "silent", false, "do not echo errors into the chat")
	flag.BoolVar(&doDebug, "debug", false, "verbose/debug logging")
	flag.Parse()

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard init: %v", err)
	}

	loadSettings()
	if host != "" {
		gs.ServerURL = host
	}
	if name != "" {
		gs.PlayerName = name
	}
	logToFile = gs.EnableLogging
	setupLogging(doDebug || gs.VerboseLogging)
	defer func() {
		if r := recover(); r != nil {
			logPanic(r)
		}
	}()
	if !settingsLoaded {
		logDebug("no settings at %s, using defaults", settingsFilePath())
	}
	defer saveSettings()

	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
	initFont()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	adapter := newAdapter(ctx)
	runGame(ctx, newHUD(adapter, gs))
}

// newAdapter picks the chat session: loopback in fake mode, offline without
// a server, otherwise a websocket client running until ctx ends.
func newAdapter(ctx context.Context) meadow.Adapter {
	switch {
	case fake:
		lb := meadow.NewLoopback(gs.PlayerName)
		runFakeMode(ctx, lb, 3*time.Second)
		return lb
	case gs.ServerURL == "":
		consoleMessage("No chat server configured, chat stays local")
		return meadow.NewOffline(gs.PlayerName)
	}
	c := meadow.NewClient(meadow.Config{
		URL:       gs.ServerURL,
		Name:      gs.PlayerName,
		SendRate:  gs.SendRate,
		SendBurst: gs.SendBurst,
	})
	go func() {
		if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logError("chat session: %v", err)
		}
	}()
	return c
}
