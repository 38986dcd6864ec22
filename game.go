package main

import (
	"context"
	"image/color"
	"log"
	"time"

	"ghud/tick"

	"github.com/hajimehoshi/ebiten/v2"
)

const initialWindowW, initialWindowH = 1920, 1080

var backgroundColor = color.RGBA{0x18, 0x1c, 0x24, 0xff}

// Game drives the HUD from ebiten. Logic runs at a fixed tick rate through
// the stepper while Update and Draw follow the display rate.
type Game struct {
	ctx  context.Context
	hud  *hud
	step *tick.Stepper
	last time.Time
}

func newGame(ctx context.Context, h *hud) *Game {
	h.focused = ebiten.IsFocused
	return &Game{ctx: ctx, hud: h, step: tick.NewStepper(tick.DefaultRate)}
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		g.hud.teardown()
		return ebiten.Termination
	default:
	}

	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = now.Sub(g.last).Seconds()
	}
	g.last = now

	handleInput(g.hud, now)
	if n := g.step.Advance(dt, g.hud.tick); n == g.step.MaxSteps {
		logDebug("tick backlog dropped after %d steps", n)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawHUD(screen, g.hud, g.step.Fraction())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.hud.resize(outsideHeight)
	return outsideWidth, outsideHeight
}

func runGame(ctx context.Context, h *hud) {
	ebiten.SetWindowTitle("ghud")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Update follows the display; the stepper keeps logic at a fixed rate.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(newGame(ctx, h)); err != nil {
		log.Printf("ebiten: %v", err)
	}
}
