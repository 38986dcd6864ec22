package main

import (
	"testing"

	"ghud/chathud"
)

func TestLineRunsScaleMessageWithLabel(t *testing.T) {
	cmd := chathud.DrawCommand{
		Sender: "Bob",
		Text:   "hi",
		Color:  chathud.Green,
		Pos:    chathud.Point{X: 80, Y: 955},
		Alpha:  0.5,
		Scale:  0.5 * chathud.LabelScale,
	}
	runs := lineRuns(cmd, func(string) float64 { return 100 })
	if len(runs) != 2 {
		t.Fatalf("runs = %d; want 2", len(runs))
	}
	label, body := runs[0], runs[1]
	if !label.label || label.str != "[Bob]" || label.col != chathud.Green {
		t.Fatalf("label run = %+v", label)
	}
	if body.scale != cmd.Scale || label.scale != cmd.Scale {
		t.Fatalf("scales label=%v body=%v; want %v", label.scale, body.scale, cmd.Scale)
	}
	if want := cmd.Pos.X + cmd.MessageOffset(100); body.x != want {
		t.Fatalf("body x = %v; want %v", body.x, want)
	}
	if body.col != chathud.White {
		t.Fatalf("body colour = %v; want white", body.col)
	}
}

func TestLineRunsSystemLine(t *testing.T) {
	cmd := chathud.DrawCommand{Text: "notice", Color: chathud.SystemColor, Alpha: 1, Scale: chathud.LabelScale}
	runs := lineRuns(cmd, measureLabel)
	if len(runs) != 1 || runs[0].label || runs[0].col != chathud.SystemColor || runs[0].scale != cmd.Scale {
		t.Fatalf("runs = %+v", runs)
	}
}
