package main

import (
	"os"
	"path/filepath"
	"testing"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFindFaceSourceSkipsMissingAndBroken(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.ttf")
	good := filepath.Join(dir, "good.ttf")
	if err := os.WriteFile(broken, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	src, path := findFaceSource([]string{filepath.Join(dir, "missing.ttc"), broken, good})
	if src == nil || path != good {
		t.Fatalf("findFaceSource = %v, %q; want %q", src, path, good)
	}
	if src, path := findFaceSource([]string{filepath.Join(dir, "missing.ttf")}); src != nil || path != "" {
		t.Fatalf("findFaceSource(missing) = %v, %q", src, path)
	}
}

func TestNewChatFaceFallsBack(t *testing.T) {
	primary := mustParseFont(goregular.TTF)
	if _, ok := newChatFace(primary, nil, 16).(*text.GoTextFace); !ok {
		t.Fatalf("face without fallback is not a plain GoTextFace")
	}
	if _, ok := newChatFace(primary, mustParseFont(goregular.TTF), 16).(*text.MultiFace); !ok {
		t.Fatalf("face with fallback is not a MultiFace")
	}
}

func TestCJKFontPathsListed(t *testing.T) {
	if len(cjkFontPaths()) == 0 {
		t.Fatalf("no CJK font candidates")
	}
}
