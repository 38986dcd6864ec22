package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var chatFont, labelFont text.Face

// initFont loads the chat faces. A custom FontPath wins over the bundled Go
// fonts; a bad file falls back to them. A system CJK font, when one is
// installed, backs both faces for glyphs they lack.
func initFont() {
	regular, bold := mustParseFont(goregular.TTF), mustParseFont(gobold.TTF)
	if gs.FontPath != "" {
		if src, err := loadFaceSource(gs.FontPath); err == nil {
			regular, bold = src, src
		} else {
			logWarn("font %s: %v", gs.FontPath, err)
		}
	}

	fallback, path := findFaceSource(cjkFontPaths())
	switch {
	case fallback != nil:
		logDebug("CJK fallback font %s", path)
	case gs.FontPath == "":
		logWarn("no CJK font found; set FontPath to show Chinese and Japanese text")
	}

	chatFont = newChatFace(regular, fallback, gs.ChatFontSize)
	labelFont = newChatFace(bold, fallback, gs.ChatFontSize)
}

func mustParseFont(data []byte) *text.GoTextFaceSource {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		log.Fatalf("failed to parse font: %v", err)
	}
	return src
}

// newChatFace returns primary at size, falling back to fallback per glyph.
func newChatFace(primary, fallback *text.GoTextFaceSource, size float64) text.Face {
	face := &text.GoTextFace{Source: primary, Size: size}
	if fallback == nil {
		return face
	}
	multi, err := text.NewMultiFace(face, &text.GoTextFace{Source: fallback, Size: size})
	if err != nil {
		logWarn("font fallback: %v", err)
		return face
	}
	return multi
}

// cjkFontPaths lists common system fonts covering Chinese and Japanese.
func cjkFontPaths() []string {
	switch runtime.GOOS {
	case "windows":
		dir := filepath.Join(cmp.Or(os.Getenv("WINDIR"), `C:\Windows`), "Fonts")
		return []string{
			filepath.Join(dir, "msyh.ttc"),
			filepath.Join(dir, "simsun.ttc"),
			filepath.Join(dir, "YuGothM.ttc"),
			filepath.Join(dir, "meiryo.ttc"),
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/System/Library/Fonts/Hiragino Sans GB.ttc",
			"/System/Library/Fonts/STHeiti Medium.ttc",
			"/Library/Fonts/Arial Unicode.ttf",
		}
	default:
		return []string{
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
			"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttc",
			"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
		}
	}
}

// findFaceSource returns the first font in paths that loads.
func findFaceSource(paths []string) (*text.GoTextFaceSource, string) {
	for _, p := range paths {
		src, err := loadFaceSource(p)
		if err == nil {
			return src, p
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logDebug("font %s: %v", p, err)
		}
	}
	return nil, ""
}

// loadFaceSource parses the font file at path. A collection yields its
// first face.
func loadFaceSource(path string) (*text.GoTextFaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		srcs, err := text.NewGoTextFaceSourcesFromCollection(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if len(srcs) == 0 {
			return nil, fmt.Errorf("%s: empty font collection", path)
		}
		return srcs[0], nil
	}
	return text.NewGoTextFaceSource(bytes.NewReader(data))
}

// measureChat returns the advance of s in the chat face. Before fonts are
// loaded it estimates half an em per rune.
func measureChat(s string) float64 {
	if chatFont == nil {
		return float64(len([]rune(s))) * gs.ChatFontSize / 2
	}
	return text.Advance(s, chatFont)
}

func measureLabel(s string) float64 {
	if labelFont == nil {
		return float64(len([]rune(s))) * gs.ChatFontSize / 2
	}
	return text.Advance(s, labelFont)
}
