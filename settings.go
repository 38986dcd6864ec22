package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"ghud/chathud"
	"ghud/inputgate"
)

const SETTINGS_VERSION = 1

const settingsFile = "settings.json"

var gs settings = gsdef

// settingsLoaded reports whether settings were successfully loaded from disk.
var settingsLoaded bool

// settingsPath overrides the settings location when set with -config.
var settingsPath string

var gsdef settings = settings{
	Version: SETTINGS_VERSION,

	ServerURL:         "ws://localhost:8080/chat",
	ChatFontSize:      16,
	MaxVisibleLines:   chathud.DefaultMaxVisible,
	HistoryCapacity:   chathud.DefaultHistoryCapacity,
	AnchorX:           80,
	AnchorY:           955,
	RowHeight:         chathud.DefaultRowHeight,
	CommandPrefix:     inputgate.DefaultCommandPrefix,
	InputReleaseTicks: inputgate.DefaultReleaseTicks,
	MessageSound:      true,
	TimestampFormat:   "15:04",
	SendRate:          2,
	SendBurst:         3,
	EnableLogging:     true,
	WindowWidth:       initialWindowW,
	WindowHeight:      initialWindowH,
}

type settings struct {
	Version int

	ServerURL  string
	PlayerName string

	ChatFontSize float64
	FontPath     string

	MaxVisibleLines int
	HistoryCapacity int
	AnchorX         float64
	AnchorY         float64
	RowHeight       float64

	CommandPrefix     string
	InputReleaseTicks int

	MessageSound    bool
	OfflineChat     bool
	Timestamps      bool
	TimestampFormat string

	SendRate  float64
	SendBurst int

	EnableLogging  bool
	VerboseLogging bool

	WindowWidth  int
	WindowHeight int
}

// dataDirPath holds the directory settings and logs live in. It is resolved
// relative to the executable so the files sit next to the binary regardless
// of the current working directory.
var dataDirPath = func() string {
	if runtime.GOOS == "darwin" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "ghud")
		}
	}
	if exe, err := os.Executable(); err == nil {
		if dir, err := filepath.Abs(filepath.Dir(exe)); err == nil {
			return filepath.Join(dir, "data")
		}
	}
	// Fallback to relative path.
	return "data"
}()

func settingsFilePath() string {
	if settingsPath != "" {
		return settingsPath
	}
	return filepath.Join(dataDirPath, settingsFile)
}

func loadSettings() bool {
	data, err := os.ReadFile(settingsFilePath())
	if err != nil {
		gs = gsdef
		settingsLoaded = false
		return false
	}

	tmp := gsdef
	if err := json.Unmarshal(data, &tmp); err != nil {
		gs = gsdef
		settingsLoaded = false
		return false
	}
	if tmp.Version != SETTINGS_VERSION {
		gs = gsdef
		settingsLoaded = false
		return false
	}
	gs = tmp
	clampSettings(&gs)
	settingsLoaded = true
	return true
}

// clampSettings puts out-of-range values back to their defaults.
func clampSettings(s *settings) {
	s.ServerURL = strings.TrimSpace(s.ServerURL)
	s.PlayerName = strings.TrimSpace(s.PlayerName)
	if s.ChatFontSize < 6 || s.ChatFontSize > 72 {
		s.ChatFontSize = gsdef.ChatFontSize
	}
	if s.MaxVisibleLines < 1 || s.MaxVisibleLines > 50 {
		s.MaxVisibleLines = gsdef.MaxVisibleLines
	}
	if s.HistoryCapacity < 1 || s.HistoryCapacity > 1000 {
		s.HistoryCapacity = gsdef.HistoryCapacity
	}
	if s.AnchorX < 0 {
		s.AnchorX = gsdef.AnchorX
	}
	if s.AnchorY < 0 {
		s.AnchorY = gsdef.AnchorY
	}
	if s.RowHeight < 4 || s.RowHeight > 200 {
		s.RowHeight = gsdef.RowHeight
	}
	if strings.TrimSpace(s.CommandPrefix) == "" {
		s.CommandPrefix = gsdef.CommandPrefix
	}
	if s.InputReleaseTicks < 0 || s.InputReleaseTicks > 40 {
		s.InputReleaseTicks = gsdef.InputReleaseTicks
	}
	if s.TimestampFormat == "" {
		s.TimestampFormat = gsdef.TimestampFormat
	}
	if s.SendRate <= 0 {
		s.SendRate = gsdef.SendRate
	}
	if s.SendBurst < 1 {
		s.SendBurst = gsdef.SendBurst
	}
	if s.WindowWidth < 512 {
		s.WindowWidth = gsdef.WindowWidth
	}
	if s.WindowHeight < 384 {
		s.WindowHeight = gsdef.WindowHeight
	}
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		logError("save settings: %v", err)
		return
	}
	path := settingsFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.Rename(path+".tmp", path); err != nil {
		logError("save settings: %v", err)
	}
}
