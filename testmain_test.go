package main

import (
	"os"
	"testing"
)

// TestMain keeps tests away from the real data directory and log files.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "ghud-test")
	if err != nil {
		panic(err)
	}
	dataDirPath = dir
	logToFile = false
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// drainConsoleCh discards system lines left over from earlier tests.
func drainConsoleCh() {
	for {
		select {
		case <-consoleCh:
		default:
			return
		}
	}
}
