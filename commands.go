package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

type commandHandler func(h *hud, args []string)

type command struct {
	help string
	run  commandHandler
}

// commands maps lower-case command names, without the prefix, to handlers.
var commands = map[string]command{}

func registerCommand(name, help string, run commandHandler) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || run == nil {
		return
	}
	if _, exists := commands[key]; exists {
		logWarn("command conflict: %s already registered", key)
		return
	}
	commands[key] = command{help: help, run: run}
}

func init() {
	registerCommand("help", "list commands", cmdHelp)
	registerCommand("history", "toggle the chat history view", cmdHistory)
	registerCommand("clear", "remove every chat line and the history", cmdClear)
	registerCommand("last", "[n] show when the last n messages arrived", cmdLast)
	registerCommand("uptime", "show how long the HUD has been running", cmdUptime)
	registerCommand("sound", "[on|off] toggle the message sound", cmdSound)
}

// runCommand dispatches the tokens of a submitted command. The first token
// still carries the prefix.
func (h *hud) runCommand(args []string) {
	if len(args) == 0 {
		return
	}
	name := strings.ToLower(strings.TrimPrefix(args[0], h.prefix))
	c, ok := commands[name]
	if !ok {
		h.system(fmt.Sprintf("Unknown command %s%s, try %shelp", h.prefix, name, h.prefix))
		return
	}
	logDebug("command %s %v", name, args[1:])
	c.run(h, args[1:])
}

// system adds a system line right away.
func (h *hud) system(msg string) {
	h.log.AddMessage("", msg)
}

func cmdHelp(h *hud, _ []string) {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		h.system(h.prefix + n + " - " + commands[n].help)
	}
}

func cmdHistory(h *hud, _ []string) {
	h.log.ToggleHistory()
}

func cmdClear(h *hud, _ []string) {
	h.log.Teardown()
	h.log.History().Clear()
}

const defaultLastCount = 5

func cmdLast(h *hud, args []string) {
	n := defaultLastCount
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			h.system("usage: " + h.prefix + "last [n]")
			return
		}
		n = v
	}
	records := h.log.History().Last(n)
	if len(records) == 0 {
		h.system("No messages in history")
		return
	}
	for _, r := range records {
		who := r.Sender
		if who == "" {
			who = "system"
		}
		h.system(fmt.Sprintf("%s %s: %s", humanize.Time(r.Time), who, r.Text))
	}
}

func cmdUptime(h *hud, _ []string) {
	up := time.Since(h.started).Round(time.Second)
	h.system("Up " + durafmt.Parse(up).LimitFirstN(2).Format(shortUnits) +
		", " + humanize.Comma(int64(h.ticks)) + " ticks")
}

func cmdSound(h *hud, args []string) {
	on := !h.sound
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on":
			on = true
		case "off":
			on = false
		default:
			h.system("usage: " + h.prefix + "sound [on|off]")
			return
		}
	}
	h.sound = on
	gs.MessageSound = on
	if on {
		h.system("Message sound on")
	} else {
		h.system("Message sound off")
	}
}
