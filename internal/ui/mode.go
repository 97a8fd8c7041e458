package ui

import (
	"fmt"
	"strings"
)

// Mode selects whether the progress view is shown.
type Mode uint8

const (
	// ModeAuto shows the view when stdout is a terminal.
	ModeAuto Mode = iota
	ModeOn
	ModeOff
)

// ParseMode reads an --ui flag value.
func ParseMode(value string) (Mode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return ModeAuto, nil
	case "on":
		return ModeOn, nil
	case "off":
		return ModeOff, nil
	default:
		return ModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// Enabled resolves the mode against whether output goes to a terminal.
func (m Mode) Enabled(terminal bool) bool {
	switch m {
	case ModeOn:
		return true
	case ModeOff:
		return false
	default:
		return terminal
	}
}
