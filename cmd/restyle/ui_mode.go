package main

import (
	"fmt"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	v := uiMode(strings.ToLower(strings.TrimSpace(value)))
	if v == "" {
		return uiModeAuto, nil
	}
	if v != uiModeAuto && v != uiModeOn && v != uiModeOff {
		return "", fmt.Errorf("--ui: want auto, on or off, got %q", value)
	}
	return v, nil
}

// shouldUseTUI decides whether to draw progress on stderr. The view never
// shares the terminal with formatted output on stdout.
func shouldUseTUI(mode uiMode, stderrIsTTY, stdoutFree, quiet bool) bool {
	if !stdoutFree || mode == uiModeOff {
		return false
	}
	return mode == uiModeOn || (stderrIsTTY && !quiet)
}
