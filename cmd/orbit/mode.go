package main

import (
	"fmt"
	"strings"
)

// autoMode is the value of a tri-state flag such as --color or --ui.
type autoMode string

const (
	modeAuto autoMode = "auto"
	modeOn   autoMode = "on"
	modeOff  autoMode = "off"
)

func parseAutoMode(flag, value string) (autoMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on", "always":
		return modeOn, nil
	case "off", "never":
		return modeOff, nil
	}
	return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// enabled resolves m; auto asks detect.
func (m autoMode) enabled(detect func() bool) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	return detect()
}
