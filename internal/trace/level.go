package trace

import (
	"fmt"
	"strings"
)

// Level is the finest scope that is emitted.
type Level uint8

const (
	LevelOff    = Level(0)
	LevelDriver = Level(ScopeDriver)
	LevelFile   = Level(ScopeFile)
	LevelStage  = Level(ScopeStage)
)

func (l Level) String() string {
	if l == LevelOff {
		return "off"
	}
	return Scope(l).String()
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return LevelOff, nil
	case "driver":
		return LevelDriver, nil
	case "file":
		return LevelFile, nil
	case "stage":
		return LevelStage, nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|driver|file|stage)", s)
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return l != LevelOff && scope != 0 && scope <= Scope(l)
}
