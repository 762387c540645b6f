package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. *Level satisfies pflag.Value, so the CLI
// binds --trace-level to it directly.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

var levelInfo = [...]struct {
	name     string
	maxScope Scope // deepest scope kept; ScopeNone keeps nothing
}{
	LevelOff:    {"off", ScopeNone},
	LevelError:  {"error", ScopeNone}, // только дамп кольца при падении
	LevelPhase:  {"phase", ScopePass},
	LevelDetail: {"detail", ScopeUnit},
	LevelDebug:  {"debug", ScopeNode},
}

func (l Level) String() string {
	if int(l) < len(levelInfo) {
		return levelInfo[l].name
	}
	return "unknown"
}

// ParseLevel parses a --trace-level value (case-insensitive).
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, info := range levelInfo {
		if info.name == name {
			return Level(l), nil //nolint:gosec // index into a five-element table
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// Set implements pflag.Value.
func (l *Level) Set(s string) error {
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Type implements pflag.Value.
func (*Level) Type() string { return "level" }

// forRing is the level a crash ring records at. "error" streams nothing but
// still keeps phase events for the dump.
func (l Level) forRing() Level {
	if l == LevelError {
		return LevelPhase
	}
	return l
}

// ShouldEmit reports whether events of scope are kept at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelInfo) {
		return false
	}
	deepest := levelInfo[l].maxScope
	return deepest != ScopeNone && scope != ScopeNone && scope <= deepest
}
