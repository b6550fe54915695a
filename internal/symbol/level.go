package symbol

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a QR error correction level.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

// ErrInvalidLevel is returned when a level name is not one of L, M, Q or H.
var ErrInvalidLevel = errors.New("invalid error correction level")

// ParseLevel parses "L", "M", "Q" or "H" (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Valid reports whether l is one of the four QR levels.
func (l Level) Valid() bool { return l >= LevelL && l <= LevelH }

// Weak reports whether l is one of the two lowest levels (L or M).
func (l Level) Weak() bool { return l == LevelL || l == LevelM }
