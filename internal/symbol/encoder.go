package symbol

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownEncoder is returned by New for an unregistered backend name.
	ErrUnknownEncoder = errors.New("unknown encoder backend")
	// ErrEmptyPayload is returned when asked to encode an empty string.
	ErrEmptyPayload = errors.New("payload is empty")
)

// Encoder converts text into a module grid at the requested error correction level.
// Implementations must be deterministic: the same (text, level) pair always
// yields an identical grid, without a quiet zone.
type Encoder interface {
	Name() string
	Encode(text string, level Level) (Grid, error)
}

// DefaultEncoder is the backend used when none is configured.
const DefaultEncoder = "yeqown"

var backends = map[string]func() Encoder{
	"yeqown":    func() Encoder { return yeqownEncoder{} },
	"skip2":     func() Encoder { return skip2Encoder{} },
	"boombuler": func() Encoder { return boombulerEncoder{} },
	"rsc":       func() Encoder { return rscEncoder{} },
}

// New returns the encoder registered under name. An empty name selects DefaultEncoder.
func New(name string) (Encoder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultEncoder
	}
	mk, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoder, name)
	}
	return mk(), nil
}

// Backends lists the registered encoder names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func checkInput(text string, level Level) error {
	if text == "" {
		return ErrEmptyPayload
	}
	if !level.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, level)
	}
	return nil
}
