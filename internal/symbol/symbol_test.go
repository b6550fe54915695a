package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allLevels = []Level{LevelL, LevelM, LevelQ, LevelH}

func TestEncodeDeterministic(t *testing.T) {
	payloads := []string{"https://example.com?qr=1", "HELLO WORLD", "0123456789", "ünïcødé ✓"}
	for _, name := range Backends() {
		enc, err := New(name)
		require.NoError(t, err)
		for _, lv := range allLevels {
			for _, p := range payloads {
				a, err := enc.Encode(p, lv)
				require.NoError(t, err, "%s/%s/%q", name, lv, p)
				b, err := enc.Encode(p, lv)
				require.NoError(t, err)
				assert.True(t, a.Equal(b), "%s/%s/%q not deterministic", name, lv, p)
			}
		}
	}
}

func TestEncodeProducesBareSymbol(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			enc, err := New(name)
			require.NoError(t, err)
			g, err := enc.Encode("https://example.com?qr=1", LevelQ)
			require.NoError(t, err)

			n := g.Size()
			require.GreaterOrEqual(t, n, 21)
			assert.Zero(t, (n-17)%4, "size %d is not a QR version size", n)
			assertFinder(t, g, 0, 0)
			assertFinder(t, g, n-7, 0)
			assertFinder(t, g, 0, n-7)
		})
	}
}

func assertFinder(t *testing.T, g Grid, ox, oy int) {
	t.Helper()
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			ring := x == 0 || y == 0 || x == 6 || y == 6
			core := x >= 2 && x <= 4 && y >= 2 && y <= 4
			assert.Equal(t, ring || core, g.Dark(ox+x, oy+y), "finder at (%d,%d) module (%d,%d)", ox, oy, x, y)
		}
	}
}

func TestHigherLevelNeedsMoreModules(t *testing.T) {
	enc, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEncoder, enc.Name())

	long := "https://example.com/some/rather/long/path?with=query&and=more&qr=1"
	low, err := enc.Encode(long, LevelL)
	require.NoError(t, err)
	high, err := enc.Encode(long, LevelH)
	require.NoError(t, err)
	assert.Greater(t, high.Size(), low.Size())
}

func TestEncodeErrors(t *testing.T) {
	enc, err := New("skip2")
	require.NoError(t, err)

	_, err = enc.Encode("", LevelL)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = enc.Encode("x", Level(9))
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = New("zbar")
	assert.ErrorIs(t, err, ErrUnknownEncoder)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		weak bool
	}{
		{"L", LevelL, true},
		{"m", LevelM, true},
		{" q ", LevelQ, false},
		{"H", LevelH, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.weak, got.Weak())
		assert.Equal(t, got, mustParse(t, got.String()))
	}

	_, err := ParseLevel("X")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func mustParse(t *testing.T, s string) Level {
	t.Helper()
	l, err := ParseLevel(s)
	require.NoError(t, err)
	return l
}

func TestGridIsImmutable(t *testing.T) {
	rows := [][]bool{{true, false}, {false, true}}
	g, err := NewGrid(rows)
	require.NoError(t, err)

	rows[0][0] = false
	assert.True(t, g.Dark(0, 0), "grid must not alias its input")

	out := g.Rows()
	out[1][1] = false
	assert.True(t, g.Dark(1, 1), "Rows must return a copy")

	cleared := g.Map(func(x, y int, dark bool) bool { return false })
	assert.Equal(t, 0, cleared.DarkCount())
	assert.Equal(t, 2, g.DarkCount())
	assert.False(t, g.Dark(-1, 0))
	assert.Equal(t, "#.\n.#\n", g.String())

	_, err = NewGrid([][]bool{{true}, {true, false}})
	assert.Error(t, err)
}
