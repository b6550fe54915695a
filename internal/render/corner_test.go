package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCornerPathScaling(t *testing.T) {
	native := CornerPath(0, 0, cornerDesignSize)
	assert.True(t, strings.HasPrefix(native, "M37.35 0C39.294 0 "), native)
	assert.True(t, strings.HasSuffix(native, "Z"))
	assert.Equal(t, 2, strings.Count(native, "M"))

	moved := CornerPath(10, 20, cornerDesignSize)
	assert.True(t, strings.HasPrefix(moved, "M47.35 20C49.294 20 "), moved)

	half := CornerPath(0, 0, cornerDesignSize/2)
	assert.True(t, strings.HasPrefix(half, "M18.675 0C"), half)
}

func TestCorners(t *testing.T) {
	cs := Corners(21, 4, 10)
	require.Len(t, cs, 3)

	assert.Equal(t, Corner{Name: "top-left", X: 40, Y: 40, Size: 70, Rotation: 0}, cs[0])
	assert.Equal(t, Corner{Name: "top-right", X: 180, Y: 40, Size: 70, Rotation: 90}, cs[1])
	assert.Equal(t, Corner{Name: "bottom-left", X: 40, Y: 180, Size: 70, Rotation: -90}, cs[2])

	cx, cy := cs[1].Center()
	assert.Equal(t, 215.0, cx)
	assert.Equal(t, 75.0, cy)

	nodes := cornerNodes(cs[2], 10, "#f00", "#00f")
	require.Len(t, nodes, 2)
	fill, _ := nodes[0].Get("fill")
	assert.Equal(t, "#f00", fill)
	r, _ := nodes[1].Get("r")
	assert.Equal(t, "15", r)
	tr, _ := nodes[1].Get("transform")
	assert.Equal(t, "rotate(-90 75 215)", tr)
}
