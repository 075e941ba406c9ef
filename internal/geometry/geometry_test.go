package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnap(t *testing.T) {
	assert.Equal(t, 10.0, Snap(12.0, 10))
	assert.Equal(t, 20.0, Snap(15.0, 10)) // halfway rounds up
	assert.Equal(t, 0.0, Snap(4.9, 10))
	assert.Equal(t, -10.0, Snap(-12.0, 10))
	assert.Equal(t, 7.3, Snap(7.3, 0))  // zero grid disables snapping
	assert.Equal(t, 7.3, Snap(7.3, -5)) // negative grid disables snapping
}

func TestSnapIdempotent(t *testing.T) {
	values := []float64{0, 3.2, 14.999, 15, 250.01, -37.6, 99999.5}
	grids := []float64{1, 5, 10, 25}
	for _, g := range grids {
		for _, v := range values {
			once := Snap(v, g)
			assert.Equal(t, once, Snap(once, g), "snap(snap(%v,%v)) must equal snap(%v,%v)", v, g, v, g)
		}
	}
}

func TestNewRectNormalizes(t *testing.T) {
	want := Rect{MinX: 10, MinY: 20, MaxX: 110, MaxY: 220}
	assert.Equal(t, want, NewRect(10, 20, 110, 220))   // top-left to bottom-right
	assert.Equal(t, want, NewRect(110, 220, 10, 20))   // bottom-right to top-left
	assert.Equal(t, want, NewRect(110, 20, 10, 220))   // top-right to bottom-left
	assert.Equal(t, want, NewRect(10, 220, 110, 20))   // bottom-left to top-right
}

func TestOverlapsSquare(t *testing.T) {
	r := NewRect(0, 0, 60, 60)
	assert.True(t, r.OverlapsSquare(0, 0, 40))
	assert.True(t, r.OverlapsSquare(50, 50, 40))   // partial overlap
	assert.False(t, r.OverlapsSquare(200, 200, 40))
	assert.False(t, r.OverlapsSquare(60, 60, 40))  // edge touch is not overlap
	assert.False(t, r.OverlapsSquare(-40, 0, 40))  // left edge touch
	assert.True(t, r.OverlapsSquare(-39.9, 0, 40))
}
