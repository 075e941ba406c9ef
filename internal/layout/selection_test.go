package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatkit/layout-designer/internal/geometry"
)

func TestToggleIsAdditive(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("a")
	sel.Toggle("b")
	assert.Equal(t, []string{"a", "b"}, sel.IDs())
	assert.True(t, sel.Has("a"))

	// toggling an already-selected id removes only that id
	sel.Toggle("a")
	assert.Equal(t, []string{"b"}, sel.IDs())
	assert.False(t, sel.Has("a"))
}

func TestMarqueeSelectsOverlappingSquares(t *testing.T) {
	seats := []Seat{
		{ID: "s1", X: 0, Y: 0, Size: 40},
		{ID: "s2", X: 50, Y: 50, Size: 40},
		{ID: "s3", X: 200, Y: 200, Size: 40},
	}
	sel := NewSelection()
	sel.Toggle("s3") // marquee must replace, not extend

	sel.Marquee(seats, geometry.NewRect(0, 0, 60, 60))
	assert.Equal(t, []string{"s1", "s2"}, sel.IDs())
	assert.False(t, sel.Has("s3"))
}

func TestMarqueeDirectionDoesNotMatter(t *testing.T) {
	seats := []Seat{{ID: "s1", X: 0, Y: 0, Size: 40}}
	sel := NewSelection()
	sel.Marquee(seats, geometry.NewRect(60, 60, 0, 0)) // dragged bottom-right to top-left
	assert.Equal(t, []string{"s1"}, sel.IDs())
}

func TestReplaceAndClear(t *testing.T) {
	sel := NewSelection()
	sel.Replace([]string{"x", "y", "x"})
	assert.Equal(t, []string{"x", "y"}, sel.IDs(), "duplicates collapse")

	first, ok := sel.First()
	require.True(t, ok)
	assert.Equal(t, "x", first)

	sel.Clear()
	assert.Equal(t, 0, sel.Len())
	_, ok = sel.First()
	assert.False(t, ok)
}

func TestDropRemovesDeletedIDs(t *testing.T) {
	sel := NewSelection()
	sel.Replace([]string{"a", "b", "c"})
	sel.Drop(map[string]struct{}{"b": {}})
	assert.Equal(t, []string{"a", "c"}, sel.IDs())
}
