package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLocator(t *testing.T) *Locator {
	t.Helper()
	l, err := DefaultLocator()
	require.NoError(t, err)
	return l
}

func TestDefaultLocatorLoadsAllZones(t *testing.T) {
	l := defaultLocator(t)
	assert.Equal(t, 9, l.Count())
}

func TestNearestInsideZone(t *testing.T) {
	l := defaultLocator(t)

	tests := []struct {
		name     string
		lat, lng float64
		zone     int
	}{
		{"parliament hill", 45.42416, -75.69908, 5},
		{"chateau laurier", 45.42566, -75.69529, 8},
		{"byward market", 45.42748, -75.69222, 9},
		{"southwest corner", 45.409, -75.714, 1},
		{"northeast corner", 45.441, -75.681, 9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			zone, ok := l.Nearest(Point(tc.lat, tc.lng))
			require.True(t, ok)
			assert.Equal(t, tc.zone, zone)
		})
	}
}

func TestNearestOutsideGrid(t *testing.T) {
	l := defaultLocator(t)

	// Well south of the grid, roughly under zone 2's column.
	zone, ok := l.Nearest(Point(45.39, -75.698))
	require.True(t, ok)
	assert.Equal(t, 2, zone)

	// Far east, level with the middle row.
	zone, ok = l.Nearest(Point(45.422, -75.60))
	require.True(t, ok)
	assert.Equal(t, 6, zone)
}

func TestNearestIsDeterministic(t *testing.T) {
	l := defaultLocator(t)
	p := Point(45.4225, -75.70)

	first, ok := l.Nearest(p)
	require.True(t, ok)
	for range 10 {
		zone, ok := l.Nearest(p)
		require.True(t, ok)
		assert.Equal(t, first, zone)
	}
}

func TestNearestTieGoesToLowestIndex(t *testing.T) {
	// Two identical polygons: the first one must win.
	square := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}
	l := NewLocator([]orb.Polygon{square, square})

	zone, ok := l.Nearest(orb.Point{2, 2})
	require.True(t, ok)
	assert.Equal(t, 1, zone)
}

func TestNearestEmptyLocator(t *testing.T) {
	l := NewLocator(nil)
	_, ok := l.Nearest(Point(45.42, -75.69))
	assert.False(t, ok)
}
