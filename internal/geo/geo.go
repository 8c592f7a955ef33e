// Package geo resolves geographic points to the nearest claimable
// zone. Zones are closed polygons in longitude/latitude order; the
// zone's identifier is its 1-indexed position in the source geometry.
package geo

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

//go:embed zones.geojson
var zonesGeoJSON []byte

// Locator answers nearest-zone queries over a fixed, ordered set of
// zone polygons. It is a pure lookup: safe for concurrent use.
type Locator struct {
	zones []orb.Polygon
}

func NewLocator(zones []orb.Polygon) *Locator {
	return &Locator{zones: zones}
}

// DefaultLocator loads the embedded zone geometry. Feature order is
// meaningful: index+1 is the zone identifier used everywhere else.
func DefaultLocator() (*Locator, error) {
	fc, err := geojson.UnmarshalFeatureCollection(zonesGeoJSON)
	if err != nil {
		return nil, fmt.Errorf("parsing zone geometry: %w", err)
	}
	zones := make([]orb.Polygon, 0, len(fc.Features))
	for i, f := range fc.Features {
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok {
			return nil, fmt.Errorf("zone %d: geometry is %T, want polygon", i+1, f.Geometry)
		}
		zones = append(zones, poly)
	}
	return NewLocator(zones), nil
}

// Count returns the number of zones.
func (l *Locator) Count() int { return len(l.zones) }

// Point builds an orb point from a latitude/longitude pair.
func Point(lat, lng float64) orb.Point {
	return orb.Point{lng, lat}
}

// Nearest returns the 1-indexed zone whose polygon is closest to p,
// with distance zero when p lies inside one. Equidistant zones go to
// the lowest index, so the result is deterministic. ok is false only
// when the locator holds no zones.
func (l *Locator) Nearest(p orb.Point) (zone int, ok bool) {
	best, bestDist := 0, math.Inf(1)
	for i, poly := range l.zones {
		var d float64
		if !planar.PolygonContains(poly, p) {
			d = planar.DistanceFrom(poly, p)
		}
		if d < bestDist {
			best, bestDist = i+1, d
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}
