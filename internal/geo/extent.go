package geo

import (
	"github.com/twpayne/go-geom"
)

// Extent returns the XY bounds of the given coordinates, or nil when there
// are none.
func Extent(coords []geom.Coord) *geom.Bounds {
	if len(coords) == 0 {
		return nil
	}

	flat := make([]float64, 0, 2*len(coords))
	for _, c := range coords {
		flat = append(flat, c.X(), c.Y())
	}
	return geom.NewMultiPointFlat(geom.XY, flat).Bounds()
}

// Circle returns the north and south extremes of a circle as coordinates on
// its central meridian. One nautical mile is one minute of latitude.
func Circle(centre geom.Coord, radiusNM float64) []geom.Coord {
	dlat := radiusNM / 60
	return []geom.Coord{
		{centre.X(), centre.Y() + dlat},
		{centre.X(), centre.Y() - dlat},
	}
}

// Outside reports whether the bounds lie entirely north of north or entirely
// south of south. A zero limit is not applied.
func Outside(b *geom.Bounds, north, south float64) bool {
	if b == nil || b.IsEmpty() {
		return false
	}
	if north != 0 && b.Min(1) > north {
		return true
	}
	if south != 0 && b.Max(1) < south {
		return true
	}
	return false
}
