package track

// Bounds represents track coordinate boundaries
type Bounds struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MinLon float64 `json:"min_lon" yaml:"min_lon"`
	MaxLon float64 `json:"max_lon" yaml:"max_lon"`
}

// ComputeBounds returns the smallest region enclosing the given points.
// It returns false when there are no points, in which case the viewport
// should be left untouched. A single point gives a zero-span region.
func ComputeBounds(points []LocationPoint) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLat: points[0].Latitude,
		MaxLat: points[0].Latitude,
		MinLon: points[0].Longitude,
		MaxLon: points[0].Longitude,
	}

	for _, p := range points[1:] {
		if p.Latitude < b.MinLat {
			b.MinLat = p.Latitude
		}
		if p.Latitude > b.MaxLat {
			b.MaxLat = p.Latitude
		}
		if p.Longitude < b.MinLon {
			b.MinLon = p.Longitude
		}
		if p.Longitude > b.MaxLon {
			b.MaxLon = p.Longitude
		}
	}

	return b, true
}

// Degenerate returns true if the region has no area
func (b Bounds) Degenerate() bool {
	return b.MinLat == b.MaxLat || b.MinLon == b.MaxLon
}

// Center returns the latitude and longitude at the middle of the region
func (b Bounds) Center() (float64, float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

// WithMinSpan widens each axis narrower than span decimal degrees around its
// center. Fitting a viewport to a single point needs such a floor.
func (b Bounds) WithMinSpan(span float64) Bounds {
	lat, lon := b.Center()
	if b.MaxLat-b.MinLat < span {
		b.MinLat = lat - span/2
		b.MaxLat = lat + span/2
	}
	if b.MaxLon-b.MinLon < span {
		b.MinLon = lon - span/2
		b.MaxLon = lon + span/2
	}
	return b
}
