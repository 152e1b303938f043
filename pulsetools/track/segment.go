package track

import (
	"fmt"
	"pulse-tools/pulsetools/network"
	"strings"
)

// ColorPolicy selects which endpoint of a segment gives it its color
type ColorPolicy int

const (
	// ByDestination colors a segment with the network the leg ended under
	ByDestination ColorPolicy = iota
	// ByOrigin colors a segment with the network the leg started under
	ByOrigin
)

// Segment is one drawable leg between two consecutive points
type Segment struct {
	From     LocationPoint    `json:"from" yaml:"from"`
	To       LocationPoint    `json:"to" yaml:"to"`
	Category network.Category `json:"category" yaml:"category"`
}

// ParseColorPolicy parses "destination" or "origin"
func ParseColorPolicy(s string) (ColorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "destination", "end":
		return ByDestination, nil
	case "origin", "start":
		return ByOrigin, nil
	}
	return ByDestination, fmt.Errorf("unknown color policy '%s'", s)
}

func (p ColorPolicy) String() string {
	if p == ByOrigin {
		return "origin"
	}
	return "destination"
}

// BuildSegments returns the segments joining consecutive points. Less than
// 2 points means nothing to draw and returns an empty slice.
func BuildSegments(ordered []LocationPoint, policy ColorPolicy) []Segment {
	if len(ordered) < 2 {
		return []Segment{}
	}

	segments := make([]Segment, len(ordered)-1)
	for i := 0; i < len(ordered)-1; i++ {
		from, to := ordered[i], ordered[i+1]

		colorSource := to
		if policy == ByOrigin {
			colorSource = from
		}

		segments[i] = Segment{
			From:     from,
			To:       to,
			Category: colorSource.Category(),
		}
	}

	return segments
}

// Distance returns the great circle length of the segment in meters
func (s Segment) Distance() float64 {
	return toS2LatLng(s.From).Distance(toS2LatLng(s.To)).Radians() * earthRadius
}

// TotalDistance returns the summed length of the given segments in meters
func TotalDistance(segments []Segment) float64 {
	var d float64
	for _, s := range segments {
		d += s.Distance()
	}
	return d
}
