package render

import (
	"fmt"
	"pulse-tools/pulsetools/network"
	"pulse-tools/pulsetools/track"
	"strings"
)

// Mode selects how device points are turned into tracks
type Mode int

const (
	// Merged draws all devices as one chronological track
	Merged Mode = iota
	// PerDevice draws one track per device
	PerDevice
)

// ParseMode parses "merged" or "device"
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merged", "merge", "all":
		return Merged, nil
	case "device", "devices", "per-device":
		return PerDevice, nil
	}
	return Merged, fmt.Errorf("unknown render mode '%s'", s)
}

func (m Mode) String() string {
	if m == PerDevice {
		return "device"
	}
	return "merged"
}

// View is the immutable result of a recomputation
type View struct {
	Tracks   []track.Track   `json:"tracks" yaml:"tracks"`
	Segments []track.Segment `json:"segments" yaml:"segments"`
	Bounds   *track.Bounds   `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Dropped  int             `json:"dropped" yaml:"dropped"`
}

// Build orders points into tracks and computes their segments and bounds
func Build(points []track.LocationPoint, mode Mode, policy track.ColorPolicy) *View {
	var tracks []track.Track
	if mode == PerDevice {
		tracks = track.GroupByDevice(points)
	} else if len(points) > 0 {
		tracks = []track.Track{track.Merge(points)}
	}

	return newView(tracks, policy)
}

// FromPoints builds a single track view from points that are already ordered
func FromPoints(points []track.LocationPoint, policy track.ColorPolicy) *View {
	var tracks []track.Track
	if len(points) > 0 {
		pts := make([]track.LocationPoint, len(points))
		copy(pts, points)
		tracks = []track.Track{{Points: pts}}
	}

	return newView(tracks, policy)
}

func newView(tracks []track.Track, policy track.ColorPolicy) *View {
	v := &View{Tracks: tracks, Segments: []track.Segment{}}
	if v.Tracks == nil {
		v.Tracks = []track.Track{}
	}

	for _, t := range v.Tracks {
		v.Segments = append(v.Segments, t.Segments(policy)...)
	}

	if b, ok := track.ComputeBounds(v.Points()); ok {
		v.Bounds = &b
	}

	return v
}

// Points returns every point of the view, track after track
func (v *View) Points() []track.LocationPoint {
	return track.Flatten(v.Tracks)
}

// Len returns the number of points in the view
func (v *View) Len() int {
	n := 0
	for _, t := range v.Tracks {
		n += t.Len()
	}
	return n
}

// Empty returns true when there is nothing to draw
func (v *View) Empty() bool {
	return v.Len() == 0
}

// SegmentsByCategory counts segments per network category
func (v *View) SegmentsByCategory() map[network.Category]int {
	counts := map[network.Category]int{}
	for _, s := range v.Segments {
		counts[s.Category]++
	}
	return counts
}

// Distance returns the length of all tracks in meters
func (v *View) Distance() float64 {
	d := 0.0
	for _, t := range v.Tracks {
		d += t.Distance()
	}
	return d
}
