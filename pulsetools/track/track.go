package track

import (
	"sort"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Track represents the chronologically ordered points of one device.
// A merged track holds every device and has an empty DeviceID.
type Track struct {
	DeviceID string          `json:"device_id,omitempty" yaml:"device_id,omitempty"`
	Points   []LocationPoint `json:"points" yaml:"points"`
}

// LatLng latlng
type LatLng interface {
	Lat() float64
	Lng() float64
}

const earthRadius = 6378100

// GroupByDevice groups points by device, in order of first appearance. Each
// group is sorted by timestamp, equal timestamps keep their input order.
func GroupByDevice(points []LocationPoint) []Track {
	tracks := []Track{}
	index := map[string]int{}

	for _, p := range points {
		i, ok := index[p.DeviceID]
		if !ok {
			i = len(tracks)
			index[p.DeviceID] = i
			tracks = append(tracks, Track{DeviceID: p.DeviceID})
		}
		tracks[i].Points = append(tracks[i].Points, p)
	}

	for i := range tracks {
		sortByTime(tracks[i].Points)
	}

	return tracks
}

// Merge returns every point as a single track sorted by timestamp
func Merge(points []LocationPoint) Track {
	pts := make([]LocationPoint, len(points))
	copy(pts, points)
	sortByTime(pts)

	return Track{Points: pts}
}

// Flatten concatenates the points of the given tracks
func Flatten(tracks []Track) []LocationPoint {
	n := 0
	for _, t := range tracks {
		n += len(t.Points)
	}

	pts := make([]LocationPoint, 0, n)
	for _, t := range tracks {
		pts = append(pts, t.Points...)
	}
	return pts
}

// Len returns the number of points in the track
func (t Track) Len() int {
	return len(t.Points)
}

// Segments returns the drawable legs of the track
func (t Track) Segments(policy ColorPolicy) []Segment {
	return BuildSegments(t.Points, policy)
}

// Bounds returns the boundaries of the track, false if the track is empty
func (t Track) Bounds() (Bounds, bool) {
	return ComputeBounds(t.Points)
}

// Distance returns the length of the track in meters
func (t Track) Distance() float64 {
	if len(t.Points) < 2 {
		return 0
	}

	lls := make([]s2.LatLng, len(t.Points))
	for i, p := range t.Points {
		lls[i] = toS2LatLng(p)
	}

	return s2.PolylineFromLatLngs(lls).Length().Radians() * earthRadius
}

func sortByTime(pts []LocationPoint) {
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Timestamp < pts[j].Timestamp
	})
}

func toS2LatLng(p LatLng) s2.LatLng {
	return s2.LatLng{
		Lat: s1.Angle(p.Lat()) * s1.Degree,
		Lng: s1.Angle(p.Lng()) * s1.Degree,
	}
}
