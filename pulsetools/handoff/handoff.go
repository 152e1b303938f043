package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"pulse-tools/pulsetools/track"
	"strconv"
)

// Version of the hand-off document
const Version = 1

// ErrVersion is returned when decoding a document of another version
var ErrVersion = errors.New("unsupported hand-off version")

type document struct {
	Version int     `json:"version"`
	Points  []point `json:"points"`
}

type point struct {
	Lat         float64     `json:"lat"`
	Lon         float64     `json:"lon"`
	NetworkType string      `json:"network_type"`
	Timestamp   json.Number `json:"timestamp"`
	DeviceID    string      `json:"device_id,omitempty"`
}

// Encode writes the ordered points as a hand-off document
func Encode(w io.Writer, points []track.LocationPoint) error {
	doc := document{Version: Version, Points: make([]point, len(points))}
	for i, p := range points {
		if !finite(p.Latitude) || !finite(p.Longitude) {
			return fmt.Errorf("point %d has non-finite coordinates", i)
		}
		doc.Points[i] = point{
			Lat:         p.Latitude,
			Lon:         p.Longitude,
			NetworkType: p.NetworkType,
			Timestamp:   json.Number(strconv.FormatInt(p.Timestamp, 10)),
			DeviceID:    p.DeviceID,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a hand-off document, points come back in the order they were encoded
func Decode(r io.Reader) ([]track.LocationPoint, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse hand-off document: %w", err)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}

	points := make([]track.LocationPoint, len(doc.Points))
	for i, p := range doc.Points {
		if !finite(p.Lat) || !finite(p.Lon) {
			return nil, fmt.Errorf("point %d has non-finite coordinates", i)
		}

		ts, err := strconv.ParseInt(p.Timestamp.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("point %d has a non integral timestamp '%s'", i, p.Timestamp)
		}

		points[i] = track.LocationPoint{
			Latitude:    p.Lat,
			Longitude:   p.Lon,
			NetworkType: p.NetworkType,
			Timestamp:   ts,
			DeviceID:    p.DeviceID,
		}
	}

	return points, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
