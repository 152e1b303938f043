package track

import (
	"pulse-tools/pulsetools/convert"
	"pulse-tools/pulsetools/network"
	"time"
)

// LocationPoint is a location sample reported by a device.
// Points are values: edits return a new point.
type LocationPoint struct {
	Latitude    float64 `json:"lat" yaml:"lat"`
	Longitude   float64 `json:"lon" yaml:"lon"`
	NetworkType string  `json:"network_type" yaml:"network_type"`
	Timestamp   int64   `json:"timestamp" yaml:"timestamp"` // epoch milliseconds
	DeviceID    string  `json:"device_id,omitempty" yaml:"device_id,omitempty"`
}

// Key holds the fields two points are compared on. The device ID is
// provenance only and doesn't take part in equality.
type Key struct {
	Latitude, Longitude float64
	NetworkType         string
	Timestamp           int64
}

// Lat returns the latitude in degrees
func (p LocationPoint) Lat() float64 {
	return p.Latitude
}

// Lng returns the longitude in degrees
func (p LocationPoint) Lng() float64 {
	return p.Longitude
}

// Key returns the membership key of the point
func (p LocationPoint) Key() Key {
	return Key{
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		NetworkType: p.NetworkType,
		Timestamp:   p.Timestamp,
	}
}

// Equal returns true if both points have the same coordinates, network type and timestamp
func (p LocationPoint) Equal(o LocationPoint) bool {
	return p.Key() == o.Key()
}

// Time returns the capture time of the point
func (p LocationPoint) Time() time.Time {
	return convert.MillisToTime(p.Timestamp)
}

// Category returns the network category of the point
func (p LocationPoint) Category() network.Category {
	return network.Classify(p.NetworkType)
}

// WithDevice returns a copy of the point attributed to the given device
func (p LocationPoint) WithDevice(deviceID string) LocationPoint {
	p.DeviceID = deviceID
	return p
}
