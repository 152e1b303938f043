package snapshot

import (
	"encoding/json"
	"math"
	"pulse-tools/pulsetools/network"
	"pulse-tools/pulsetools/track"
	"strconv"
	"strings"
)

// Result holds the normalized points of a snapshot
type Result struct {
	Points  []track.LocationPoint
	Dropped int // records discarded for missing or invalid coordinates
}

// Normalize turns the raw records into points, device-major then point-minor.
// Records without finite latitude and longitude are dropped silently.
func Normalize(s *Snapshot) Result {
	res := Result{Points: []track.LocationPoint{}}
	if s == nil {
		return res
	}

	for _, d := range s.Devices {
		for _, rec := range d.Records {
			p, ok := toPoint(d.ID, rec)
			if !ok {
				res.Dropped++
				continue
			}
			res.Points = append(res.Points, p)
		}
	}

	return res
}

func toPoint(deviceID string, rec Record) (track.LocationPoint, bool) {
	if rec.Fields == nil {
		return track.LocationPoint{}, false
	}

	lat, ok := toFloat(rec.Fields[LatitudeField])
	if !ok {
		return track.LocationPoint{}, false
	}
	lon, ok := toFloat(rec.Fields[LongitudeField])
	if !ok {
		return track.LocationPoint{}, false
	}

	networkType, _ := rec.Fields[NetworkTypeField].(string)
	if networkType == "" {
		networkType = network.UnknownLabel
	}

	return track.LocationPoint{
		Latitude:    lat,
		Longitude:   lon,
		NetworkType: networkType,
		Timestamp:   toMillis(rec.Fields[TimestampField]),
		DeviceID:    deviceID,
	}, true
}

func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toMillis keeps integers exact and truncates finite fractional values.
// Anything else is 0.
func toMillis(v interface{}) int64 {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i
		}
	}

	f, ok := toFloat(v)
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0
	}
	return int64(f)
}
