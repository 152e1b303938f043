package handoff_test

import (
	"bytes"
	"errors"
	"math"
	"pulse-tools/pulsetools/handoff"
	"pulse-tools/pulsetools/track"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	tests := map[string][]track.LocationPoint{
		"empty": {},
		"scenario": {
			{Latitude: 11, Longitude: 21, NetworkType: "wifi", Timestamp: 50, DeviceID: "devA"},
			{Latitude: 10, Longitude: 20, NetworkType: "5g", Timestamp: 100, DeviceID: "devA"},
		},
		"precision": {
			{Latitude: 47.58358925699506, Longitude: -121.95062398910524, NetworkType: "lte", Timestamp: 9007199254740993},
			{Latitude: 0.1 + 0.2, Longitude: math.SmallestNonzeroFloat64, NetworkType: "", Timestamp: math.MinInt64},
			{Latitude: -90, Longitude: 180, NetworkType: "unknown", Timestamp: math.MaxInt64},
		},
		"unordered": {
			{Latitude: 1, Longitude: 1, Timestamp: 300},
			{Latitude: 2, Longitude: 2, Timestamp: 100},
			{Latitude: 3, Longitude: 3, Timestamp: 200},
		},
	}

	for name, pts := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(handoff.Encode(&buf, pts))

			got, err := handoff.Decode(&buf)
			require.NoError(err)
			require.Equal(pts, got)
		})
	}
}

func TestEncodeRejectsNonFinite(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	err := handoff.Encode(&buf, []track.LocationPoint{{Latitude: math.NaN(), Longitude: 1}})
	require.Error(err)
}

func TestDecodeErrors(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		doc     string
		wantErr error
	}{
		"not_json":             {doc: `selected`},
		"wrong_version":        {doc: `{"version": 2, "points": []}`, wantErr: handoff.ErrVersion},
		"missing_version":      {doc: `{"points": []}`, wantErr: handoff.ErrVersion},
		"fractional_timestamp": {doc: `{"version": 1, "points": [{"lat": 1, "lon": 2, "timestamp": 1.5}]}`},
		"exponent_timestamp":   {doc: `{"version": 1, "points": [{"lat": 1, "lon": 2, "timestamp": 1e3}]}`},
		"string_latitude":      {doc: `{"version": 1, "points": [{"lat": "1", "lon": 2, "timestamp": 1}]}`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			pts, err := handoff.Decode(strings.NewReader(tc.doc))
			require.Nil(pts)
			require.Error(err)
			if tc.wantErr != nil {
				require.True(errors.Is(err, tc.wantErr))
			}
		})
	}
}
