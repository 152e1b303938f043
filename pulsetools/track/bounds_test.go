package track_test

import (
	"pulse-tools/pulsetools/track"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeBounds(t *testing.T) {
	require := require.New(t)

	pts := []track.LocationPoint{
		{Latitude: 47.58358925699506, Longitude: -121.95062398910524},
		{Latitude: 47.58878498470957, Longitude: -121.94446563720703},
		{Latitude: 47.58622336725498, Longitude: -121.9381356239319},
		{Latitude: 47.59581793370288, Longitude: -121.93571090698244},
	}

	b, ok := track.ComputeBounds(pts)

	require.True(ok)
	require.Equal(47.58358925699506, b.MinLat)
	require.Equal(47.59581793370288, b.MaxLat)
	require.Equal(-121.95062398910524, b.MinLon)
	require.Equal(-121.93571090698244, b.MaxLon)
	require.False(b.Degenerate())
}

func TestComputeBoundsIsOrderIndependent(t *testing.T) {
	require := require.New(t)

	pts := []track.LocationPoint{
		{Latitude: 10, Longitude: -20},
		{Latitude: -5, Longitude: 30},
		{Latitude: 7, Longitude: 0.5},
		{Latitude: 0, Longitude: -31},
	}
	want, _ := track.ComputeBounds(pts)

	permutations := map[string][]int{
		"reversed": {3, 2, 1, 0},
		"rotated":  {1, 2, 3, 0},
		"swapped":  {2, 0, 3, 1},
	}

	for name, order := range permutations {
		t.Run(name, func(t *testing.T) {
			permuted := make([]track.LocationPoint, len(order))
			for i, j := range order {
				permuted[i] = pts[j]
			}
			got, ok := track.ComputeBounds(permuted)
			require.True(ok)
			require.Equal(want, got)
		})
	}

	require.Equal(track.Bounds{MinLat: -5, MaxLat: 10, MinLon: -31, MaxLon: 30}, want)
}

func TestComputeBoundsDegenerate(t *testing.T) {
	require := require.New(t)

	_, ok := track.ComputeBounds(nil)
	require.False(ok)

	_, ok = track.ComputeBounds([]track.LocationPoint{})
	require.False(ok)

	b, ok := track.ComputeBounds([]track.LocationPoint{{Latitude: 43.26, Longitude: -2.93}})
	require.True(ok)
	require.True(b.Degenerate())
	require.Equal(track.Bounds{MinLat: 43.26, MaxLat: 43.26, MinLon: -2.93, MaxLon: -2.93}, b)

	lat, lon := b.Center()
	require.Equal(43.26, lat)
	require.Equal(-2.93, lon)
}

func TestWithMinSpan(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input track.Bounds
		span  float64
		want  track.Bounds
	}{
		"point": {
			input: track.Bounds{MinLat: 10, MaxLat: 10, MinLon: 20, MaxLon: 20},
			span:  1,
			want:  track.Bounds{MinLat: 9.5, MaxLat: 10.5, MinLon: 19.5, MaxLon: 20.5},
		},
		"narrow_lat": {
			input: track.Bounds{MinLat: 10, MaxLat: 10, MinLon: 20, MaxLon: 24},
			span:  2,
			want:  track.Bounds{MinLat: 9, MaxLat: 11, MinLon: 20, MaxLon: 24},
		},
		"wide_enough": {
			input: track.Bounds{MinLat: 0, MaxLat: 4, MinLon: 0, MaxLon: 4},
			span:  2,
			want:  track.Bounds{MinLat: 0, MaxLat: 4, MinLon: 0, MaxLon: 4},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(tc.want, tc.input.WithMinSpan(tc.span))
		})
	}
}
