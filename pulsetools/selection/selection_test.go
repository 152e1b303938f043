package selection_test

import (
	"errors"
	"pulse-tools/pulsetools/selection"
	"pulse-tools/pulsetools/track"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var source = []track.LocationPoint{
	{Latitude: 1, Longitude: 1, NetworkType: "5g", Timestamp: 10, DeviceID: "dev"},
	{Latitude: 2, Longitude: 2, NetworkType: "4g", Timestamp: 20, DeviceID: "dev"},
	{Latitude: 3, Longitude: 3, NetworkType: "3g", Timestamp: 30, DeviceID: "dev"},
	{Latitude: 4, Longitude: 4, NetworkType: "wifi", Timestamp: 40, DeviceID: "dev"},
}

func TestToggleTwiceRestoresState(t *testing.T) {
	require := require.New(t)

	m := selection.New(source)
	_, err := m.Toggle(source[0])
	require.NoError(err)

	before, count := m.Contains(source[1]), m.Count()

	selected, err := m.Toggle(source[1])
	require.NoError(err)
	require.True(selected)
	require.True(m.Contains(source[1]))
	require.Equal(count+1, m.Count())

	selected, err = m.Toggle(source[1])
	require.NoError(err)
	require.False(selected)
	require.Equal(before, m.Contains(source[1]))
	require.Equal(count, m.Count())
}

func TestToggleMatchesByValue(t *testing.T) {
	require := require.New(t)

	m := selection.New(source)

	copyOf := track.LocationPoint{Latitude: 2, Longitude: 2, NetworkType: "4g", Timestamp: 20}
	selected, err := m.Toggle(copyOf)
	require.NoError(err)
	require.True(selected)
	require.True(m.Contains(source[1]))

	_, err = m.Toggle(track.LocationPoint{Latitude: 2, Longitude: 2, NetworkType: "4g", Timestamp: 21})
	require.True(errors.Is(err, selection.ErrUnknownPoint))
	require.Equal(1, m.Count())
}

func TestFinalize(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		toggles  []int
		want     []track.LocationPoint
		selected int
	}{
		"none":          {toggles: []int{}, selected: 0},
		"one":           {toggles: []int{2}, selected: 1},
		"one_twice_off": {toggles: []int{2, 1, 1}, selected: 1},
		"two":           {toggles: []int{0, 3}, want: []track.LocationPoint{source[0], source[3]}},
		"source_order":  {toggles: []int{3, 0, 2}, want: []track.LocationPoint{source[0], source[2], source[3]}},
		"all":           {toggles: []int{1, 3, 2, 0}, want: source},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := selection.New(source)
			for _, i := range tc.toggles {
				_, err := m.Toggle(source[i])
				require.NoError(err)
			}

			pts, err := m.Finalize()
			if tc.want == nil {
				require.Nil(pts)
				var insufficient *selection.InsufficientSelectionError
				require.True(errors.As(err, &insufficient))
				require.Equal(selection.Minimum, insufficient.Minimum)
				require.Equal(tc.selected, insufficient.Selected)
				require.Contains(err.Error(), "at least 2")
				require.Equal(tc.selected, m.Count())
				return
			}

			require.NoError(err)
			require.Equal(tc.want, pts)
		})
	}
}

func TestFinalizeConsumesSelection(t *testing.T) {
	require := require.New(t)

	m := selection.New(source)
	for _, p := range source[:2] {
		_, err := m.Toggle(p)
		require.NoError(err)
	}

	pts, err := m.Finalize()
	require.NoError(err)
	require.Len(pts, 2)

	_, err = m.Finalize()
	require.True(errors.Is(err, selection.ErrConsumed))
	_, err = m.Toggle(source[2])
	require.True(errors.Is(err, selection.ErrConsumed))

	m.Reset()
	require.Equal(0, m.Count())
	_, err = m.Toggle(source[2])
	require.NoError(err)
}

func TestFinalizeDeduplicatesEqualSourcePoints(t *testing.T) {
	require := require.New(t)

	dup := source[1].WithDevice("other")
	m := selection.New([]track.LocationPoint{source[0], source[1], dup, source[2]})

	_, err := m.Toggle(source[1])
	require.NoError(err)
	_, err = m.Toggle(source[2])
	require.NoError(err)

	pts, err := m.Finalize()
	require.NoError(err)
	require.Equal([]track.LocationPoint{source[1], source[2]}, pts)
}

func TestSourceIsCopied(t *testing.T) {
	require := require.New(t)

	pts := make([]track.LocationPoint, len(source))
	copy(pts, source)
	m := selection.New(pts)

	pts[0].Latitude = 99
	require.Equal(source, m.Source())
}

func TestConcurrentToggles(t *testing.T) {
	require := require.New(t)

	m := selection.New(source)

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Toggle(source[i%len(source)])
		}(i)
	}
	wg.Wait()

	// 50 toggles per point
	require.Equal(0, m.Count())
}

func TestConcurrentFinalize(t *testing.T) {
	require := require.New(t)

	m := selection.New(source)
	for _, p := range source {
		_, err := m.Toggle(p)
		require.NoError(err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		handed   [][]track.LocationPoint
		consumed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pts, err := m.Finalize()

			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, selection.ErrConsumed) {
				consumed++
				return
			}
			handed = append(handed, pts)
		}()
	}
	wg.Wait()

	require.Len(handed, 1)
	require.Equal(source, handed[0])
	require.Equal(19, consumed)
}
