package selection

import (
	"errors"
	"fmt"
	"pulse-tools/pulsetools/track"
	"sync"
)

// Minimum is the number of points a selection needs before hand-off
const Minimum = 2

var (
	// ErrUnknownPoint is returned when toggling a point outside the source track
	ErrUnknownPoint = errors.New("point is not part of the source track")
	// ErrConsumed is returned once the selection has been handed off
	ErrConsumed = errors.New("selection has already been handed off")
)

// InsufficientSelectionError is returned by Finalize when too few points are selected
type InsufficientSelectionError struct {
	Minimum  int
	Selected int
}

func (e *InsufficientSelectionError) Error() string {
	return fmt.Sprintf("please select at least %d locations to proceed (selected %d)", e.Minimum, e.Selected)
}

// Toggler is what a list renderer needs to let users pick points
type Toggler interface {
	Toggle(p track.LocationPoint) (bool, error)
	Contains(p track.LocationPoint) bool
	Count() int
}

// Manager tracks the points picked from a source track during one
// interactive session. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	source   []track.LocationPoint
	known    map[track.Key]struct{}
	selected map[track.Key]struct{}
	consumed bool
}

// New creates an empty selection over the given source track
func New(source []track.LocationPoint) *Manager {
	pts := make([]track.LocationPoint, len(source))
	copy(pts, source)

	known := make(map[track.Key]struct{}, len(pts))
	for _, p := range pts {
		known[p.Key()] = struct{}{}
	}

	return &Manager{
		source:   pts,
		known:    known,
		selected: map[track.Key]struct{}{},
	}
}

// Source returns the points the selection is made from
func (m *Manager) Source() []track.LocationPoint {
	pts := make([]track.LocationPoint, len(m.source))
	copy(pts, m.source)
	return pts
}

// Toggle removes the point from the selection if present, adds it otherwise.
// It returns whether the point is now selected.
func (m *Manager) Toggle(p track.LocationPoint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consumed {
		return false, ErrConsumed
	}

	k := p.Key()
	if _, ok := m.known[k]; !ok {
		return false, ErrUnknownPoint
	}

	if _, ok := m.selected[k]; ok {
		delete(m.selected, k)
		return false, nil
	}
	m.selected[k] = struct{}{}
	return true, nil
}

// Contains returns true if the point is selected
func (m *Manager) Contains(p track.LocationPoint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.selected[p.Key()]
	return ok
}

// Count returns the number of selected points
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.selected)
}

// Finalize hands off the selected points in source track order and consumes
// the selection. Nothing changes when fewer than Minimum points are selected.
func (m *Manager) Finalize() ([]track.LocationPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consumed {
		return nil, ErrConsumed
	}
	if len(m.selected) < Minimum {
		return nil, &InsufficientSelectionError{Minimum: Minimum, Selected: len(m.selected)}
	}

	pts := make([]track.LocationPoint, 0, len(m.selected))
	emitted := make(map[track.Key]struct{}, len(m.selected))
	for _, p := range m.source {
		k := p.Key()
		if _, ok := m.selected[k]; !ok {
			continue
		}
		if _, ok := emitted[k]; ok {
			continue
		}
		emitted[k] = struct{}{}
		pts = append(pts, p)
	}

	m.consumed = true
	return pts, nil
}

// Reset clears the selection so it can be used again
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selected = map[track.Key]struct{}{}
	m.consumed = false
}
