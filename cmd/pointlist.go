package main

import (
	"fmt"
	"pulse-tools/pulsetools/convert"
	"pulse-tools/pulsetools/selection"
	"pulse-tools/pulsetools/terminal"
	"pulse-tools/pulsetools/track"
	"strconv"
	"strings"
)

// pointList is the interactive list of the source track users pick from
type pointList struct {
	points []track.LocationPoint
	sel    selection.Toggler
	color  bool
}

// newPointList lists the source track once per distinct point. Equal points
// reported by several devices share a single selection state.
func newPointList(sel *selection.Manager, color bool) *pointList {
	source := sel.Source()
	points := make([]track.LocationPoint, 0, len(source))
	seen := make(map[track.Key]struct{}, len(source))
	for _, p := range source {
		if _, ok := seen[p.Key()]; ok {
			continue
		}
		seen[p.Key()] = struct{}{}
		points = append(points, p)
	}

	return &pointList{points: points, sel: sel, color: color}
}

// Len returns the number of rows
func (l *pointList) Len() int {
	return len(l.points)
}

// Render returns row i
func (l *pointList) Render(i int) string {
	p := l.points[i]

	mark := " "
	if l.sel.Contains(p) {
		mark = "x"
	}

	label := p.Category().String()
	if l.color {
		label = terminal.Paint(p.Category(), label)
	}

	return fmt.Sprintf("[%s] %3d  %s  %s, %s  %s", mark, i,
		convert.MillisToTime(p.Timestamp).Format("2006-01-02 15:04:05"),
		convert.Ftoa(p.Latitude), convert.Ftoa(p.Longitude), label)
}

// OnToggle flips row i
func (l *pointList) OnToggle(i int) (bool, error) {
	if i < 0 || i >= len(l.points) {
		return false, fmt.Errorf("no location at index %d", i)
	}
	return l.sel.Toggle(l.points[i])
}

// parseIndexes parses "0,2 5" into row indexes
func parseIndexes(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	idx := make([]int, 0, len(fields))
	for _, f := range fields {
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid index '%s'", f)
		}
		idx = append(idx, i)
	}
	return idx, nil
}
