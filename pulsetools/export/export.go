package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"pulse-tools/pulsetools/convert"
	"pulse-tools/pulsetools/gpxutils"
	"pulse-tools/pulsetools/render"
	"pulse-tools/pulsetools/terminal"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"
)

// Format of an exported view
type Format string

// Supported formats
const (
	Text    Format = "text"
	JSON    Format = "json"
	YAML    Format = "yaml"
	CSV     Format = "csv"
	GeoJSON Format = "geojson"
	GPX     Format = "gpx"
)

// MinBBoxSpan is the smallest GeoJSON bbox side in decimal degrees, so that a
// single location still gives a viewport to zoom to
const MinBBoxSpan = 0.002

// Formats lists every supported format
func Formats() []Format {
	return []Format{Text, JSON, YAML, CSV, GeoJSON, GPX}
}

// ParseFormat parses a format name, empty means text
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return Text, nil
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return Text, fmt.Errorf("unknown format '%s'", s)
}

// Options tune the output
type Options struct {
	// Color paints text output with the network category colors
	Color bool
	// Name is used for documents that carry one, such as GPX
	Name string
}

// Write renders the view in the given format
func Write(w io.Writer, format Format, v *render.View, opts Options) error {
	switch format {
	case Text:
		return writeText(w, v, opts)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case CSV:
		return writeCSV(w, v)
	case GeoJSON:
		return writeGeoJSON(w, v)
	case GPX:
		name := opts.Name
		if name == "" {
			name = "pulse"
		}
		xml, err := gpxutils.ToXML(gpxutils.FromTracks(v.Tracks, name))
		if err != nil {
			return fmt.Errorf("failed to serialize gpx: %w", err)
		}
		_, err = w.Write(xml)
		return err
	}
	return fmt.Errorf("unknown format '%s'", format)
}

func writeText(w io.Writer, v *render.View, opts Options) error {
	b := &strings.Builder{}
	if v.Empty() {
		fmt.Fprintln(b, "no location data")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, t := range v.Tracks {
		name := t.DeviceID
		if name == "" {
			name = "all devices"
		}
		fmt.Fprintf(b, "track %s (%d points, %s km)\n", name, t.Len(), convert.Ftoa(math.Round(convert.ToKilometers(t.Distance())*100)/100))

		for i, p := range t.Points {
			label := p.Category().String()
			if opts.Color {
				label = terminal.Paint(p.Category(), label)
			}
			fmt.Fprintf(b, "  %3d  %s  %s, %s  %s\n", i, convert.MillisToTime(p.Timestamp).Format("2006-01-02 15:04:05.000"),
				convert.Ftoa(p.Latitude), convert.Ftoa(p.Longitude), label)
		}
	}

	fmt.Fprintf(b, "segments %d\n", len(v.Segments))
	for _, s := range v.Segments {
		line := fmt.Sprintf("  %s, %s -> %s, %s  %s %s", convert.Ftoa(s.From.Latitude), convert.Ftoa(s.From.Longitude),
			convert.Ftoa(s.To.Latitude), convert.Ftoa(s.To.Longitude), s.Category, s.Category.Hex())
		if opts.Color {
			line = terminal.Paint(s.Category, line)
		}
		fmt.Fprintln(b, line)
	}

	if v.Bounds != nil {
		fmt.Fprintf(b, "bounds lat [%s, %s] lon [%s, %s]\n", convert.Ftoa(v.Bounds.MinLat), convert.Ftoa(v.Bounds.MaxLat),
			convert.Ftoa(v.Bounds.MinLon), convert.Ftoa(v.Bounds.MaxLon))
	}
	if v.Dropped > 0 {
		fmt.Fprintf(b, "dropped %d records\n", v.Dropped)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCSV(w io.Writer, v *render.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"device_id", "timestamp", "time", "latitude", "longitude", "network_type", "category", "color"}); err != nil {
		return err
	}

	for _, p := range v.Points() {
		err := cw.Write([]string{
			p.DeviceID,
			strconv.FormatInt(p.Timestamp, 10),
			convert.MillisToTime(p.Timestamp).Format("2006-01-02T15:04:05.000Z07:00"),
			convert.Ftoa(p.Latitude),
			convert.Ftoa(p.Longitude),
			p.NetworkType,
			p.Category().String(),
			p.Category().Hex(),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeGeoJSON(w io.Writer, v *render.View) error {
	fc := geojson.NewFeatureCollection()

	for _, p := range v.Points() {
		f := geojson.NewFeature(orb.Point{p.Longitude, p.Latitude})
		f.Properties["device_id"] = p.DeviceID
		f.Properties["timestamp"] = p.Timestamp
		f.Properties["network_type"] = p.NetworkType
		f.Properties["category"] = p.Category().String()
		f.Properties["color"] = p.Category().Hex()
		fc.Append(f)
	}

	for _, s := range v.Segments {
		f := geojson.NewFeature(orb.LineString{
			{s.From.Longitude, s.From.Latitude},
			{s.To.Longitude, s.To.Latitude},
		})
		f.Properties["category"] = s.Category.String()
		f.Properties["color"] = s.Category.Hex()
		fc.Append(f)
	}

	if v.Bounds != nil {
		b := *v.Bounds
		if b.Degenerate() {
			b = b.WithMinSpan(MinBBoxSpan)
		}
		fc.BBox = geojson.NewBBox(orb.Bound{
			Min: orb.Point{b.MinLon, b.MinLat},
			Max: orb.Point{b.MaxLon, b.MaxLat},
		})
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize geojson: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
