package gpxutils

import (
	"pulse-tools/pulsetools/convert"
	"pulse-tools/pulsetools/track"

	"github.com/tkrajina/gpxgo/gpx"
)

// GpxVersion GPX version
const GpxVersion = "1.1"

const gpxXMLNs = "http://www.topografix.com/GPX/1/1"
const gpsXMLNsXsi = "http://www.w3.org/2001/XMLSchema-instance"

const creator = "pulse-tools"

// FromTracks builds a GPX document with one GPX track per track. Each point
// carries its network type in the GPX type field.
func FromTracks(tracks []track.Track, name string) *gpx.GPX {
	gTracks := make([]gpx.GPXTrack, len(tracks))
	for i, t := range tracks {
		points := make([]gpx.GPXPoint, len(t.Points))
		for j, p := range t.Points {
			points[j] = gpx.GPXPoint{
				Point: gpx.Point{
					Latitude:  p.Latitude,
					Longitude: p.Longitude,
				},
				Timestamp: convert.MillisToTime(p.Timestamp),
				Type:      p.NetworkType,
				Source:    p.DeviceID,
			}
		}

		trackName := t.DeviceID
		if trackName == "" {
			trackName = name
		}

		gTracks[i] = gpx.GPXTrack{
			Name:     trackName,
			Type:     "network",
			Segments: []gpx.GPXTrackSegment{{Points: points}},
		}
	}

	return &gpx.GPX{
		XMLNs:        gpxXMLNs,
		XmlNsXsi:     gpsXMLNsXsi,
		XmlSchemaLoc: gpxXMLNs,

		Version: GpxVersion,
		Creator: creator,
		Name:    name,
		Tracks:  gTracks,
	}
}

// ToXML serializes the GPX document
func ToXML(g *gpx.GPX) ([]byte, error) {
	return g.ToXml(gpx.ToXmlParams{Version: GpxVersion, Indent: true})
}
