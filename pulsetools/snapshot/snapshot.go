package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Field names of a raw point record
const (
	LatitudeField    = "latitude"
	LongitudeField   = "longitude"
	NetworkTypeField = "networkType"
	TimestampField   = "timestamp"
)

// Snapshot is a complete point-in-time copy of the store, keyed by device
// then by point. Devices and records keep the store's traversal order.
type Snapshot struct {
	Devices []Device
}

// Device holds the raw records pushed by one device
type Device struct {
	ID      string
	Records []Record
}

// Record is a raw point. Fields is nil when the stored value isn't an object.
type Record struct {
	Key    string
	Fields map[string]interface{}
}

// MalformedSnapshotError reports a snapshot that isn't a mapping of mappings
type MalformedSnapshotError struct {
	Reason string
	Err    error
}

func (e *MalformedSnapshotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed snapshot: %s: %s", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed snapshot: %s", e.Reason)
}

func (e *MalformedSnapshotError) Unwrap() error {
	return e.Err
}

func malformed(err error, format string, a ...interface{}) error {
	return &MalformedSnapshotError{Reason: fmt.Sprintf(format, a...), Err: err}
}

// Parse parses a JSON snapshot document
func Parse(data []byte) (*Snapshot, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a JSON snapshot document. Object members are read in document
// order, a top-level null is an empty snapshot.
func Decode(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, malformed(nil, "empty document")
	}
	if err != nil {
		return nil, malformed(err, "unreadable document")
	}

	s := &Snapshot{Devices: []Device{}}
	if tok == nil {
		if err := expectEOF(dec); err != nil {
			return nil, err
		}
		return s, nil
	}
	if !isDelim(tok, '{') {
		return nil, malformed(nil, "top level is not an object")
	}

	for dec.More() {
		deviceID, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, malformed(err, "unreadable device '%s'", deviceID)
		}
		if !isDelim(tok, '{') {
			return nil, malformed(nil, "device '%s' is not an object", deviceID)
		}

		device := Device{ID: deviceID, Records: []Record{}}
		for dec.More() {
			key, err := readKey(dec)
			if err != nil {
				return nil, err
			}

			var v interface{}
			if err := dec.Decode(&v); err != nil {
				return nil, malformed(err, "unreadable record '%s/%s'", deviceID, key)
			}

			rec := Record{Key: key}
			if fields, ok := v.(map[string]interface{}); ok {
				rec.Fields = fields
			}
			device.Records = append(device.Records, rec)
		}

		if _, err := dec.Token(); err != nil {
			return nil, malformed(err, "unterminated device '%s'", deviceID)
		}
		s.Devices = append(s.Devices, device)
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed(err, "unterminated document")
	}

	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return s, nil
}

// FromMap builds a snapshot from decoded values. Keys are visited in
// lexicographic order, the order the store lists children in.
func FromMap(raw map[string]interface{}) (*Snapshot, error) {
	s := &Snapshot{Devices: []Device{}}

	for _, deviceID := range sortedKeys(raw) {
		points, ok := raw[deviceID].(map[string]interface{})
		if !ok {
			return nil, malformed(nil, "device '%s' is not an object", deviceID)
		}

		device := Device{ID: deviceID, Records: []Record{}}
		for _, key := range sortedKeys(points) {
			rec := Record{Key: key}
			if fields, ok := points[key].(map[string]interface{}); ok {
				rec.Fields = fields
			}
			device.Records = append(device.Records, rec)
		}
		s.Devices = append(s.Devices, device)
	}

	return s, nil
}

// Len returns the number of raw records in the snapshot
func (s *Snapshot) Len() int {
	n := 0
	for _, d := range s.Devices {
		n += len(d.Records)
	}
	return n
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", malformed(err, "unreadable key")
	}
	key, ok := tok.(string)
	if !ok {
		return "", malformed(nil, "unexpected token '%v'", tok)
	}
	return key, nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return malformed(err, "trailing data after document")
	}
	return nil
}

func isDelim(tok json.Token, d json.Delim) bool {
	v, ok := tok.(json.Delim)
	return ok && v == d
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
