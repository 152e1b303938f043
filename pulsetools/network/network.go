package network

import (
	"fmt"
	"strings"
)

// Category is the canonical network classification of a location sample
type Category int

// Network categories. The zero value is Unknown.
const (
	Unknown Category = iota
	FiveG
	FourG
	ThreeG
	TwoG
	Wifi
)

// UnknownLabel is the network type assigned to samples that don't report one
const UnknownLabel = "unknown"

var labels = map[string]Category{
	"5g":   FiveG,
	"4g":   FourG,
	"lte":  FourG,
	"3g":   ThreeG,
	"2g":   TwoG,
	"edge": TwoG,
	"wifi": Wifi,
}

var names = [...]string{
	Unknown: UnknownLabel,
	FiveG:   "5g",
	FourG:   "4g",
	ThreeG:  "3g",
	TwoG:    "2g",
	Wifi:    "wifi",
}

// colors are 0xRRGGBB values matching the map palette
var colors = [...]uint32{
	Unknown: 0x888888,
	FiveG:   0x00FF00,
	FourG:   0xFFFF00,
	ThreeG:  0x0000FF,
	TwoG:    0xFF0000,
	Wifi:    0xFF00FF,
}

// Classify returns the category of the given network type label.
// Matching is case insensitive, unseen labels are Unknown.
func Classify(networkType string) Category {
	if c, ok := labels[strings.ToLower(strings.TrimSpace(networkType))]; ok {
		return c
	}
	return Unknown
}

// Categories returns every category, Unknown last
func Categories() []Category {
	return []Category{FiveG, FourG, ThreeG, TwoG, Wifi, Unknown}
}

func (c Category) valid() bool {
	return c >= Unknown && c <= Wifi
}

// String returns the canonical label of the category
func (c Category) String() string {
	if !c.valid() {
		return UnknownLabel
	}
	return names[c]
}

// RGB returns the display color as 0xRRGGBB
func (c Category) RGB() uint32 {
	if !c.valid() {
		return colors[Unknown]
	}
	return colors[c]
}

// Hex returns the display color as #RRGGBB
func (c Category) Hex() string {
	return fmt.Sprintf("#%06X", c.RGB())
}

// MarshalText implements encoding.TextMarshaler
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts any label
// Classify accepts, so "lte" decodes to FourG.
func (c *Category) UnmarshalText(text []byte) error {
	*c = Classify(string(text))
	return nil
}
