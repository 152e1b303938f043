package convert

import (
	"strconv"
	"time"
)

const metersPerKilometer = 1000

// MillisToTime returns the UTC time of the given epoch milliseconds
func MillisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToKilometers converts meters to kilometers
func ToKilometers(meters float64) float64 {
	return meters / metersPerKilometer
}

// Ftoa formats a float with the shortest representation that parses back to the same value
func Ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
