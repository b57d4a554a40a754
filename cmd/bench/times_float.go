//go:build floattimes

package main

import (
	"strconv"
	"time"
)

// millis renders a duration as fractional milliseconds.
func millis(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Nanoseconds())/1e6, 'f', 3, 64)
}
