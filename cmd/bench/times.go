//go:build !floattimes

package main

import (
	"strconv"
	"time"
)

// millis renders a duration as integer milliseconds. Build with the
// floattimes tag for fractional output.
func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
