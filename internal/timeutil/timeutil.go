// Package timeutil provides utility functions for working with countdown
// times.
package timeutil

import "fmt"

// FormatMinsAndSecs renders a countdown as "MM:SS".
func FormatMinsAndSecs(mins, secs int) string {
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
