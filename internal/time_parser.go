// internal/time_parser.go
// ------------------------
// This internal package provides helper functions for parsing and working
// with time strings and timestamps. They are used by the SDK for VisionObject
// timestamps and status labels, and by utils to check token expiry.
//
// Functions:
// - NowISO8601 / FormatISO8601: ISO-8601 timestamps stamped onto VisionObjects.
// - FormatMs: render a duration as integer milliseconds for status labels.
// - ParseTimeStr: convert strings like "1s", "6m0s" into milliseconds.
// - UnixToMs: convert a UNIX timestamp in seconds to milliseconds.
// - IsInFuture: check if a given timestamp (ms) is in the future.
package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NowISO8601 returns the current UTC time in ISO-8601 format.
func NowISO8601() string {
	return FormatISO8601(time.Now())
}

// FormatISO8601 renders a time in ISO-8601 (RFC 3339) format, in UTC.
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatMs renders a duration as whole milliseconds, e.g. "123ms".
func FormatMs(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

// ParseTimeStr converts strings like "1s", "6m0s" into ms.
func ParseTimeStr(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if strings.HasSuffix(s, "s") && !strings.Contains(s, "m") {
		val := strings.TrimSuffix(s, "s")
		sec, err := strconv.Atoi(val)
		if err == nil {
			return int64(sec) * 1000
		}
	}

	var minutes, seconds int
	n, err := fmt.Sscanf(s, "%dm%ds", &minutes, &seconds)
	if n == 2 && err == nil {
		totalMs := int64(minutes)*60_000 + int64(seconds)*1_000
		return totalMs
	}

	return 0
}

// UnixToMs converts a UNIX timestamp in seconds to milliseconds.
func UnixToMs(timestamp int64) int64 {
	return timestamp * 1000
}

// IsInFuture checks if a timestamp (in ms) is in the future relative to the current time.
func IsInFuture(ms int64) bool {
	return ms > time.Now().UnixMilli()
}
