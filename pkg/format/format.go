// Package format renders racing data for humans. The query layer keeps
// everything in integer milliseconds; conversion happens only here.
package format

import (
	"fmt"
	"time"
)

// LapTime formats milliseconds as "M:SS.mmm", or "SS.mmm" when below a
// minute. Zero or negative input yields "N/A".
func LapTime(ms int64) string {
	if ms <= 0 {
		return "N/A"
	}
	minutes := ms / 60000
	rest := ms % 60000
	seconds := rest / 1000
	millis := rest % 1000
	if minutes > 0 {
		return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
	}
	return fmt.Sprintf("%d.%03d", seconds, millis)
}

// RaceDate formats an epoch-seconds timestamp in the given IANA zone.
// The league runs on US central time by default.
func RaceDate(epochSeconds int64, timezone string) string {
	if epochSeconds == 0 {
		return "Unknown date"
	}
	if timezone == "" {
		timezone = "America/Chicago"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return time.Unix(epochSeconds, 0).In(loc).Format("Jan 2, 2006, 3:04 PM")
}

// Gap formats a time difference between drivers, e.g. "+2.456s".
func Gap(ms int64) string {
	if ms == 0 {
		return "0.000s"
	}
	sign := "+"
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%ss", sign, LapTime(ms))
}
