package model

import "strings"

// NormalizeDate truncates a source timestamp to its calendar-date
// component by taking the substring before the first 'T', discarding
// time-of-day and zone suffix. An empty input stays empty.
//
//	"2025-05-05T00:00:00Z" -> "2025-05-05"
//	"2025-05-05"           -> "2025-05-05"
func NormalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	date, _, _ := strings.Cut(raw, "T")
	return date
}
