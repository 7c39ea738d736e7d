package model

import "strings"

// Health represents a feature's reported health status
type Health string

const (
	HealthOnTrack        Health = "on-track"
	HealthNeedsAttention Health = "needs-attention"
	HealthAtRisk         Health = "at-risk"
	HealthOffTrack       Health = "off-track"
	HealthUnknown        Health = "unknown"
)

// NormalizeHealth lowercases the raw health string from the source
// API. A missing or empty value yields HealthUnknown.
func NormalizeHealth(raw string) Health {
	if raw == "" {
		return HealthUnknown
	}
	return Health(strings.ToLower(raw))
}
