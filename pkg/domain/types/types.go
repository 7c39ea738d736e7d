package types

const (
	// AppName is the application name used in logs and CLI output
	AppName = "ahasync"

	// Version is the application version
	Version = "0.1.0"
)

// ReleaseID is the stable external identifier of a release in the
// source system (e.g. "PRJ-R-12"). It is stored verbatim in the
// target store as the correlation key across runs.
type ReleaseID string

// FeatureID is the stable external identifier of a feature in the
// source system (e.g. "PRJ-123").
type FeatureID string

// PageID is the target store's opaque identifier for a page.
// Assigned by the store on create and immutable afterwards.
type PageID string
