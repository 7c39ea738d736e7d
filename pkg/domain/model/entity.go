package model

// EntityType distinguishes the two synchronized record kinds
type EntityType string

const (
	EntityRelease EntityType = "release"
	EntityFeature EntityType = "feature"
)
