package model

// Field names of the two fixed target-store schemas. The external-id
// fields are the sole correlation keys across runs and are written
// once on create, never patched afterwards.
const (
	FieldName            = "Name"
	FieldStatus          = "Status"
	FieldReleaseGroup    = "Release Group"
	FieldStartDate       = "Start Date"
	FieldEndDate         = "End Date"
	FieldProductManager  = "Product Manager"
	FieldEngineeringLead = "Engineering Lead"
	FieldHealth          = "Health"
	FieldURL             = "Aha URL"

	// External-id fields, one distinct name per entity type
	FieldReleaseExternalID = "Aha Release ID"
	FieldFeatureExternalID = "Aha Feature ID"

	// Two-way relation fields
	FieldFeatures = "Features" // on release pages
	FieldRelease  = "Release"  // on feature pages
)
