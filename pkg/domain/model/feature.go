package model

import "github.com/m-kurosawa/ahasync/pkg/domain/types"

// Feature is a normalized feature record from the source system.
//
// ReleaseID holds the primary release: the first release the feature
// was found assigned to during the source fetch. A feature assigned to
// multiple releases keeps only the first for its single-valued
// relation; the full assignment set is tracked separately by the
// relation reconciler.
type Feature struct {
	ID              types.FeatureID // external id
	Name            string
	Status          string // workflow status label
	Health          Health
	ProductManager  string
	EngineeringLead string
	URL             string          // deep link back to the source record
	ReleaseID       types.ReleaseID // primary release, "" when unassigned
}
