package model

import "github.com/m-kurosawa/ahasync/pkg/domain/types"

// Release is a normalized release record from the source system.
// Optional fields use the empty string as the canonical absent marker
// so the change detector can compare values without nil handling.
type Release struct {
	ID              types.ReleaseID // external id, unique within one run
	Name            string
	StartDate       string // "YYYY-MM-DD", "" when unset
	EndDate         string // "YYYY-MM-DD", "" when unset
	Status          string // lifecycle state (upcoming, in-progress, ...)
	GroupID         string // parent release group id, "" when none
	ProductManager  string
	EngineeringLead string
}
