package model

import "github.com/m-kurosawa/ahasync/pkg/domain/types"

// AuditAction classifies one audit event
type AuditAction string

const (
	AuditCreate    AuditAction = "create"
	AuditUpdate    AuditAction = "update"
	AuditSkip      AuditAction = "skip" // no-op, tracked fields unchanged
	AuditError     AuditAction = "error"
	AuditRelations AuditAction = "relations" // relation field rewrite
)

// AuditEvent records one engine decision against the target store.
// Events flow to an injected sink so tests can assert on exactly what
// the engine did without inspecting the store.
type AuditEvent struct {
	RunID      string
	Entity     EntityType
	Action     AuditAction
	ExternalID string
	PageID     types.PageID
	Fields     []string // changed field names for updates
	Err        string   // error detail for AuditError events
}
