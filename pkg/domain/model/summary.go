package model

import "time"

// SyncStats accumulates per-entity-type outcome counters for one run
type SyncStats struct {
	Created   int
	Updated   int
	Unchanged int
	Errors    int
}

// Total returns the number of records processed
func (s SyncStats) Total() int {
	return s.Created + s.Updated + s.Unchanged + s.Errors
}

// RunSummary is the run's sole externally-meaningful output besides
// the target-store side effects.
type RunSummary struct {
	RunID            string
	Releases         SyncStats
	Features         SyncStats
	RelationsUpdated int
	RelationErrors   int
	StartedAt        time.Time
	Elapsed          time.Duration
}
