package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-kurosawa/ahasync/pkg/domain/interfaces"
	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Phase identifies the orchestrator's current state. Transitions are
// strictly forward; Failed is terminal and reached only on the fatal
// error categories (index build, source release listing). Per-record
// failures never change the phase.
type Phase string

const (
	PhaseBuildingIndex        Phase = "building_index"
	PhaseFetchingSource       Phase = "fetching_source"
	PhaseSyncingReleases      Phase = "syncing_releases"
	PhaseSyncingFeatures      Phase = "syncing_features"
	PhaseReconcilingRelations Phase = "reconciling_relations"
	PhaseSummarizing          Phase = "summarizing"
	PhaseDone                 Phase = "done"
	PhaseFailed               Phase = "failed"
)

// Sync is the incremental reconciliation engine. A single Run fully
// upserts all releases, then all features, then rewrites the release
// side of the two-way relation; repeated runs with unchanged source
// data converge to zero creates and zero updates.
type Sync struct {
	source     interfaces.SourceClient
	target     interfaces.TargetStore
	releasesDB string
	featuresDB string
	policy     model.FieldPolicy
	audit      AuditSink
}

// Option configures the engine
type Option func(*Sync)

// WithFieldPolicy replaces the default tracked-field table
func WithFieldPolicy(policy model.FieldPolicy) Option {
	return func(uc *Sync) {
		uc.policy = policy
	}
}

// WithAuditSink replaces the default log-only audit sink
func WithAuditSink(sink AuditSink) Option {
	return func(uc *Sync) {
		uc.audit = sink
	}
}

// New creates the sync engine over the given source client, target
// store and the two target collection identifiers.
func New(source interfaces.SourceClient, target interfaces.TargetStore, releasesDB, featuresDB string, opts ...Option) *Sync {
	uc := &Sync{
		source:     source,
		target:     target,
		releasesDB: releasesDB,
		featuresDB: featuresDB,
		policy:     model.DefaultFieldPolicy(),
		audit:      NewLogSink(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// sourceData is the in-memory result of the three-step source fetch
type sourceData struct {
	releases []*model.Release
	features []*model.Feature

	// assignments holds the full feature set per release, consumed by
	// the relation reconciler.
	assignments map[types.ReleaseID][]types.FeatureID

	// primary maps each feature to the first release it was found
	// assigned to, used for the single-valued relation on its page.
	primary map[types.FeatureID]types.ReleaseID
}

// Run executes one full synchronization
func (uc *Sync) Run(ctx context.Context) (*model.RunSummary, error) {
	runID := uuid.NewString()
	startedAt := time.Now()

	logger := ctxlog.From(ctx).With("run_id", runID)
	ctx = ctxlog.With(ctx, logger)

	uc.enterPhase(ctx, PhaseBuildingIndex)
	idx, err := uc.buildIndex(ctx)
	if err != nil {
		uc.enterPhase(ctx, PhaseFailed)
		return nil, goerr.Wrap(err, "cannot build target index")
	}

	uc.enterPhase(ctx, PhaseFetchingSource)
	src, err := uc.fetchSource(ctx)
	if err != nil {
		uc.enterPhase(ctx, PhaseFailed)
		return nil, goerr.Wrap(err, "cannot fetch source data")
	}

	uc.enterPhase(ctx, PhaseSyncingReleases)
	releaseStats := uc.syncReleases(ctx, runID, src, idx)

	uc.enterPhase(ctx, PhaseSyncingFeatures)
	featureStats := uc.syncFeatures(ctx, runID, src, idx)

	uc.enterPhase(ctx, PhaseReconcilingRelations)
	relationsUpdated, relationErrors := uc.reconcileRelations(ctx, runID, src, idx)

	uc.enterPhase(ctx, PhaseSummarizing)
	summary := &model.RunSummary{
		RunID:            runID,
		Releases:         releaseStats,
		Features:         featureStats,
		RelationsUpdated: relationsUpdated,
		RelationErrors:   relationErrors,
		StartedAt:        startedAt,
		Elapsed:          time.Since(startedAt),
	}

	logger.Info("Sync complete",
		"releases_created", summary.Releases.Created,
		"releases_updated", summary.Releases.Updated,
		"releases_unchanged", summary.Releases.Unchanged,
		"releases_errors", summary.Releases.Errors,
		"features_created", summary.Features.Created,
		"features_updated", summary.Features.Updated,
		"features_unchanged", summary.Features.Unchanged,
		"features_errors", summary.Features.Errors,
		"relations_updated", summary.RelationsUpdated,
		"elapsed", summary.Elapsed,
	)

	uc.enterPhase(ctx, PhaseDone)
	return summary, nil
}

func (uc *Sync) enterPhase(ctx context.Context, phase Phase) {
	ctxlog.From(ctx).Info("Entering phase", "phase", phase)
}

// fetchSource runs the full three-step source fetch: list releases,
// list per-release feature assignments, fetch per-feature detail.
// Only the top-level release listing is fatal; per-item failures are
// logged and substituted with empty results.
func (uc *Sync) fetchSource(ctx context.Context) (*sourceData, error) {
	logger := ctxlog.From(ctx)

	releases, err := uc.source.ListReleases(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list source releases")
	}

	src := &sourceData{
		releases:    releases,
		assignments: make(map[types.ReleaseID][]types.FeatureID),
		primary:     make(map[types.FeatureID]types.ReleaseID),
	}

	// First assignment found wins as the feature's primary release
	var order []types.FeatureID
	for _, r := range releases {
		ids, err := uc.source.ListReleaseFeatureIDs(ctx, r.ID)
		if err != nil {
			logger.Warn("Failed to fetch feature assignments, treating as empty",
				"release_id", r.ID,
				"error", err,
			)
			continue
		}
		for _, id := range ids {
			src.assignments[r.ID] = append(src.assignments[r.ID], id)
			if _, seen := src.primary[id]; !seen {
				src.primary[id] = r.ID
				order = append(order, id)
			}
		}
	}

	for _, id := range order {
		feature, err := uc.source.GetFeature(ctx, id)
		if err != nil {
			logger.Warn("Failed to fetch feature detail, skipping",
				"feature_id", id,
				"error", err,
			)
			continue
		}
		feature.ReleaseID = src.primary[id]
		src.features = append(src.features, feature)
	}

	logger.Info("Fetched source data",
		"releases", len(src.releases),
		"features", len(src.features),
	)

	return src, nil
}

// syncReleases upserts every source release. Runs to completion
// before any feature upsert so feature pages can link their parent.
func (uc *Sync) syncReleases(ctx context.Context, runID string, src *sourceData, idx *targetIndex) model.SyncStats {
	logger := ctxlog.From(ctx)
	policy := uc.policy.For(model.EntityRelease)

	var stats model.SyncStats
	for _, r := range src.releases {
		pageID, exists := idx.releases[r.ID]

		if !exists {
			newID, err := uc.target.CreatePage(ctx, uc.releasesDB, uc.releaseProperties(r, true))
			if err != nil {
				stats.Errors++
				logger.Warn("Failed to create release page", "name", r.Name, "release_id", r.ID, "error", err)
				uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditError, ExternalID: string(r.ID), Err: err.Error()})
				continue
			}
			idx.releases[r.ID] = newID
			stats.Created++
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditCreate, ExternalID: string(r.ID), PageID: newID})
			continue
		}

		old, err := uc.readTrackedFields(ctx, pageID, model.EntityRelease)
		if err != nil {
			// State unknown: count as unchanged rather than risk a
			// blind overwrite.
			stats.Unchanged++
			logger.Warn("Failed to read release page state, counting as unchanged", "name", r.Name, "release_id", r.ID, "error", err)
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditSkip, ExternalID: string(r.ID), PageID: pageID, Err: err.Error()})
			continue
		}

		changes := model.DetectChanges(old, releaseSnapshot(r), policy)
		if changes == nil {
			stats.Unchanged++
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditSkip, ExternalID: string(r.ID), PageID: pageID})
			continue
		}

		if err := uc.target.UpdatePage(ctx, pageID, uc.releaseProperties(r, false)); err != nil {
			stats.Errors++
			logger.Warn("Failed to update release page", "name", r.Name, "release_id", r.ID, "error", err)
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditError, ExternalID: string(r.ID), PageID: pageID, Err: err.Error()})
			continue
		}
		stats.Updated++
		logger.Info("Updated release", "name", r.Name, "release_id", r.ID, "fields", changes.Fields())
		uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditUpdate, ExternalID: string(r.ID), PageID: pageID, Fields: changes.Fields()})
	}

	return stats
}

// syncFeatures upserts every source feature, linking each to its
// primary release's page when that page is known.
func (uc *Sync) syncFeatures(ctx context.Context, runID string, src *sourceData, idx *targetIndex) model.SyncStats {
	logger := ctxlog.From(ctx)
	policy := uc.policy.For(model.EntityFeature)

	var stats model.SyncStats
	for _, f := range src.features {
		parent := idx.releases[f.ReleaseID]
		pageID, exists := idx.features[f.ID]

		if !exists {
			newID, err := uc.target.CreatePage(ctx, uc.featuresDB, uc.featureProperties(f, parent, true))
			if err != nil {
				stats.Errors++
				logger.Warn("Failed to create feature page", "name", f.Name, "feature_id", f.ID, "error", err)
				uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityFeature, Action: model.AuditError, ExternalID: string(f.ID), Err: err.Error()})
				continue
			}
			idx.features[f.ID] = newID
			stats.Created++
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityFeature, Action: model.AuditCreate, ExternalID: string(f.ID), PageID: newID})
			continue
		}

		old, err := uc.readTrackedFields(ctx, pageID, model.EntityFeature)
		if err != nil {
			stats.Unchanged++
			logger.Warn("Failed to read feature page state, counting as unchanged", "name", f.Name, "feature_id", f.ID, "error", err)
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityFeature, Action: model.AuditSkip, ExternalID: string(f.ID), PageID: pageID, Err: err.Error()})
			continue
		}

		changes := model.DetectChanges(old, featureSnapshot(f, parent), policy)
		if changes == nil {
			stats.Unchanged++
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityFeature, Action: model.AuditSkip, ExternalID: string(f.ID), PageID: pageID})
			continue
		}

		if err := uc.target.UpdatePage(ctx, pageID, uc.featureProperties(f, parent, false)); err != nil {
			stats.Errors++
			logger.Warn("Failed to update feature page", "name", f.Name, "feature_id", f.ID, "error", err)
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityFeature, Action: model.AuditError, ExternalID: string(f.ID), PageID: pageID, Err: err.Error()})
			continue
		}
		stats.Updated++
		logger.Info("Updated feature", "name", f.Name, "feature_id", f.ID, "fields", changes.Fields())
		uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityFeature, Action: model.AuditUpdate, ExternalID: string(f.ID), PageID: pageID, Fields: changes.Fields()})
	}

	return stats
}
