package usecase

import (
	"context"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
)

// reconcileRelations rewrites each release's "Features" relation to
// the full current set of linked feature page ids (full replace, not
// append). Runs only after all upserts so every feature's page id is
// already in the identity map.
//
// Releases with zero assigned features are skipped to avoid churn.
// Known limitation: a release that lost all its features between runs
// keeps its stale relation.
func (uc *Sync) reconcileRelations(ctx context.Context, runID string, src *sourceData, idx *targetIndex) (updated, errors int) {
	logger := ctxlog.From(ctx)

	for _, r := range src.releases {
		assigned := src.assignments[r.ID]
		if len(assigned) == 0 {
			continue
		}

		pageID, ok := idx.releases[r.ID]
		if !ok {
			// The release page was never created (its create failed
			// earlier this run); nothing to point the relation at.
			logger.Warn("No target page for release, skipping relation update", "release_id", r.ID)
			errors++
			continue
		}

		featurePages := make([]types.PageID, 0, len(assigned))
		for _, id := range assigned {
			if featurePageID, ok := idx.features[id]; ok {
				featurePages = append(featurePages, featurePageID)
			}
		}
		if len(featurePages) == 0 {
			continue
		}

		props := model.Properties{
			model.FieldFeatures: model.Relation(featurePages...),
		}
		if err := uc.target.UpdatePage(ctx, pageID, props); err != nil {
			errors++
			logger.Warn("Failed to update release relations", "name", r.Name, "release_id", r.ID, "error", err)
			uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditError, ExternalID: string(r.ID), PageID: pageID, Err: err.Error()})
			continue
		}

		updated++
		uc.audit.Record(ctx, model.AuditEvent{RunID: runID, Entity: model.EntityRelease, Action: model.AuditRelations, ExternalID: string(r.ID), PageID: pageID})
	}

	logger.Info("Reconciled release relations", "updated", updated, "errors", errors)
	return updated, errors
}
