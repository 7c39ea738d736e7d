package usecase

import (
	"context"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// releaseSnapshot builds the source-side snapshot of a release's
// comparable fields, in the same normalized shape readTrackedFields
// extracts from a target page.
func releaseSnapshot(r *model.Release) model.FieldSnapshot {
	return model.FieldSnapshot{
		model.FieldName:            r.Name,
		model.FieldStatus:          r.Status,
		model.FieldReleaseGroup:    r.GroupID,
		model.FieldStartDate:       r.StartDate,
		model.FieldEndDate:         r.EndDate,
		model.FieldProductManager:  r.ProductManager,
		model.FieldEngineeringLead: r.EngineeringLead,
	}
}

// featureSnapshot builds the source-side snapshot of a feature.
// The primary release is represented by its mapped target page id,
// not its external id: the relation on the page points at internal
// pages, so that is the identity the detector must compare.
func featureSnapshot(f *model.Feature, parent types.PageID) model.FieldSnapshot {
	return model.FieldSnapshot{
		model.FieldName:            f.Name,
		model.FieldStatus:          f.Status,
		model.FieldHealth:          string(f.Health),
		model.FieldProductManager:  f.ProductManager,
		model.FieldEngineeringLead: f.EngineeringLead,
		model.FieldURL:             f.URL,
		model.FieldRelease:         string(parent),
	}
}

// readTrackedFields retrieves the current target-page value of every
// field tracked for the given entity type. Relation fields snapshot
// to the id of their first linked page. Returns an error on read
// failure; the caller treats that as "state unknown" and counts the
// record as unchanged rather than risking a blind overwrite.
func (uc *Sync) readTrackedFields(ctx context.Context, pageID types.PageID, entity model.EntityType) (model.FieldSnapshot, error) {
	page, err := uc.target.GetPage(ctx, pageID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read page state", goerr.V("page_id", pageID))
	}

	policy := uc.policy.For(entity)
	snapshot := make(model.FieldSnapshot, len(policy.Tracked))
	for _, field := range policy.Tracked {
		prop := page.Properties[field]
		if prop.Type == model.PropRelation {
			snapshot[field] = string(page.FirstRelation(field))
			continue
		}
		snapshot[field] = prop.Text
	}

	return snapshot, nil
}
