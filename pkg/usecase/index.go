package usecase

import (
	"context"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// targetIndex is the run-scoped identity map: external id to internal
// page id for each collection. Rebuilt from target-store state at the
// start of every run and mutated in place as pages are created, so
// later records in the same run observe new pages immediately. Never
// persisted; the target store is the single source of truth.
type targetIndex struct {
	releases map[types.ReleaseID]types.PageID
	features map[types.FeatureID]types.PageID
}

// buildIndex scans both target collections and maps every page that
// carries an external id. Pages without one are ignored. Any scan
// failure is fatal: without a complete index the engine could create
// duplicates.
func (uc *Sync) buildIndex(ctx context.Context) (*targetIndex, error) {
	logger := ctxlog.From(ctx)

	idx := &targetIndex{
		releases: make(map[types.ReleaseID]types.PageID),
		features: make(map[types.FeatureID]types.PageID),
	}

	for page, err := range uc.target.Pages(ctx, uc.releasesDB) {
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan releases collection")
		}
		if id := page.Text(model.FieldReleaseExternalID); id != "" {
			idx.releases[types.ReleaseID(id)] = page.ID
		}
	}

	for page, err := range uc.target.Pages(ctx, uc.featuresDB) {
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan features collection")
		}
		if id := page.Text(model.FieldFeatureExternalID); id != "" {
			idx.features[types.FeatureID(id)] = page.ID
		}
	}

	logger.Info("Built target index",
		"releases", len(idx.releases),
		"features", len(idx.features),
	)

	return idx, nil
}
