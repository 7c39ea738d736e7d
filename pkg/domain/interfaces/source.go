package interfaces

import (
	"context"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
)

// SourceClient reads release and feature records from the upstream
// product-management API. All results are normalized (calendar dates,
// lowercase health) before they leave the client.
type SourceClient interface {
	// ListReleases returns every release. A failure here is fatal for
	// the run: with no releases there is nothing to sync.
	ListReleases(ctx context.Context) ([]*model.Release, error)

	// ListReleaseFeatureIDs returns the external ids of the features
	// assigned to one release, in source order.
	ListReleaseFeatureIDs(ctx context.Context, id types.ReleaseID) ([]types.FeatureID, error)

	// GetFeature fetches full feature detail by external id
	GetFeature(ctx context.Context, id types.FeatureID) (*model.Feature, error)
}
