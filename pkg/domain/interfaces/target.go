package interfaces

import (
	"context"
	"iter"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
	"github.com/m-kurosawa/ahasync/pkg/domain/types"
)

// TargetStore is the page-level surface of the workspace-document API.
// Implementations own pagination cursors, wire encoding and rate-limit
// pacing; the engine sees only pages, properties and page ids.
type TargetStore interface {
	// Pages lazily iterates every page of one collection. The sequence
	// yields a non-nil error at most once, as its final element.
	Pages(ctx context.Context, databaseID string) iter.Seq2[*model.Page, error]

	// GetPage retrieves one page's current property values
	GetPage(ctx context.Context, id types.PageID) (*model.Page, error)

	// CreatePage creates a page in the given collection and returns
	// the store-assigned page id.
	CreatePage(ctx context.Context, databaseID string, props model.Properties) (types.PageID, error)

	// UpdatePage patches the given properties on an existing page.
	// Properties not present in props are left untouched.
	UpdatePage(ctx context.Context, id types.PageID, props model.Properties) error
}
