package interfaces

import (
	"context"

	"github.com/m-kurosawa/ahasync/pkg/domain/model"
)

// SyncUseCase runs one full incremental synchronization
type SyncUseCase interface {
	// Run executes the sync and returns the run summary. The returned
	// error is non-nil only for fatal failures (index build, source
	// release listing); per-record failures are absorbed into the
	// summary's error counters.
	Run(ctx context.Context) (*model.RunSummary, error)
}
