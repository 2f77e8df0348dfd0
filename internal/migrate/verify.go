package migrate

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vaultdocs/vaultdocs/internal/storage"
)

// verifyConcurrency bounds the parallel file-existence checks.
const verifyConcurrency = 8

// VerifyResult reports the post-migration verification pass.
type VerifyResult struct {
	LegacyCount   int      `json:"legacy_count"`
	MigratedCount int      `json:"migrated_count"`
	MissingFiles  []string `json:"missing_files,omitempty"`
	OK            bool     `json:"ok"`
}

// Verify compares the legacy active-document count against the migrated
// count and confirms every migrated file path resolves to a stored object.
// It reports success only when nothing is missing and at least one
// document was migrated.
func (r *Runner) Verify(ctx context.Context) (*VerifyResult, error) {
	legacyCount, err := r.source.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	repos := r.store.Repos()
	migrated, err := repos.Documents.CountActive(ctx, "")
	if err != nil {
		return nil, err
	}
	paths, err := repos.Documents.ActiveFilePaths(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		missing []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)
	for _, p := range paths {
		g.Go(func() error {
			_, err := r.blobs.Stat(gctx, p)
			if errors.Is(err, storage.ErrObjectNotFound) {
				mu.Lock()
				missing = append(missing, p)
				mu.Unlock()
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &VerifyResult{
		LegacyCount:   legacyCount,
		MigratedCount: migrated,
		MissingFiles:  missing,
		OK:            migrated > 0 && len(missing) == 0,
	}
	return res, nil
}
