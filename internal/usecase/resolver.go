// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
	"github.com/jcabot/uml-tools-dashboard/internal/gateway"
)

// SnapshotLoader loads the bundled CSV backup.
type SnapshotLoader interface {
	Load() ([]domain.RepositoryRecord, error)
}

// Source names the data path a dashboard load took.
type Source string

const (
	SourceLive     Source = "live"
	SourceSnapshot Source = "snapshot"
)

// Result is one resolved dashboard load: the records, where they came from,
// and the notices to show the user.
type Result struct {
	Source  Source                    `json:"source"`
	Notices []Notice                  `json:"notices"`
	Records []domain.RepositoryRecord `json:"records"`
}

// Resolver is the use case behind every dashboard load. It attempts a single
// live fetch with a bounded timeout and degrades to the snapshot on any
// API-side failure or an empty live result. Snapshot-side failures are
// terminal: the caller gets an error and no partial data.
type Resolver struct {
	searcher gateway.Searcher
	loader   SnapshotLoader
	excluded []string
	timeout  time.Duration
	logger   *log.Logger
}

// NewResolver creates a new Resolver instance. excluded lists repository
// names curated out of the dashboard regardless of source.
func NewResolver(searcher gateway.Searcher, loader SnapshotLoader, excluded []string, timeout time.Duration, logger *log.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		loader:   loader,
		excluded: excluded,
		timeout:  timeout,
		logger:   logger,
	}
}

// Resolve performs the fetch-or-fallback flow for one dashboard load.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := r.searcher.SearchRepositories(ctx, query)
	if err == nil && len(records) > 0 {
		r.logger.Printf("Resolved %d repositories from the live API.", len(records))
		return &Result{
			Source:  SourceLive,
			Notices: []Notice{LiveSuccess(len(records))},
			Records: ExcludeNames(records, r.excluded),
		}, nil
	}

	// Any fetch failure is a uniform "unavailable" condition; an empty live
	// result is treated the same way.
	var notices []Notice
	if err != nil {
		r.logger.Printf("Live fetch failed, falling back to snapshot: %v", err)
		notices = append(notices, FetchFailure(err))
	} else {
		r.logger.Println("Live fetch returned no repositories, falling back to snapshot.")
	}
	notices = append(notices, FallbackWarning())

	snap, err := r.loader.Load()
	if err != nil {
		r.logger.Printf("Snapshot load failed: %v", err)
		return nil, err
	}

	notices = append(notices, FallbackSuccess(len(snap)))
	r.logger.Printf("Resolved %d repositories from the snapshot.", len(snap))
	return &Result{
		Source:  SourceSnapshot,
		Notices: notices,
		Records: ExcludeNames(snap, r.excluded),
	}, nil
}

// SearchQuery builds the GitHub search expression for the dashboard: the
// editorial base query restricted to a star floor and recent activity.
func SearchQuery(base string, minStars int, activityWindow time.Duration, now time.Time) string {
	cutoff := now.Add(-activityWindow).Format(domain.DateLayout)
	return fmt.Sprintf("%s stars:>=%d pushed:>=%s", base, minStars, cutoff)
}
