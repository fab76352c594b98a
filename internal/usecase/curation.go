package usecase

import (
	"time"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

// ExcludeNames removes records whose name appears in the editorial exclusion
// list. Order of the remaining records is preserved.
func ExcludeNames(records []domain.RepositoryRecord, names []string) []domain.RepositoryRecord {
	if len(names) == 0 {
		return records
	}
	excluded := make(map[string]struct{}, len(names))
	for _, name := range names {
		excluded[name] = struct{}{}
	}
	kept := make([]domain.RepositoryRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := excluded[rec.Name]; ok {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// FilterRecords keeps records with at least minStars stars and a last commit
// on or after updatedSince. A zero updatedSince disables the date cutoff.
func FilterRecords(records []domain.RepositoryRecord, minStars int, updatedSince time.Time) []domain.RepositoryRecord {
	kept := make([]domain.RepositoryRecord, 0, len(records))
	for _, rec := range records {
		if rec.Stars < minStars {
			continue
		}
		if !updatedSince.IsZero() && rec.LastUpdated.Before(updatedSince) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}
