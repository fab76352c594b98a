package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

// YearCount is the number of repositories whose first commit falls in Year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// LanguageCount is the number of repositories written mainly in Language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// StarSummary is a numeric summary of the star distribution.
type StarSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P90    float64 `json:"p90"`
}

// GlobalStats are the dashboard-wide aggregates: first-commit years,
// language counts, and the star distribution.
type GlobalStats struct {
	Total            int             `json:"total"`
	FirstCommitYears []YearCount     `json:"first_commit_years"`
	Languages        []LanguageCount `json:"languages"`
	Stars            StarSummary     `json:"stars"`
}

// ComputeStats aggregates records into GlobalStats. Records without a
// language are left out of the language counts, matching how the dashboard
// charts them.
func ComputeStats(records []domain.RepositoryRecord) (GlobalStats, error) {
	result := GlobalStats{
		Total:            len(records),
		FirstCommitYears: []YearCount{},
		Languages:        []LanguageCount{},
	}
	if len(records) == 0 {
		return result, nil
	}

	years := make(map[int]int)
	languages := make(map[string]int)
	starValues := make(stats.Float64Data, 0, len(records))
	for _, rec := range records {
		years[rec.FirstCommit.Year()]++
		if rec.Language != "" {
			languages[rec.Language]++
		}
		starValues = append(starValues, float64(rec.Stars))
	}

	for year, count := range years {
		result.FirstCommitYears = append(result.FirstCommitYears, YearCount{Year: year, Count: count})
	}
	sort.Slice(result.FirstCommitYears, func(i, j int) bool {
		return result.FirstCommitYears[i].Year < result.FirstCommitYears[j].Year
	})

	for language, count := range languages {
		result.Languages = append(result.Languages, LanguageCount{Language: language, Count: count})
	}
	sort.Slice(result.Languages, func(i, j int) bool {
		a, b := result.Languages[i], result.Languages[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Language < b.Language
	})

	var err error
	if result.Stars.Min, err = stats.Min(starValues); err != nil {
		return result, err
	}
	if result.Stars.Max, err = stats.Max(starValues); err != nil {
		return result, err
	}
	if result.Stars.Mean, err = stats.Mean(starValues); err != nil {
		return result, err
	}
	if result.Stars.Median, err = stats.Median(starValues); err != nil {
		return result, err
	}
	if result.Stars.P90, err = stats.Percentile(starValues, 90); err != nil {
		return result, err
	}
	return result, nil
}
