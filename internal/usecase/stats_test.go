package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

func TestComputeStats(t *testing.T) {
	day := func(year int) time.Time { return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC) }
	records := []domain.RepositoryRecord{
		{Name: "a", Stars: 100, FirstCommit: day(2014), Language: "Java"},
		{Name: "b", Stars: 200, FirstCommit: day(2014), Language: "TypeScript"},
		{Name: "c", Stars: 300, FirstCommit: day(2020), Language: "Java"},
		{Name: "d", Stars: 400, FirstCommit: day(2021)},
	}

	result, err := ComputeStats(records)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, []YearCount{{2014, 2}, {2020, 1}, {2021, 1}}, result.FirstCommitYears)
	// Languages sorted by count descending, then name; no-language records excluded.
	assert.Equal(t, []LanguageCount{{"Java", 2}, {"TypeScript", 1}}, result.Languages)

	assert.Equal(t, 100.0, result.Stars.Min)
	assert.Equal(t, 400.0, result.Stars.Max)
	assert.Equal(t, 250.0, result.Stars.Mean)
	assert.Equal(t, 250.0, result.Stars.Median)
}

func TestComputeStats_Empty(t *testing.T) {
	result, err := ComputeStats(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.FirstCommitYears)
	assert.Empty(t, result.Languages)
	assert.Zero(t, result.Stars)
}
