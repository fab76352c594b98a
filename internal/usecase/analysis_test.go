package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

func TestAnalyze(t *testing.T) {
	records := []domain.RepositoryRecord{
		{Name: "besser", Description: "A low-code platform for smart software"},
		{Name: "plantuml", Description: "Diagrams from text", Topics: []string{"plantuml", "uml"}},
		{Name: "modeler", Description: "An ai assisted modeling tool"},
		{Name: "maintainer-tools", Description: "Scripts to maintain repositories"},
	}

	results := Analyze(records, DefaultCategories())
	require.Len(t, results, 5)

	byName := make(map[string]CategoryResult)
	for _, r := range results {
		byName[r.Category] = r
	}

	lowcode := byName["lowcode"]
	require.Len(t, lowcode.Matching, 1)
	assert.Equal(t, "besser", lowcode.Matching[0].Name)
	assert.Equal(t, 3, lowcode.NonMatching)

	plantuml := byName["plantuml"]
	require.Len(t, plantuml.Matching, 1)
	assert.Equal(t, "plantuml", plantuml.Matching[0].Name)

	// "ai" matches only as a separate word: "an ai assisted" counts,
	// "maintain" does not.
	ai := byName["ai"]
	require.Len(t, ai.Matching, 1)
	assert.Equal(t, "modeler", ai.Matching[0].Name)

	ocl := byName["ocl"]
	assert.Empty(t, ocl.Matching)
	assert.Equal(t, len(records), ocl.NonMatching)
}

func TestAnalyze_TopicMatchIsExact(t *testing.T) {
	records := []domain.RepositoryRecord{
		{Name: "x", Topics: []string{"Low-Code"}},
		{Name: "y", Topics: []string{"low-code-adjacent"}},
	}
	categories := []Category{{Name: "lowcode", Keywords: []string{"low-code"}}}

	results := Analyze(records, categories)
	require.Len(t, results, 1)
	require.Len(t, results[0].Matching, 1)
	assert.Equal(t, "x", results[0].Matching[0].Name)
}
