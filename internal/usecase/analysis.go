package usecase

import (
	"strings"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

// Category is a cross-cutting concept the dashboard reports on: UML tools
// that also mention no-code, AI, and so on.
type Category struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultCategories returns the categories the dashboard analyses out of the
// box, with their keyword spellings.
func DefaultCategories() []Category {
	return []Category{
		{Name: "nocode", Keywords: []string{"nocode", "no-code", "no code"}},
		{Name: "lowcode", Keywords: []string{"lowcode", "low code", "low-code"}},
		{Name: "ai", Keywords: []string{"ai", "artificial intelligence"}},
		{Name: "plantuml", Keywords: []string{"plantuml", "plant uml", "plant-uml"}},
		{Name: "ocl", Keywords: []string{"ocl", "object-constraint-language", "object constraint language"}},
	}
}

// CategoryResult partitions the record set for one category.
type CategoryResult struct {
	Category    string                    `json:"category"`
	Matching    []domain.RepositoryRecord `json:"matching"`
	NonMatching int                       `json:"non_matching"`
}

// Analyze partitions records by category keyword match.
func Analyze(records []domain.RepositoryRecord, categories []Category) []CategoryResult {
	results := make([]CategoryResult, 0, len(categories))
	for _, cat := range categories {
		result := CategoryResult{Category: cat.Name, Matching: []domain.RepositoryRecord{}}
		for _, rec := range records {
			if matchesAny(rec, cat.Keywords) {
				result.Matching = append(result.Matching, rec)
			} else {
				result.NonMatching++
			}
		}
		results = append(results, result)
	}
	return results
}

// matchesAny reports whether any keyword appears in the record's description
// or name, or exactly equals one of its topics. The bare keyword "ai" only
// matches as a separate word (" ai " or " ai-"), otherwise words like
// "maintain" would count.
func matchesAny(rec domain.RepositoryRecord, keywords []string) bool {
	description := strings.ToLower(rec.Description)
	name := strings.ToLower(rec.Name)
	for _, keyword := range keywords {
		if matchesText(description, keyword) || matchesText(name, keyword) {
			return true
		}
		for _, topic := range rec.Topics {
			if keyword == strings.TrimSpace(strings.ToLower(topic)) {
				return true
			}
		}
	}
	return false
}

func matchesText(text, keyword string) bool {
	if keyword == "ai" {
		return strings.Contains(text, " ai ") || strings.Contains(text, " ai-")
	}
	return strings.Contains(text, keyword)
}
