// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// RepositoryRecord describes one repository on the dashboard.
// It is the core domain entity of this application: every record exposes the
// same field set regardless of whether it came from the live GitHub API or
// from the bundled CSV snapshot, so rendering is source-agnostic.
// Records are built fresh on each load and never mutated afterwards.
type RepositoryRecord struct {
	Name        string    `json:"name"`
	Stars       int       `json:"stars"`
	LastUpdated time.Time `json:"last_updated"`
	FirstCommit time.Time `json:"first_commit"`
	URL         string    `json:"url"`
	Forks       int       `json:"forks"`
	OpenIssues  int       `json:"open_issues"`
	Language    string    `json:"language"`
	License     string    `json:"license"`
	Description string    `json:"description"`
	Topics      []string  `json:"topics"`
}

// DateLayout is the calendar-day format used for snapshot columns and
// user-facing dates.
const DateLayout = "2006-01-02"
