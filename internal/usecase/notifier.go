package usecase

import (
	"errors"
	"fmt"

	"github.com/jcabot/uml-tools-dashboard/internal/domain"
)

// Severity grades a user-visible status message.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Notice is a short human-readable status message describing which data path
// was taken. Notices are plain values for the caller to display; producing
// one has no side effects.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// LiveSuccess reports a successful load from the GitHub API.
func LiveSuccess(count int) Notice {
	return Notice{Severity: SeveritySuccess, Message: fmt.Sprintf("Fetched %d repositories from the GitHub API.", count)}
}

// FetchFailure describes why the live fetch failed. HTTP errors surface their
// status code; everything else surfaces the underlying error.
func FetchFailure(err error) Notice {
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Kind == domain.KindHTTPError {
		return Notice{Severity: SeverityError, Message: fmt.Sprintf("Error fetching data from GitHub API: %d", oe.Status)}
	}
	return Notice{Severity: SeverityError, Message: fmt.Sprintf("GitHub API request failed: %v", err)}
}

// FallbackWarning announces the switch to the snapshot.
func FallbackWarning() Notice {
	return Notice{Severity: SeverityWarning, Message: "GitHub API is unavailable. Loading data from snapshot.csv instead."}
}

// FallbackSuccess reports a successful load from the snapshot.
func FallbackSuccess(count int) Notice {
	return Notice{Severity: SeveritySuccess, Message: fmt.Sprintf("Loaded %d repositories from snapshot data.", count)}
}

// SnapshotFailure describes a terminal failure: the API was unavailable and
// the snapshot could not be loaded either.
func SnapshotFailure(err error) Notice {
	if domain.KindOf(err) == domain.KindMissingSnapshot {
		return Notice{Severity: SeverityError, Message: "GitHub API failed and no snapshot.csv file found."}
	}
	return Notice{Severity: SeverityError, Message: fmt.Sprintf("Failed to load snapshot data: %v", err)}
}
