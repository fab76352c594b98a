package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of either data source.
type Kind string

const (
	// KindNetworkUnavailable covers connection failures and DNS errors
	// reaching the GitHub API.
	KindNetworkUnavailable Kind = "network_unavailable"
	// KindHTTPError covers non-2xx responses from the GitHub API.
	KindHTTPError Kind = "http_error"
	// KindTimeout covers a fetch that exceeded its deadline.
	KindTimeout Kind = "timeout"
	// KindMissingSnapshot means the snapshot file does not exist.
	KindMissingSnapshot Kind = "missing_snapshot_file"
	// KindMalformedRow means a snapshot row could not be parsed.
	KindMalformedRow Kind = "malformed_row"
)

// OpError is the error type returned by the gateway and the snapshot loader.
// Op names the failed operation, Kind classifies it, and the remaining fields
// carry kind-specific detail.
type OpError struct {
	Op     string
	Kind   Kind
	Status int    // HTTP status, set for KindHTTPError
	Path   string // file path, set for snapshot errors
	Row    int    // 1-based data row, set for KindMalformedRow
	Err    error
}

func (e *OpError) Error() string {
	switch e.Kind {
	case KindHTTPError:
		return fmt.Sprintf("%s: http status %d", e.Op, e.Status)
	case KindMalformedRow:
		return fmt.Sprintf("%s: row %d: %v", e.Op, e.Row, e.Err)
	case KindMissingSnapshot:
		return fmt.Sprintf("%s: %s: file not found", e.Op, e.Path)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *OpError) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or "" if err is not an OpError.
func KindOf(err error) Kind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}
