// Package usecase contains application-level services.
package usecase

import "errors"

// Failure taxonomy. Every one of these is recovered into a degraded screen state.
var (
	// ErrFetchFailure means the catalog could not be read.
	ErrFetchFailure = errors.New("catalog fetch failed")
	// ErrObserveFailure means the profile document is unreachable, missing or forbidden.
	ErrObserveFailure = errors.New("profile observe failed")
	// ErrIdentityUnavailable means there is no current member.
	ErrIdentityUnavailable = errors.New("member identity unavailable")
)

// FailureKind names the taxonomy entry of err for logs.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIdentityUnavailable):
		return "IdentityUnavailable"
	case errors.Is(err, ErrObserveFailure):
		return "ObserveFailure"
	case errors.Is(err, ErrFetchFailure):
		return "FetchFailure"
	default:
		return "Unknown"
	}
}
