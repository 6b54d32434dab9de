// Package member defines member profile models and their observation state.
package member

import "strings"

// Profile holds the personalization fields of a member document.
// An empty LastReadGenre means the member has not read anything yet.
type Profile struct {
	MemberID      string
	FullName      string
	IsPremium     bool
	LastReadGenre string
}

// HasGenre reports whether a last-read genre is known. A blank genre counts
// as absent.
func (p Profile) HasGenre() bool {
	return strings.TrimSpace(p.LastReadGenre) != ""
}

// Status tags the observation state of a profile.
type Status int

const (
	// Unavailable means there is no current member to observe.
	Unavailable Status = iota
	// Loading means a subscription is open but nothing has been read yet.
	Loading
	// Loaded means Profile carries the latest committed document.
	Loaded
	// Failed means the document is missing or could not be read.
	Failed
)

func (s Status) String() string {
	switch s {
	case Unavailable:
		return "unavailable"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// State is the cached, possibly stale view of a member profile.
type State struct {
	Status  Status
	Profile Profile
	Err     error
}

// UnavailableState is the state used when no member identity exists.
func UnavailableState() State {
	return State{Status: Unavailable}
}

// LoadingState is the state right after subscribing.
func LoadingState(memberID string) State {
	return State{Status: Loading, Profile: Profile{MemberID: memberID}}
}

// LoadedState wraps a freshly read profile.
func LoadedState(p Profile) State {
	return State{Status: Loaded, Profile: p}
}

// FailedState records an observation failure for memberID.
func FailedState(memberID string, err error) State {
	return State{Status: Failed, Profile: Profile{MemberID: memberID}, Err: err}
}

// Fields returns the profile with defaults applied: anything other than a
// loaded document yields IsPremium=false and no genre.
func (s State) Fields() Profile {
	if s.Status == Loaded {
		return s.Profile
	}
	return Profile{MemberID: s.Profile.MemberID, FullName: s.Profile.FullName}
}

// Known reports whether personalization fields are settled, either read or defaulted after a failure.
func (s State) Known() bool {
	return s.Status == Loaded || s.Status == Failed
}

// Name is a full name split into its first token and the rest.
type Name struct {
	First string
	Last  string
}

// ParseName splits a full name on whitespace.
func ParseName(fullName string) Name {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return Name{}
	}
	return Name{First: parts[0], Last: strings.Join(parts[1:], " ")}
}

func (n Name) String() string {
	return strings.TrimSpace(n.First + " " + n.Last)
}
