// Package personalization derives the per-member home feed from a profile and the catalog.
package personalization

import (
	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/member"
)

const (
	// PremiumBadge is shown for premium members.
	PremiumBadge = "Premium Member"
	// BasicBadge is shown for everyone else, including when the profile could not be read.
	BasicBadge = "Basic Member"
)

// Feed is the derived, never persisted home feed.
type Feed struct {
	Recommended  []catalog.Book
	NewReleases  []catalog.Book
	BadgeText    string
	BadgeVisible bool
}

// Resolve computes the feed for one profile state and catalog snapshot.
// A nil snapshot means the catalog is unavailable. Resolve performs no I/O and
// never retains or mutates its inputs.
func Resolve(state member.State, snapshot *catalog.Snapshot) Feed {
	fields := state.Fields()
	feed := Feed{
		Recommended:  Recommend(fields, snapshot),
		NewReleases:  snapshot.Books(),
		BadgeText:    BadgeText(fields.IsPremium),
		BadgeVisible: state.Status != member.Unavailable,
	}
	if feed.NewReleases == nil {
		feed.NewReleases = []catalog.Book{}
	}
	return feed
}

// Recommend returns the books whose genre equals the profile's last-read genre
// exactly, in snapshot order. Without a genre nothing is recommended.
func Recommend(profile member.Profile, snapshot *catalog.Snapshot) []catalog.Book {
	if !profile.HasGenre() || snapshot == nil {
		return []catalog.Book{}
	}
	genre := profile.LastReadGenre
	return snapshot.Filter(func(b catalog.Book) bool {
		return b.Genre == genre
	})
}

// BadgeText returns the membership badge label.
func BadgeText(isPremium bool) string {
	if isPremium {
		return PremiumBadge
	}
	return BasicBadge
}
