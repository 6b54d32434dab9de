package shelfstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/tesso57/myshelf/internal/application/usecase"
	"github.com/tesso57/myshelf/internal/domain/member"
	"github.com/tesso57/myshelf/internal/infrastructure/docstore"
)

// Members observes and updates member profile documents.
type Members struct {
	Store docstore.Store
}

// WatchProfile converts document changes into profile events.
func (m Members) WatchProfile(ctx context.Context, memberID string) (<-chan usecase.ProfileEvent, error) {
	changes, err := m.Store.Watch(ctx, docstore.Members, memberID)
	if err != nil {
		return nil, err
	}
	out := make(chan usecase.ProfileEvent)
	go func() {
		defer close(out)
		for change := range changes {
			ev := toProfileEvent(memberID, change)
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Profile reads a member once.
func (m Members) Profile(ctx context.Context, memberID string) (member.Profile, error) {
	doc, err := m.Store.Get(ctx, docstore.Members, memberID)
	if err != nil {
		return member.Profile{}, err
	}
	return decodeProfile(doc), nil
}

// ProfileUpdate lists the fields to change; nil fields are left alone.
type ProfileUpdate struct {
	FullName      *string
	IsPremium     *bool
	LastReadGenre *string
}

// Update merges the given fields into the member document.
func (m Members) Update(ctx context.Context, memberID string, upd ProfileUpdate) (member.Profile, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return member.Profile{}, fmt.Errorf("member id is required")
	}
	fields := map[string]any{}
	if upd.FullName != nil {
		fields["fullname"] = strings.TrimSpace(*upd.FullName)
	}
	if upd.IsPremium != nil {
		fields["is_premium"] = *upd.IsPremium
	}
	if upd.LastReadGenre != nil {
		fields["lastReadGenre"] = strings.TrimSpace(*upd.LastReadGenre)
	}
	if len(fields) == 0 {
		return member.Profile{}, fmt.Errorf("nothing to update")
	}
	doc, err := m.Store.Merge(ctx, docstore.Members, memberID, fields)
	if err != nil {
		return member.Profile{}, err
	}
	return decodeProfile(doc), nil
}

func toProfileEvent(memberID string, change docstore.Change) usecase.ProfileEvent {
	switch {
	case change.Err != nil:
		return usecase.ProfileEvent{Err: change.Err}
	case !change.Exists:
		return usecase.ProfileEvent{Missing: true}
	default:
		p := decodeProfile(change.Document)
		p.MemberID = memberID
		return usecase.ProfileEvent{Profile: p}
	}
}

func decodeProfile(doc docstore.Document) member.Profile {
	premium, _ := boolField(doc.Data, "is_premium", "isPremium")
	return member.Profile{
		MemberID:      doc.ID,
		FullName:      stringField(doc.Data, "fullname"),
		IsPremium:     premium,
		LastReadGenre: rawStringField(doc.Data, "lastReadGenre"),
	}
}
