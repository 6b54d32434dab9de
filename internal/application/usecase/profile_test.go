package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/tesso57/myshelf/internal/domain/member"
)

func TestSubscribeRequiresMember(t *testing.T) {
	svc := NewProfileService(&fakeProfileSource{}, nil)
	if _, err := svc.Subscribe(context.Background(), "  "); !errors.Is(err, ErrIdentityUnavailable) {
		t.Fatalf("expected ErrIdentityUnavailable, got %v", err)
	}
	if svc.Active() != 0 {
		t.Fatal("no subscription should be active")
	}
}

func TestSubscribeSourceFailure(t *testing.T) {
	svc := NewProfileService(&fakeProfileSource{err: errors.New("permission denied")}, nil)
	if _, err := svc.Subscribe(context.Background(), "m1"); !errors.Is(err, ErrObserveFailure) {
		t.Fatalf("expected ErrObserveFailure, got %v", err)
	}
	if svc.Active() != 0 {
		t.Fatal("failed subscribe must not stay registered")
	}
}

func TestSubscriptionDeliversInCommitOrder(t *testing.T) {
	src := &fakeProfileSource{}
	svc := NewProfileService(src, nil)

	sub, err := svc.Subscribe(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	w := src.watch(t, 0)
	w.push(ProfileEvent{Profile: member.Profile{LastReadGenre: "Fantasy"}})
	w.push(ProfileEvent{Profile: member.Profile{LastReadGenre: "Mystery", IsPremium: true}})
	w.push(ProfileEvent{Profile: member.Profile{LastReadGenre: "Mystery", IsPremium: true}})

	first := nextState(t, sub)
	second := nextState(t, sub)
	third := nextState(t, sub)

	if first.Status != member.Loaded || first.Profile.LastReadGenre != "Fantasy" || first.Profile.MemberID != "m1" {
		t.Fatalf("first = %#v", first)
	}
	if second.Profile.LastReadGenre != "Mystery" || !second.Profile.IsPremium {
		t.Fatalf("second = %#v", second)
	}
	if third.Profile != second.Profile {
		t.Fatalf("duplicate emission should be delivered as-is, got %#v", third)
	}
}

func TestSubscriptionMapsFailures(t *testing.T) {
	src := &fakeProfileSource{}
	svc := NewProfileService(src, nil)
	sub, err := svc.Subscribe(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	defer sub.Cancel()

	w := src.watch(t, 0)
	w.push(ProfileEvent{Missing: true})
	w.push(ProfileEvent{Err: errors.New("offline")})

	missing := nextState(t, sub)
	if missing.Status != member.Failed || !errors.Is(missing.Err, ErrObserveFailure) {
		t.Fatalf("missing = %#v", missing)
	}
	failed := nextState(t, sub)
	if failed.Status != member.Failed || !errors.Is(failed.Err, ErrObserveFailure) {
		t.Fatalf("failed = %#v", failed)
	}
	if f := failed.Fields(); f.IsPremium || f.HasGenre() {
		t.Fatalf("failed state must default fields, got %#v", f)
	}
}

func TestCancelIsSynchronousAndIdempotent(t *testing.T) {
	src := &fakeProfileSource{}
	svc := NewProfileService(src, nil)
	sub, err := svc.Subscribe(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if svc.Active() != 1 {
		t.Fatalf("Active = %d, want 1", svc.Active())
	}
	if sub.ID() == "" || sub.MemberID() != "m1" {
		t.Fatalf("unexpected handle: id=%q member=%q", sub.ID(), sub.MemberID())
	}

	sub.Cancel()
	sub.Cancel()

	if svc.Active() != 0 {
		t.Fatalf("Active = %d after cancel, want 0", svc.Active())
	}
	expectClosed(t, sub)
	if src.watch(t, 0).push(ProfileEvent{}) {
		t.Fatal("source context should be cancelled")
	}
}

func TestCancelNilSubscription(t *testing.T) {
	var sub *ProfileSubscription
	sub.Cancel()
}
