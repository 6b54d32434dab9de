package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tesso57/myshelf/internal/domain/member"
	"github.com/tesso57/myshelf/internal/logging"
)

// ProfileEvent is one observation of a member document.
type ProfileEvent struct {
	Profile member.Profile
	Missing bool
	Err     error
}

// ProfileSource abstracts live observation of member documents. The returned
// channel delivers events in commit order and closes when ctx is done.
type ProfileSource interface {
	WatchProfile(ctx context.Context, memberID string) (<-chan ProfileEvent, error)
}

// ProfileService opens profile subscriptions and tracks which are live.
type ProfileService struct {
	Source ProfileSource
	Logger logging.Logger

	mu     sync.Mutex
	active map[string]*ProfileSubscription
}

// NewProfileService constructs a ProfileService.
func NewProfileService(source ProfileSource, logger logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Nop()
	}
	return new(ProfileService{
		Source: source,
		Logger: logger,
		active: make(map[string]*ProfileSubscription),
	})
}

// Subscribe opens a live subscription to memberID's profile. The caller owns
// the returned handle and must Cancel it on teardown.
func (s *ProfileService) Subscribe(ctx context.Context, memberID string) (*ProfileSubscription, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return nil, ErrIdentityUnavailable
	}
	if s.Source == nil {
		return nil, fmt.Errorf("%w: profile source is not configured", ErrObserveFailure)
	}

	subCtx, cancel := context.WithCancel(ctx)
	events, err := s.Source.WatchProfile(subCtx, memberID)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrObserveFailure, err)
	}

	sub := &ProfileSubscription{
		id:       uuid.NewString(),
		memberID: memberID,
		updates:  make(chan member.State, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	sub.release = func() { s.release(sub.id) }

	s.mu.Lock()
	if s.active == nil {
		s.active = make(map[string]*ProfileSubscription)
	}
	s.active[sub.id] = sub
	s.mu.Unlock()

	s.Logger.Debug(ctx, "profile subscription opened", "subscription", sub.id, "member", memberID)
	go sub.forward(subCtx, events)
	return sub, nil
}

// Active returns the number of subscriptions that have not been cancelled.
func (s *ProfileService) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *ProfileService) release(id string) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
	s.Logger.Debug(context.Background(), "profile subscription cancelled", "subscription", id)
}

// ProfileSubscription is an owned handle on a live profile observation.
type ProfileSubscription struct {
	id       string
	memberID string
	updates  chan member.State
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
	release  func()
}

// ID returns the subscription identifier.
func (s *ProfileSubscription) ID() string { return s.id }

// MemberID returns the observed member.
func (s *ProfileSubscription) MemberID() string { return s.memberID }

// Updates delivers profile states in commit order. It closes after Cancel or
// when the underlying observation ends.
func (s *ProfileSubscription) Updates() <-chan member.State { return s.updates }

// Cancel stops the observation and returns once no further state will be
// delivered. It is safe to call more than once.
func (s *ProfileSubscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		<-s.done
		if s.release != nil {
			s.release()
		}
	})
}

func (s *ProfileSubscription) forward(ctx context.Context, events <-chan ProfileEvent) {
	defer close(s.done)
	defer close(s.updates)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			select {
			case s.updates <- s.toState(ev):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *ProfileSubscription) toState(ev ProfileEvent) member.State {
	switch {
	case ev.Err != nil:
		return member.FailedState(s.memberID, fmt.Errorf("%w: %w", ErrObserveFailure, ev.Err))
	case ev.Missing:
		return member.FailedState(s.memberID, fmt.Errorf("%w: member %s does not exist", ErrObserveFailure, s.memberID))
	default:
		p := ev.Profile
		p.MemberID = s.memberID
		return member.LoadedState(p)
	}
}
