package usecase

import (
	"context"
	"sync"

	"github.com/tesso57/myshelf/internal/domain/catalog"
	"github.com/tesso57/myshelf/internal/domain/member"
	"github.com/tesso57/myshelf/internal/domain/personalization"
	"github.com/tesso57/myshelf/internal/logging"
)

// CatalogPhase is the catalog side of the home screen state.
type CatalogPhase int

const (
	CatalogIdle CatalogPhase = iota
	CatalogLoading
	CatalogReady
	CatalogFailed
)

// ProfilePhase is the profile side of the home screen state.
type ProfilePhase int

const (
	ProfileUnknown ProfilePhase = iota
	ProfileSubscribed
	ProfileUpdated
)

// Section identifies a part of the home screen that depends on derived data.
type Section uint8

const (
	SectionHeader Section = 1 << iota
	SectionRecommended
	SectionNewReleases
)

// Sections is a set of sections that need re-rendering.
type Sections uint8

// AllSections marks the whole home screen for re-rendering.
const AllSections = Sections(SectionHeader | SectionRecommended | SectionNewReleases)

// Has reports whether sec is in the set.
func (s Sections) Has(sec Section) bool {
	return s&Sections(sec) != 0
}

func sections(secs ...Section) Sections {
	var out Sections
	for _, sec := range secs {
		out |= Sections(sec)
	}
	return out
}

// Activation identifies one entry into the home screen.
type Activation struct {
	Seq          uint64
	Subscription *ProfileSubscription
}

// CatalogResult is the outcome of one catalog fetch for an activation.
type CatalogResult struct {
	Activation uint64
	Snapshot   *catalog.Snapshot
	Err        error
}

// HomeView is what the home screen renders for the current state.
type HomeView struct {
	HeaderVisible      bool
	FirstName          string
	Badge              string
	BadgeLoading       bool
	Recommended        []catalog.Book
	RecommendedLoading bool
	NewReleases        []catalog.Book
	NewReleasesLoading bool
	CatalogErr         error
	ProfileErr         error
}

// FeedComposer owns the catalog cache, the profile cache and the profile
// subscription of one home screen, and keeps the derived feed current.
type FeedComposer struct {
	catalog  CatalogService
	profiles *ProfileService
	identity IdentityProvider
	logger   logging.Logger

	mu           sync.Mutex
	seq          uint64
	active       bool
	who          Identity
	sub          *ProfileSubscription
	catalogPhase CatalogPhase
	snapshot     *catalog.Snapshot
	catalogErr   error
	profilePhase ProfilePhase
	profile      member.State
	feed         personalization.Feed
}

// NewFeedComposer constructs a FeedComposer.
func NewFeedComposer(catalogSvc CatalogService, profiles *ProfileService, identity IdentityProvider, logger logging.Logger) *FeedComposer {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &FeedComposer{
		catalog:  catalogSvc,
		profiles: profiles,
		identity: identity,
		logger:   logger.With("component", "feed_composer"),
		profile:  member.UnavailableState(),
	}
	c.recompute()
	return c
}

// Enter starts a new activation: any previous subscription is cancelled
// before a new one is opened, and the catalog moves to loading while the last
// known snapshot stays visible. The caller runs FetchCatalog for the returned
// activation and drains its subscription.
func (c *FeedComposer) Enter(ctx context.Context) Activation {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelSubscriptionLocked()
	c.seq++
	c.active = true
	c.catalogPhase = CatalogLoading
	c.profilePhase = ProfileUnknown

	who, err := c.currentIdentity()
	if err != nil {
		c.who = Identity{}
		c.profile = member.UnavailableState()
		c.logger.Warn(ctx, "member identity unavailable", "kind", FailureKind(ErrIdentityUnavailable), "err", err)
		c.recompute()
		return Activation{Seq: c.seq}
	}

	c.who = who
	c.profile = member.LoadingState(who.MemberID)
	c.profile.Profile.FullName = who.FullName

	if c.profiles == nil {
		c.profile = member.FailedState(who.MemberID, ErrObserveFailure)
		c.recompute()
		return Activation{Seq: c.seq}
	}
	sub, err := c.profiles.Subscribe(context.WithoutCancel(ctx), who.MemberID)
	if err != nil {
		c.profile = member.FailedState(who.MemberID, err)
		c.profile.Profile.FullName = who.FullName
		c.logger.Warn(ctx, "profile subscription failed", "kind", FailureKind(err), "member", who.MemberID, "err", err)
		c.recompute()
		return Activation{Seq: c.seq}
	}
	c.sub = sub
	c.profilePhase = ProfileSubscribed
	c.recompute()
	return Activation{Seq: c.seq, Subscription: sub}
}

// Leave tears the screen down. The profile subscription is cancelled before
// Leave returns; catalog results still in flight are discarded on arrival.
func (c *FeedComposer) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelSubscriptionLocked()
	c.active = false
}

// FetchCatalog performs the blocking catalog read for an activation. It does
// not touch composer state and may run off the rendering path.
func (c *FeedComposer) FetchCatalog(ctx context.Context, seq uint64) CatalogResult {
	snapshot, err := c.catalog.Fetch(ctx)
	return CatalogResult{Activation: seq, Snapshot: snapshot, Err: err}
}

// ApplyCatalog folds a fetch result into the cache. Fetches of earlier
// activations are not cancelled, so the last successful one to complete
// wins. A failure keeps the last known snapshot and only settles the phase
// for the current activation. Results arriving after Leave are ignored.
func (c *FeedComposer) ApplyCatalog(res CatalogResult) Sections {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		c.logger.Debug(context.Background(), "discarding catalog result", "activation", res.Activation, "current", c.seq)
		return 0
	}
	current := res.Activation == c.seq
	if res.Err != nil || res.Snapshot == nil {
		c.logger.Warn(context.Background(), "catalog fetch failed",
			"kind", FailureKind(res.Err), "activation", res.Activation, "cached_books", c.snapshot.Len(), "err", res.Err)
		if !current {
			return 0
		}
		c.catalogErr = res.Err
		c.catalogPhase = CatalogFailed
	} else {
		c.snapshot = res.Snapshot
		c.catalogErr = nil
		if current || c.catalogPhase != CatalogLoading {
			c.catalogPhase = CatalogReady
		}
	}
	c.recompute()
	return sections(SectionRecommended, SectionNewReleases)
}

// ApplyProfile folds one profile state into the cache. Only the header and
// the recommended list depend on it; the catalog is never re-fetched.
func (c *FeedComposer) ApplyProfile(seq uint64, state member.State) Sections {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || seq != c.seq {
		return 0
	}
	if state.Profile.FullName == "" {
		state.Profile.FullName = c.who.FullName
	}
	if state.Status == member.Failed {
		c.logger.Warn(context.Background(), "profile unavailable, using defaults",
			"kind", FailureKind(state.Err), "member", state.Profile.MemberID, "err", state.Err)
	}
	c.profile = state
	c.profilePhase = ProfileUpdated
	c.recompute()
	return sections(SectionHeader, SectionRecommended)
}

// View returns the screen state with loading placeholders for whatever side
// is not yet available.
func (c *FeedComposer) View() HomeView {
	c.mu.Lock()
	defer c.mu.Unlock()

	catalogPending := c.snapshot == nil && (c.catalogPhase == CatalogIdle || c.catalogPhase == CatalogLoading)
	profilePending := c.profile.Status == member.Loading

	v := HomeView{
		HeaderVisible:      c.profile.Status != member.Unavailable,
		FirstName:          member.ParseName(c.profile.Profile.FullName).First,
		Badge:              c.feed.BadgeText,
		BadgeLoading:       profilePending,
		Recommended:        c.feed.Recommended,
		RecommendedLoading: catalogPending || profilePending,
		NewReleases:        c.feed.NewReleases,
		NewReleasesLoading: catalogPending,
		CatalogErr:         c.catalogErr,
		ProfileErr:         c.profile.Err,
	}
	return v
}

// Phases returns the two halves of the screen state machine.
func (c *FeedComposer) Phases() (CatalogPhase, ProfilePhase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalogPhase, c.profilePhase
}

// Feed returns the current derived feed.
func (c *FeedComposer) Feed() personalization.Feed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feed
}

// Profile returns the cached profile state.
func (c *FeedComposer) Profile() member.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Seq returns the current activation sequence.
func (c *FeedComposer) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Active reports whether the screen is entered.
func (c *FeedComposer) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *FeedComposer) currentIdentity() (Identity, error) {
	if c.identity == nil {
		return Identity{}, ErrIdentityUnavailable
	}
	who, err := c.identity.Current()
	if err != nil {
		return Identity{}, err
	}
	if who.MemberID == "" {
		return Identity{}, ErrIdentityUnavailable
	}
	return who, nil
}

func (c *FeedComposer) cancelSubscriptionLocked() {
	if c.sub != nil {
		c.sub.Cancel()
		c.sub = nil
	}
}

func (c *FeedComposer) recompute() {
	c.feed = personalization.Resolve(c.profile, c.snapshot)
}
