package usecase

// Identity is the current member as reported by the session provider.
type Identity struct {
	MemberID string
	FullName string
}

// IdentityProvider abstracts the external session provider. Current returns
// an error wrapping ErrIdentityUnavailable when nobody is signed in.
type IdentityProvider interface {
	Current() (Identity, error)
}
