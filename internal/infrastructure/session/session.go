// Package session resolves the current member identity, either from static
// configuration or from a signed session token.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tesso57/myshelf/internal/application/settings"
	"github.com/tesso57/myshelf/internal/application/usecase"
)

// Static reports a configured member.
type Static struct {
	MemberID string
	FullName string
}

// Current implements usecase.IdentityProvider.
func (s Static) Current() (usecase.Identity, error) {
	id := strings.TrimSpace(s.MemberID)
	if id == "" {
		return usecase.Identity{}, usecase.ErrIdentityUnavailable
	}
	return usecase.Identity{MemberID: id, FullName: strings.TrimSpace(s.FullName)}, nil
}

// Claims are carried by a session token.
type Claims struct {
	Sub  string `json:"sub"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Token reports the member named by an HS256-signed token. An expired or
// tampered token means nobody is signed in.
type Token struct {
	Raw    string
	Secret string
}

// Current implements usecase.IdentityProvider.
func (t Token) Current() (usecase.Identity, error) {
	claims, err := ParseToken(t.Secret, t.Raw)
	if err != nil {
		return usecase.Identity{}, fmt.Errorf("%w: %w", usecase.ErrIdentityUnavailable, err)
	}
	return usecase.Identity{MemberID: claims.Sub, FullName: claims.Name}, nil
}

// FromSettings picks the provider for the session section. A token takes
// precedence over a configured member id.
func FromSettings(cfg settings.SessionConfig) usecase.IdentityProvider {
	if strings.TrimSpace(cfg.Token) != "" {
		return Token{Raw: strings.TrimSpace(cfg.Token), Secret: cfg.Secret}
	}
	return Static{MemberID: cfg.MemberID, FullName: cfg.MemberName}
}

// IssueToken signs a session token for memberID.
func IssueToken(secret, memberID, name string, ttl time.Duration) (string, error) {
	memberID = strings.TrimSpace(memberID)
	if memberID == "" {
		return "", fmt.Errorf("member id is required")
	}
	if secret == "" {
		return "", fmt.Errorf("session secret is required")
	}
	now := time.Now()
	c := Claims{
		Sub:  memberID,
		Name: strings.TrimSpace(name),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// ParseToken verifies tokenStr and returns its claims.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	if strings.TrimSpace(tokenStr) == "" {
		return nil, fmt.Errorf("session token is empty")
	}
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || strings.TrimSpace(claims.Sub) == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
