package providers

import (
	"context"
	"strings"
	"unicode/utf8"
)

// AuthProvider turns the token a client presents at login (or in an
// Authorization header) into the identity it plays under.
type AuthProvider interface {
	VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error)
}

// TokenClaims identify a verified player. Name is what the lobby and the
// scoreboard show.
type TokenClaims struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// displayName trims name and cuts it to MaxGuestNameLength runes.
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxGuestNameLength {
		return name
	}
	return string([]rune(name)[:MaxGuestNameLength])
}
