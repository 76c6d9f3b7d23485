package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the API's JWT payload the client displays.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// PeekClaims decodes the payload of token without checking its signature or
// expiry. The result is informational only and must never gate access.
func PeekClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token claims: %w", err)
	}
	return claims, nil
}
