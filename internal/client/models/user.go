// Package models defines the payloads exchanged with the trip-tracking API.
package models

// Object is a free-form JSON object, used for endpoints whose payload is
// defined by the server (registration and profile fields, manual paths) or
// whose response the client only relays.
type Object = map[string]any

// User is the signed-in user's profile as returned by the API.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token,omitempty"`
	Token       string `json:"token,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

// BearerToken returns whichever token field the server filled in.
func (r LoginResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}
