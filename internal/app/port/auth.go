package port

import "context"

// AuthService keeps the session's bearer token.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Logout() error
	// Restore loads a stored token and verifies it with the backend.
	Restore(ctx context.Context) error
	Token() (string, error)
	IsAuthenticated() bool
	// Invalidate drops a session the backend no longer accepts.
	Invalidate()
}
