package ports

import "context"

// AuthResult is returned by a successful login.
type AuthResult struct {
	Token     string
	TokenType string // always "Bearer"
	ExpiresIn int    // seconds until the token expires
	Username  string
	Role      string
}

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Username string
	Role     string
	UserID   int64
}

// AuthService validates credentials and issues/verifies bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	// ParseToken verifies signature and structure, including expiry.
	ParseToken(token string) (*TokenClaims, error)
	// IsValid reports whether token parses and has not expired.
	IsValid(token string) bool
}
