package auth

import (
	"context"
	"fmt"

	"taskhub/internal/config"
)

// Identity is the claim set extracted from a verified bearer token.
// Subject and Email are always present; Name may be empty.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks an externally-issued bearer token. Verification is
// pure: it never touches the user store.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// NewVerifier builds the verifier selected by configuration.
func NewVerifier(ctx context.Context, cfg config.AuthConfig) (Verifier, error) {
	switch cfg.Mode {
	case "oidc":
		return NewOIDCVerifier(ctx, cfg.IssuerURL, cfg.ClientID)
	case "hs256":
		return NewJWTVerifier(cfg.JWTSecret)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
