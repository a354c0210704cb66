// AngelaMos | 2026
// verifier.go

package auth

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/redis/go-redis/v9"

	"github.com/beanvoyage/storefront/internal/config"
	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/middleware"
)

const blacklistPrefix = "blacklist:"

// RevocationChecker reports whether a token id has been revoked by the
// identity provider before its natural expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Verifier checks ES256 access tokens minted by the identity provider.
// The storefront never signs tokens itself.
type Verifier struct {
	publicKey   jwk.Key
	issuer      string
	audience    string
	revocations RevocationChecker
}

func NewVerifier(cfg config.AuthConfig, rdb *redis.Client) (*Verifier, error) {
	publicKeyPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}

	publicKey, err := jwk.ParseKey(publicKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	var revocations RevocationChecker
	if rdb != nil {
		revocations = NewRedisRevocations(rdb)
	}

	return NewVerifierWithKey(publicKey, cfg.Issuer, cfg.Audience, revocations), nil
}

func NewVerifierWithKey(
	publicKey jwk.Key,
	issuer, audience string,
	revocations RevocationChecker,
) *Verifier {
	return &Verifier{
		publicKey:   publicKey,
		issuer:      issuer,
		audience:    audience,
		revocations: revocations,
	}
}

func (v *Verifier) Verify(
	ctx context.Context,
	tokenString string,
) (*middleware.Identity, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), v.publicKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	role := middleware.RoleCustomer
	var roleClaim string
	if err := token.Get("role", &roleClaim); err == nil && roleClaim != "" {
		role = roleClaim
	}

	tokenID, _ := token.JwtID()

	if tokenID != "" && v.revocations != nil {
		revoked, err := v.revocations.IsRevoked(ctx, tokenID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
		}
	}

	return &middleware.Identity{
		UserID:  subject,
		Role:    role,
		TokenID: tokenID,
	}, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

type redisRevocations struct {
	client *redis.Client
}

func NewRedisRevocations(client *redis.Client) RevocationChecker {
	return &redisRevocations{client: client}
}

func (r *redisRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("lookup blacklist: %w", err)
	}
	return n > 0, nil
}
