package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mi-wada/todo-api/internal/model"
)

// defaultTokenLifetime is how long an issued access token stays valid.
// There is no refresh or revocation mechanism: the lifetime is fixed at
// issuance and the token is honored until it expires.
const defaultTokenLifetime = 12 * time.Hour

// Decode failure classification.
//
// Only two causes are distinguished: a well-signed token whose expiry has
// passed, and everything else. Bad signature, malformed structure, and an
// unexpected algorithm all collapse into ErrTokenTampered so a caller (or an
// attacker reading responses) cannot learn which check failed. The true
// cause is still available for logs via errors.Is on the wrapped jwt error.
var (
	ErrTokenExpired  = errors.New("auth: token expired")
	ErrTokenTampered = errors.New("auth: token tampered")
)

// TokenService encodes and decodes signed access tokens.
//
// Tokens are JWTs: base64url(header).base64url(payload).base64url(signature)
// with an HMAC-SHA256 signature over header‖"."‖payload. The payload carries
// exactly two claims, the subject (user ID) and the expiry. The server
// verifies a token with the secret alone — no store lookup needed.
//
// The secret is injected at construction and held for the process lifetime;
// it is never read from ambient state, so two services with distinct secrets
// can coexist (which is also what makes the codec testable).
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given signing secret.
// The secret should be at least 32 bytes of random data in production,
// e.g. $(openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: token secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the token payload: {"sub": "<user id>", "exp": <unix seconds>}.
// Nothing else goes in — no issuer, no audience, no custom fields.
type claims struct {
	jwt.RegisteredClaims
}

// Generate issues a signed access token for userID, expiring
// defaultTokenLifetime from now.
func (s *TokenService) Generate(userID model.ID) (string, error) {
	return s.GenerateWithExpiry(userID, time.Now().Add(defaultTokenLifetime))
}

// GenerateWithExpiry issues a signed access token with an explicit expiry.
// Used by tests to mint already-expired or short-lived tokens.
func (s *TokenService) GenerateWithExpiry(userID model.ID, expiry time.Time) (string, error) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Decode verifies a token and returns the user ID from its subject claim.
//
// The signature is re-verified over the received header and payload before
// any claim is trusted; only then is expiry checked. Failures map to exactly
// two values: ErrTokenExpired when the signature is valid but exp is in the
// past, ErrTokenTampered for everything else.
func (s *TokenService) Decode(tokenStr string) (model.ID, error) {
	token, err := s.parse(tokenStr)
	if err != nil {
		// The jwt parser verifies the signature before validating claims, so
		// ErrTokenExpired here implies the signature already checked out.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.ID{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return model.ID{}, fmt.Errorf("%w: %w", ErrTokenTampered, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.Subject == "" {
		return model.ID{}, ErrTokenTampered
	}

	return model.RestoreID(c.Subject), nil
}

// parse runs signature verification and claim validation, returning the raw
// jwt errors. Decode collapses them into the two public sentinels.
func (s *TokenService) parse(tokenStr string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
}
