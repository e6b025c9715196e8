package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid identity token")
)

// IdentityClaims is the verified identity the external provider asserts.
// Subject carries the opaque external id; this backend only maps it to an
// account row and never issues end-user tokens itself.
type IdentityClaims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// Verifier checks a bearer token against the identity provider contract:
// verifyIdentity(token) -> {externalId, email, displayName} | nil.
type Verifier interface {
	VerifyIdentity(token string) (*IdentityClaims, error)
}

// HSVerifier validates HS256 tokens signed with the secret shared with the
// identity provider.
type HSVerifier struct {
	secret []byte
	issuer string
}

func NewHSVerifier(secret, issuer string) *HSVerifier {
	return &HSVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *HSVerifier) VerifyIdentity(tokenStr string) (*IdentityClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SignIdentityToken mints a token the verifier accepts. Used by ops
// tooling and tests; production tokens come from the provider.
func SignIdentityToken(secret, issuer, externalID, email, displayName string, ttl time.Duration) (string, error) {
	claims := &IdentityClaims{
		Email:       email,
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   externalID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
