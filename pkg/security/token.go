package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Token scopes. A token issued for one purpose is never accepted
// for the other, even though both share the signing secret.
const (
	ScopeSession      = "session"
	ScopeConfirmation = "confirm"
)

type tokenClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenMaker issues and validates the two kinds of signed tokens the
// app hands out: short-lived session tokens (subject = username) and
// 7-day email confirmation tokens (subject = email address). Tokens
// are never stored, validity is purely signature + time based.
type TokenMaker struct {
	secret     []byte
	ttl        time.Duration
	confirmTTL time.Duration
}

func NewTokenMaker() *TokenMaker {
	return &TokenMaker{
		secret:     []byte(viper.GetString("jwt.secret")),
		ttl:        time.Duration(viper.GetInt("jwt.ttl")) * time.Second,
		confirmTTL: time.Duration(viper.GetInt("jwt.confirm_ttl_days")) * 24 * time.Hour,
	}
}

// IssueSession returns a signed bearer token for the given username.
func (m *TokenMaker) IssueSession(username string) (string, error) {
	return m.issue(username, ScopeSession, m.ttl)
}

// IssueConfirmation returns the long-lived token embedded in
// confirmation mail links.
func (m *TokenMaker) IssueConfirmation(email string) (string, error) {
	return m.issue(email, ScopeConfirmation, m.confirmTTL)
}

func (m *TokenMaker) issue(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(m.secret)
}

// Subject validates a token issued for the given scope and returns its
// subject claim. Expired or not-yet-valid tokens are rejected with
// ErrTokenExpired, anything else wrong with the token yields
// ErrInvalidToken.
func (m *TokenMaker) Subject(tokenStr, scope string) (string, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenUsedBeforeIssued) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.Scope != scope {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
