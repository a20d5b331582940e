package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"

	"github.com/linesmerrill/scammer-blacklist/models"
)

const profilePictureExt = "profilePicture"

// Token errors
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)

// UserResolver resolves a login token to its user
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Authenticator is the auth provider of the web front end. It resolves tokens
// through the registry API and caches the result for the configured ttl.
type Authenticator struct {
	users    UserResolver
	strategy auth.Strategy
	secret   []byte
}

// NewAuthenticator sets up the go-guardian bearer strategy. When jwtSecret is
// set tokens must carry a valid HS256 signature.
func NewAuthenticator(ctx context.Context, users UserResolver, ttl time.Duration, jwtSecret string) *Authenticator {
	a := &Authenticator{users: users, secret: []byte(jwtSecret)}
	cache := store.NewFIFO(ctx, ttl)
	a.strategy = bearer.New(a.resolveUser, cache)
	return a
}

func (a *Authenticator) resolveUser(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	u, err := a.users.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return auth.NewDefaultUser(u.Username, u.ID, nil, map[string][]string{
		profilePictureExt: {u.ProfilePicture},
	}), nil
}

// Authenticate returns the user owning token
func (a *Authenticator) Authenticate(r *http.Request, token string) (*models.User, error) {
	req := r.Clone(r.Context())
	req.Header.Set("Authorization", "Bearer "+token)

	info, err := a.strategy.Authenticate(req.Context(), req)
	if err != nil {
		return nil, err
	}
	u := &models.User{ID: info.ID(), Username: info.UserName()}
	if pics := info.Extensions()[profilePictureExt]; len(pics) > 0 {
		u.ProfilePicture = pics[0]
	}
	return u, nil
}

// Revoke drops the cached identity of token
func (a *Authenticator) Revoke(r *http.Request, token string) {
	auth.Revoke(a.strategy, token, r)
}

// ParseToken checks the login token and returns its expiry, zero when the
// token does not expire
func (a *Authenticator) ParseToken(token string) (time.Time, error) {
	return ParseToken(token, a.secret)
}

// ParseToken reads the expiry of a JWT. The signature is verified only when a
// secret is given; the registry API verifies it on every call anyway.
func ParseToken(token string, secret []byte) (time.Time, error) {
	claims := jwt.MapClaims{}
	if len(secret) > 0 {
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return time.Time{}, ErrTokenExpired
		}
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	if !exp.After(time.Now()) {
		return time.Time{}, ErrTokenExpired
	}
	return exp.Time, nil
}
