package http

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khoahotran/portfolio-cms/internal/domain/session"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
)

// SessionCookies persists session flags as signed JWT cookies. Tokens are
// bound to the admin password, so changing it ends every session, and
// logging out revokes the presented token.
type SessionCookies struct {
	tokens  *auth.JWTService
	revoked auth.Denylist
	binding string
	secure  bool
}

func NewSessionCookies(tokens *auth.JWTService, revoked auth.Denylist, adminPassword string, secure bool) *SessionCookies {
	return &SessionCookies{
		tokens:  tokens,
		revoked: revoked,
		binding: tokens.Fingerprint(adminPassword),
		secure:  secure,
	}
}

// For binds a session store to one request.
func (s *SessionCookies) For(c *gin.Context) *CookieStore {
	return &CookieStore{c: c, cookies: s}
}

// CookieStore implements session.Store over the request cookies. A bearer
// token in the Authorization header is accepted when no cookie is sent.
type CookieStore struct {
	c       *gin.Context
	cookies *SessionCookies
	issued  string
}

var _ session.Store = (*CookieStore)(nil)

func (s *CookieStore) Get(ctx context.Context, key string) (string, bool, error) {
	claims := s.presented(key)
	if claims == nil {
		return "", false, nil
	}

	revoked, err := s.cookies.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", false, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return "", false, nil
	}
	return claims.Value, true, nil
}

func (s *CookieStore) Set(_ context.Context, key, value string) error {
	token, err := s.cookies.tokens.GenerateToken(key, value, s.cookies.binding)
	if err != nil {
		return err
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, token, int(s.cookies.tokens.Lifespan().Seconds()), "/", "", s.cookies.secure, true)
	s.issued = token
	return nil
}

// Clear expires the cookie and revokes the token the request presented, so
// a copy kept by the client no longer authenticates.
func (s *CookieStore) Clear(ctx context.Context, key string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, "", -1, "/", "", s.cookies.secure, true)
	s.issued = ""

	claims := s.presented(key)
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.cookies.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Token is the token written by the last Set on this request, if any.
func (s *CookieStore) Token() string {
	return s.issued
}

// presented returns the claims of the token sent with the request when it
// is valid for key and bound to the current password.
func (s *CookieStore) presented(key string) *auth.FlagClaims {
	raw, err := s.c.Cookie(key)
	if err != nil || raw == "" {
		raw = bearerToken(s.c)
	}
	if raw == "" {
		return nil
	}

	claims, err := s.cookies.tokens.ValidateToken(raw)
	if err != nil || claims.Key != key {
		// A forged or stale token reads as no session.
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(claims.Binding), []byte(s.cookies.binding)) != 1 {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return token
}
