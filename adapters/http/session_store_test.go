package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/internal/domain/session"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
)

type brokenDenylist struct{}

func (brokenDenylist) Revoke(context.Context, string, time.Time) error {
	return errors.New("redis down")
}

func (brokenDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func bearerContext(token string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	return c
}

func issueToken(t *testing.T, cookies *SessionCookies) string {
	t.Helper()
	store := cookies.For(bearerContext(""))
	require.NoError(t, store.Set(context.Background(), session.FlagKey, "true"))
	require.NotEmpty(t, store.Token())
	return store.Token()
}

func TestPasswordChangeEndsSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	tokens := auth.NewJWTService("signing-key", time.Hour)
	denylist := auth.NewMemoryDenylist()

	token := issueToken(t, NewSessionCookies(tokens, denylist, "old-password", false))

	v, ok, err := NewSessionCookies(tokens, denylist, "old-password", false).For(bearerContext(token)).Get(ctx, session.FlagKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	_, ok, err = NewSessionCookies(tokens, denylist, "new-password", false).For(bearerContext(token)).Get(ctx, session.FlagKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearRevokesPresentedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cookies := NewSessionCookies(auth.NewJWTService("signing-key", time.Hour), auth.NewMemoryDenylist(), "pw", false)
	token := issueToken(t, cookies)
	other := issueToken(t, cookies)

	require.NoError(t, cookies.For(bearerContext(token)).Clear(ctx, session.FlagKey))

	_, ok, err := cookies.For(bearerContext(token)).Get(ctx, session.FlagKey)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cookies.For(bearerContext(other)).Get(ctx, session.FlagKey)
	require.NoError(t, err)
	assert.True(t, ok, "only the presented token is revoked")
}

func TestDenylistFailureIsReported(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cookies := NewSessionCookies(auth.NewJWTService("signing-key", time.Hour), brokenDenylist{}, "pw", false)
	token := issueToken(t, cookies)

	_, _, err := cookies.For(bearerContext(token)).Get(ctx, session.FlagKey)
	assert.Error(t, err)

	assert.Error(t, cookies.For(bearerContext(token)).Clear(ctx, session.FlagKey))
}
