package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	siteUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPortfolio(t *testing.T, app *testApp) {
	t.Helper()
	app.login()

	for _, s := range []gin.H{
		{"name": "Go", "category": "Backend", "level": 90, "order_index": 1},
		{"name": "React", "category": "Frontend", "level": 70, "order_index": 2},
		{"name": "SQL", "category": "Backend", "level": 80, "order_index": 3},
	} {
		rr := app.do(http.MethodPost, "/api/admin/skills", s)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
	for _, p := range []gin.H{
		{"title": "Blog", "description": "A blog.", "github_url": "https://github.com/jane/blog", "order_index": 1},
		{"title": "CMS", "description": "This site.", "demo_url": "https://jane.example/cms", "featured": true, "order_index": 2},
	} {
		rr := app.do(http.MethodPost, "/api/admin/projects", p)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}
	rr := app.do(http.MethodPost, "/api/admin/social-links", gin.H{"platform": "GitHub", "url": "https://github.com/jane"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	app.cookie = nil
}

func TestPortfolioSnapshot(t *testing.T) {
	app := newTestApp(t)
	seedPortfolio(t, app)

	rr := app.do(http.MethodGet, "/api/portfolio", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	snap := decode[siteUC.Snapshot](t, rr)

	assert.Nil(t, snap.Profile)
	assert.Len(t, snap.Skills, 3)
	require.Len(t, snap.SkillGroups, 2)
	assert.Equal(t, "Backend", snap.SkillGroups[0].Category)
	assert.Len(t, snap.SkillGroups[0].Skills, 2)
	assert.Equal(t, 80, snap.SkillStats.AverageLevel)
	require.Len(t, snap.SocialLinks, 1)
	assert.Equal(t, "GitHub", snap.SocialLinks[0].ResolvedIcon)
}

func TestGroupedSkills(t *testing.T) {
	app := newTestApp(t)
	seedPortfolio(t, app)

	rr := app.do(http.MethodGet, "/api/skills/grouped", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Groups []siteUC.SkillGroup `json:"groups"`
		Stats  siteUC.SkillStats   `json:"stats"`
	}](t, rr)
	assert.Len(t, body.Groups, 2)
	assert.Equal(t, 3, body.Stats.Total)
	assert.Equal(t, 2, body.Stats.Categories)
}

func TestProjectsRSS(t *testing.T) {
	app := newTestApp(t)
	seedPortfolio(t, app)

	rr := app.do(http.MethodGet, "/api/rss/projects", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/rss+xml")

	xml := rr.Body.String()
	assert.Contains(t, xml, "<rss")
	cms, blog := strings.Index(xml, "<title>CMS</title>"), strings.Index(xml, "<title>Blog</title>")
	require.NotEqual(t, -1, cms)
	require.NotEqual(t, -1, blog)
	assert.Less(t, cms, blog, "featured projects come first")
}

func TestDashboardAndSchemas(t *testing.T) {
	app := newTestApp(t)
	seedPortfolio(t, app)
	app.login()

	rr := app.do(http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	counts := decode[siteUC.DashboardCounts](t, rr)
	assert.Equal(t, 3, counts.Skills)
	assert.Equal(t, 2, counts.Projects)
	assert.Equal(t, 1, counts.SocialLinks)

	rr = app.do(http.MethodGet, "/api/admin/schemas", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]portfolio.Schema](t, rr), len(portfolio.Schemas()))
}

func TestContactSubmit(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(http.MethodPost, "/api/contact", gin.H{"name": "Sam", "email": "sam@example.com", "message": "Hello!"})
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
	assert.NotEmpty(t, decode[ContactResponse](t, rr).ID)

	rr = app.do(http.MethodPost, "/api/contact", gin.H{"name": "Sam", "email": "not-an-email", "message": "Hello!"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadWithoutStorage(t *testing.T) {
	app := newTestApp(t)
	app.login()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("folder", "avatars"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(app.cookie)
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestDeleteMediaWithoutStorage(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(http.MethodDelete, "/api/admin/media/portfolio/avatars/abc", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	app.login()
	rr = app.do(http.MethodDelete, "/api/admin/media/portfolio/avatars/abc", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "Failed to delete file", decode[map[string]any](t, rr)["message"])
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestBackupWithoutStorage(t *testing.T) {
	app := newTestApp(t)
	app.login()

	rr := app.do(http.MethodPost, "/api/admin/backup", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "Failed to create backup", decode[map[string]any](t, rr)["message"])
}
