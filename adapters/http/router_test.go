package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khoahotran/portfolio-cms/adapters/event"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	authUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	contactUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/content"
	mediaUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/media"
	siteUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/internal/domain/session"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
	"github.com/stretchr/testify/require"
)

const testPassword = "open-sesame"

type testApp struct {
	t      *testing.T
	router *gin.Engine
	stores portfolio.Stores
	cookie *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNopLogger()
	stores := persistence.NewMemoryStores()
	events := event.NewLogPublisher(log)
	cache := persistence.NopSnapshotCache{}

	profiles := content.NewManager[portfolio.Profile](portfolio.ProfileSchema, stores.Profiles, events, cache, log)
	skills := content.NewManager[portfolio.Skill](portfolio.SkillSchema, stores.Skills, events, cache, log)
	experiences := content.NewManager[portfolio.Experience](portfolio.ExperienceSchema, stores.Experiences, events, cache, log)
	certificates := content.NewManager[portfolio.Certificate](portfolio.CertificateSchema, stores.Certificates, events, cache, log)
	projects := content.NewManager[portfolio.Project](portfolio.ProjectSchema, stores.Projects, events, cache, log)
	status := content.NewManager[portfolio.Status](portfolio.StatusSchema, stores.Status, events, cache, log)
	socialLinks := content.NewManager[portfolio.SocialLink](portfolio.SocialLinkSchema, stores.SocialLinks, events, cache, log)

	sessions := authUC.NewSessionUseCase(testPassword, log)
	cookies := NewSessionCookies(auth.NewJWTService("test-secret", time.Hour), auth.NewMemoryDenylist(), testPassword, false)
	site := siteUC.NewSiteUseCase(stores, cache, siteUC.FeedConfig{Title: "Jane Doe", BaseURL: "https://jane.example"}, log)

	router := NewRouter(RouterDeps{
		Collections: []Routes{
			NewCollectionHandler(profiles, log),
			NewCollectionHandler(skills, log),
			NewCollectionHandler(experiences, log),
			NewCollectionHandler(certificates, log),
			NewCollectionHandler(projects, log),
			NewCollectionHandler(status, log),
			NewCollectionHandler(socialLinks, log),
		},
		ExperienceImages: NewExperienceImageHandler(content.NewExperienceImages(experiences), log),
		Auth:             NewAuthHandler(sessions, cookies, log),
		Site:             NewSiteHandler(site, log),
		RSS:              NewRSSHandler(site, log),
		Contact:          NewContactHandler(contactUC.NewContactUseCase(events, nil, log), log),
		Media:            NewMediaHandler(mediaUC.NewUploadMediaUseCase(nil, log), mediaUC.NewDeleteMediaUseCase(nil, log), log),
		Backup:           NewBackupHandler(backupUC.NewBackupUseCase(site, nil, log), log),
		AdminGuard:       AdminGuard(sessions, cookies),
		Logger:           log,
	})

	return &testApp{t: t, router: router, stores: stores}
}

func (a *testApp) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// login authenticates and keeps the session cookie for later requests.
func (a *testApp) login() {
	a.t.Helper()

	rr := a.do(http.MethodPost, "/api/admin/auth/login", gin.H{"password": testPassword})
	require.Equal(a.t, http.StatusOK, rr.Code, rr.Body.String())
	a.cookie = sessionCookie(rr)
	require.NotNil(a.t, a.cookie)
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.FlagKey {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}
