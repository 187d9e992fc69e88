package site

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

type memoryCache struct {
	mu   sync.Mutex
	data []byte
	sets int
	err  error
}

func (c *memoryCache) GetSnapshot(context.Context) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	return c.data, c.data != nil, nil
}

func (c *memoryCache) SetSnapshot(_ context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.sets++
	return c.err
}

func (c *memoryCache) InvalidateSnapshot(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = nil
	return nil
}

type failingSkills struct {
	portfolio.Store[portfolio.Skill]
}

func (failingSkills) ListOrdered(context.Context) ([]*portfolio.Skill, error) {
	return nil, errors.New("connection reset")
}

func insert[T any, PT portfolio.EntityPtr[T]](t *testing.T, store portfolio.Store[T], item PT) {
	t.Helper()
	item.SetEntityID(uuid.New())
	now := time.Now().UTC()
	item.SetTimestamps(now, now)
	require.NoError(t, store.Insert(context.Background(), (*T)(item)))
}

func seed(t *testing.T) portfolio.Stores {
	stores := persistence.NewMemoryStores()
	insert(t, stores.Skills, &portfolio.Skill{Name: "Go", Category: "Backend", Level: 90, OrderIndex: 0})
	insert(t, stores.Skills, &portfolio.Skill{Name: "React", Category: "Frontend", Level: 75, OrderIndex: 1})
	insert(t, stores.Skills, &portfolio.Skill{Name: "Postgres", Category: "Backend", Level: 80, OrderIndex: 2})
	insert(t, stores.SocialLinks, &portfolio.SocialLink{Platform: "GitHub", URL: "https://github.com/x"})
	insert(t, stores.SocialLinks, &portfolio.SocialLink{Platform: "Mastodon", URL: "https://mastodon.social/@x", OrderIndex: 1})
	insert(t, stores.Projects, &portfolio.Project{Title: "Old", Description: "d", GithubURL: "https://github.com/x/old"})
	insert(t, stores.Projects, &portfolio.Project{Title: "Star", Description: "d", Featured: true, OrderIndex: 1})
	return stores
}

func newUseCase(stores portfolio.Stores, cache *memoryCache) *SiteUseCase {
	return NewSiteUseCase(stores, cache, FeedConfig{Title: "Ada", BaseURL: "https://ada.dev/"}, logger.NewNopLogger())
}

func TestGroupSkillsKeepsFirstAppearanceOrder(t *testing.T) {
	skills := []*portfolio.Skill{
		{Name: "Go", Category: "Backend"},
		{Name: "React", Category: "Frontend"},
		{Name: "SQL", Category: "Backend"},
	}
	groups := GroupSkills(skills)
	require.Len(t, groups, 2)
	assert.Equal(t, "Backend", groups[0].Category)
	assert.Len(t, groups[0].Skills, 2)
	assert.Equal(t, "Frontend", groups[1].Category)
	assert.Empty(t, GroupSkills(nil))
}

func TestAverageLevel(t *testing.T) {
	assert.Equal(t, 0, AverageLevel(nil))
	assert.Equal(t, 83, AverageLevel([]*portfolio.Skill{{Level: 90}, {Level: 75}, {Level: 85}}))
	assert.Equal(t, 51, AverageLevel([]*portfolio.Skill{{Level: 50}, {Level: 51}}))
}

func TestBuildSnapshot(t *testing.T) {
	uc := newUseCase(seed(t), &memoryCache{})

	snap, err := uc.Build(context.Background())
	require.NoError(t, err)

	assert.Nil(t, snap.Profile)
	assert.Nil(t, snap.Status)
	assert.Len(t, snap.Skills, 3)
	assert.Equal(t, SkillStats{Total: 3, Categories: 2, AverageLevel: 82}, snap.SkillStats)
	require.Len(t, snap.SocialLinks, 2)
	assert.Equal(t, "GitHub", snap.SocialLinks[0].ResolvedIcon)
	assert.Equal(t, portfolio.FallbackIcon, snap.SocialLinks[1].ResolvedIcon)
	assert.NotNil(t, snap.Experiences)
	assert.NotNil(t, snap.Certificates)
}

func TestSnapshotUsesCache(t *testing.T) {
	ctx := context.Background()
	stores := seed(t)
	cache := &memoryCache{}
	uc := newUseCase(stores, cache)

	first, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	insert(t, stores.Skills, &portfolio.Skill{Name: "Kafka", Category: "Backend", Level: 60, OrderIndex: 3})

	cached, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, cached.Skills, len(first.Skills), "served from cache")
	assert.Equal(t, 1, cache.sets)

	require.NoError(t, cache.InvalidateSnapshot(ctx))
	fresh, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh.Skills, 4)
}

func TestSnapshotSurvivesCacheOutage(t *testing.T) {
	uc := newUseCase(seed(t), &memoryCache{err: errors.New("redis down")})
	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Skills, 3)
}

func TestBuildFailsWhenAnyReadFails(t *testing.T) {
	stores := seed(t)
	stores.Skills = failingSkills{stores.Skills}
	_, err := newUseCase(stores, &memoryCache{}).Build(context.Background())
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	counts, err := newUseCase(seed(t), &memoryCache{}).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardCounts{Skills: 3, Projects: 2, SocialLinks: 2}, *counts)
}

func TestProjectsFeed(t *testing.T) {
	feed, err := newUseCase(seed(t), &memoryCache{}).ProjectsFeed(context.Background())
	require.NoError(t, err)

	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Star", feed.Items[0].Title, "featured first")
	assert.Equal(t, "https://ada.dev/#projects", feed.Items[0].Link.Href)
	assert.Equal(t, "https://github.com/x/old", feed.Items[1].Link.Href)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.True(t, strings.Contains(rss, "<title>Ada - Projects</title>"))
}
