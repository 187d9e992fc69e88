package persistence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/content"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// runStoreContract exercises behaviour every backend must share. The
// stores must start empty.
func runStoreContract(t *testing.T, stores portfolio.Stores) {
	t.Run("ordered list", func(t *testing.T) { testOrderedList(t, stores.Skills) })
	t.Run("update and delete", func(t *testing.T) { testUpdateDelete(t, stores.Projects) })
	t.Run("singleton upsert", func(t *testing.T) { testSingletonUpsert(t, stores.Profiles) })
	t.Run("concurrent singleton saves", func(t *testing.T) {
		// Status starts empty; Profiles already holds the row written above.
		testConcurrentSingletonSaves(t, portfolio.StatusSchema, stores.Status,
			func(i int) *portfolio.Status {
				return &portfolio.Status{IsAvailable: i%2 == 0, StatusText: fmt.Sprintf("status %d", i)}
			},
			func(s *portfolio.Status) string { return s.StatusText })
		testConcurrentSingletonSaves(t, portfolio.ProfileSchema, stores.Profiles,
			func(i int) *portfolio.Profile {
				return &portfolio.Profile{Name: fmt.Sprintf("Ada %d", i), Title: "Engineer", Bio: "b", Email: "ada@example.com"}
			},
			func(p *portfolio.Profile) string { return p.Name })
	})
	t.Run("experience round trip", func(t *testing.T) { testExperienceRoundTrip(t, stores.Experiences) })
}

func stamp(base time.Time, offset int) time.Time {
	return base.Add(time.Duration(offset) * time.Second)
}

func newSkill(name string, order int, created time.Time) *portfolio.Skill {
	s := &portfolio.Skill{Name: name, Category: "Backend", Level: 80, OrderIndex: order}
	s.ID = uuid.New()
	s.SetTimestamps(created, created)
	return s
}

func testOrderedList(t *testing.T, store portfolio.Store[portfolio.Skill]) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i, s := range []*portfolio.Skill{
		newSkill("Postgres", 2, stamp(base, 0)),
		newSkill("Go", 0, stamp(base, 1)),
		newSkill("Redis", 1, stamp(base, 2)),
		newSkill("Kafka", 0, stamp(base, 3)),
	} {
		require.NoError(t, store.Insert(ctx, s), "insert %d", i)
	}

	items, err := store.ListOrdered(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(items))
	for _, s := range items {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Go", "Kafka", "Redis", "Postgres"}, names)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = store.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func testUpdateDelete(t *testing.T, store portfolio.Store[portfolio.Project]) {
	ctx := context.Background()
	created := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)

	p := &portfolio.Project{Title: "CMS", Description: "first", Technologies: portfolio.StringList{"Go"}}
	p.ID = uuid.New()
	p.SetTimestamps(created, created)
	require.NoError(t, store.Insert(ctx, p))

	changed := *p
	changed.Description = "second"
	changed.Featured = true
	changed.Technologies = portfolio.StringList{"Go", "Gin"}
	changed.SetTimestamps(time.Now().UTC(), time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.Update(ctx, p.ID, &changed))

	got, err := store.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Description)
	assert.True(t, got.Featured)
	assert.Equal(t, portfolio.StringList{"Go", "Gin"}, got.Technologies)
	assert.WithinDuration(t, created, got.CreatedAt, time.Second, "created_at is immutable")

	missing := changed
	missing.ID = uuid.New()
	assert.ErrorIs(t, store.Update(ctx, missing.ID, &missing), apperror.ErrNotFound)

	require.NoError(t, store.Delete(ctx, p.ID))
	assert.ErrorIs(t, store.Delete(ctx, p.ID), apperror.ErrNotFound)
	_, err = store.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func testSingletonUpsert(t *testing.T, store portfolio.Store[portfolio.Profile]) {
	ctx := context.Background()

	_, err := store.First(ctx)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	p := &portfolio.Profile{Name: "Ada", Title: "Engineer", Bio: "bio", Email: "ada@example.com"}
	p.ID = portfolio.SingletonID
	p.SetTimestamps(now, now)
	require.NoError(t, store.Upsert(ctx, p))

	p.Name = "Ada Lovelace"
	require.NoError(t, store.Upsert(ctx, p))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	first, err := store.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", first.Name)
	assert.Equal(t, portfolio.SingletonID, first.ID)
}

func testExperienceRoundTrip(t *testing.T, store portfolio.Store[portfolio.Experience]) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	current := &portfolio.Experience{
		Company:      "Acme",
		Position:     "Engineer",
		Description:  "Platform",
		StartDate:    portfolio.NewDate(2021, time.February, 1),
		IsCurrent:    true,
		Technologies: portfolio.StringList{"Go", "Kafka"},
		Certificates: []portfolio.CertificateImage{{URL: "https://img/a.png", Alt: "award"}},
	}
	current.ID = uuid.New()
	current.SetTimestamps(now, now)
	require.NoError(t, store.Insert(ctx, current))

	end := portfolio.NewDate(2020, time.December, 31)
	past := &portfolio.Experience{
		Company:     "Initech",
		Position:    "Intern",
		Description: "TPS reports",
		StartDate:   portfolio.NewDate(2019, time.June, 1),
		EndDate:     &end,
		OrderIndex:  1,
	}
	past.ID = uuid.New()
	past.SetTimestamps(now, now)
	require.NoError(t, store.Insert(ctx, past))

	got, err := store.FindByID(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, "2021-02-01", got.StartDate.String())
	assert.Nil(t, got.EndDate)
	assert.True(t, got.IsCurrent)
	assert.Equal(t, portfolio.StringList{"Go", "Kafka"}, got.Technologies)
	assert.Equal(t, current.Certificates, got.Certificates)

	got, err = store.FindByID(ctx, past.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2020-12-31", got.EndDate.String())
	assert.Empty(t, got.Certificates)
}

// testConcurrentSingletonSaves runs parallel saves through the content
// manager: all succeed, one row remains and it holds one of the writes.
func testConcurrentSingletonSaves[T any, PT portfolio.EntityPtr[T]](
	t *testing.T,
	schema portfolio.Schema,
	store portfolio.Store[T],
	build func(i int) *T,
	label func(*T) string,
) {
	ctx := context.Background()
	log := logger.NewNopLogger()
	m := content.NewManager[T, PT](schema, store, event.NewLogPublisher(log), NopSnapshotCache{}, log)

	const writers = 20
	written := make(map[string]bool, writers)
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		item := build(i)
		written[label(item)] = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Save(ctx, item)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	current, err := m.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.True(t, written[label(current)], "unexpected winner %q", label(current))
}
