package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

type memoryRow[T any] struct {
	item T
	seq  int64
}

// memoryTable keeps rows in process. Ties on order_index fall back to
// insertion order, like a database ordering by created_at.
type memoryTable[T any, PT portfolio.EntityPtr[T]] struct {
	mu       sync.RWMutex
	resource string
	rows     map[uuid.UUID]*memoryRow[T]
	seq      int64
}

func newMemoryTable[T any, PT portfolio.EntityPtr[T]](resource string) *memoryTable[T, PT] {
	return &memoryTable[T, PT]{resource: resource, rows: make(map[uuid.UUID]*memoryRow[T])}
}

func (t *memoryTable[T, PT]) sorted(byOrderKey bool) []*memoryRow[T] {
	rows := make([]*memoryRow[T], 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if byOrderKey {
			ki, kj := PT(&rows[i].item).OrderKey(), PT(&rows[j].item).OrderKey()
			if ki != kj {
				return ki < kj
			}
		}
		return rows[i].seq < rows[j].seq
	})
	return rows
}

func clone[T any](item T) *T {
	return &item
}

func (t *memoryTable[T, PT]) ListOrdered(_ context.Context) ([]*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	items := make([]*T, 0, len(t.rows))
	for _, r := range t.sorted(true) {
		items = append(items, clone(r.item))
	}
	return items, nil
}

func (t *memoryTable[T, PT]) First(_ context.Context) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := t.sorted(false)
	if len(rows) == 0 {
		return nil, apperror.NewNotFound(t.resource, "first")
	}
	return clone(rows[0].item), nil
}

func (t *memoryTable[T, PT]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.rows[id]
	if !ok {
		return nil, apperror.NewNotFound(t.resource, id.String())
	}
	return clone(r.item), nil
}

func (t *memoryTable[T, PT]) Insert(_ context.Context, item *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(item)
}

func (t *memoryTable[T, PT]) insertLocked(item *T) error {
	id := PT(item).EntityID()
	if _, exists := t.rows[id]; exists {
		return apperror.NewConflict(t.resource, "id", id.String())
	}
	t.seq++
	t.rows[id] = &memoryRow[T]{item: *item, seq: t.seq}
	return nil
}

func (t *memoryTable[T, PT]) Update(_ context.Context, id uuid.UUID, item *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updateLocked(id, item)
}

func (t *memoryTable[T, PT]) updateLocked(id uuid.UUID, item *T) error {
	r, ok := t.rows[id]
	if !ok {
		return apperror.NewNotFound(t.resource, id.String())
	}
	created, _ := PT(&r.item).Timestamps()
	next := *item
	_, updated := PT(&next).Timestamps()
	PT(&next).SetEntityID(id)
	PT(&next).SetTimestamps(created, updated)
	r.item = next
	return nil
}

func (t *memoryTable[T, PT]) Upsert(_ context.Context, item *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := PT(item).EntityID()
	if _, exists := t.rows[id]; exists {
		return t.updateLocked(id, item)
	}
	return t.insertLocked(item)
}

func (t *memoryTable[T, PT]) Delete(_ context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return apperror.NewNotFound(t.resource, id.String())
	}
	delete(t.rows, id)
	return nil
}

func (t *memoryTable[T, PT]) Count(_ context.Context) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows), nil
}

// NewMemoryStores backs every collection with process memory. Used by the
// "memory" driver and by tests.
func NewMemoryStores() portfolio.Stores {
	return portfolio.Stores{
		Profiles:     newMemoryTable[portfolio.Profile]("profile"),
		Skills:       newMemoryTable[portfolio.Skill]("skill"),
		Experiences:  newMemoryTable[portfolio.Experience]("experience"),
		Certificates: newMemoryTable[portfolio.Certificate]("certificate"),
		Projects:     newMemoryTable[portfolio.Project]("project"),
		Status:       newMemoryTable[portfolio.Status]("status"),
		SocialLinks:  newMemoryTable[portfolio.SocialLink]("social link"),
	}
}
