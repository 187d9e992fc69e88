package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var tracer = otel.Tracer("content_usecase")

// Confirmer is asked before every delete. Returning false cancels it.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

var AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

// Manager runs the load/save/remove lifecycle for one collection. Singleton
// schemas (Profile, Status) keep at most one row.
type Manager[T any, PT portfolio.EntityPtr[T]] struct {
	schema portfolio.Schema
	store  portfolio.Store[T]
	events service.EventPublisher
	cache  service.SnapshotCache
	logger logger.Logger
	now    func() time.Time
}

func NewManager[T any, PT portfolio.EntityPtr[T]](
	schema portfolio.Schema,
	store portfolio.Store[T],
	events service.EventPublisher,
	cache service.SnapshotCache,
	log logger.Logger,
) *Manager[T, PT] {
	return &Manager[T, PT]{
		schema: schema,
		store:  store,
		events: events,
		cache:  cache,
		logger: log.With(zap.String("collection", string(schema.Collection))),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *Manager[T, PT]) Schema() portfolio.Schema {
	return m.schema
}

func (m *Manager[T, PT]) start(ctx context.Context, op string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, op)
	span.SetAttributes(attribute.String("collection", string(m.schema.Collection)))
	return ctx, span
}

// Load returns the collection ordered by order_index.
func (m *Manager[T, PT]) Load(ctx context.Context) ([]*T, error) {
	ctx, span := m.start(ctx, "Load")
	defer span.End()

	items, err := m.store.ListOrdered(ctx)
	if err != nil {
		span.RecordError(err)
		m.logger.Error("Failed to load collection", err)
		return nil, err
	}
	return items, nil
}

// Current returns the singleton row, or nil when none exists yet.
func (m *Manager[T, PT]) Current(ctx context.Context) (*T, error) {
	ctx, span := m.start(ctx, "Current")
	defer span.End()

	item, err := m.store.First(ctx)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		m.logger.Error("Failed to load singleton", err)
		return nil, err
	}
	return item, nil
}

func (m *Manager[T, PT]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	ctx, span := m.start(ctx, "Get")
	defer span.End()
	span.SetAttributes(attribute.String("entity_id", id.String()))

	item, err := m.store.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return item, nil
}

// Save creates the item when it has no id and updates it otherwise.
// Singletons always go through SaveSingleton.
func (m *Manager[T, PT]) Save(ctx context.Context, item *T) (*T, error) {
	if m.schema.Singleton {
		return m.SaveSingleton(ctx, item)
	}
	if id := PT(item).EntityID(); id != uuid.Nil {
		return m.Update(ctx, id, item)
	}
	return m.Create(ctx, item)
}

func (m *Manager[T, PT]) prepare(item *T) error {
	PT(item).Normalize()
	if err := PT(item).Validate(); err != nil {
		return apperror.NewInvalidInput(err.Error(), err)
	}
	return nil
}

func (m *Manager[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	ctx, span := m.start(ctx, "Create")
	defer span.End()

	if err := m.prepare(item); err != nil {
		span.RecordError(err)
		return nil, err
	}
	now := m.now()
	PT(item).SetEntityID(uuid.New())
	PT(item).SetTimestamps(now, now)

	if err := m.store.Insert(ctx, item); err != nil {
		span.RecordError(err)
		m.logger.Error("Failed to insert", err)
		return nil, err
	}
	m.afterWrite(ctx, service.ActionCreated, PT(item).EntityID())
	return item, nil
}

// Update replaces the row with the given id, keeping its created_at.
func (m *Manager[T, PT]) Update(ctx context.Context, id uuid.UUID, item *T) (*T, error) {
	ctx, span := m.start(ctx, "Update")
	defer span.End()
	span.SetAttributes(attribute.String("entity_id", id.String()))

	if err := m.prepare(item); err != nil {
		span.RecordError(err)
		return nil, err
	}
	existing, err := m.store.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	created, _ := PT(existing).Timestamps()
	PT(item).SetEntityID(id)
	PT(item).SetTimestamps(created, m.now())

	if err := m.store.Update(ctx, id, item); err != nil {
		span.RecordError(err)
		m.logger.Error("Failed to update", err, zap.String("entity_id", id.String()))
		return nil, err
	}
	m.afterWrite(ctx, service.ActionUpdated, id)
	return item, nil
}

// SaveSingleton re-reads the collection to choose the row to write: the
// existing row's id when there is one, SingletonID otherwise. Concurrent
// saves are last write wins.
func (m *Manager[T, PT]) SaveSingleton(ctx context.Context, item *T) (*T, error) {
	ctx, span := m.start(ctx, "SaveSingleton")
	defer span.End()

	if err := m.prepare(item); err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := m.now()
	id, created := portfolio.SingletonID, now
	existing, err := m.store.First(ctx)
	switch {
	case err == nil:
		id = PT(existing).EntityID()
		created, _ = PT(existing).Timestamps()
	case errors.Is(err, apperror.ErrNotFound):
	default:
		span.RecordError(err)
		m.logger.Error("Failed to look up singleton", err)
		return nil, err
	}
	PT(item).SetEntityID(id)
	PT(item).SetTimestamps(created, now)

	if err := m.store.Upsert(ctx, item); err != nil {
		span.RecordError(err)
		m.logger.Error("Failed to save singleton", err)
		return nil, err
	}
	m.afterWrite(ctx, service.ActionSaved, id)
	return item, nil
}

func (m *Manager[T, PT]) DeletePrompt() string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", strings.ToLower(m.schema.Label))
}

// Remove deletes the row after confirm agrees. A declined confirmation
// returns false with no error and leaves the store untouched.
func (m *Manager[T, PT]) Remove(ctx context.Context, id uuid.UUID, confirm Confirmer) (bool, error) {
	ctx, span := m.start(ctx, "Remove")
	defer span.End()
	span.SetAttributes(attribute.String("entity_id", id.String()))

	if confirm == nil || !confirm.Confirm(ctx, m.DeletePrompt()) {
		span.SetAttributes(attribute.Bool("declined", true))
		m.logger.Info("Delete declined", zap.String("entity_id", id.String()))
		return false, nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		span.RecordError(err)
		if !errors.Is(err, apperror.ErrNotFound) {
			m.logger.Error("Failed to delete", err, zap.String("entity_id", id.String()))
		}
		return false, err
	}
	m.afterWrite(ctx, service.ActionDeleted, id)
	return true, nil
}

// afterWrite drops the cached snapshot and announces the change. Neither
// step can fail the write.
func (m *Manager[T, PT]) afterWrite(ctx context.Context, action service.ContentAction, id uuid.UUID) {
	if err := m.cache.InvalidateSnapshot(ctx); err != nil {
		m.logger.Warn("Failed to invalidate snapshot cache", zap.Error(err))
	}

	evt := service.ContentEvent{
		Collection: string(m.schema.Collection),
		Action:     action,
		EntityID:   id,
		OccurredAt: m.now(),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.events.PublishContentEvent(pubCtx, evt); err != nil {
			m.logger.Error("Failed to publish content event", err,
				zap.String("action", string(action)), zap.String("entity_id", id.String()))
		}
	}()
}
