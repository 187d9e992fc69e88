package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Entity interface {
	EntityID() uuid.UUID
	SetEntityID(id uuid.UUID)
	Timestamps() (created, updated time.Time)
	SetTimestamps(created, updated time.Time)
	OrderKey() int
	Normalize()
	Validate() error
}

// EntityPtr lets generic code hold a T value while calling Entity methods
// on *T.
type EntityPtr[T any] interface {
	*T
	Entity
}

// Store is the backing collection for one entity type. Missing rows are
// reported as apperror.ErrNotFound.
type Store[T any] interface {
	ListOrdered(ctx context.Context) ([]*T, error)
	First(ctx context.Context) (*T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Insert(ctx context.Context, item *T) error
	Update(ctx context.Context, id uuid.UUID, item *T) error
	Upsert(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type Stores struct {
	Profiles     Store[Profile]
	Skills       Store[Skill]
	Experiences  Store[Experience]
	Certificates Store[Certificate]
	Projects     Store[Project]
	Status       Store[Status]
	SocialLinks  Store[SocialLink]
}
