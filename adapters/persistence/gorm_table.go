package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
)

type gormTable[T any] struct {
	db       *gorm.DB
	table    string
	resource string
	order    string
}

func newGormTable[T any](db *gorm.DB, table, resource, order string) portfolio.Store[T] {
	return &gormTable[T]{db: db, table: table, resource: resource, order: order}
}

func (t *gormTable[T]) scoped(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx).Table(t.table)
}

func (t *gormTable[T]) wrap(err error, action, id string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NewNotFound(t.resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.NewConflict(t.resource, "id", id)
	default:
		return apperror.NewInternal(fmt.Sprintf("failed to %s %s", action, t.resource), err)
	}
}

func (t *gormTable[T]) ListOrdered(ctx context.Context) ([]*T, error) {
	items := make([]*T, 0)
	if err := t.scoped(ctx).Order(t.order).Find(&items).Error; err != nil {
		return nil, t.wrap(err, "list", "")
	}
	return items, nil
}

func (t *gormTable[T]) First(ctx context.Context) (*T, error) {
	var item T
	if err := t.scoped(ctx).Order("created_at ASC").Take(&item).Error; err != nil {
		return nil, t.wrap(err, "find first", "first")
	}
	return &item, nil
}

func (t *gormTable[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	if err := t.scoped(ctx).Where("id = ?", id).Take(&item).Error; err != nil {
		return nil, t.wrap(err, "find", id.String())
	}
	return &item, nil
}

func (t *gormTable[T]) Insert(ctx context.Context, item *T) error {
	if err := t.scoped(ctx).Create(item).Error; err != nil {
		return t.wrap(err, "insert", "")
	}
	return nil
}

func (t *gormTable[T]) Update(ctx context.Context, id uuid.UUID, item *T) error {
	res := t.scoped(ctx).Where("id = ?", id).Select("*").Omit("id", "created_at").Updates(item)
	if res.Error != nil {
		return t.wrap(res.Error, "update", id.String())
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFound(t.resource, id.String())
	}
	return nil
}

func (t *gormTable[T]) Upsert(ctx context.Context, item *T) error {
	err := t.scoped(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(item).Error
	if err != nil {
		return t.wrap(err, "upsert", "")
	}
	return nil
}

func (t *gormTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := t.scoped(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return t.wrap(res.Error, "delete", id.String())
	}
	if res.RowsAffected == 0 {
		return apperror.NewNotFound(t.resource, id.String())
	}
	return nil
}

func (t *gormTable[T]) Count(ctx context.Context) (int, error) {
	var n int64
	if err := t.scoped(ctx).Count(&n).Error; err != nil {
		return 0, t.wrap(err, "count", "")
	}
	return int(n), nil
}

const gormOrderByIndex = "order_index ASC, created_at ASC"

func migrateGorm(db *gorm.DB) error {
	tables := []struct {
		name  string
		model any
	}{
		{"profiles", &portfolio.Profile{}},
		{"skills", &portfolio.Skill{}},
		{"experiences", &portfolio.Experience{}},
		{"certificates", &portfolio.Certificate{}},
		{"projects", &portfolio.Project{}},
		{"status", &portfolio.Status{}},
		{"social_links", &portfolio.SocialLink{}},
	}
	for _, tbl := range tables {
		if err := db.Table(tbl.name).AutoMigrate(tbl.model); err != nil {
			return fmt.Errorf("migrate %s: %w", tbl.name, err)
		}
	}
	return nil
}

// NewGormStores maps every collection onto its table in db.
func NewGormStores(db *gorm.DB) portfolio.Stores {
	return portfolio.Stores{
		Profiles:     newGormTable[portfolio.Profile](db, "profiles", "profile", "created_at ASC"),
		Skills:       newGormTable[portfolio.Skill](db, "skills", "skill", gormOrderByIndex),
		Experiences:  newGormTable[portfolio.Experience](db, "experiences", "experience", gormOrderByIndex),
		Certificates: newGormTable[portfolio.Certificate](db, "certificates", "certificate", gormOrderByIndex),
		Projects:     newGormTable[portfolio.Project](db, "projects", "project", gormOrderByIndex),
		Status:       newGormTable[portfolio.Status](db, "status", "status", "created_at ASC"),
		SocialLinks:  newGormTable[portfolio.SocialLink](db, "social_links", "social link", gormOrderByIndex),
	}
}
