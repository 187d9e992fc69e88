package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/apperror"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// tableMapper binds one entity type to its table. columns[0] must be "id"
// and values must return arguments in column order.
type tableMapper[T any] struct {
	resource string
	table    string
	columns  []string
	orderBy  []string
	scan     func(row pgx.Row, l logger.Logger) (*T, error)
	values   func(item *T) ([]any, error)
}

type postgresTable[T any] struct {
	db     *pgxpool.Pool
	logger logger.Logger
	m      tableMapper[T]
}

func newPostgresTable[T any](db *pgxpool.Pool, l logger.Logger, m tableMapper[T]) portfolio.Store[T] {
	return &postgresTable[T]{db: db, logger: l, m: m}
}

func (t *postgresTable[T]) scanOne(row pgx.Row, id string) (*T, error) {
	item, err := t.m.scan(row, t.logger)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound(t.m.resource, id)
		}
		return nil, apperror.NewInternal(fmt.Sprintf("failed to scan %s row", t.m.resource), err)
	}
	return item, nil
}

func (t *postgresTable[T]) ListOrdered(ctx context.Context) ([]*T, error) {
	query, args, err := psql.Select(t.m.columns...).From(t.m.table).OrderBy(t.m.orderBy...).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("failed to build list %s query", t.m.resource), err)
	}

	rows, err := t.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("failed to query %s", t.m.table), err)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item, err := t.scanOne(rows, "")
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("error iterating %s rows", t.m.resource), err)
	}
	return items, nil
}

func (t *postgresTable[T]) First(ctx context.Context) (*T, error) {
	query, args, err := psql.Select(t.m.columns...).From(t.m.table).OrderBy("created_at ASC", "id ASC").Limit(1).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("failed to build first %s query", t.m.resource), err)
	}
	return t.scanOne(t.db.QueryRow(ctx, query, args...), "first")
}

func (t *postgresTable[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	query, args, err := psql.Select(t.m.columns...).From(t.m.table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal(fmt.Sprintf("failed to build find %s query", t.m.resource), err)
	}
	return t.scanOne(t.db.QueryRow(ctx, query, args...), id.String())
}

func (t *postgresTable[T]) insertBuilder(item *T) (sq.InsertBuilder, error) {
	vals, err := t.m.values(item)
	if err != nil {
		return sq.InsertBuilder{}, apperror.NewInternal(fmt.Sprintf("failed to encode %s", t.m.resource), err)
	}
	return psql.Insert(t.m.table).Columns(t.m.columns...).Values(vals...), nil
}

func (t *postgresTable[T]) exec(ctx context.Context, b sq.Sqlizer, action string) (pgconn.CommandTag, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, apperror.NewInternal(fmt.Sprintf("failed to build %s %s query", action, t.m.resource), err)
	}
	tag, err := t.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tag, apperror.NewConflict(t.m.resource, "id", "")
		}
		return tag, apperror.NewInternal(fmt.Sprintf("failed to %s %s", action, t.m.resource), err)
	}
	return tag, nil
}

func (t *postgresTable[T]) Insert(ctx context.Context, item *T) error {
	b, err := t.insertBuilder(item)
	if err != nil {
		return err
	}
	_, err = t.exec(ctx, b, "insert")
	return err
}

func (t *postgresTable[T]) Update(ctx context.Context, id uuid.UUID, item *T) error {
	vals, err := t.m.values(item)
	if err != nil {
		return apperror.NewInternal(fmt.Sprintf("failed to encode %s", t.m.resource), err)
	}

	b := psql.Update(t.m.table)
	for i, col := range t.m.columns {
		if immutableColumn(col) {
			continue
		}
		b = b.Set(col, vals[i])
	}

	tag, err := t.exec(ctx, b.Where(sq.Eq{"id": id}), "update")
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(t.m.resource, id.String())
	}
	return nil
}

func (t *postgresTable[T]) Upsert(ctx context.Context, item *T) error {
	b, err := t.insertBuilder(item)
	if err != nil {
		return err
	}
	sets := make([]string, 0, len(t.m.columns))
	for _, col := range t.m.columns {
		if immutableColumn(col) {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	_, err = t.exec(ctx, b.Suffix("ON CONFLICT (id) DO UPDATE SET "+strings.Join(sets, ", ")), "upsert")
	return err
}

func (t *postgresTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := t.exec(ctx, psql.Delete(t.m.table).Where(sq.Eq{"id": id}), "delete")
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(t.m.resource, id.String())
	}
	return nil
}

func (t *postgresTable[T]) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(t.m.table).ToSql()
	if err != nil {
		return 0, apperror.NewInternal(fmt.Sprintf("failed to build count %s query", t.m.resource), err)
	}
	var n int
	if err := t.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperror.NewInternal(fmt.Sprintf("failed to count %s", t.m.table), err)
	}
	return n, nil
}

func immutableColumn(col string) bool {
	return col == "id" || col == "created_at"
}

// NewPostgresStores wires every collection to its table in pool.
func NewPostgresStores(db *pgxpool.Pool, l logger.Logger) portfolio.Stores {
	return portfolio.Stores{
		Profiles:     newPostgresTable(db, l, profileMapper),
		Skills:       newPostgresTable(db, l, skillMapper),
		Experiences:  newPostgresTable(db, l, experienceMapper),
		Certificates: newPostgresTable(db, l, certificateMapper),
		Projects:     newPostgresTable(db, l, projectMapper),
		Status:       newPostgresTable(db, l, statusMapper),
		SocialLinks:  newPostgresTable(db, l, socialLinkMapper),
	}
}
