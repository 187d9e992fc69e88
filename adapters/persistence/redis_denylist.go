package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-cms/pkg/auth"
)

const revokedTokenPrefix = "session:revoked:"

type redisDenylist struct {
	rdb *redis.Client
}

// NewRedisDenylist shares token revocations between server instances. Keys
// expire together with the revoked token.
func NewRedisDenylist(rdb *redis.Client) auth.Denylist {
	return &redisDenylist{rdb: rdb}
}

func (d *redisDenylist) Revoke(ctx context.Context, id string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, revokedTokenPrefix+id, 1, ttl).Err()
}

func (d *redisDenylist) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := d.rdb.Exists(ctx, revokedTokenPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
