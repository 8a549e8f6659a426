package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/cjl-232/cryptcord-server/internal/user"
	models "github.com/cjl-232/cryptcord-server/internal/user/model"
	"github.com/cjl-232/cryptcord-server/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// CachedUserRepository layers a read-through key→id cache over another
// repository. Identity rows are immutable, so a cached id never goes
// stale. Cache failures degrade to the inner repository; they never fail
// the request.
type CachedUserRepository struct {
	inner  user.UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

func NewCachedUserRepository(inner user.UserRepository, client *redis.Client, ttl time.Duration, logger logger.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: &logger,
	}
}

func (r *CachedUserRepository) ResolveOrCreate(ctx context.Context, publicKey string) (*models.User, error) {
	if id, ok := r.cachedID(ctx, publicKey); ok {
		return &models.User{ID: id, PublicKey: publicKey}, nil
	}

	u, err := r.inner.ResolveOrCreate(ctx, publicKey)
	if err != nil {
		return nil, err
	}
	r.store(ctx, publicKey, u.ID)
	return u, nil
}

func (r *CachedUserRepository) GetByPublicKey(ctx context.Context, publicKey string) (*models.User, error) {
	if id, ok := r.cachedID(ctx, publicKey); ok {
		return &models.User{ID: id, PublicKey: publicKey}, nil
	}

	u, err := r.inner.GetByPublicKey(ctx, publicKey)
	if err != nil {
		return nil, err
	}
	r.store(ctx, publicKey, u.ID)
	return u, nil
}

func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.inner.GetByID(ctx, id)
}

func (r *CachedUserRepository) cachedID(ctx context.Context, publicKey string) (int64, bool) {
	val, err := r.client.Get(ctx, cacheKey(publicKey)).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("identity cache read failed", "err", err)
		}
		return 0, false
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		r.logger.Warn("identity cache held a non-numeric id", "value", val)
		return 0, false
	}
	return id, true
}

func (r *CachedUserRepository) store(ctx context.Context, publicKey string, id int64) {
	if err := r.client.Set(ctx, cacheKey(publicKey), strconv.FormatInt(id, 10), r.ttl).Err(); err != nil {
		r.logger.Warn("identity cache write failed", "err", err)
	}
}

func cacheKey(publicKey string) string {
	return "cryptcord:user:" + publicKey
}
