package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/minhphamdev/banle-api/internal/domain/entity"
	domainRepo "github.com/minhphamdev/banle-api/internal/domain/repository"
)

// Carts are working state, not records; they expire if untouched for a week.
const cartTTL = 7 * 24 * time.Hour

type redisCartStore struct {
	client *redis.Client
}

// NewRedisCartStore creates a Redis-backed cart store
func NewRedisCartStore(client *redis.Client) domainRepo.CartStore {
	return &redisCartStore{client: client}
}

func cartKey(userID uuid.UUID) string {
	return "carts:" + userID.String()
}

func (s *redisCartStore) Load(ctx context.Context, userID uuid.UUID) (*entity.CartSet, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity.UnmarshalCartSet(data)
}

func (s *redisCartStore) Save(ctx context.Context, userID uuid.UUID, set *entity.CartSet) error {
	data, err := set.Marshal()
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(userID), data, cartTTL).Err()
}

func (s *redisCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}
