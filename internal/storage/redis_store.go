package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-pulse/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore hands the ranked stream of a day to downstream readers.
// Every key expires, so it is a buffer between runs and renderers rather
// than a history.
type RedisStore struct {
	rdb   *redis.Client
	scope string
}

func NewRedisStore(rdb *redis.Client, scope string) *RedisStore {
	if scope == "" {
		scope = "pulse"
	}
	return &RedisStore{rdb: rdb, scope: scope}
}

func (s *RedisStore) rankedKey(day string) string {
	return fmt.Sprintf("%s:ranked:%s", s.scope, day)
}

func (s *RedisStore) itemKey(kind model.Kind, id string) string {
	return fmt.Sprintf("%s:item:%s:%s", s.scope, kind, id)
}

func (s *RedisStore) publishedKey(day string) string {
	return fmt.Sprintf("%s:published:%s", s.scope, day)
}

// PublishRanked replaces the day's ranked set with items. The ZSET score
// is the item's position so readers get the exact ranked order back,
// ties included.
func (s *RedisStore) PublishRanked(ctx context.Context, day string, items []model.Item, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	zkey := s.rankedKey(day)
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, zkey)
		for i, it := range items {
			b, err := json.Marshal(it)
			if err != nil {
				return err
			}
			p.Set(ctx, s.itemKey(it.Kind, it.ID), b, ttl)
			p.ZAdd(ctx, zkey, redis.Z{Score: float64(i), Member: it.Key()})
		}
		p.Expire(ctx, zkey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: publish ranked %s: %w", day, err)
	}
	return nil
}

// TopRanked returns the first n items of a day's ranked set. Items whose
// payload already expired are skipped.
func (s *RedisStore) TopRanked(ctx context.Context, day string, n int) ([]model.Item, error) {
	if n <= 0 {
		return nil, nil
	}
	members, err := s.rdb.ZRange(ctx, s.rankedKey(day), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.Item, 0, len(members))
	for _, m := range members {
		b, err := s.rdb.Get(ctx, s.scope+":item:"+m).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, err
		}
		var it model.Item
		if err := json.Unmarshal(b, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// PublishedRun returns the run id recorded for day, or "" if none.
func (s *RedisStore) PublishedRun(ctx context.Context, day string) (string, error) {
	res, err := s.rdb.Get(ctx, s.publishedKey(day)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return res, nil
}

// MarkPublished records which run produced the day's ranked set.
func (s *RedisStore) MarkPublished(ctx context.Context, day, runID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return s.rdb.Set(ctx, s.publishedKey(day), runID, ttl).Err()
}
