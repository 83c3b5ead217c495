package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/thirddot45/sftrails/internal/domain"
)

// DefaultRedisKey is the hash holding trail records when none is configured.
const DefaultRedisKey = "sftrails:trails"

// RedisSource reads trails stored as JSON documents in a single Redis hash,
// one field per trail id. It does not own the client; the caller closes it.
type RedisSource struct {
	client redis.Cmdable
	key    string
}

// NewRedisSource constructs a RedisSource reading the hash at key.
func NewRedisSource(client redis.Cmdable, key string) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{client: client, key: key}
}

// FetchAll returns every record in the hash.
func (r *RedisSource) FetchAll(ctx context.Context) ([]domain.Record, error) {
	vals, err := r.client.HVals(ctx, r.key).Result()
	if err != nil {
		return nil, domain.NewDataFetchError("failed to fetch trails", err)
	}

	recs := make([]domain.Record, 0, len(vals))
	for _, v := range vals {
		rec, err := decodeRecord(strings.NewReader(v))
		if err != nil {
			return nil, domain.NewDataFetchError("failed to fetch trails", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// FetchOne returns the record stored under id. A missing field is absence.
func (r *RedisSource) FetchOne(ctx context.Context, id string) (domain.Record, bool, error) {
	v, err := r.client.HGet(ctx, r.key, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, domain.NewDataFetchError("failed to fetch trail "+id, err)
	}

	rec, err := decodeRecord(strings.NewReader(v))
	if err != nil {
		return nil, false, domain.NewDataFetchError("failed to fetch trail "+id, err)
	}
	return rec, true, nil
}

// Put upserts rec under its id.
func (r *RedisSource) Put(ctx context.Context, rec domain.Record) error {
	return r.Seed(ctx, []domain.Record{rec})
}

// Seed upserts every record in one HSET call.
func (r *RedisSource) Seed(ctx context.Context, recs []domain.Record) error {
	if len(recs) == 0 {
		return nil
	}

	values := make([]any, 0, 2*len(recs))
	for _, rec := range recs {
		id := recordID(rec)
		if id == "" {
			return fmt.Errorf("source.RedisSource.Seed: %w: missing id", domain.ErrInvalidRecord)
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("source.RedisSource.Seed: encode %s: %w", id, err)
		}
		values = append(values, id, string(b))
	}

	if err := r.client.HSet(ctx, r.key, values...).Err(); err != nil {
		return fmt.Errorf("source.RedisSource.Seed: %w", err)
	}
	return nil
}

// Clear deletes the whole hash.
func (r *RedisSource) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("source.RedisSource.Clear: %w", err)
	}
	return nil
}
