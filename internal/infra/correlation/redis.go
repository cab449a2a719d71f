package correlation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"accept-broker/internal/domain/correlation"
	"accept-broker/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Records outlive their advisory expiry so a late return still finds its context.
const redisRetention = 24 * time.Hour

// RedisStore keeps each record as JSON under correlation:{ref}; the used flag
// is a separate key claimed with SETNX.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func recordKey(referenceID string) string {
	return fmt.Sprintf("correlation:%s", referenceID)
}

func usedKey(referenceID string) string {
	return fmt.Sprintf("correlation:%s:used", referenceID)
}

func (s *RedisStore) Create(ctx context.Context, p *correlation.Pending) error {
	data, err := json.Marshal(p.Snapshot())
	if err != nil {
		return errs.Wrap(err, "encode correlation record")
	}
	ok, err := s.client.SetNX(ctx, recordKey(p.ReferenceID()), data, s.ttl+redisRetention).Result()
	if err != nil {
		s.logger.ErrorContext(ctx, "redis correlation write failed", "reference_id", p.ReferenceID(), "error", err)
		return errs.Mark(errs.Wrap(err, "redis setnx"), errs.ErrDatabaseOperationFailed)
	}
	if !ok {
		return errs.ErrCorrelationExists
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, referenceID string) (*correlation.Pending, error) {
	vals, err := s.client.MGet(ctx, recordKey(referenceID), usedKey(referenceID)).Result()
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "redis mget"), errs.ErrDatabaseOperationFailed)
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, errs.ErrCorrelationNotFound
	}
	var snap correlation.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, errs.Wrap(err, "decode correlation record")
	}
	if usedAt, ok := vals[1].(string); ok {
		snap.Used = true
		if t, err := time.Parse(time.RFC3339Nano, usedAt); err == nil {
			snap.UsedAt = &t
		}
	}
	return correlation.FromSnapshot(snap)
}

func (s *RedisStore) MarkUsed(ctx context.Context, referenceID string, at time.Time) (bool, error) {
	n, err := s.client.Exists(ctx, recordKey(referenceID)).Result()
	if err != nil {
		return false, errs.Mark(errs.Wrap(err, "redis exists"), errs.ErrDatabaseOperationFailed)
	}
	if n == 0 {
		return false, nil
	}
	flipped, err := s.client.SetNX(ctx, usedKey(referenceID), at.UTC().Format(time.RFC3339Nano), s.ttl+redisRetention).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, errs.Mark(errs.Wrap(err, "redis setnx"), errs.ErrDatabaseOperationFailed)
	}
	return flipped, nil
}
