package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/verity-labs/docvet/internal/api"
)

const (
	traceKeyPrefix  = "docvet:trace:"
	resultKeyPrefix = "docvet:result:"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb: rdb,
	}
}

func (s *RedisStore) SetTrace(ctx context.Context, trace *ValidationTrace) error {
	if trace == nil || trace.ID == "" {
		return fmt.Errorf("invalid trace")
	}
	key := traceKeyPrefix + trace.ID

	if err := s.rdb.HSet(ctx, key, trace).Err(); err != nil {
		return fmt.Errorf("failed to store trace %q: %w", trace.ID, err)
	}
	return s.rdb.Expire(ctx, key, TraceExpiry).Err()
}

func (s *RedisStore) GetTrace(ctx context.Context, traceId string) (*ValidationTrace, error) {
	res := s.rdb.HGetAll(ctx, traceKeyPrefix+traceId)
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("failed to load trace %q: %w", traceId, err)
	}
	if len(res.Val()) == 0 {
		return nil, ErrTraceNotFound
	}

	var trace ValidationTrace
	if err := res.Scan(&trace); err != nil {
		return nil, fmt.Errorf("failed to decode trace %q: %w", traceId, err)
	}
	return &trace, nil
}

func (s *RedisStore) SetResult(ctx context.Context, traceId string, report api.ValidationReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report for %q: %w", traceId, err)
	}
	return s.rdb.Set(ctx, resultKeyPrefix+traceId, payload, TraceExpiry).Err()
}

func (s *RedisStore) GetResult(ctx context.Context, traceId string) (*api.ValidationReport, error) {
	payload, err := s.rdb.Get(ctx, resultKeyPrefix+traceId).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load result %q: %w", traceId, err)
	}

	var report api.ValidationReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to decode result %q: %w", traceId, err)
	}
	return &report, nil
}
