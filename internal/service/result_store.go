package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/classforge/timetable-api/internal/dto"
	appErrors "github.com/classforge/timetable-api/pkg/errors"
)

// ResultStore keeps the latest generated timetable per institution for the
// configured retention window. Results are regenerable, so the store is a
// cache rather than a system of record.
type ResultStore interface {
	Save(ctx context.Context, result *dto.TimetableResponse) error
	Get(ctx context.Context, institutionID string) (*dto.TimetableResponse, error)
}

type memoryEntry struct {
	result    *dto.TimetableResponse
	expiresAt time.Time
}

// MemoryResultStore is the in-process fallback when Redis is not configured.
type MemoryResultStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryResultStore constructs a TTL-bound in-memory store.
func NewMemoryResultStore(ttl time.Duration) *MemoryResultStore {
	return &MemoryResultStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

// Save stores the result, replacing any previous one for the institution.
func (s *MemoryResultStore) Save(_ context.Context, result *dto.TimetableResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[result.InstitutionID] = memoryEntry{
		result:    result,
		expiresAt: time.Now().Add(s.ttl),
	}

	// Opportunistic sweep keeps the map from accumulating dead entries
	// without a background janitor.
	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}

	return nil
}

// Get returns the stored result or a not-found error once it expires.
func (s *MemoryResultStore) Get(_ context.Context, institutionID string) (*dto.TimetableResponse, error) {
	s.mu.RLock()
	entry, ok := s.entries[institutionID]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable found for institution "+institutionID)
	}

	return entry.result, nil
}

const redisResultKeyPrefix = "timetable:result:"

// RedisResultStore persists results in Redis so restarts and replicas share
// the retention window.
type RedisResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisResultStore constructs a Redis-backed store.
func NewRedisResultStore(client *redis.Client, ttl time.Duration) *RedisResultStore {
	return &RedisResultStore{client: client, ttl: ttl}
}

// Save serializes the result and writes it with the retention TTL.
func (s *RedisResultStore) Save(ctx context.Context, result *dto.TimetableResponse) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode timetable result")
	}

	if err := s.client.Set(ctx, redisResultKeyPrefix+result.InstitutionID, payload, s.ttl).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store timetable result")
	}

	return nil
}

// Get loads and decodes the stored result; a Redis miss maps to not-found.
func (s *RedisResultStore) Get(ctx context.Context, institutionID string) (*dto.TimetableResponse, error) {
	payload, err := s.client.Get(ctx, redisResultKeyPrefix+institutionID).Bytes()
	if err == redis.Nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable found for institution "+institutionID)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load timetable result")
	}

	var result dto.TimetableResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode timetable result")
	}

	return &result, nil
}
