package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"washbook/models"
	"washbook/utils"

	"github.com/go-redis/redis/v8"
)

// SessionStore persists booking sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, session *models.BookingSession) error
	Load(ctx context.Context, sessionID string) (*models.BookingSession, error)
	// Update applies fn to the stored session and saves it atomically. It refuses with
	// ErrSubmissionInFlight while a submission holds the lock.
	Update(ctx context.Context, sessionID string, fn func(*models.BookingSession) error) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
	// AcquireSubmitLock reports false when another submission holds the lock.
	AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions as JSON under booking:session:<id> with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return utils.SessionKeyPrefix + id
}

func submitLockKey(id string) string {
	return sessionKey(id) + utils.SubmitLockSuffix
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	key := sessionKey(sessionID)
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read booking session: %w", err)
	}

	var session models.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session %s: %w", sessionID, err)
	}
	// Reads keep an active session alive.
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to refresh booking session: %w", err)
	}
	return &session, nil
}

// maxUpdateAttempts bounds the optimistic retries of Update.
const maxUpdateAttempts = 3

func (s *RedisSessionStore) Update(ctx context.Context, sessionID string, fn func(*models.BookingSession) error) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	key := sessionKey(sessionID)
	lockKey := submitLockKey(sessionID)

	var session *models.BookingSession
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read booking session: %w", err)
		}
		locked, err := tx.Exists(ctx, lockKey).Result()
		if err != nil {
			return fmt.Errorf("failed to check submit lock: %w", err)
		}
		if locked > 0 {
			return ErrSubmissionInFlight
		}

		var current models.BookingSession
		if err := json.Unmarshal(data, &current); err != nil {
			return fmt.Errorf("failed to parse booking session %s: %w", sessionID, err)
		}
		if err := fn(&current); err != nil {
			return err
		}
		out, err := json.Marshal(&current)
		if err != nil {
			return fmt.Errorf("failed to marshal booking session: %w", err)
		}
		// EXEC aborts if the session or the submit lock changed since WATCH.
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		session = &current
		return nil
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key, lockKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	return nil, ErrSessionChanged
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := s.client.Del(ctx, sessionKey(sessionID), submitLockKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisSessionStore) AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, submitLockKey(sessionID), time.Now().UTC().Format(time.RFC3339Nano), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (s *RedisSessionStore) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, submitLockKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}
