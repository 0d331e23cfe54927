package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "steward:session:"

// RedisRepository implements Repository over Redis. Expiry rides on the key
// TTL, so DeleteExpired is a no-op; Redis evicts for us.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis-backed session repository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

type redisSession struct {
	UserID     string    `json:"user_id"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Create creates a new session
func (r *RedisRepository) Create(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(redisSession{
		UserID:     sess.UserID,
		IPAddress:  sess.IPAddress,
		UserAgent:  sess.UserAgent,
		ExpiresAt:  sess.ExpiresAt,
		CreatedAt:  sess.CreatedAt,
		LastSeenAt: sess.LastSeenAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	if err := r.client.Set(ctx, redisKeyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	// Index by user for DeleteByUserID
	if err := r.client.SAdd(ctx, userKey(sess.UserID), sess.ID).Err(); err != nil {
		return fmt.Errorf("failed to index session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (r *RedisRepository) Get(ctx context.Context, sessionID string) (*Session, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(payload, &rs); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &Session{
		ID:         sessionID,
		UserID:     rs.UserID,
		IPAddress:  rs.IPAddress,
		UserAgent:  rs.UserAgent,
		ExpiresAt:  rs.ExpiresAt,
		CreatedAt:  rs.CreatedAt,
		LastSeenAt: rs.LastSeenAt,
	}, nil
}

// Update rewrites the session, preserving its remaining TTL
func (r *RedisRepository) Update(ctx context.Context, sess *Session) error {
	payload, err := json.Marshal(redisSession{
		UserID:     sess.UserID,
		IPAddress:  sess.IPAddress,
		UserAgent:  sess.UserAgent,
		ExpiresAt:  sess.ExpiresAt,
		CreatedAt:  sess.CreatedAt,
		LastSeenAt: sess.LastSeenAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	return r.client.Set(ctx, redisKeyPrefix+sess.ID, payload, ttl).Err()
}

// Delete deletes a session
func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	sess, err := r.Get(ctx, sessionID)
	if err == nil {
		_ = r.client.SRem(ctx, userKey(sess.UserID), sessionID).Err()
	}
	return r.client.Del(ctx, redisKeyPrefix+sessionID).Err()
}

// DeleteByUserID deletes all sessions for a user
func (r *RedisRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ids, err := r.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}
	for _, sid := range ids {
		if err := r.client.Del(ctx, redisKeyPrefix+sid).Err(); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, userKey(userID)).Err()
}

// DeleteExpired is a no-op: key TTLs handle expiry
func (r *RedisRepository) DeleteExpired(ctx context.Context) error {
	return nil
}

func userKey(userID string) string {
	return redisKeyPrefix + "user:" + userID
}
