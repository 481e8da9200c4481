package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/hopecare/internal/auth"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "hopecare:session:"

// Redis stores one JSON document per session with a key TTL matching the
// session expiry, so DeleteExpired has nothing left to do in steady state.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client, prefix: defaultKeyPrefix}
}

func (r *Redis) key(token string) string {
	return r.prefix + token
}

func (r *Redis) Create(ctx context.Context, session *auth.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("store session: %w", auth.ErrSessionExpired)
	}
	if err := r.client.Set(ctx, r.key(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, token string) (*auth.Session, error) {
	raw, err := r.client.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s auth.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *Redis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired scans the session keyspace for documents whose expiry passed
// before Redis evicted them (clock skew between nodes).
func (r *Redis) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return removed, fmt.Errorf("load session: %w", err)
		}
		var s auth.Session
		if err := json.Unmarshal(raw, &s); err != nil || s.ExpiredAt(now) {
			if err := r.client.Del(ctx, key).Err(); err != nil {
				return removed, fmt.Errorf("delete session: %w", err)
			}
			removed++
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("scan sessions: %w", err)
	}
	return removed, nil
}
