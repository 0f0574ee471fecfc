package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sirpyerre/proposals-api/internal/core/domain"
)

// minTTL keeps an entry for tokens that are already at, or past, expiry.
const minTTL = time.Second

// Denylist stores revoked token identifiers in Redis.
// Key format: revoked:<jti>, value: user id, expiring with the token.
type Denylist struct {
	client *redis.Client
	now    func() time.Time
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client, now: time.Now}
}

// IsRevoked reports whether the token identifier has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

// Revoke records the token until it expires. SETNX makes concurrent
// revocations of the same token resolve to a single winner.
func (d *Denylist) Revoke(ctx context.Context, token domain.RevokedToken) error {
	ttl := revocationTTL(token.ExpiresAt, d.now())
	set, err := d.client.SetNX(ctx, d.key(token.JTI), token.UserID, ttl).Result()
	return revokeResult(set, err)
}

// revocationTTL keeps the entry until the token expires, never less than minTTL.
func revocationTTL(expiresAt, now time.Time) time.Duration {
	ttl := expiresAt.Sub(now)
	if ttl < minTTL {
		return minTTL
	}
	return ttl
}

// revokeResult turns a SETNX that found the key already present into
// domain.ErrInvalidToken.
func revokeResult(set bool, err error) error {
	if err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	if !set {
		return domain.ErrInvalidToken
	}
	return nil
}

func (d *Denylist) key(jti string) string {
	return "revoked:" + jti
}
