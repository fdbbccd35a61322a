// file: internals/cache/profile_cache.go
package cache

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"profilku_backend/internals/configs"
)

const (
	nsProfile         = "profilku:profile"
	invalidateChannel = "profilku:invalidate"
	defaultTTL        = 5 * time.Minute
)

// Invalidator is the write-side contract the orchestrator depends on.
// Every component that caches profile data subscribes by profile id or
// username; there is no global refresh slot.
type Invalidator interface {
	InvalidateProfile(ctx context.Context, profileID uuid.UUID, username string)
}

// NoopInvalidator keeps the orchestrator wiring simple in tests and when
// redis is not configured.
type NoopInvalidator struct{}

func (NoopInvalidator) InvalidateProfile(context.Context, uuid.UUID, string) {}

/* =======================================================================
   ProfileCache: read-through cache + invalidation bus on redis
======================================================================= */

type ProfileCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewProfileCacheFromEnv returns nil when REDIS_ADDR is unset; callers
// treat a nil cache as "no caching".
func NewProfileCacheFromEnv() *ProfileCache {
	addr := configs.GetEnv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, profile cache disabled")
		return nil
	}
	addrs := strings.Split(addr, ",")

	var rdb redis.UniversalClient
	if len(addrs) > 1 {
		rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    addrs,
			Password: configs.GetEnv("REDIS_PASSWORD"),
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addrs[0],
			Password: configs.GetEnv("REDIS_PASSWORD"),
			DB:       0,
		})
	}
	log.Println("✅ Profile cache connected.")
	return &ProfileCache{client: rdb, ttl: defaultTTL}
}

func (c *ProfileCache) Close() error { return c.client.Close() }

func usernameKey(username string) string {
	return nsProfile + ":username:" + strings.ToLower(strings.TrimSpace(username))
}

func idKey(id uuid.UUID) string {
	return nsProfile + ":id:" + id.String()
}

// GetProfileByUsername returns the cached JSON payload, "" on miss.
func (c *ProfileCache) GetProfileByUsername(ctx context.Context, username string) string {
	v, err := c.client.Get(ctx, usernameKey(username)).Result()
	if err != nil {
		return ""
	}
	return v
}

func (c *ProfileCache) SetProfileByUsername(ctx context.Context, username string, payload string) {
	if err := c.client.Set(ctx, usernameKey(username), payload, c.ttl).Err(); err != nil {
		log.Printf("[WARN] cache set failed: %v", err)
	}
}

// InvalidateProfile drops both keyings and publishes so other instances
// drop theirs too. Best-effort: cache failures never fail the save.
func (c *ProfileCache) InvalidateProfile(ctx context.Context, profileID uuid.UUID, username string) {
	keys := []string{idKey(profileID)}
	if strings.TrimSpace(username) != "" {
		keys = append(keys, usernameKey(username))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[WARN] cache del failed: %v", err)
	}
	msg := profileID.String() + "|" + username
	if err := c.client.Publish(ctx, invalidateChannel, msg).Err(); err != nil {
		log.Printf("[WARN] cache publish failed: %v", err)
	}
}

// ListenInvalidations drains the invalidation channel and drops local keys.
// Runs until ctx is done.
func (c *ProfileCache) ListenInvalidations(ctx context.Context) {
	sub := c.client.Subscribe(ctx, invalidateChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			parts := strings.SplitN(m.Payload, "|", 2)
			keys := make([]string, 0, 2)
			if id, err := uuid.Parse(parts[0]); err == nil {
				keys = append(keys, idKey(id))
			}
			if len(parts) == 2 && parts[1] != "" {
				keys = append(keys, usernameKey(parts[1]))
			}
			if len(keys) > 0 {
				_ = c.client.Del(ctx, keys...).Err()
			}
		}
	}
}
