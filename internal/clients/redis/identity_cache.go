package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/waliet/waliet-backend/internal/auth"
	"github.com/waliet/waliet-backend/internal/platform/envutil"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

// NewIdentityCache returns a short-TTL cache of verified Whop identities
// keyed by a hash of the user token. Cache failures are logged and treated
// as misses; the resolver works the same without redis, just slower.
func NewIdentityCache(log *logger.Logger) (auth.IdentityCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSec := envutil.Int("IDENTITY_CACHE_TTL_SECONDS", 60)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &identityCache{
		log: log.With("client", "IdentityCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSec) * time.Second,
	}, nil
}

type identityCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func (c *identityCache) Get(ctx context.Context, token string) *auth.ExternalIdentity {
	raw, err := c.rdb.Get(ctx, cacheKey(token)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("identity cache read failed", "error", err)
		}
		return nil
	}
	var identity auth.ExternalIdentity
	if err := json.Unmarshal(raw, &identity); err != nil {
		c.log.Warn("identity cache entry corrupt", "error", err)
		return nil
	}
	if identity.ProviderUserID == "" {
		return nil
	}
	return &identity
}

func (c *identityCache) Set(ctx context.Context, token string, identity *auth.ExternalIdentity) {
	if identity == nil {
		return
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(token), raw, c.ttl).Err(); err != nil {
		c.log.Warn("identity cache write failed", "error", err)
	}
}

// Tokens never land in redis verbatim.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "idcache:" + hex.EncodeToString(sum[:])
}
