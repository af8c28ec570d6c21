package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/rueidis"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// lookupTimeout bounds a shared lookup, which no longer follows any single
// caller's context.
const lookupTimeout = 30 * time.Second

// DefaultCachePrefix namespaces transfer keys as <prefix>:<reference>:<index>.
const DefaultCachePrefix = "reviewpool:transfer"

// CachedClient keeps finalized transfers in Redis. Finalized transactions
// never change, so a hit is as good as a fresh lookup. Misses are never cached
// because the transaction may still finalize.
type CachedClient struct {
	next   TransferLookup
	redis  rueidis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group
	log    logrus.FieldLogger
}

func NewCachedClient(next TransferLookup, redis rueidis.Client, prefix string, ttl time.Duration, log logrus.FieldLogger) *CachedClient {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		prefix = DefaultCachePrefix
	}
	if ttl < time.Second {
		ttl = 24 * time.Hour
	}
	return &CachedClient{
		next:   next,
		redis:  redis,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

func (c *CachedClient) key(reference string, accountIndex int) string {
	return fmt.Sprintf("%s:%s:%d", c.prefix, reference, accountIndex)
}

// LookupTransfer serves finalized transfers from Redis and collapses
// concurrent misses for one reference into a single upstream call. A caller
// that gives up stops waiting without failing the others.
func (c *CachedClient) LookupTransfer(ctx context.Context, reference string, accountIndex int) (Transfer, error) {
	key := c.key(reference, accountIndex)

	if transfer, ok := c.load(ctx, key); ok {
		return transfer, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()

		transfer, err := c.next.LookupTransfer(shared, reference, accountIndex)
		if err != nil {
			return Transfer{}, err
		}
		c.store(shared, key, transfer)
		return transfer, nil
	})

	select {
	case <-ctx.Done():
		return Transfer{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Transfer{}, res.Err
		}
		return res.Val.(Transfer), nil
	}
}

func (c *CachedClient) load(ctx context.Context, key string) (Transfer, bool) {
	raw, err := c.redis.Do(ctx, c.redis.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			c.log.WithError(err).WithField("key", key).Warn("transfer cache read failed")
		}
		return Transfer{}, false
	}

	var transfer Transfer
	if err := json.Unmarshal([]byte(raw), &transfer); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("discarding corrupt transfer cache entry")
		return Transfer{}, false
	}
	return transfer, true
}

func (c *CachedClient) store(ctx context.Context, key string, transfer Transfer) {
	raw, err := json.Marshal(transfer)
	if err != nil {
		return
	}
	cmd := c.redis.B().Set().Key(key).Value(string(raw)).ExSeconds(int64(c.ttl / time.Second)).Build()
	if err := c.redis.Do(ctx, cmd).Error(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("transfer cache write failed")
	}
}
