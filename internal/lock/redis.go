package lock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"wellness/planner/internal/logger"
)

var ErrLockLost = errors.New("lock: expired before release")

// unlockScript deletes the key only if it still holds our token.
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a lock shared across server instances. The key expires after ttl
// so a crashed holder cannot block a user forever.
type Redis struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
	poll   time.Duration
	logger *logger.Logger
}

func NewRedis(rdb goredis.UniversalClient, prefix string, ttl time.Duration, log *logger.Logger) *Redis {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Redis{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		poll:   100 * time.Millisecond,
		logger: log.With("service", "RedisLock"),
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	k := r.prefix + key
	token := uuid.NewString()

	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
		ok, err := r.rdb.SetNX(ctx, k, token, r.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		t.Reset(r.poll)
	}

	return func() {
		// Release even if the request context is already gone.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		n, err := unlockScript.Run(ctx, r.rdb, []string{k}, token).Int()
		if err != nil {
			r.logger.Error("Failed to release lock", "key", k, "error", err)
			return
		}
		if n == 0 {
			r.logger.Warn("Lock expired before release", "key", k, "error", ErrLockLost)
		}
	}, nil
}
