package localemap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// defaultRedisPrefix namespaces translation keys in a shared Redis instance.
const defaultRedisPrefix = "localemap"

// RedisLoader fetches translation assets from Redis.
//
// Key convention: {prefix}:{locale}:{baseName}, holding a JSON document of
// the same shape as the on-disk asset files. Useful when translations are
// edited at runtime (e.g. by a CMS) and served to many processes.
type RedisLoader struct {
	client redis.UniversalClient
	prefix string
}

// RedisLoaderOption configures a RedisLoader.
type RedisLoaderOption func(*RedisLoader)

// WithRedisPrefix overrides the key prefix. Defaults to "localemap".
func WithRedisPrefix(prefix string) RedisLoaderOption {
	return func(l *RedisLoader) {
		if prefix != "" {
			l.prefix = prefix
		}
	}
}

// NewRedisLoader creates a Redis-backed loader. The client's lifecycle is
// managed by the caller.
func NewRedisLoader(client redis.UniversalClient, opts ...RedisLoaderOption) *RedisLoader {
	l := &RedisLoader{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch implements Loader.
func (l *RedisLoader) Fetch(ctx context.Context, locale, baseName string) (RawDictionary, error) {
	key := l.prefix + ":" + locale + ":" + baseName

	data, err := l.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrTransport, key, err)
	}

	return decodeMessages(data, json.Unmarshal)
}

var _ Loader = (*RedisLoader)(nil)
