package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "pix:qr:"
	defaultTTL = 24 * time.Hour
)

// ImageCache guarda as imagens PNG dos QR codes já renderizados
type ImageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, png []byte) error
}

// Connect conecta ao redis e devolve o client.
func Connect(ctx context.Context, uri, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     uri,
		Password: password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

// RedisImageCache é o ImageCache sobre o Redis
type RedisImageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisImageCache(client *redis.Client) *RedisImageCache {
	return &RedisImageCache{client: client, ttl: defaultTTL}
}

func (c *RedisImageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	png, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("erro ao ler QR do cache: %w", err)
	}
	return png, true, nil
}

func (c *RedisImageCache) Set(ctx context.Context, key string, png []byte) error {
	if err := c.client.Set(ctx, keyPrefix+key, png, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar QR no cache: %w", err)
	}
	return nil
}

// NopImageCache é usado quando não há Redis configurado
type NopImageCache struct{}

func (NopImageCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NopImageCache) Set(context.Context, string, []byte) error { return nil }
