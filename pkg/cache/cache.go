package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache хранит закодированные ответы с TTL на каждую запись.
// просроченная запись это промах, в фоне никто ничего не чистит
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key хэширует части ключа, чтобы api_key не попадал ни в память, ни в базу в открытом виде
func Key(namespace string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return namespace + ":" + hex.EncodeToString(sum[:])
}
