package session

import (
	"context"
	"time"

	"github.com/villicusbot/web/internal/errors"
)

// RecordTTL is how long a server-side session record lives.
const RecordTTL = 7 * 24 * time.Hour

// keyPrefix namespaces session records in the store.
const keyPrefix = "session:"

// Store is the server-side session record store. Implementations must return
// errors.ErrSessionNotFound for missing or expired keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Key builds the store key for a session id.
func Key(sid string) string {
	return keyPrefix + sid
}

// ErrNotFound is re-exported for implementations.
var ErrNotFound = errors.ErrSessionNotFound
