package storage

import (
	"context"
	"fmt"
)

// Session store keys
const (
	KeyUserToken = "userToken"
	KeyUserInfo  = "userInfo"
)

// ErrNotFound is returned when a key is not present in the store
var ErrNotFound = fmt.Errorf("key not found")

// Store is the persistent key-value store backing the session. The auth
// client writes the token and the serialized user info through it; the
// session router only ever reads.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
