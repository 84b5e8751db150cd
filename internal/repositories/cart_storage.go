package repositories

import "context"

// CartStorage is the key-value capability the cart store persists through.
// Get reports found=false, without error, when no value is stored under key.
type CartStorage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
