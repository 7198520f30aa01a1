package pricing

import (
	"context"
	"errors"
)

var ErrConfigNotFound = errors.New("pricing: configuration not found")

// Store is the swappable persistence adapter for pricing configuration. The
// engine never reads ambient state: callers load a Config and pass it into
// every Calculate call explicitly.
type Store interface {
	Load(ctx context.Context) (Config, error)
	Replace(ctx context.Context, cfg Config) error
}
