package realtime

import (
	"context"
)

// Source is one connection lifecycle to a push transport. Run blocks until
// the connection drops or ctx is done, calling onConnected once the
// transport is live and deliver for every raw frame in receive order.
type Source interface {
	Name() string
	Run(ctx context.Context, onConnected func(), deliver func([]byte)) error
}
