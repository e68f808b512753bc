package utils

import (
	"context"
	"time"
)

// Upper bound for a single repository call. Checkout runs several of
// these inside one transaction, so keep it well under the server's
// write timeout.
const dbTimeout = 3 * time.Second

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, dbTimeout)
}
