package remote

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// linearBackOff waits attempt*base before each retry: base, 2*base, 3*base...
type linearBackOff struct {
	base    time.Duration
	attempt int
}

var _ backoff.BackOff = (*linearBackOff)(nil)

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.base
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}
