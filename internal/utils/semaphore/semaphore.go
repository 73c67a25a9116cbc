package semaphore

import (
	"context"
	"fmt"
	"time"

	"github.com/talx-hub/points-ledger/internal/serviceerrs"
)

// Semaphore bounds the number of mutations running at once.
type Semaphore struct {
	semaCh chan struct{}
}

func New(maxInFlight uint64) *Semaphore {
	if maxInFlight == 0 {
		maxInFlight = 1
	}
	return &Semaphore{
		semaCh: make(chan struct{}, maxInFlight),
	}
}

func (s *Semaphore) AcquireWithTimeout(ctx context.Context, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("semaphore acquire cancelled: %w", ctx.Err())
	case <-timer.C:
		return serviceerrs.ErrMutationsBusy
	case s.semaCh <- struct{}{}:
		return nil
	}
}

func (s *Semaphore) Release() {
	<-s.semaCh
}

func (s *Semaphore) InFlight() int {
	return len(s.semaCh)
}
