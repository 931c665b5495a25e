package navigator

import (
	"context"
	"sync"
	"time"

	"github.com/octabyte/skillswap-client/utils/logger"
	"go.uber.org/zap"
)

// Navigator moves the user interface to a client-side route. A CLI has no
// router, so implementations log, record or open a browser instead.
type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// Func adapts a function to Navigator.
type Func func(ctx context.Context, target string)

func (f Func) Navigate(ctx context.Context, target string) { f(ctx, target) }

// Recorder keeps every target it was sent to, in order.
type Recorder struct {
	mu      sync.Mutex
	targets []string
}

func (r *Recorder) Navigate(_ context.Context, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

func (r *Recorder) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.targets...)
}

// Last returns the most recent target, or "" when none.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.targets) == 0 {
		return ""
	}
	return r.targets[len(r.targets)-1]
}

// Logging writes each navigation to the global logger and forwards it to Next
// when set.
type Logging struct {
	Next Navigator
}

func (l Logging) Navigate(ctx context.Context, target string) {
	logger.LogInfo("navigate", zap.String("target", target))
	if l.Next != nil {
		l.Next.Navigate(ctx, target)
	}
}

// After navigates to target once delay has elapsed. It returns false without
// navigating when ctx is done first.
func After(ctx context.Context, nav Navigator, delay time.Duration, target string) bool {
	if delay <= 0 {
		nav.Navigate(ctx, target)
		return true
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		nav.Navigate(ctx, target)
		return true
	}
}
