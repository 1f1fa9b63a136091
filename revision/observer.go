package revision

import "time"

// Observer receives diagnostics from a Reviser. Implementations must return
// quickly; they run on the caller's goroutine.
type Observer interface {
	Revised(cfg Config, elapsed time.Duration)
	Failed(cfg Config, err error)
}

type nopObserver struct{}

func (nopObserver) Revised(Config, time.Duration) {}
func (nopObserver) Failed(Config, error) {}
