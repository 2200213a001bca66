package junction

import (
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Observer receives structural and timing events. Implementations must be
// safe for concurrent use: CliqueEliminated is called from worker goroutines.
type Observer interface {
	// TreeBuilt is called once per successful construction.
	TreeBuilt(cliques, factors int)

	// CliqueEliminated is called after each clique elimination attempt.
	CliqueEliminated(clique, frontals int, elapsed time.Duration, err error)
}

// Option configures a Tree at construction time.
type Option func(*options)

type options struct {
	workers  int
	logger   logrus.FieldLogger
	observer Observer
}

func defaultOptions() options {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	return options{
		workers:  runtime.GOMAXPROCS(0),
		logger:   silent,
		observer: nopObserver{},
	}
}

// WithWorkers bounds the number of cliques eliminated concurrently.
// Values ≤ 1 select the sequential post-order traversal.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger routes construction and elimination events to l.
// A nil logger keeps the default silent logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver installs o. A nil observer is ignored.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

type nopObserver struct{}

func (nopObserver) TreeBuilt(int, int)                              {}
func (nopObserver) CliqueEliminated(int, int, time.Duration, error) {}
