package view

import (
	"context"
	"sync"
	"time"

	"github.com/platinummonkey/advocates/pkg/observability"
)

// ControllerOptions configures a Controller
type ControllerOptions struct {
	// Debounce is the quiet period before an edit triggers a fetch
	Debounce time.Duration
	// OnChange is called with the latest state after every transition
	OnChange func(State)
	Logger   *observability.Logger
}

// Controller drives Reduce, a Debouncer and a Fetcher. Fetches run on
// their own goroutines so input handling never waits on the network.
type Controller struct {
	mu    sync.Mutex
	state State

	notifyMu sync.Mutex
	onChange func(State)

	fetcher   Fetcher
	debouncer *Debouncer
	logger    *observability.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// NewController creates a controller fetching through fetcher
func NewController(fetcher Fetcher, opts ControllerOptions) *Controller {
	if opts.Logger == nil {
		opts.Logger = observability.NewLogger(observability.InfoLevel, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		onChange:  opts.OnChange,
		fetcher:   fetcher,
		debouncer: NewDebouncer(opts.Debounce),
		logger:    opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Mount loads the initial unfiltered listing
func (c *Controller) Mount() {
	c.dispatch(Mounted{})
}

// SetQuery records new input text and schedules a debounced fetch
func (c *Controller) SetQuery(text string) {
	c.dispatch(QueryChanged{Text: text})
}

// Reset clears the query and reloads the unfiltered listing
func (c *Controller) Reset() {
	c.dispatch(ResetRequested{})
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every fetch issued so far has been applied or dropped
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels the pending debounce and in-flight fetches and waits for
// them to finish. Events after Close are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.debouncer.Cancel()
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) dispatch(ev Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	var effect Effect
	c.state, effect = Reduce(c.state, ev)
	if effect.Kind == EffectFetch {
		c.wg.Add(1)
	}
	c.mu.Unlock()

	switch effect.Kind {
	case EffectDebounce:
		text := effect.Query
		c.debouncer.Trigger(func() {
			c.dispatch(DebounceElapsed{Text: text})
		})
	case EffectFetch:
		c.debouncer.Cancel()
		go c.fetch(effect.Seq, effect.Query)
	}

	c.notify()
}

func (c *Controller) fetch(seq uint64, query string) {
	defer c.wg.Done()

	rows, err := c.fetcher.Fetch(c.ctx, query)
	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"seq":   seq,
			"query": query,
		}).Warn("advocate fetch failed")
		c.dispatch(FetchFailed{Seq: seq, Err: err})
		return
	}

	c.dispatch(ResultsLoaded{Seq: seq, Rows: rows})
}

// notify hands the newest state to OnChange, one call at a time
func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.onChange(c.State())
}
