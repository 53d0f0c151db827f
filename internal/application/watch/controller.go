package watch

import (
	"context"
	"sync"
	"time"

	"github.com/penwyp/cydconf/internal/core/model"
	"github.com/penwyp/cydconf/internal/data/snapshot"
	"github.com/penwyp/cydconf/internal/util"
)

const DefaultDebounce = 300 * time.Millisecond

// CheckFunc loads and validates the watched configuration
type CheckFunc func(ctx context.Context) (*model.Project, *model.Report, error)

// Result is the outcome of one validation pass
type Result struct {
	At      time.Time
	Trigger string
	Project *model.Project
	Report  *model.Report
	Err     error
}

// OK reports whether the pass loaded and validated without errors
func (r Result) OK() bool {
	return r.Err == nil && r.Report != nil && !r.Report.HasErrors()
}

// Controller re-validates on every debounced change
type Controller struct {
	events   <-chan FileEvent
	check    CheckFunc
	store    *snapshot.Store
	source   string
	debounce time.Duration
	onResult func(Result)

	mu   sync.Mutex
	last *Result
}

type Option func(*Controller)

// WithSnapshot stores every clean result under source
func WithSnapshot(store *snapshot.Store, source string) Option {
	return func(c *Controller) {
		c.store = store
		c.source = source
	}
}

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.debounce = d
	}
}

func NewController(events <-chan FileEvent, check CheckFunc, onResult func(Result), opts ...Option) *Controller {
	c := &Controller{
		events:   events,
		check:    check,
		debounce: DefaultDebounce,
		onResult: onResult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run validates once, then after each burst of changes, until ctx is
// cancelled or the event stream closes
func (c *Controller) Run(ctx context.Context) error {
	c.runCheck(ctx, "initial")

	timer := time.NewTimer(c.debounce)
	timer.Stop()
	defer timer.Stop()

	var (
		pending string
		armed   bool
	)
	for {
		var fire <-chan time.Time
		if armed {
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-c.events:
			if !ok {
				return nil
			}
			util.LogDebug("config changed", util.F("path", event.Path), util.F("op", event.Operation))
			pending = event.Path
			timer.Reset(c.debounce)
			armed = true

		case <-fire:
			armed = false
			c.runCheck(ctx, pending)
		}
	}
}

func (c *Controller) runCheck(ctx context.Context, trigger string) {
	project, report, err := c.check(ctx)
	result := Result{
		At:      time.Now(),
		Trigger: trigger,
		Project: project,
		Report:  report,
		Err:     err,
	}

	if result.OK() && c.store != nil {
		if err := c.store.Save(c.source, project, report); err != nil {
			util.LogWarn("failed to save snapshot", util.F("error", err.Error()))
		}
	}

	c.mu.Lock()
	c.last = &result
	c.mu.Unlock()

	if c.onResult != nil {
		c.onResult(result)
	}
}

// Last returns the most recent result, if any
func (c *Controller) Last() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}
