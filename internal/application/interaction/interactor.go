// Package interaction wraps raw driver actions into scroll, wait and act sequences
// that tolerate elements which are present but not yet interactable.
package interaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/application/wait"
	"browser-pom/internal/domain/entity"
)

const (
	DefaultActionTimeout  = 10 * time.Second
	DefaultScrollAttempts = 3
	DefaultScrollStep     = 200
	DefaultStaleRetries   = 1
	DefaultOptionTemplate = `//*[@role="option"][contains(normalize-space(.), "{0}")]`
)

type Config struct {
	// ActionTimeout bounds the wait for an element to become interactable.
	ActionTimeout  time.Duration
	ScrollAttempts int
	ScrollStep     float64
	// StaleRetries is how many times a sequence that failed at the action step is
	// restarted from locating the element. Negative disables retries.
	StaleRetries int
	// QueryTimeout lets state queries wait for the element to show up before reading.
	// Zero reads the current state.
	QueryTimeout time.Duration
	// OptionTemplate addresses an option of a non-native dropdown by its text.
	OptionTemplate string
}

func DefaultConfig() Config {
	return Config{
		ActionTimeout:  DefaultActionTimeout,
		ScrollAttempts: DefaultScrollAttempts,
		ScrollStep:     DefaultScrollStep,
		StaleRetries:   DefaultStaleRetries,
		OptionTemplate: DefaultOptionTemplate,
	}
}

type Interactor struct {
	driver output.DriverPort
	waiter *wait.Waiter
	logger output.LoggerPort
	cfg    Config
}

func NewInteractor(driver output.DriverPort, waiter *wait.Waiter, logger output.LoggerPort, cfg Config) *Interactor {
	def := DefaultConfig()
	if cfg.ActionTimeout <= 0 {
		cfg.ActionTimeout = def.ActionTimeout
	}
	if cfg.ScrollAttempts <= 0 {
		cfg.ScrollAttempts = def.ScrollAttempts
	}
	if cfg.ScrollStep == 0 {
		cfg.ScrollStep = def.ScrollStep
	}
	if cfg.StaleRetries < 0 {
		cfg.StaleRetries = 0
	}
	if cfg.OptionTemplate == "" {
		cfg.OptionTemplate = def.OptionTemplate
	}

	return &Interactor{
		driver: driver,
		waiter: waiter,
		logger: logger,
		cfg:    cfg,
	}
}

func (i *Interactor) Driver() output.DriverPort {
	return i.driver
}

func (i *Interactor) Waiter() *wait.Waiter {
	return i.waiter
}

func (i *Interactor) Logger() output.LoggerPort {
	return i.logger
}

type gate int

const (
	// gateInteractable waits for visible, enabled and pointer-events != none.
	gateInteractable gate = iota
	// gateAttached only waits for the element to exist, for hidden file inputs.
	gateAttached
	gateNone
)

// perform runs locate, scroll, await and act for one interaction, restarting the whole
// sequence on a stale failure up to StaleRetries times.
func (i *Interactor) perform(ctx context.Context, action, selector string, g gate, act func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= i.cfg.StaleRetries; attempt++ {
		err = i.attempt(ctx, action, selector, g, act)

		var stale *entity.StaleElementError
		if !errors.As(err, &stale) || ctx.Err() != nil {
			return err
		}
		if attempt < i.cfg.StaleRetries {
			i.logger.Warn("stale element, retrying", "action", action, "locator", selector, "attempt", attempt+1, "error", stale.Cause)
		}
	}
	return err
}

func (i *Interactor) attempt(ctx context.Context, action, selector string, g gate, act func(ctx context.Context) error) error {
	if g == gateInteractable {
		i.scrollIntoView(ctx, selector)
	}

	if g != gateNone {
		if err := i.awaitReady(ctx, action, selector, g); err != nil {
			return err
		}
	}

	if err := act(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s %q: %w", action, selector, ctxErr)
		}
		i.logger.Error("action failed", "action", action, "locator", selector, "error", err)
		return &entity.StaleElementError{Locator: selector, Action: action, Cause: err}
	}

	i.logger.Debug("action done", "action", action, "locator", selector)
	return nil
}

func (i *Interactor) awaitReady(ctx context.Context, action, selector string, g gate) error {
	seen := false
	cond := wait.Condition{
		Description: fmt.Sprintf("%q to be ready for %s", selector, action),
		Check: func(ctx context.Context) (bool, error) {
			states, err := i.driver.Query(ctx, selector)
			if err != nil {
				return false, err
			}
			if len(states) == 0 {
				return false, nil
			}
			seen = true
			return g == gateAttached || states[0].Interactable(), nil
		},
	}

	err := i.waiter.Poller().PollUntil(ctx, cond, wait.WithTimeout(i.cfg.ActionTimeout))
	if err == nil {
		return nil
	}
	if !errors.Is(err, entity.ErrWaitTimeout) {
		return err
	}

	cause := err
	if !seen {
		cause = fmt.Errorf("%w: %w", entity.ErrElementNotFound, err)
	}
	i.logger.Error("element not interactable", "action", action, "locator", selector, "error", cause)
	return &entity.InteractionTimeoutError{Locator: selector, Action: action, Cause: cause}
}

// scrollIntoView is best effort: scroll the element into view, then nudge the page a
// bounded number of times. Failures are only logged.
func (i *Interactor) scrollIntoView(ctx context.Context, selector string) {
	inView := func() (bool, bool) {
		states, err := i.driver.Query(ctx, selector)
		if err != nil || len(states) == 0 {
			return false, false
		}
		return states[0].InViewport, true
	}

	ok, found := inView()
	if !found {
		i.logger.Debug("scroll skipped, element not located yet", "locator", selector)
		return
	}
	if ok {
		return
	}

	if err := i.driver.ScrollIntoView(ctx, selector); err != nil {
		i.logger.Debug("scroll into view failed", "locator", selector, "error", err)
	} else if ok, _ = inView(); ok {
		return
	}

	for n := 0; n < i.cfg.ScrollAttempts; n++ {
		if ctx.Err() != nil {
			return
		}
		if err := i.driver.ScrollBy(ctx, 0, i.cfg.ScrollStep); err != nil {
			i.logger.Debug("incremental scroll failed", "locator", selector, "error", err)
			return
		}
		if ok, _ = inView(); ok {
			return
		}
	}
	i.logger.Warn("could not reveal element", "locator", selector, "attempts", i.cfg.ScrollAttempts)
}
