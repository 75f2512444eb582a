package wait

import (
	"context"
	"fmt"
	"strings"
	"time"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/domain/entity"
)

// Waiter polls element state through the driver. Element predicates apply to the
// first match of the selector.
type Waiter struct {
	driver output.DriverPort
	poller Poller
	logger output.LoggerPort
}

func NewWaiter(driver output.DriverPort, poller Poller, logger output.LoggerPort) *Waiter {
	return &Waiter{
		driver: driver,
		poller: poller,
		logger: logger,
	}
}

func (w *Waiter) Poller() Poller {
	return w.poller
}

func (w *Waiter) WaitForVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return w.waitFirst(ctx, selector, "be visible", timeout, func(s entity.ElementState) bool {
		return s.Visible
	})
}

// WaitForHidden also holds when nothing matches.
func (w *Waiter) WaitForHidden(ctx context.Context, selector string, timeout time.Duration) error {
	return w.wait(ctx, fmt.Sprintf("%q to be hidden", selector), timeout, func(ctx context.Context) (bool, error) {
		states, err := w.driver.Query(ctx, selector)
		if err != nil {
			return false, err
		}
		return len(states) == 0 || !states[0].Visible, nil
	})
}

func (w *Waiter) WaitForEnabled(ctx context.Context, selector string, timeout time.Duration) error {
	return w.waitFirst(ctx, selector, "be enabled", timeout, func(s entity.ElementState) bool {
		return s.Enabled
	})
}

func (w *Waiter) WaitForChecked(ctx context.Context, selector string, timeout time.Duration) error {
	return w.waitFirst(ctx, selector, "be checked", timeout, func(s entity.ElementState) bool {
		return s.Checked
	})
}

// WaitForInteractable waits until the first match is visible, enabled and accepts pointer events.
func (w *Waiter) WaitForInteractable(ctx context.Context, selector string, timeout time.Duration) error {
	return w.waitFirst(ctx, selector, "be interactable", timeout, entity.ElementState.Interactable)
}

func (w *Waiter) WaitForTextContains(ctx context.Context, selector, text string, timeout time.Duration) error {
	desc := fmt.Sprintf("contain text %q", text)
	return w.waitFirst(ctx, selector, desc, timeout, func(s entity.ElementState) bool {
		return strings.Contains(s.Text, text) || strings.Contains(s.Value, text)
	})
}

func (w *Waiter) WaitForCount(ctx context.Context, selector string, count int, timeout time.Duration) error {
	return w.wait(ctx, fmt.Sprintf("%q to match %d elements", selector, count), timeout, func(ctx context.Context) (bool, error) {
		states, err := w.driver.Query(ctx, selector)
		if err != nil {
			return false, err
		}
		return len(states) == count, nil
	})
}

func (w *Waiter) WaitForURLContains(ctx context.Context, fragment string, timeout time.Duration) error {
	return w.wait(ctx, fmt.Sprintf("url to contain %q", fragment), timeout, func(context.Context) (bool, error) {
		return strings.Contains(w.driver.CurrentURL(), fragment), nil
	})
}

// PollUntil polls an arbitrary predicate with an explicit timeout and interval.
func (w *Waiter) PollUntil(ctx context.Context, description string, predicate func(ctx context.Context) (bool, error), timeout, interval time.Duration) error {
	return w.poller.PollUntil(ctx, Condition{Description: description, Check: predicate},
		WithTimeout(timeout), WithInterval(interval))
}

func (w *Waiter) waitFirst(ctx context.Context, selector, state string, timeout time.Duration, pred func(entity.ElementState) bool) error {
	desc := fmt.Sprintf("%q to %s", selector, state)
	return w.wait(ctx, desc, timeout, func(ctx context.Context) (bool, error) {
		states, err := w.driver.Query(ctx, selector)
		if err != nil {
			return false, err
		}
		if len(states) == 0 {
			return false, entity.ErrElementNotFound
		}
		return pred(states[0]), nil
	})
}

func (w *Waiter) wait(ctx context.Context, desc string, timeout time.Duration, check func(context.Context) (bool, error)) error {
	err := w.poller.PollUntil(ctx, Condition{Description: desc, Check: check}, WithTimeout(timeout))
	if err != nil {
		w.logger.Debug("wait failed", "condition", desc, "error", err)
	}
	return err
}
