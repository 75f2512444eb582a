package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTemplate = errors.New("invalid locator template")
	ErrElementNotFound = errors.New("element not found")
	ErrUnknownPage     = errors.New("unknown page object")
	ErrWaitTimeout     = errors.New("wait timed out")
	ErrNoSuchPage      = errors.New("no browser page at index")
	ErrLastPage        = errors.New("cannot close the only open page")
	ErrNoNewPage       = errors.New("no new page was opened")
	ErrNoFileChooser   = errors.New("no file chooser was opened")
)

// WaitTimeoutError is returned when a polled condition never held within its budget.
type WaitTimeoutError struct {
	Condition string
	Timeout   time.Duration
	Elapsed   time.Duration
	LastErr   error
}

func (e *WaitTimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s (timeout %s)", e.Elapsed.Round(time.Millisecond), e.Condition, e.Timeout)
	if e.LastErr != nil {
		msg += ": last error: " + e.LastErr.Error()
	}
	return msg
}

func (e *WaitTimeoutError) Is(target error) bool {
	return target == ErrWaitTimeout
}

func (e *WaitTimeoutError) Unwrap() error {
	return e.LastErr
}

// InteractionTimeoutError means the element never became interactable.
type InteractionTimeoutError struct {
	Locator string
	Action  string
	Cause   error
}

func (e *InteractionTimeoutError) Error() string {
	return fmt.Sprintf("%s %q: element not interactable: %v", e.Action, e.Locator, e.Cause)
}

func (e *InteractionTimeoutError) Unwrap() error {
	return e.Cause
}

// StaleElementError means the driver failed the action after the element was resolved,
// typically because it was detached or re-rendered in between.
type StaleElementError struct {
	Locator string
	Action  string
	Cause   error
}

func (e *StaleElementError) Error() string {
	return fmt.Sprintf("%s %q: stale element: %v", e.Action, e.Locator, e.Cause)
}

func (e *StaleElementError) Unwrap() error {
	return e.Cause
}
