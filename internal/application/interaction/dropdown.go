package interaction

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"browser-pom/internal/domain/locator"
)

var ErrEmptyDropdown = errors.New("dropdown has no options")

// openDropdown clicks dropdown and waits for its options to render.
func (i *Interactor) openDropdown(ctx context.Context, dropdown, options string) ([]string, error) {
	if err := i.Click(ctx, dropdown); err != nil {
		return nil, err
	}
	if err := i.waiter.WaitForVisible(ctx, options, i.cfg.ActionTimeout); err != nil {
		return nil, fmt.Errorf("open dropdown %q: %w", dropdown, err)
	}

	values := i.Texts(ctx, options)
	if len(values) == 0 {
		return nil, fmt.Errorf("%q: %w", dropdown, ErrEmptyDropdown)
	}
	return values, nil
}

// DropdownValues opens the dropdown and lists its option texts.
func (i *Interactor) DropdownValues(ctx context.Context, dropdown, options string) ([]string, error) {
	return i.openDropdown(ctx, dropdown, options)
}

// SelectDropdownByIndex opens the dropdown and clicks the index-th option (0-based).
// options must be an XPath selector.
func (i *Interactor) SelectDropdownByIndex(ctx context.Context, dropdown, options string, index int) (string, error) {
	if !locator.IsXPath(options) {
		return "", fmt.Errorf("options locator %q must be XPath to address by position", options)
	}

	values, err := i.openDropdown(ctx, dropdown, options)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(values) {
		return "", fmt.Errorf("option index %d out of range, max %d", index, len(values)-1)
	}

	if err := i.Click(ctx, locator.Nth(options, index)); err != nil {
		return "", err
	}
	return values[index], nil
}

func (i *Interactor) SelectRandomDropdownValue(ctx context.Context, dropdown, options string) (string, error) {
	if !locator.IsXPath(options) {
		return "", fmt.Errorf("options locator %q must be XPath to address by position", options)
	}

	values, err := i.openDropdown(ctx, dropdown, options)
	if err != nil {
		return "", err
	}

	index := rand.IntN(len(values))
	if err := i.Click(ctx, locator.Nth(options, index)); err != nil {
		return "", err
	}
	return values[index], nil
}
