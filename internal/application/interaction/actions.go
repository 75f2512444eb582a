package interaction

import (
	"context"
	"fmt"
	"strings"

	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

type FillOptions struct {
	// SkipIfNotEmpty leaves a field that already holds a value untouched.
	SkipIfNotEmpty bool
	// ClearFirst empties the field before typing and always overwrites, even with
	// SkipIfNotEmpty set.
	ClearFirst bool
}

// Click waits for the first match to be interactable and clicks it. Force skips the
// interactability wait.
func (i *Interactor) Click(ctx context.Context, selector string, opts ...entity.ClickOptions) error {
	var o entity.ClickOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	g := gateInteractable
	if o.Force {
		g = gateAttached
	}
	return i.perform(ctx, "click", selector, g, func(ctx context.Context) error {
		return i.driver.Click(ctx, selector, o)
	})
}

func (i *Interactor) DoubleClick(ctx context.Context, selector string) error {
	return i.perform(ctx, "double-click", selector, gateInteractable, func(ctx context.Context) error {
		return i.driver.DoubleClick(ctx, selector)
	})
}

func (i *Interactor) Fill(ctx context.Context, selector, text string, opts ...FillOptions) (entity.FillResult, error) {
	var o FillOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	result := entity.FillResultFilled
	err := i.perform(ctx, "fill", selector, gateInteractable, func(ctx context.Context) error {
		result = entity.FillResultFilled

		if o.SkipIfNotEmpty && !o.ClearFirst {
			states, err := i.driver.Query(ctx, selector)
			if err != nil {
				return err
			}
			if len(states) == 0 {
				return fmt.Errorf("read current value: %w", entity.ErrElementNotFound)
			}
			current := states[0].Value
			if current == "" {
				current = states[0].Text
			}
			if strings.TrimSpace(current) != "" {
				result = entity.FillResultSkipped
				return nil
			}
		}

		if o.ClearFirst {
			if err := i.driver.Fill(ctx, selector, ""); err != nil {
				return err
			}
		}
		return i.driver.Fill(ctx, selector, text)
	})
	if err != nil {
		return "", err
	}

	if result == entity.FillResultSkipped {
		i.logger.Debug("fill skipped, field not empty", "locator", selector)
	}
	return result, nil
}

// SelectOption picks value in a native <select>, or opens a custom dropdown and clicks
// the option whose text contains value.
func (i *Interactor) SelectOption(ctx context.Context, selector, value string) error {
	if err := i.waiter.WaitForVisible(ctx, selector, i.cfg.ActionTimeout); err != nil {
		return &entity.InteractionTimeoutError{Locator: selector, Action: "select", Cause: err}
	}

	states, err := i.driver.Query(ctx, selector)
	if err == nil && len(states) > 0 && states[0].Tag == "select" {
		return i.perform(ctx, "select", selector, gateInteractable, func(ctx context.Context) error {
			return i.driver.SelectOption(ctx, selector, value)
		})
	}

	if err := i.Click(ctx, selector); err != nil {
		return err
	}
	option, err := locator.Build(i.cfg.OptionTemplate, value)
	if err != nil {
		return fmt.Errorf("option locator: %w", err)
	}
	return i.Click(ctx, option)
}

// TripleClick selects the whole line or paragraph under the element.
func (i *Interactor) TripleClick(ctx context.Context, selector string) error {
	return i.perform(ctx, "triple-click", selector, gateInteractable, func(ctx context.Context) error {
		return i.driver.Click(ctx, selector, entity.ClickOptions{Count: 3})
	})
}

// DragAndDrop drags source onto target once both are visible.
func (i *Interactor) DragAndDrop(ctx context.Context, source, target string) error {
	if err := i.waiter.WaitForVisible(ctx, target, i.cfg.ActionTimeout); err != nil {
		return &entity.InteractionTimeoutError{Locator: target, Action: "drop", Cause: err}
	}
	return i.perform(ctx, "drag", source, gateInteractable, func(ctx context.Context) error {
		return i.driver.DragAndDrop(ctx, source, target)
	})
}

func (i *Interactor) Hover(ctx context.Context, selector string) error {
	return i.perform(ctx, "hover", selector, gateInteractable, func(ctx context.Context) error {
		return i.driver.Hover(ctx, selector)
	})
}

func (i *Interactor) PressKey(ctx context.Context, selector, key string) error {
	return i.perform(ctx, "press "+key, selector, gateInteractable, func(ctx context.Context) error {
		return i.driver.Press(ctx, selector, key)
	})
}

// UploadFiles sets files on a file input, which is commonly hidden behind a styled button.
func (i *Interactor) UploadFiles(ctx context.Context, selector string, paths ...string) error {
	return i.perform(ctx, "upload", selector, gateAttached, func(ctx context.Context) error {
		return i.driver.SetInputFiles(ctx, selector, paths)
	})
}

// UploadViaChooser clicks button and answers the file dialog it opens with paths. Use
// it when the page has no reachable file input.
func (i *Interactor) UploadViaChooser(ctx context.Context, button string, paths ...string) error {
	return i.perform(ctx, "upload via chooser", button, gateInteractable, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, i.cfg.ActionTimeout)
		defer cancel()
		return i.driver.UploadViaChooser(ctx, func(ctx context.Context) error {
			return i.driver.Click(ctx, button, entity.ClickOptions{})
		}, paths)
	})
}

// Navigate loads url and waits for the network to settle.
func (i *Interactor) Navigate(ctx context.Context, url string) error {
	if err := i.driver.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := i.driver.WaitIdle(ctx); err != nil {
		i.logger.Debug("page did not settle", "url", url, "error", err)
	}
	return nil
}
