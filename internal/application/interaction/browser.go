package interaction

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-pom/internal/domain/entity"
)

// OpenInNewPage clicks selector, waits for the tab or popup it opens and makes it the
// current page. It returns the index of the new page.
func (i *Interactor) OpenInNewPage(ctx context.Context, selector string) (int, error) {
	index := -1
	err := i.perform(ctx, "open new page", selector, gateInteractable, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, i.cfg.ActionTimeout)
		defer cancel()

		n, err := i.driver.WaitForNewPage(ctx, func(ctx context.Context) error {
			return i.driver.Click(ctx, selector, entity.ClickOptions{})
		})
		index = n
		return err
	})
	if err != nil {
		return -1, err
	}

	if err := i.driver.WaitIdle(ctx); err != nil {
		i.logger.Debug("new page did not settle", "url", i.driver.CurrentURL(), "error", err)
	}
	i.logger.Info("switched to new page", "index", index, "url", i.driver.CurrentURL())
	return index, nil
}

func (i *Interactor) SwitchToPage(ctx context.Context, index int) error {
	if err := i.driver.SwitchToPage(ctx, index); err != nil {
		return err
	}
	i.logger.Debug("switched page", "index", index, "url", i.driver.CurrentURL())
	return nil
}

func (i *Interactor) PageCount() int {
	return i.driver.PageCount()
}

// CloseCurrentPage closes the current page and continues on the most recent one left.
func (i *Interactor) CloseCurrentPage(ctx context.Context) error {
	url := i.driver.CurrentURL()
	if err := i.driver.CloseCurrentPage(ctx); err != nil {
		return fmt.Errorf("close page %s: %w", url, err)
	}
	i.logger.Debug("closed page", "url", url, "current", i.driver.CurrentURL())
	return nil
}

// Reload reloads the current page and waits for the network to settle.
func (i *Interactor) Reload(ctx context.Context) error {
	if err := i.driver.Reload(ctx); err != nil {
		return fmt.Errorf("reload %s: %w", i.driver.CurrentURL(), err)
	}
	if err := i.driver.WaitIdle(ctx); err != nil {
		i.logger.Debug("page did not settle", "url", i.driver.CurrentURL(), "error", err)
	}
	return nil
}

func (i *Interactor) ClearCookies(ctx context.Context) error {
	if err := i.driver.ClearCookies(ctx); err != nil {
		return err
	}
	i.logger.Debug("cookies cleared")
	return nil
}

// LocalStorageItem reads key from the current origin's localStorage. The bool is false
// when the key is not set.
func (i *Interactor) LocalStorageItem(ctx context.Context, key string) (string, bool, error) {
	k, err := jsString(key)
	if err != nil {
		return "", false, err
	}
	v, err := i.driver.Evaluate(ctx, "() => localStorage.getItem("+k+")")
	if err != nil {
		return "", false, fmt.Errorf("read localStorage %q: %w", key, err)
	}
	if v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("read localStorage %q: unexpected %T", key, v)
	}
	return s, true, nil
}

func (i *Interactor) SetLocalStorageItem(ctx context.Context, key, value string) error {
	k, err := jsString(key)
	if err != nil {
		return err
	}
	v, err := jsString(value)
	if err != nil {
		return err
	}
	if _, err := i.driver.Evaluate(ctx, "() => localStorage.setItem("+k+", "+v+")"); err != nil {
		return fmt.Errorf("write localStorage %q: %w", key, err)
	}
	return nil
}

// ClearStorage empties localStorage and sessionStorage of the current origin.
func (i *Interactor) ClearStorage(ctx context.Context) error {
	if _, err := i.driver.Evaluate(ctx, "() => { localStorage.clear(); sessionStorage.clear(); }"); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	i.logger.Debug("storage cleared", "url", i.driver.CurrentURL())
	return nil
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("quote %q: %w", s, err)
	}
	return string(b), nil
}
