package memory

import (
	"context"
	"fmt"
	"maps"

	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

// OpenPage simulates the application opening a tab or popup at url. It does not switch
// to it; call it from an OnClick hook to model a link with target=_blank.
func (d *Driver) OpenPage(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages = append(d.pages, url)
}

func (d *Driver) SetCookie(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cookies[name] = value
}

func (d *Driver) Cookies() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return maps.Clone(d.cookies)
}

// WaitForNewPage fails with ErrNoNewPage when trigger did not call OpenPage.
func (d *Driver) WaitForNewPage(ctx context.Context, trigger func(ctx context.Context) error) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	before := d.PageCount()
	if err := trigger(ctx); err != nil {
		return -1, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pages) <= before {
		return -1, entity.ErrNoNewPage
	}
	d.current = len(d.pages) - 1
	d.actions = append(d.actions, Action{Kind: "new-page", Value: d.pages[d.current]})
	return d.current, nil
}

func (d *Driver) SwitchToPage(ctx context.Context, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("switch to page %d of %d: %w", index, len(d.pages), entity.ErrNoSuchPage)
	}
	d.current = index
	d.actions = append(d.actions, Action{Kind: "switch-page", Value: d.pages[index]})
	return nil
}

func (d *Driver) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pages)
}

func (d *Driver) CloseCurrentPage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pages) <= 1 {
		return entity.ErrLastPage
	}
	closed := d.pages[d.current]
	d.pages = append(d.pages[:d.current], d.pages[d.current+1:]...)
	d.current = len(d.pages) - 1
	d.actions = append(d.actions, Action{Kind: "close-page", Value: closed})
	return nil
}

// Reload runs OnNavigate again for the current URL.
func (d *Driver) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	url := d.pages[d.current]
	d.actions = append(d.actions, Action{Kind: "reload", Value: url})
	hook := d.OnNavigate
	d.mu.Unlock()

	if hook != nil {
		hook(d, url)
	}
	return nil
}

func (d *Driver) ClearCookies(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.cookies)
	d.actions = append(d.actions, Action{Kind: "clear-cookies"})
	return nil
}

// UploadViaChooser records one "upload" action per path when trigger clicked an element
// with OpensFileChooser set.
func (d *Driver) UploadViaChooser(ctx context.Context, trigger func(ctx context.Context) error, paths []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	d.chooser = false
	d.mu.Unlock()

	if err := trigger(ctx); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.chooser {
		return entity.ErrNoFileChooser
	}
	d.chooser = false
	for _, p := range paths {
		d.actions = append(d.actions, Action{Kind: "upload", Selector: "file-chooser", Value: p})
	}
	return nil
}

// DragAndDrop records a "drag" action on source whose value is the target selector.
func (d *Driver) DragAndDrop(ctx context.Context, source, target string) error {
	d.mu.Lock()
	found := len(d.resolve(target)) > 0
	d.mu.Unlock()
	if !found {
		return fmt.Errorf("drag to %s: %w", target, entity.ErrElementNotFound)
	}

	_, err := d.act(ctx, "drag", source, locator.StripXPathPrefix(target))
	return err
}
