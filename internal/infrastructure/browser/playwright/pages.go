package playwright

import (
	"context"
	"fmt"
	"slices"

	"github.com/playwright-community/playwright-go"

	"browser-pom/internal/domain/entity"
)

// Pages are indexed in the order the browser context reports them, which is the order
// they were opened.

func (d *Driver) WaitForNewPage(ctx context.Context, trigger func(ctx context.Context) error) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	np, err := d.context.ExpectPage(func() error { return trigger(ctx) })
	if err != nil {
		return -1, fmt.Errorf("%w: %w", entity.ErrNoNewPage, err)
	}
	if err := np.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateLoad,
	}); err != nil {
		return -1, fmt.Errorf("wait load: %w", err)
	}

	d.page = np
	return slices.Index(d.context.Pages(), np), nil
}

func (d *Driver) SwitchToPage(ctx context.Context, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pages := d.context.Pages()
	if index < 0 || index >= len(pages) {
		return fmt.Errorf("switch to page %d of %d: %w", index, len(pages), entity.ErrNoSuchPage)
	}
	if err := pages[index].BringToFront(); err != nil {
		return fmt.Errorf("activate page %d: %w", index, err)
	}
	d.page = pages[index]
	return nil
}

func (d *Driver) PageCount() int {
	return len(d.context.Pages())
}

func (d *Driver) CloseCurrentPage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.PageCount() <= 1 {
		return entity.ErrLastPage
	}
	if err := d.page.Close(); err != nil {
		return fmt.Errorf("close page: %w", err)
	}
	return d.SwitchToPage(ctx, d.PageCount()-1)
}

func (d *Driver) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := d.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return nil
}

func (d *Driver) ClearCookies(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.context.ClearCookies(); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

func (d *Driver) UploadViaChooser(ctx context.Context, trigger func(ctx context.Context) error, paths []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fc, err := d.page.ExpectFileChooser(func() error { return trigger(ctx) })
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrNoFileChooser, err)
	}
	return fc.SetFiles(paths)
}

func (d *Driver) DragAndDrop(ctx context.Context, source, target string) error {
	from, err := d.present(ctx, source)
	if err != nil {
		return err
	}
	to, err := d.present(ctx, target)
	if err != nil {
		return err
	}
	return from.DragTo(to)
}
