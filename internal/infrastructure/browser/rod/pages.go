package rod

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-rod/rod/lib/proto"

	"browser-pom/internal/domain/entity"
)

// dragSteps is how many mouse moves a drag is split into; some drop targets only react
// to intermediate dragover events.
const dragSteps = 10

func (d *Driver) WaitForNewPage(ctx context.Context, trigger func(ctx context.Context) error) (int, error) {
	wait := d.page.Context(ctx).WaitOpen()
	if err := trigger(ctx); err != nil {
		return -1, err
	}

	np, err := wait()
	if err != nil {
		return -1, fmt.Errorf("%w: %w", entity.ErrNoNewPage, err)
	}
	// the opened page inherits the wait context, which the caller is about to cancel
	np = np.Context(d.browser.GetContext())
	if err := np.Context(ctx).WaitLoad(); err != nil {
		return -1, fmt.Errorf("wait load: %w", err)
	}

	d.pages = append(d.pages, np)
	d.page = np
	return len(d.pages) - 1, nil
}

func (d *Driver) SwitchToPage(ctx context.Context, index int) error {
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("switch to page %d of %d: %w", index, len(d.pages), entity.ErrNoSuchPage)
	}
	p, err := d.pages[index].Context(ctx).Activate()
	if err != nil {
		return fmt.Errorf("activate page %d: %w", index, err)
	}
	d.page = p.Context(d.browser.GetContext())
	d.pages[index] = d.page
	return nil
}

func (d *Driver) PageCount() int {
	return len(d.pages)
}

func (d *Driver) CloseCurrentPage(ctx context.Context) error {
	if len(d.pages) <= 1 {
		return entity.ErrLastPage
	}
	idx := slices.Index(d.pages, d.page)
	if err := d.page.Context(ctx).Close(); err != nil {
		return fmt.Errorf("close page: %w", err)
	}
	if idx >= 0 {
		d.pages = slices.Delete(d.pages, idx, idx+1)
	}
	return d.SwitchToPage(ctx, len(d.pages)-1)
}

func (d *Driver) Reload(ctx context.Context) error {
	p := d.page.Context(ctx)
	if err := p.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

// ClearCookies drops the cookies of every page in the browser.
func (d *Driver) ClearCookies(ctx context.Context) error {
	if err := d.browser.Context(ctx).SetCookies(nil); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

func (d *Driver) UploadViaChooser(ctx context.Context, trigger func(ctx context.Context) error, paths []string) error {
	setFiles, err := d.page.Context(ctx).HandleFileDialog()
	if err != nil {
		return fmt.Errorf("intercept file dialog: %w", err)
	}
	if err := trigger(ctx); err != nil {
		return err
	}
	if err := setFiles(paths); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrNoFileChooser, err)
	}
	return nil
}

// DragAndDrop presses the mouse on the source, moves it over the target in steps and
// releases it there.
func (d *Driver) DragAndDrop(ctx context.Context, source, target string) error {
	from, err := d.center(ctx, source)
	if err != nil {
		return err
	}
	to, err := d.center(ctx, target)
	if err != nil {
		return err
	}

	mouse := d.page.Mouse
	if err := mouse.MoveTo(*from); err != nil {
		return fmt.Errorf("move to source: %w", err)
	}
	if err := mouse.Down(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	if err := mouse.MoveLinear(*to, dragSteps); err != nil {
		return fmt.Errorf("move to target: %w", err)
	}
	return mouse.Up(proto.InputMouseButtonLeft, 1)
}

func (d *Driver) center(ctx context.Context, selector string) (*proto.Point, error) {
	el, err := d.element(ctx, selector)
	if err != nil {
		return nil, err
	}
	if err := el.ScrollIntoView(); err != nil {
		return nil, fmt.Errorf("scroll %s: %w", selector, err)
	}
	shape, err := el.Shape()
	if err != nil {
		return nil, fmt.Errorf("shape of %s: %w", selector, err)
	}
	pt := shape.OnePointInside()
	if pt == nil {
		return nil, fmt.Errorf("%s has no visible box", selector)
	}
	return pt, nil
}
