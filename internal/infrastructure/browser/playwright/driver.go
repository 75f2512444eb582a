// Package playwright implements the driver port on playwright-go, which also covers
// Firefox and Edge.
package playwright

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/playwright-community/playwright-go"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/infrastructure/browser"
)

var _ output.DriverPort = (*Driver)(nil)

const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserEdge     = "edge"

	defaultActionTimeout = 5 * time.Second
	defaultIdleTimeout   = 5 * time.Second
)

type Config struct {
	Browser    string
	Headless   bool
	SlowMotion time.Duration
	// ActionTimeout caps each single browser action; readiness waits happen before it.
	ActionTimeout time.Duration
	IdleTimeout   time.Duration
	// Install downloads the browsers and driver before starting.
	Install bool
}

func DefaultConfig() Config {
	return Config{
		Browser:       BrowserChromium,
		Headless:      true,
		ActionTimeout: defaultActionTimeout,
		IdleTimeout:   defaultIdleTimeout,
	}
}

type Driver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
}

func NewDriver(ctx context.Context, cfg Config) (*Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.ActionTimeout <= 0 {
		cfg.ActionTimeout = defaultActionTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}

	if cfg.Install {
		if err := playwright.Install(); err != nil {
			return nil, fmt.Errorf("install playwright: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("run playwright: %w", err)
	}

	b, err := launch(pw, cfg)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	bctx, err := b.NewContext()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(ms(cfg.ActionTimeout))

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &Driver{pw: pw, browser: b, context: bctx, page: page, cfg: cfg}, nil
}

func launch(pw *playwright.Playwright, cfg Config) (playwright.Browser, error) {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if cfg.SlowMotion > 0 {
		opts.SlowMo = playwright.Float(ms(cfg.SlowMotion))
	}

	var (
		b   playwright.Browser
		err error
	)
	switch cfg.Browser {
	case BrowserChromium, "":
		b, err = pw.Chromium.Launch(opts)
	case BrowserEdge:
		opts.Channel = playwright.String("msedge")
		b, err = pw.Chromium.Launch(opts)
	case BrowserFirefox:
		b, err = pw.Firefox.Launch(opts)
	default:
		return nil, fmt.Errorf("unsupported browser %q", cfg.Browser)
	}
	if err != nil {
		return nil, fmt.Errorf("launch %s: %w", cfg.Browser, err)
	}
	return b, nil
}

func ms(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}

func (d *Driver) locate(selector string) playwright.Locator {
	return d.page.Locator(browser.Selector(selector)).First()
}

// present fails fast with ErrElementNotFound instead of letting the action wait out
// its timeout.
func (d *Driver) present(ctx context.Context, selector string) (playwright.Locator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc := d.page.Locator(browser.Selector(selector))
	n, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", selector, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", selector, entity.ErrElementNotFound)
	}
	return loc.First(), nil
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	return nil
}

func (d *Driver) CurrentURL() string {
	return d.page.URL()
}

func (d *Driver) Query(ctx context.Context, selector string) ([]entity.ElementState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := d.page.Evaluate(browser.QueryScript, selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return browser.DecodeStates(raw)
}

func (d *Driver) Click(ctx context.Context, selector string, opts entity.ClickOptions) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Click(playwright.LocatorClickOptions{
		ClickCount: playwright.Int(max(opts.Count, 1)),
		Force:      playwright.Bool(opts.Force),
	})
}

func (d *Driver) DoubleClick(ctx context.Context, selector string) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Dblclick()
}

func (d *Driver) Fill(ctx context.Context, selector, text string) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Fill(text)
}

func (d *Driver) SelectOption(ctx context.Context, selector, value string) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	_, err = loc.SelectOption(playwright.SelectOptionValues{Labels: &[]string{value}})
	return err
}

func (d *Driver) Hover(ctx context.Context, selector string) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Hover()
}

func (d *Driver) Press(ctx context.Context, selector, key string) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.Press(key)
}

func (d *Driver) ScrollIntoView(ctx context.Context, selector string) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.ScrollIntoViewIfNeeded()
}

func (d *Driver) ScrollBy(ctx context.Context, dx, dy float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.page.Mouse().Wheel(dx, dy)
}

func (d *Driver) SetInputFiles(ctx context.Context, selector string, paths []string) error {
	loc, err := d.present(ctx, selector)
	if err != nil {
		return err
	}
	return loc.SetInputFiles(paths)
}

func (d *Driver) Evaluate(ctx context.Context, script string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.page.Evaluate(script)
}

func (d *Driver) Screenshot(ctx context.Context, fullPage bool) (*entity.Screenshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(fullPage),
		Type:     playwright.ScreenshotTypePng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return &entity.Screenshot{
		Data:   data,
		Format: "png",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (d *Driver) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.page.Content()
}

// WaitIdle waits for network quiet up to IdleTimeout. Long-polling pages never go quiet,
// so a timeout here is reported but harmless to callers that log it.
func (d *Driver) WaitIdle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := d.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(ms(d.cfg.IdleTimeout)),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("network not idle after %s: %w", d.cfg.IdleTimeout, err)
	}
	return err
}

func (d *Driver) Close() error {
	var errs []error
	if d.context != nil {
		errs = append(errs, d.context.Close())
	}
	if d.browser != nil {
		errs = append(errs, d.browser.Close())
	}
	if d.pw != nil {
		errs = append(errs, d.pw.Stop())
	}
	return errors.Join(errs...)
}
