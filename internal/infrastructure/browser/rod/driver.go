// Package rod implements the driver port on go-rod over the Chrome DevTools Protocol.
package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
	"browser-pom/internal/infrastructure/browser"
)

var _ output.DriverPort = (*Driver)(nil)

const (
	defaultSlowMotion  = 0
	defaultIdleTimeout = 5 * time.Second
)

type Config struct {
	Headless   bool
	SlowMotion time.Duration
	// IdleTimeout bounds how long WaitIdle waits for network quiet.
	IdleTimeout time.Duration
	NoSandbox   bool
	DevTools    bool
	Trace       bool
	// Bin is the browser executable; empty lets the launcher find or download Chromium.
	Bin string
}

func DefaultConfig() Config {
	return Config{
		Headless:    true,
		SlowMotion:  defaultSlowMotion,
		IdleTimeout: defaultIdleTimeout,
	}
}

type Driver struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	// pages in the order they were opened; page is one of them.
	pages []*rod.Page
	cfg   Config
}

func NewDriver(ctx context.Context, cfg Config) (*Driver, error) {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaultIdleTimeout
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().
		ControlURL(url).
		Trace(cfg.Trace).
		SlowMotion(cfg.SlowMotion)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = b.Close()
		l.Kill()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return &Driver{browser: b, launcher: l, page: page, pages: []*rod.Page{page}, cfg: cfg}, nil
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	p := d.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

func (d *Driver) CurrentURL() string {
	info, err := d.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (d *Driver) Query(ctx context.Context, selector string) ([]entity.ElementState, error) {
	res, err := d.page.Context(ctx).Eval(browser.QueryScript, selector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", selector, err)
	}
	return decodeStates(res.Value)
}

// decodeStates reads the script result straight from the CDP value.
func decodeStates(v gson.JSON) ([]entity.ElementState, error) {
	if v.Nil() {
		return nil, nil
	}
	return browser.DecodeStates([]byte(v.JSON("", "")))
}

// element resolves the first match without waiting; the interaction layer does the waiting.
func (d *Driver) element(ctx context.Context, selector string) (*rod.Element, error) {
	p := d.page.Context(ctx).Sleeper(rod.NotFoundSleeper)

	var (
		el  *rod.Element
		err error
	)
	if locator.IsXPath(selector) {
		el, err = p.ElementX(locator.StripXPathPrefix(selector))
	} else {
		el, err = p.Element(selector)
	}

	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return nil, fmt.Errorf("%s: %w", selector, entity.ErrElementNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", selector, err)
	}
	return el, nil
}

func (d *Driver) Click(ctx context.Context, selector string, opts entity.ClickOptions) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	if opts.Force {
		_, err := el.Eval(`() => this.click()`)
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, max(opts.Count, 1))
}

func (d *Driver) DoubleClick(ctx context.Context, selector string) error {
	return d.Click(ctx, selector, entity.ClickOptions{Count: 2})
}

// Fill replaces the field content. An empty text clears it.
func (d *Driver) Fill(ctx context.Context, selector, text string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text: %w", err)
	}
	if text == "" {
		return d.page.Keyboard.Type(input.Backspace)
	}
	return el.Input(text)
}

func (d *Driver) SelectOption(ctx context.Context, selector, value string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Select([]string{value}, true, rod.SelectorTypeText)
}

func (d *Driver) Hover(ctx context.Context, selector string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.Hover()
}

func (d *Driver) Press(ctx context.Context, selector, key string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	if err := el.Focus(); err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	if k, ok := keyFor(key); ok {
		return d.page.Keyboard.Type(k)
	}
	return el.Input(key)
}

func (d *Driver) ScrollIntoView(ctx context.Context, selector string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.ScrollIntoView()
}

func (d *Driver) ScrollBy(ctx context.Context, dx, dy float64) error {
	_, err := d.page.Context(ctx).Eval(`(x, y) => window.scrollBy(x, y)`, dx, dy)
	return err
}

func (d *Driver) SetInputFiles(ctx context.Context, selector string, paths []string) error {
	el, err := d.element(ctx, selector)
	if err != nil {
		return err
	}
	return el.SetFiles(paths)
}

func (d *Driver) Evaluate(ctx context.Context, script string) (any, error) {
	res, err := d.page.Context(ctx).Eval(script)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return res.Value.Val(), nil
}

func (d *Driver) Screenshot(ctx context.Context, fullPage bool) (*entity.Screenshot, error) {
	data, err := d.page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
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
	return d.page.Context(ctx).HTML()
}

// WaitIdle waits for the load event and then for network quiet, up to IdleTimeout.
func (d *Driver) WaitIdle(ctx context.Context) error {
	p := d.page.Context(ctx)
	if err := p.WaitLoad(); err != nil {
		return err
	}
	return p.WaitIdle(d.cfg.IdleTimeout)
}

func (d *Driver) Close() error {
	var err error
	if d.browser != nil {
		err = d.browser.Close()
	}
	if d.launcher != nil {
		d.launcher.Kill()
		d.launcher.Cleanup()
	}
	return err
}

var keys = map[string]input.Key{
	"Enter":      input.Enter,
	"Tab":        input.Tab,
	"Escape":     input.Escape,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
	"Home":       input.Home,
	"End":        input.End,
	"PageUp":     input.PageUp,
	"PageDown":   input.PageDown,
	"Space":      input.Space,
}

// keyFor maps the key names used by the page objects to rod keys.
func keyFor(name string) (input.Key, bool) {
	k, ok := keys[name]
	return k, ok
}
