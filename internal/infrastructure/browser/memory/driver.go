// Package memory is an in-process DriverPort used by unit tests. Elements are
// registered under the exact selector the page objects use; positional selectors of
// the form (X)[n] resolve against the elements registered under X.
package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"slices"
	"strconv"
	"sync"

	"github.com/disintegration/imaging"

	"browser-pom/internal/application/port/output"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

var _ output.DriverPort = (*Driver)(nil)

// ErrDetached simulates an element removed from the document mid-action.
var ErrDetached = errors.New("element is not attached to the DOM")

var nthRe = regexp.MustCompile(`^\((.+)\)\[(\d+)\]$`)

type Element struct {
	Tag           string
	Text          string
	Value         string
	Attributes    map[string]string
	Classes       []string
	Hidden        bool
	Disabled      bool
	Checked       bool
	PointerEvents string
	InViewport    bool
	// RevealAt keeps the element out of view until the page has been scrolled by at
	// least this much; scroll-into-view has no effect on it.
	RevealAt float64
	// OpensFileChooser makes a click open the native file dialog, which only
	// UploadViaChooser can answer.
	OpensFileChooser bool

	// OnClick runs after a successful click, outside the driver lock.
	OnClick func(d *Driver)
}

func (e *Element) SetAttr(name, value string) {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[name] = value
}

func (e *Element) AddClass(class string) {
	if !slices.Contains(e.Classes, class) {
		e.Classes = append(e.Classes, class)
	}
}

func (e *Element) RemoveClass(class string) {
	e.Classes = slices.DeleteFunc(e.Classes, func(c string) bool { return c == class })
}

func (e *Element) state() entity.ElementState {
	attrs := make(map[string]string, len(e.Attributes))
	for k, v := range e.Attributes {
		attrs[k] = v
	}
	pe := e.PointerEvents
	if pe == "" {
		pe = "auto"
	}
	return entity.ElementState{
		Tag:           e.Tag,
		Text:          e.Text,
		Value:         e.Value,
		Attributes:    attrs,
		Classes:       slices.Clone(e.Classes),
		Visible:       !e.Hidden,
		Enabled:       !e.Disabled,
		Checked:       e.Checked,
		PointerEvents: pe,
		InViewport:    e.InViewport,
	}
}

// Action is one recorded driver call.
type Action struct {
	Kind     string
	Selector string
	Value    string
}

type Driver struct {
	mu sync.Mutex
	// pages holds the URL of every open page; current indexes it.
	pages    []string
	current  int
	chooser  bool
	cookies  map[string]string
	html     string
	png      []byte
	elements map[string][]*Element
	failures map[string]int
	actions  []Action
	scrollY  float64
	closed   bool

	// OnNavigate runs after every Navigate call, outside the driver lock.
	OnNavigate func(d *Driver, url string)
	// OnEvaluate answers Evaluate calls; nil returns nil.
	OnEvaluate func(script string) (any, error)
}

func New() *Driver {
	return &Driver{
		pages:    []string{"about:blank"},
		cookies:  make(map[string]string),
		html:     "<html><head></head><body></body></html>",
		elements: make(map[string][]*Element),
		failures: make(map[string]int),
	}
}

// Set replaces everything registered under selector.
func (d *Driver) Set(selector string, els ...*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[locator.StripXPathPrefix(selector)] = els
}

func (d *Driver) Add(selector string, els ...*Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := locator.StripXPathPrefix(selector)
	d.elements[key] = append(d.elements[key], els...)
}

func (d *Driver) Remove(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, locator.StripXPathPrefix(selector))
}

// Mutate runs fn under the driver lock so element fields can change while a poll is
// running in another goroutine.
func (d *Driver) Mutate(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// FailNext makes the next n actions on selector fail with ErrDetached.
func (d *Driver) FailNext(selector string, n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[locator.StripXPathPrefix(selector)] = n
}

func (d *Driver) SetHTML(html string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.html = html
}

func (d *Driver) SetScreenshot(png []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.png = png
}

func (d *Driver) Actions() []Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.actions)
}

// ActionsOf returns the recorded actions of one kind.
func (d *Driver) ActionsOf(kind string) []Action {
	var out []Action
	for _, a := range d.Actions() {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func (d *Driver) ScrollY() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollY
}

func (d *Driver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	d.pages[d.current] = url
	d.actions = append(d.actions, Action{Kind: "navigate", Value: url})
	hook := d.OnNavigate
	d.mu.Unlock()

	if hook != nil {
		hook(d, url)
	}
	return nil
}

func (d *Driver) CurrentURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pages[d.current]
}

func (d *Driver) Query(ctx context.Context, selector string) ([]entity.ElementState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	els := d.resolve(selector)
	out := make([]entity.ElementState, 0, len(els))
	for _, el := range els {
		out = append(out, el.state())
	}
	return out, nil
}

// Click records multi-clicks with the click count as the action value.
func (d *Driver) Click(ctx context.Context, selector string, opts entity.ClickOptions) error {
	var value string
	if opts.Count > 1 {
		value = strconv.Itoa(opts.Count)
	}
	el, err := d.act(ctx, "click", selector, value)
	if err != nil {
		return err
	}
	d.mu.Lock()
	if !opts.Force && (el.Disabled || el.PointerEvents == "none") {
		d.mu.Unlock()
		return fmt.Errorf("click %s: element does not receive pointer events", selector)
	}

	count := max(opts.Count, 1)
	for range count {
		if el.Tag == "input" && el.Attributes["type"] == "checkbox" {
			el.Checked = !el.Checked
		} else if el.Tag == "input" && el.Attributes["type"] == "radio" {
			el.Checked = true
		}
	}
	if el.OpensFileChooser {
		d.chooser = true
	}
	hook := el.OnClick
	d.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return nil
}

func (d *Driver) DoubleClick(ctx context.Context, selector string) error {
	return d.Click(ctx, selector, entity.ClickOptions{Count: 2})
}

func (d *Driver) Fill(ctx context.Context, selector, text string) error {
	el, err := d.act(ctx, "fill", selector, text)
	if err != nil {
		return err
	}
	d.mu.Lock()
	el.Value = text
	d.mu.Unlock()
	return nil
}

func (d *Driver) SelectOption(ctx context.Context, selector, value string) error {
	el, err := d.act(ctx, "select", selector, value)
	if err != nil {
		return err
	}
	d.mu.Lock()
	el.Value = value
	d.mu.Unlock()
	return nil
}

func (d *Driver) Hover(ctx context.Context, selector string) error {
	_, err := d.act(ctx, "hover", selector, "")
	return err
}

func (d *Driver) Press(ctx context.Context, selector, key string) error {
	_, err := d.act(ctx, "press", selector, key)
	return err
}

// ScrollIntoView never consumes injected failures.
func (d *Driver) ScrollIntoView(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	els := d.resolve(selector)
	if len(els) == 0 {
		return fmt.Errorf("scroll %s: %w", selector, entity.ErrElementNotFound)
	}
	if els[0].RevealAt == 0 {
		els[0].InViewport = true
	}
	d.actions = append(d.actions, Action{Kind: "scroll-into-view", Selector: locator.StripXPathPrefix(selector)})
	return nil
}

func (d *Driver) ScrollBy(ctx context.Context, dx, dy float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scrollY += dy
	for _, els := range d.elements {
		for _, el := range els {
			if el.RevealAt > 0 && d.scrollY >= el.RevealAt {
				el.InViewport = true
			}
		}
	}
	d.actions = append(d.actions, Action{Kind: "scroll-by", Value: strconv.FormatFloat(dy, 'f', -1, 64)})
	return nil
}

func (d *Driver) SetInputFiles(ctx context.Context, selector string, paths []string) error {
	for _, p := range paths {
		if _, err := d.act(ctx, "upload", selector, p); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) Evaluate(ctx context.Context, script string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.actions = append(d.actions, Action{Kind: "evaluate", Value: script})
	hook := d.OnEvaluate
	d.mu.Unlock()

	if hook == nil {
		return nil, nil
	}
	return hook(script)
}

func (d *Driver) Screenshot(ctx context.Context, fullPage bool) (*entity.Screenshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	data := d.png
	d.mu.Unlock()

	if data == nil {
		img := imaging.New(1280, 720, color.White)
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode screenshot: %w", err)
		}
		data = buf.Bytes()
	}

	cfg, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return &entity.Screenshot{
		Data:   data,
		Format: "png",
		Width:  cfg.Bounds().Dx(),
		Height: cfg.Bounds().Dy(),
	}, nil
}

func (d *Driver) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.html, nil
}

func (d *Driver) WaitIdle(ctx context.Context) error {
	return ctx.Err()
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// act resolves the first match, consumes injected failures and records the action.
func (d *Driver) act(ctx context.Context, kind, selector, value string) (*Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	key := locator.StripXPathPrefix(selector)
	if n := d.failures[key]; n > 0 {
		d.failures[key] = n - 1
		return nil, fmt.Errorf("%s %s: %w", kind, selector, ErrDetached)
	}

	els := d.resolve(selector)
	if len(els) == 0 {
		return nil, fmt.Errorf("%s %s: %w", kind, selector, entity.ErrElementNotFound)
	}
	d.actions = append(d.actions, Action{Kind: kind, Selector: key, Value: value})
	return els[0], nil
}

func (d *Driver) resolve(selector string) []*Element {
	key := locator.StripXPathPrefix(selector)
	if els, ok := d.elements[key]; ok {
		return els
	}

	m := nthRe.FindStringSubmatch(key)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return nil
	}
	els := d.resolve(m[1])
	if n > len(els) {
		return nil
	}
	return els[n-1 : n]
}
