package interaction

import (
	"context"
	"strings"

	"browser-pom/internal/domain/entity"
)

type TextOptions struct {
	// PreferValue reads the value of form fields instead of their text content.
	PreferValue bool
	NoTrim      bool
}

// State queries never fail: a missing element or a driver error yields the zero value
// and is logged.

func (i *Interactor) first(ctx context.Context, query, selector string) (entity.ElementState, bool) {
	if i.cfg.QueryTimeout > 0 {
		_ = i.waiter.WaitForVisible(ctx, selector, i.cfg.QueryTimeout)
	}

	states, err := i.driver.Query(ctx, selector)
	if err != nil {
		i.logger.Error("query failed", "query", query, "locator", selector, "error", err)
		return entity.ElementState{}, false
	}
	if len(states) == 0 {
		i.logger.Debug("no element matched", "query", query, "locator", selector)
		return entity.ElementState{}, false
	}
	return states[0], true
}

func (i *Interactor) GetText(ctx context.Context, selector string, opts ...TextOptions) string {
	var o TextOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	s, ok := i.first(ctx, "text", selector)
	if !ok {
		return ""
	}

	text := s.Text
	if o.PreferValue {
		switch s.Tag {
		case "input", "textarea", "select":
			text = s.Value
		}
	}
	if o.NoTrim {
		return text
	}
	return strings.TrimSpace(text)
}

func (i *Interactor) InputValue(ctx context.Context, selector string) string {
	s, _ := i.first(ctx, "value", selector)
	return s.Value
}

func (i *Interactor) GetAttribute(ctx context.Context, selector, name string) string {
	s, _ := i.first(ctx, "attribute "+name, selector)
	return s.Attr(name)
}

func (i *Interactor) HasClass(ctx context.Context, selector, class string) bool {
	s, _ := i.first(ctx, "class "+class, selector)
	return s.HasClass(class)
}

func (i *Interactor) IsVisible(ctx context.Context, selector string) bool {
	s, ok := i.first(ctx, "visible", selector)
	return ok && s.Visible
}

// IsNotVisible is true when nothing matches or the first match is hidden.
func (i *Interactor) IsNotVisible(ctx context.Context, selector string) bool {
	states, err := i.driver.Query(ctx, selector)
	if err != nil {
		i.logger.Error("query failed", "query", "not visible", "locator", selector, "error", err)
		return true
	}
	return len(states) == 0 || !states[0].Visible
}

func (i *Interactor) IsDisabled(ctx context.Context, selector string) bool {
	s, ok := i.first(ctx, "disabled", selector)
	return ok && !s.Enabled
}

func (i *Interactor) IsChecked(ctx context.Context, selector string) bool {
	s, ok := i.first(ctx, "checked", selector)
	return ok && s.Checked
}

func (i *Interactor) Exists(ctx context.Context, selector string) bool {
	return i.Count(ctx, selector) > 0
}

func (i *Interactor) Count(ctx context.Context, selector string) int {
	states, err := i.driver.Query(ctx, selector)
	if err != nil {
		i.logger.Error("query failed", "query", "count", "locator", selector, "error", err)
		return 0
	}
	return len(states)
}

// Texts returns the trimmed text of every match in document order.
func (i *Interactor) Texts(ctx context.Context, selector string) []string {
	states, err := i.driver.Query(ctx, selector)
	if err != nil {
		i.logger.Error("query failed", "query", "texts", "locator", selector, "error", err)
		return nil
	}
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.TrimmedText())
	}
	return out
}

// States exposes the raw snapshots for page objects that derive richer state.
func (i *Interactor) States(ctx context.Context, selector string) []entity.ElementState {
	states, err := i.driver.Query(ctx, selector)
	if err != nil {
		i.logger.Error("query failed", "query", "states", "locator", selector, "error", err)
		return nil
	}
	return states
}
