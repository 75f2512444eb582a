package component

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/application/wait"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

const DefaultTabTimeout = 5 * time.Second

// Tabs reads tab state from the live page on every call. Two markups are supported:
// ARIA tabs (role="tab", selected via aria-selected or an active class) and the floating
// layout strip, which marks the current tab with its own class. ARIA wins when both are
// rendered. Both tab locators must be XPath so a single tab can be addressed by position.
type Tabs struct {
	in  *interaction.Interactor
	loc locator.TabLocators
}

func NewTabs(in *interaction.Interactor, loc locator.TabLocators) *Tabs {
	return &Tabs{in: in, loc: loc}
}

func (t *Tabs) Key() entity.PageKey {
	return entity.ComponentTabs
}

// Idiom reports which tab markup the current page uses, with the matching locator.
func (t *Tabs) Idiom(ctx context.Context) (entity.TabIdiom, string) {
	if t.in.Exists(ctx, t.loc.ARIA) {
		return entity.TabIdiomARIA, t.loc.ARIA
	}
	return entity.TabIdiomFloating, t.loc.Floating
}

// AllTabs lists the rendered tabs in DOM order.
func (t *Tabs) AllTabs(ctx context.Context) []entity.Tab {
	idiom, sel := t.Idiom(ctx)
	states := t.in.States(ctx, sel)

	tabs := make([]entity.Tab, 0, len(states))
	for _, s := range states {
		tabs = append(tabs, entity.Tab{Text: s.TrimmedText(), Active: t.active(idiom, s)})
	}
	return tabs
}

// IsTabActive is true when the first tab whose text contains text is selected and, if
// it names a panel through aria-labelledby, that panel is visible. No match is false.
func (t *Tabs) IsTabActive(ctx context.Context, text string) bool {
	idiom, _, _, tab, ok := t.find(ctx, text)
	if !ok || !t.active(idiom, tab) {
		return false
	}

	id := tab.Attr("id")
	if idiom != entity.TabIdiomARIA || id == "" || t.loc.Panel == "" {
		return true
	}

	panel, err := locator.Build(t.loc.Panel, id)
	if err != nil {
		return true
	}
	panels := t.in.States(ctx, panel)
	if len(panels) == 0 {
		return true
	}
	return panels[0].Visible
}

// ClickTab clicks the tab and polls until it reports active. It returns false instead of
// failing when the tab is missing, the click fails or activation times out.
func (t *Tabs) ClickTab(ctx context.Context, text string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultTabTimeout
	}
	log := t.in.Logger().WithField("tab", text)

	_, sel, index, _, ok := t.find(ctx, text)
	if !ok {
		log.Error("tab not found")
		return false
	}

	if err := t.in.Click(ctx, locator.Nth(sel, index)); err != nil {
		log.Error("tab click failed", "error", err)
		return false
	}

	active := t.in.Waiter().Poller().Satisfied(ctx, wait.Condition{
		Description: fmt.Sprintf("tab %q to become active", text),
		Check: func(ctx context.Context) (bool, error) {
			return t.IsTabActive(ctx, text), nil
		},
	}, wait.WithTimeout(timeout))

	if !active {
		log.Warn("timed out waiting for tab to become active", "timeout", timeout)
	}
	return active
}

func (t *Tabs) find(ctx context.Context, text string) (entity.TabIdiom, string, int, entity.ElementState, bool) {
	idiom, sel := t.Idiom(ctx)
	states := t.in.States(ctx, sel)

	for i, s := range states {
		if strings.Contains(s.TrimmedText(), text) {
			return idiom, sel, i, s, true
		}
	}
	return idiom, sel, -1, entity.ElementState{}, false
}

func (t *Tabs) active(idiom entity.TabIdiom, s entity.ElementState) bool {
	if idiom == entity.TabIdiomFloating {
		return s.HasClass(t.loc.FloatingActiveClass)
	}
	if s.Attr("aria-selected") == "true" {
		return true
	}
	return slices.ContainsFunc(t.loc.ActiveClasses, s.HasClass)
}
