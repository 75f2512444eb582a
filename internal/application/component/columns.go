package component

import (
	"context"
	"fmt"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

// Columns drives the "show columns" popup of a data table. Checkboxes must be an XPath
// locator whose matches line up one-to-one with Labels.
type Columns struct {
	in       *interaction.Interactor
	loc      locator.ColumnLocators
	common   locator.CommonLocators
	feedback *Feedback
}

func NewColumns(in *interaction.Interactor, loc locator.ColumnLocators, common locator.CommonLocators, feedback *Feedback) *Columns {
	return &Columns{in: in, loc: loc, common: common, feedback: feedback}
}

func (c *Columns) Key() entity.PageKey {
	return entity.ComponentColumns
}

func (c *Columns) OpenPopup(ctx context.Context) error {
	if err := c.in.Click(ctx, c.loc.ShowButton); err != nil {
		return fmt.Errorf("open column popup: %w", err)
	}
	return nil
}

func (c *Columns) closePopup(ctx context.Context) error {
	if err := c.in.Click(ctx, c.common.TableHeader); err != nil {
		return fmt.Errorf("close column popup: %w", err)
	}
	return nil
}

// SetVisible shows or hides one column, clicking its checkbox only when the state differs.
func (c *Columns) SetVisible(ctx context.Context, name string, visible bool) error {
	if err := c.OpenPopup(ctx); err != nil {
		return err
	}

	checkbox := locator.MustBuild(c.loc.Checkbox, name)
	if c.in.IsChecked(ctx, checkbox) != visible {
		if err := c.in.Click(ctx, checkbox); err != nil {
			return fmt.Errorf("toggle column %q: %w", name, err)
		}
		c.feedback.Settle(ctx)
	}
	return c.closePopup(ctx)
}

func (c *Columns) Show(ctx context.Context, name string) error {
	return c.SetVisible(ctx, name, true)
}

func (c *Columns) Hide(ctx context.Context, name string) error {
	return c.SetVisible(ctx, name, false)
}

func (c *Columns) AllCheckedByDefault(ctx context.Context) (bool, error) {
	if err := c.OpenPopup(ctx); err != nil {
		return false, err
	}

	boxes := c.in.States(ctx, c.loc.Checkboxes)
	all := len(boxes) > 0
	for _, b := range boxes {
		if !b.Checked {
			all = false
			break
		}
	}

	if err := c.closePopup(ctx); err != nil {
		return false, err
	}
	return all, nil
}

// VisibleColumns returns the labels of the checked columns in popup order.
func (c *Columns) VisibleColumns(ctx context.Context) ([]string, error) {
	if err := c.OpenPopup(ctx); err != nil {
		return nil, err
	}

	boxes := c.in.States(ctx, c.loc.Checkboxes)
	labels := c.in.Texts(ctx, c.loc.Labels)

	var visible []string
	for i, b := range boxes {
		if b.Checked && i < len(labels) {
			visible = append(visible, labels[i])
		}
	}

	if err := c.closePopup(ctx); err != nil {
		return nil, err
	}
	return visible, nil
}

// ShowAll checks every unchecked column, re-reading the popup after each click. The
// loop is bounded by the number of checkboxes; a failed click is logged and ends it.
func (c *Columns) ShowAll(ctx context.Context) error {
	if err := c.OpenPopup(ctx); err != nil {
		return err
	}

	limit := c.in.Count(ctx, c.loc.Checkboxes)
	for range limit {
		idx := firstUnchecked(c.in.States(ctx, c.loc.Checkboxes))
		if idx < 0 {
			break
		}
		if err := c.in.Click(ctx, locator.Nth(c.loc.Checkboxes, idx)); err != nil {
			c.in.Logger().Warn("could not check column", "index", idx, "error", err)
			break
		}
	}

	return c.closePopup(ctx)
}

func firstUnchecked(states []entity.ElementState) int {
	for i, s := range states {
		if !s.Checked {
			return i
		}
	}
	return -1
}
