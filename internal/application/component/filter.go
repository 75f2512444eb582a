package component

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

type Filter struct {
	in       *interaction.Interactor
	loc      locator.FilterLocators
	common   locator.CommonLocators
	feedback *Feedback
}

func NewFilter(in *interaction.Interactor, loc locator.FilterLocators, common locator.CommonLocators, feedback *Feedback) *Filter {
	return &Filter{in: in, loc: loc, common: common, feedback: feedback}
}

func (f *Filter) Key() entity.PageKey {
	return entity.ComponentFilter
}

func (f *Filter) Open(ctx context.Context) error {
	return f.in.Click(ctx, f.loc.Button)
}

// Apply opens the panel, sets each field in name order and applies. Fields rendered as
// dropdowns get an option selected; everything else is typed into.
func (f *Filter) Apply(ctx context.Context, fields map[string]string) error {
	if err := f.Open(ctx); err != nil {
		return fmt.Errorf("open filter: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(fields)) {
		value := fields[name]
		field := locator.MustBuild(f.loc.Field, name)

		if f.in.Exists(ctx, locator.MustBuild(f.loc.DropdownField, name)) {
			if err := f.in.SelectOption(ctx, field, value); err != nil {
				return fmt.Errorf("filter %q: %w", name, err)
			}
			continue
		}
		if _, err := f.in.Fill(ctx, field, value, interaction.FillOptions{ClearFirst: true}); err != nil {
			return fmt.Errorf("filter %q: %w", name, err)
		}
	}

	if err := f.in.Click(ctx, f.loc.ApplyButton); err != nil {
		return err
	}
	f.feedback.Settle(ctx)
	return nil
}

func (f *Filter) Reset(ctx context.Context) error {
	if err := f.Open(ctx); err != nil {
		return err
	}
	if err := f.in.Click(ctx, f.loc.ResetButton); err != nil {
		return err
	}
	f.feedback.Settle(ctx)
	return nil
}

// Cancel closes the panel without applying by clicking outside it.
func (f *Filter) Cancel(ctx context.Context) error {
	return f.in.Click(ctx, f.common.TableHeader)
}

// VerifyResults reports whether every cell matched by column contains value, ignoring case.
func (f *Filter) VerifyResults(ctx context.Context, column, value string) bool {
	return allCellsContain(f.in.Texts(ctx, column), value)
}
