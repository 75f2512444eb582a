package component

import (
	"context"
	"strings"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

type Search struct {
	in       *interaction.Interactor
	loc      locator.SearchLocators
	feedback *Feedback
}

func NewSearch(in *interaction.Interactor, loc locator.SearchLocators, feedback *Feedback) *Search {
	return &Search{in: in, loc: loc, feedback: feedback}
}

func (s *Search) Key() entity.PageKey {
	return entity.ComponentSearch
}

// Search replaces the search text, submits with Enter and waits for the table to reload.
func (s *Search) Search(ctx context.Context, text string) error {
	if _, err := s.in.Fill(ctx, s.loc.Input, text, interaction.FillOptions{ClearFirst: true}); err != nil {
		return err
	}
	if err := s.in.PressKey(ctx, s.loc.Input, "Enter"); err != nil {
		return err
	}
	s.feedback.Settle(ctx)
	return nil
}

func (s *Search) Clear(ctx context.Context) error {
	if err := s.in.Click(ctx, s.loc.ClearButton); err != nil {
		return err
	}
	s.feedback.Settle(ctx)
	return nil
}

func (s *Search) CurrentText(ctx context.Context) string {
	return s.in.InputValue(ctx, s.loc.Input)
}

// VerifyResultsInColumn reports whether every cell matched by column contains text,
// ignoring case. column matches the same cell in every row. An empty result set passes.
func (s *Search) VerifyResultsInColumn(ctx context.Context, column, text string) bool {
	return allCellsContain(s.in.Texts(ctx, column), text)
}

// VerifyResultsInAnyColumn reports whether every row contains text in at least one of
// columns. Rows are counted from the first column.
func (s *Search) VerifyResultsInAnyColumn(ctx context.Context, columns []string, text string) bool {
	if len(columns) == 0 {
		return false
	}

	cells := make([][]string, len(columns))
	for i, col := range columns {
		cells[i] = s.in.Texts(ctx, col)
	}

	needle := strings.ToLower(text)
	for row := range cells[0] {
		matched := false
		for _, col := range cells {
			if row < len(col) && strings.Contains(strings.ToLower(col[row]), needle) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func allCellsContain(cells []string, text string) bool {
	needle := strings.ToLower(text)
	for _, cell := range cells {
		if !strings.Contains(strings.ToLower(cell), needle) {
			return false
		}
	}
	return true
}
