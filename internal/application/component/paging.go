package component

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

const DefaultRowsPerPageLabel = "Rows per page:"

// statusRe accepts both "16-30 of 31" and the typographic "16–30 of 31".
var statusRe = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)\s+of\s+(\d+)`)

// Paging drives the pagination footer of a data table.
type Paging struct {
	in       *interaction.Interactor
	loc      locator.CommonLocators
	feedback *Feedback
}

func NewPaging(in *interaction.Interactor, loc locator.CommonLocators, feedback *Feedback) *Paging {
	return &Paging{in: in, loc: loc, feedback: feedback}
}

func (p *Paging) Key() entity.PageKey {
	return entity.ComponentPaging
}

func (p *Paging) RowsPerPageLabelIs(ctx context.Context, expected string) bool {
	if expected == "" {
		expected = DefaultRowsPerPageLabel
	}
	return p.in.GetText(ctx, p.loc.RowsPerPageLabel) == expected
}

func (p *Paging) RowsPerPageOptions(ctx context.Context) ([]string, error) {
	return p.in.DropdownValues(ctx, p.loc.RowsPerPage, p.loc.Options)
}

func (p *Paging) SetRowsPerPage(ctx context.Context, value string) error {
	if err := p.in.SelectOption(ctx, p.loc.RowsPerPage, value); err != nil {
		return err
	}
	p.feedback.Settle(ctx)
	return nil
}

// CurrentRowsPerPage is zero when the selector text is not a number.
func (p *Paging) CurrentRowsPerPage(ctx context.Context) int {
	n, err := strconv.Atoi(p.in.GetText(ctx, p.loc.RowsPerPage))
	if err != nil {
		return 0
	}
	return n
}

func (p *Paging) RowCount(ctx context.Context) int {
	return p.in.Count(ctx, p.loc.TableRows)
}

func (p *Paging) RowCountMatchesPagination(ctx context.Context) bool {
	info, ok := p.Info(ctx)
	if !ok {
		return false
	}
	return p.RowCount(ctx) == info.End-info.Start+1
}

// RowsPerPageApplied checks the rendered rows against the selected page size. The last
// page may hold fewer rows.
func (p *Paging) RowsPerPageApplied(ctx context.Context) bool {
	if _, ok := p.Info(ctx); !ok {
		return false
	}
	size := p.CurrentRowsPerPage(ctx)
	rows := p.RowCount(ctx)
	if p.IsOnLastPage(ctx) {
		return rows <= size
	}
	return rows == size
}

func (p *Paging) Status(ctx context.Context) string {
	return p.in.GetText(ctx, p.loc.PaginationStatus)
}

func (p *Paging) Info(ctx context.Context) (entity.PaginationInfo, bool) {
	return ParsePaginationStatus(p.Status(ctx))
}

// ParsePaginationStatus parses "start-end of total".
func ParsePaginationStatus(status string) (entity.PaginationInfo, bool) {
	m := statusRe.FindStringSubmatch(strings.TrimSpace(status))
	if m == nil {
		return entity.PaginationInfo{}, false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	total, _ := strconv.Atoi(m[3])
	return entity.PaginationInfo{Start: start, End: end, Total: total}, true
}

func (p *Paging) First(ctx context.Context) error    { return p.goTo(ctx, p.loc.FirstPage) }
func (p *Paging) Previous(ctx context.Context) error { return p.goTo(ctx, p.loc.PreviousPage) }
func (p *Paging) Next(ctx context.Context) error     { return p.goTo(ctx, p.loc.NextPage) }
func (p *Paging) Last(ctx context.Context) error     { return p.goTo(ctx, p.loc.LastPage) }

func (p *Paging) goTo(ctx context.Context, button string) error {
	if err := p.in.Click(ctx, button); err != nil {
		return err
	}
	p.feedback.Settle(ctx)
	return nil
}

func (p *Paging) IsFirstPageDisabled(ctx context.Context) bool {
	return p.in.IsDisabled(ctx, p.loc.FirstPage)
}

func (p *Paging) IsPreviousPageDisabled(ctx context.Context) bool {
	return p.in.IsDisabled(ctx, p.loc.PreviousPage)
}

func (p *Paging) IsNextPageDisabled(ctx context.Context) bool {
	return p.in.IsDisabled(ctx, p.loc.NextPage)
}

func (p *Paging) IsLastPageDisabled(ctx context.Context) bool {
	return p.in.IsDisabled(ctx, p.loc.LastPage)
}

// HasNextPage is false when the next button is missing or disabled.
func (p *Paging) HasNextPage(ctx context.Context) bool {
	return p.in.Exists(ctx, p.loc.NextPage) && !p.IsNextPageDisabled(ctx)
}

func (p *Paging) IsOnFirstPage(ctx context.Context) bool {
	return p.IsPreviousPageDisabled(ctx) && p.IsFirstPageDisabled(ctx)
}

func (p *Paging) IsOnLastPage(ctx context.Context) bool {
	return p.IsNextPageDisabled(ctx) && p.IsLastPageDisabled(ctx)
}

// CurrentPage is 1-based and falls back to 1 when the footer cannot be read.
func (p *Paging) CurrentPage(ctx context.Context) int {
	info, ok := p.Info(ctx)
	size := p.CurrentRowsPerPage(ctx)
	if !ok || size <= 0 {
		return 1
	}
	return ceilDiv(info.Start, size)
}

func (p *Paging) TotalPages(ctx context.Context) int {
	info, ok := p.Info(ctx)
	size := p.CurrentRowsPerPage(ctx)
	if !ok || size <= 0 {
		return 1
	}
	return max(ceilDiv(info.Total, size), 1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
