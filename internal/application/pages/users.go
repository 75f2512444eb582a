package pages

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"browser-pom/internal/application/component"
	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

// DefaultMaxPages bounds AllUsers when no limit is configured.
const DefaultMaxPages = 50

// ErrPageLimit is returned with the rows collected so far when the walker stops at
// MaxPages with a next page still available.
var ErrPageLimit = errors.New("page limit reached")

// Users is the user management table. Rows are addressed 0-based; the catalog
// templates are 1-based.
type Users struct {
	in       *interaction.Interactor
	loc      locator.UsersLocators
	feedback *component.Feedback
	paging   *component.Paging
	search   *component.Search
	filter   *component.Filter
	columns  *component.Columns

	// MaxPages is the most pages AllUsers will read.
	MaxPages int
}

func NewUsers(
	in *interaction.Interactor,
	loc locator.UsersLocators,
	feedback *component.Feedback,
	paging *component.Paging,
	search *component.Search,
	filter *component.Filter,
	columns *component.Columns,
) *Users {
	return &Users{
		in:       in,
		loc:      loc,
		feedback: feedback,
		paging:   paging,
		search:   search,
		filter:   filter,
		columns:  columns,
		MaxPages: DefaultMaxPages,
	}
}

func (p *Users) Key() entity.PageKey {
	return entity.PageUsers
}

func (p *Users) Paging() *component.Paging   { return p.paging }
func (p *Users) Search() *component.Search   { return p.search }
func (p *Users) Filter() *component.Filter   { return p.filter }
func (p *Users) Columns() *component.Columns { return p.columns }

func (p *Users) Open(ctx context.Context, baseURL string) error {
	if err := p.in.Navigate(ctx, strings.TrimRight(baseURL, "/")+p.loc.Path); err != nil {
		return err
	}
	p.feedback.Settle(ctx)
	return nil
}

func (p *Users) ClickNewUser(ctx context.Context) error {
	return p.in.Click(ctx, p.loc.NewUserButton)
}

func (p *Users) ClickEditUsers(ctx context.Context) error {
	return p.in.Click(ctx, p.loc.EditUsersButton)
}

// OpenActionsFor clicks the action button of the row that mentions loginID.
func (p *Users) OpenActionsFor(ctx context.Context, loginID string) error {
	sel, err := locator.Build(p.loc.RowActions, loginID)
	if err != nil {
		return err
	}
	return p.in.Click(ctx, sel)
}

// ColumnLocator matches the given column's cell in every row.
func (p *Users) ColumnLocator(col entity.UserColumn) (string, error) {
	idx := slices.Index(entity.UserColumns, col)
	if idx < 0 {
		return "", fmt.Errorf("unknown user column %q", col)
	}
	return locator.Build(p.loc.Column, idx+1)
}

// UserAt reads one row of the current page.
func (p *Users) UserAt(ctx context.Context, index int) (entity.UserRow, error) {
	if index < 0 {
		return entity.UserRow{}, fmt.Errorf("row index %d out of range", index)
	}

	cells := make([]string, len(entity.UserColumns))
	for i := range entity.UserColumns {
		sel, err := locator.Build(p.loc.Cell, index+1, i+1)
		if err != nil {
			return entity.UserRow{}, err
		}
		cells[i] = p.in.GetText(ctx, sel)
	}
	return rowFromCells(cells), nil
}

// UsersOnCurrentPage reads the visible rows one column at a time.
func (p *Users) UsersOnCurrentPage(ctx context.Context) ([]entity.UserRow, error) {
	columns := make([][]string, len(entity.UserColumns))
	rows := 0
	for i, col := range entity.UserColumns {
		sel, err := p.ColumnLocator(col)
		if err != nil {
			return nil, err
		}
		columns[i] = p.in.Texts(ctx, sel)
		rows = max(rows, len(columns[i]))
	}

	users := make([]entity.UserRow, 0, rows)
	for r := range rows {
		cells := make([]string, len(columns))
		for c, texts := range columns {
			if r < len(texts) {
				cells[c] = texts[r]
			}
		}
		users = append(users, rowFromCells(cells))
	}
	return users, nil
}

// FindUserRowIndex returns the 0-based row on the current page whose login ID equals
// loginID, or -1.
func (p *Users) FindUserRowIndex(ctx context.Context, loginID string) int {
	sel, err := p.ColumnLocator(entity.ColumnLoginID)
	if err != nil {
		return -1
	}
	return slices.Index(p.in.Texts(ctx, sel), loginID)
}

// HasRowContaining reports whether a row on the current page has a cell containing text.
func (p *Users) HasRowContaining(ctx context.Context, text string) bool {
	sel, err := locator.Build(p.loc.RowByText, text)
	if err != nil {
		return false
	}
	return p.in.IsVisible(ctx, sel)
}

// WaitForRow waits for a row mentioning text, typically after a create or an edit.
func (p *Users) WaitForRow(ctx context.Context, text string, timeout time.Duration) error {
	sel, err := locator.Build(p.loc.RowByText, text)
	if err != nil {
		return err
	}
	if err := p.in.Waiter().WaitForVisible(ctx, sel, timeout); err != nil {
		return fmt.Errorf("row %q: %w", text, err)
	}
	return nil
}

// WaitLoaded waits for the table to render and the spinner to go away.
func (p *Users) WaitLoaded(ctx context.Context, timeout time.Duration) error {
	if err := p.feedback.WaitForTable(ctx, timeout); err != nil {
		return err
	}
	p.feedback.Settle(ctx)
	return nil
}

// AllUsers reads the current page and every following one. It stops when the next page
// button is disabled or MaxPages pages have been read; in the latter case the rows read
// so far are returned with ErrPageLimit.
func (p *Users) AllUsers(ctx context.Context) ([]entity.UserRow, error) {
	limit := p.MaxPages
	if limit <= 0 {
		limit = DefaultMaxPages
	}

	var all []entity.UserRow
	for page := 1; ; page++ {
		rows, err := p.UsersOnCurrentPage(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, rows...)

		if !p.paging.HasNextPage(ctx) {
			return all, nil
		}
		if page >= limit {
			return all, fmt.Errorf("read %d pages: %w", page, ErrPageLimit)
		}
		if err := p.paging.Next(ctx); err != nil {
			return all, fmt.Errorf("go to page %d: %w", page+1, err)
		}
	}
}

// UserByLoginID walks the table for the user. The bool is false when no row matches.
func (p *Users) UserByLoginID(ctx context.Context, loginID string) (entity.UserRow, bool, error) {
	all, err := p.AllUsers(ctx)
	for _, u := range all {
		if u.LoginID == loginID {
			return u, true, nil
		}
	}
	return entity.UserRow{}, false, err
}

// TotalUserCount reads the total from the pagination footer.
func (p *Users) TotalUserCount(ctx context.Context) (int, bool) {
	info, ok := p.paging.Info(ctx)
	return info.Total, ok
}

func (p *Users) VerifySearchResults(ctx context.Context, col entity.UserColumn, text string) (bool, error) {
	sel, err := p.ColumnLocator(col)
	if err != nil {
		return false, err
	}
	return p.search.VerifyResultsInColumn(ctx, sel, text), nil
}

func (p *Users) VerifyFilterResults(ctx context.Context, col entity.UserColumn, value string) (bool, error) {
	sel, err := p.ColumnLocator(col)
	if err != nil {
		return false, err
	}
	return p.filter.VerifyResults(ctx, sel, value), nil
}

func rowFromCells(c []string) entity.UserRow {
	return entity.UserRow{
		LoginID:      c[0],
		FullName:     c[1],
		APIAccess:    c[2],
		RoleGroup:    c[3],
		UserGroup:    c[4],
		AccessMethod: c[5],
		Status:       c[6],
		MemberInfo:   c[7],
	}
}
