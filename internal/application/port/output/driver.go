package output

import (
	"context"

	"browser-pom/internal/domain/entity"
)

// DriverPort is the page handle every page object talks to. Selectors may be CSS or
// XPath; adapters act on the first match unless stated otherwise.
type DriverPort interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL() string

	// Query returns a snapshot of every element matching selector, in document order.
	// Zero matches is not an error.
	Query(ctx context.Context, selector string) ([]entity.ElementState, error)

	Click(ctx context.Context, selector string, opts entity.ClickOptions) error
	DoubleClick(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, text string) error
	SelectOption(ctx context.Context, selector, value string) error
	Hover(ctx context.Context, selector string) error
	Press(ctx context.Context, selector, key string) error
	ScrollIntoView(ctx context.Context, selector string) error
	ScrollBy(ctx context.Context, dx, dy float64) error
	SetInputFiles(ctx context.Context, selector string, paths []string) error
	// UploadViaChooser runs trigger, intercepts the native file dialog it opens and
	// answers it with paths.
	UploadViaChooser(ctx context.Context, trigger func(ctx context.Context) error, paths []string) error
	DragAndDrop(ctx context.Context, source, target string) error

	// WaitForNewPage runs trigger, waits for the tab or popup it opens and makes it the
	// current page. The returned index is valid for SwitchToPage. Page 0 is the page the
	// driver started with.
	WaitForNewPage(ctx context.Context, trigger func(ctx context.Context) error) (int, error)
	SwitchToPage(ctx context.Context, index int) error
	PageCount() int
	// CloseCurrentPage closes the current page and switches to the last remaining one.
	CloseCurrentPage(ctx context.Context) error
	Reload(ctx context.Context) error
	ClearCookies(ctx context.Context) error

	Evaluate(ctx context.Context, script string) (any, error)
	Screenshot(ctx context.Context, fullPage bool) (*entity.Screenshot, error)
	HTML(ctx context.Context) (string, error)
	WaitIdle(ctx context.Context) error

	Close() error
}
