package component

import (
	"context"
	"time"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

const (
	loadingTimeout = 30 * time.Second
	toastTimeout   = 5 * time.Second
)

// Feedback covers the loading spinner, toasts and error alerts.
type Feedback struct {
	in  *interaction.Interactor
	loc locator.CommonLocators
}

func NewFeedback(in *interaction.Interactor, loc locator.CommonLocators) *Feedback {
	return &Feedback{in: in, loc: loc}
}

func (f *Feedback) Key() entity.PageKey {
	return entity.ComponentFeedback
}

// WaitForLoadingToDisappear returns once the spinner is gone or was never there.
func (f *Feedback) WaitForLoadingToDisappear(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = loadingTimeout
	}
	return f.in.Waiter().WaitForHidden(ctx, f.loc.LoadingSpinner, timeout)
}

// WaitForToast waits for any toast, or for one containing message when it is set.
func (f *Feedback) WaitForToast(ctx context.Context, message string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = toastTimeout
	}
	sel := f.loc.Toast
	if message != "" {
		built, err := locator.Build(f.loc.ToastWithText, message)
		if err != nil {
			return err
		}
		sel = built
	}
	return f.in.Waiter().WaitForVisible(ctx, sel, timeout)
}

// WaitForTable waits for the data table of the current screen to be visible.
func (f *Feedback) WaitForTable(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = loadingTimeout
	}
	return f.in.Waiter().WaitForVisible(ctx, f.loc.Table, timeout)
}

func (f *Feedback) IsTableVisible(ctx context.Context) bool {
	return f.in.IsVisible(ctx, f.loc.Table)
}

func (f *Feedback) IsErrorAlertVisible(ctx context.Context) bool {
	return f.in.IsVisible(ctx, f.loc.ErrorAlert)
}

func (f *Feedback) IsSuccessAlertVisible(ctx context.Context) bool {
	return f.in.IsVisible(ctx, f.loc.SuccessAlert)
}

// Settle is the best-effort wait page objects run after actions that reload data.
func (f *Feedback) Settle(ctx context.Context) {
	if err := f.WaitForLoadingToDisappear(ctx, 0); err != nil {
		f.in.Logger().Warn("loading indicator still visible", "error", err)
	}
}
