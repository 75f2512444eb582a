// Package pages holds the screen-level page objects. Each one is built from an
// Interactor and its section of the locator catalog and reads state from the live page.
package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"browser-pom/internal/application/component"
	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

const toastTimeout = 5 * time.Second

type Login struct {
	in       *interaction.Interactor
	loc      locator.LoginLocators
	feedback *component.Feedback
}

func NewLogin(in *interaction.Interactor, loc locator.LoginLocators, feedback *component.Feedback) *Login {
	return &Login{in: in, loc: loc, feedback: feedback}
}

func (p *Login) Key() entity.PageKey {
	return entity.PageLogin
}

func (p *Login) Open(ctx context.Context, baseURL string) error {
	return p.in.Navigate(ctx, baseURL)
}

// Login submits the credential form and waits for the next page to settle.
func (p *Login) Login(ctx context.Context, username, password string) error {
	log := p.in.Logger().WithField("user", username)
	log.Info("logging in")

	if _, err := p.in.Fill(ctx, p.loc.EmailInput, username, interaction.FillOptions{ClearFirst: true}); err != nil {
		return fmt.Errorf("enter username: %w", err)
	}
	if _, err := p.in.Fill(ctx, p.loc.PasswordInput, password, interaction.FillOptions{ClearFirst: true}); err != nil {
		return fmt.Errorf("enter password: %w", err)
	}
	if err := p.in.Click(ctx, p.loc.LoginButton); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	if err := p.in.Driver().WaitIdle(ctx); err != nil {
		log.Debug("page did not settle after login", "error", err)
	}
	p.feedback.Settle(ctx)
	return nil
}

// EnterCode completes the second login step.
func (p *Login) EnterCode(ctx context.Context, code string) error {
	if _, err := p.in.Fill(ctx, p.loc.CodeInput, code, interaction.FillOptions{ClearFirst: true}); err != nil {
		return fmt.Errorf("enter code: %w", err)
	}
	if err := p.in.Click(ctx, p.loc.VerifyButton); err != nil {
		return fmt.Errorf("submit code: %w", err)
	}
	if err := p.in.Driver().WaitIdle(ctx); err != nil {
		p.in.Logger().Debug("page did not settle after code", "error", err)
	}
	return nil
}

// IsCodeRequested reports whether the second login step is showing.
func (p *Login) IsCodeRequested(ctx context.Context) bool {
	return p.in.IsVisible(ctx, p.loc.CodeInput)
}

func (p *Login) SetRememberMe(ctx context.Context, remember bool) error {
	if p.in.IsChecked(ctx, p.loc.RememberMe) == remember {
		return nil
	}
	return p.in.Click(ctx, p.loc.RememberMe)
}

func (p *Login) IsErrorMessageVisible(ctx context.Context) bool {
	return p.in.IsVisible(ctx, p.loc.ErrorMessage)
}

func (p *Login) ErrorMessage(ctx context.Context) string {
	return p.in.GetText(ctx, p.loc.ErrorMessage)
}

// ToastMessage waits for the toast and returns its text.
func (p *Login) ToastMessage(ctx context.Context) (string, error) {
	if err := p.in.Waiter().WaitForVisible(ctx, p.loc.ToastContainer, toastTimeout); err != nil {
		return "", err
	}
	return strings.Join(p.in.Texts(ctx, p.loc.ToastMessage), "\n"), nil
}

func (p *Login) DismissToast(ctx context.Context) error {
	if err := p.in.Click(ctx, p.loc.ToastDismiss); err != nil {
		return err
	}
	return p.in.Waiter().WaitForHidden(ctx, p.loc.ToastContainer, toastTimeout)
}
