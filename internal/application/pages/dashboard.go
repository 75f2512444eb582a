package pages

import (
	"context"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

const notificationClass = "has-notification"

type Dashboard struct {
	in  *interaction.Interactor
	loc locator.DashboardLocators
}

func NewDashboard(in *interaction.Interactor, loc locator.DashboardLocators) *Dashboard {
	return &Dashboard{in: in, loc: loc}
}

func (p *Dashboard) Key() entity.PageKey {
	return entity.PageDashboard
}

func (p *Dashboard) IsLoaded(ctx context.Context) bool {
	return p.in.IsVisible(ctx, p.loc.WelcomeMessage)
}

func (p *Dashboard) WelcomeMessage(ctx context.Context) string {
	return p.in.GetText(ctx, p.loc.WelcomeMessage)
}

func (p *Dashboard) Logout(ctx context.Context) error {
	return p.clickAndSettle(ctx, p.loc.LogoutButton)
}

func (p *Dashboard) OpenProfile(ctx context.Context) error {
	return p.clickAndSettle(ctx, p.loc.UserProfile)
}

// HasNewNotifications is true when the bell carries the badge class or a non-zero
// data-count. A missing bell is false.
func (p *Dashboard) HasNewNotifications(ctx context.Context) bool {
	states := p.in.States(ctx, p.loc.NotificationIcon)
	if len(states) == 0 {
		return false
	}
	bell := states[0]
	if bell.HasClass(notificationClass) {
		return true
	}
	count, ok := bell.Attributes["data-count"]
	return ok && count != "0"
}

func (p *Dashboard) clickAndSettle(ctx context.Context, sel string) error {
	if err := p.in.Click(ctx, sel); err != nil {
		return err
	}
	if err := p.in.Driver().WaitIdle(ctx); err != nil {
		p.in.Logger().Debug("page did not settle", "locator", sel, "error", err)
	}
	return nil
}
