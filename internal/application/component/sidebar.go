package component

import (
	"context"
	"fmt"
	"time"

	"browser-pom/internal/application/interaction"
	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
)

// Menu entries of the admin portal sidebar.
const (
	MenuDashboard               = "Dashboard"
	MenuNotifications           = "Notifications"
	MenuUserManagement          = "User Management"
	MenuAllUsers                = "All Users"
	MenuAllSegments             = "All Segments"
	MenuRolesManagement         = "Roles Management"
	MenuAccountManagement       = "Account Management"
	MenuVettingRulesManagement  = "Vetting Rules Management"
	MenuMarketDataManagement    = "Market Data Management"
	MenuAllHoldings             = "All Holdings"
	MenuAllOrders               = "All Orders"
	MenuResearchReports         = "Research Reports"
	MenuStockRecommendations    = "Stock Recommendations"
	MenuPendingClientManagement = "Pending Client Management"
)

// TopLevelMenu is every entry visible without expanding a group.
var TopLevelMenu = []string{
	MenuDashboard,
	MenuNotifications,
	MenuUserManagement,
	MenuRolesManagement,
	MenuAccountManagement,
	MenuVettingRulesManagement,
	MenuMarketDataManagement,
	MenuAllHoldings,
	MenuAllOrders,
	MenuResearchReports,
	MenuStockRecommendations,
	MenuPendingClientManagement,
}

// menuGroups maps nested entries to the group that must be expanded first.
var menuGroups = map[string]string{
	MenuAllUsers:    MenuUserManagement,
	MenuAllSegments: MenuUserManagement,
}

const sidebarLoadTimeout = 10 * time.Second

type Sidebar struct {
	in  *interaction.Interactor
	loc locator.SidebarLocators
}

func NewSidebar(in *interaction.Interactor, loc locator.SidebarLocators) *Sidebar {
	return &Sidebar{in: in, loc: loc}
}

func (s *Sidebar) Key() entity.PageKey {
	return entity.ComponentSidebar
}

func (s *Sidebar) MenuItemLocator(name string) string {
	return locator.MustBuild(s.loc.MenuItem, name)
}

func (s *Sidebar) IsVisible(ctx context.Context) bool {
	return s.in.IsVisible(ctx, s.loc.Root)
}

func (s *Sidebar) Toggle(ctx context.Context) error {
	return s.in.Click(ctx, s.loc.Toggle)
}

func (s *Sidebar) WaitLoaded(ctx context.Context) error {
	return s.in.Waiter().WaitForVisible(ctx, s.loc.Root, sidebarLoadTimeout)
}

// NavigateTo clicks a menu entry, expanding its parent group first for nested entries.
func (s *Sidebar) NavigateTo(ctx context.Context, name string) error {
	if group, ok := menuGroups[name]; ok {
		if err := s.ExpandGroup(ctx, group); err != nil {
			return fmt.Errorf("expand %q: %w", group, err)
		}
	}
	return s.in.Click(ctx, s.MenuItemLocator(name))
}

func (s *Sidebar) IsGroupExpanded(ctx context.Context, group string) bool {
	sel := s.MenuItemLocator(group)
	return s.in.HasClass(ctx, sel, s.loc.ExpandedClass) || s.in.GetAttribute(ctx, sel, "aria-expanded") == "true"
}

func (s *Sidebar) ExpandGroup(ctx context.Context, group string) error {
	if s.IsGroupExpanded(ctx, group) {
		return nil
	}
	return s.in.Click(ctx, locator.MustBuild(s.loc.GroupToggle, group))
}

func (s *Sidebar) CollapseGroup(ctx context.Context, group string) error {
	if !s.IsGroupExpanded(ctx, group) {
		return nil
	}
	return s.in.Click(ctx, locator.MustBuild(s.loc.GroupToggle, group))
}

func (s *Sidebar) IsMenuItemActive(ctx context.Context, name string) bool {
	sel := s.MenuItemLocator(name)
	return s.in.HasClass(ctx, sel, s.loc.ActiveClass) || s.in.GetAttribute(ctx, sel, "aria-current") == "page"
}

// MenuItems lists the sidebar links with their target and active flag.
func (s *Sidebar) MenuItems(ctx context.Context) []entity.MenuItem {
	states := s.in.States(ctx, s.loc.Links)
	items := make([]entity.MenuItem, 0, len(states))
	for _, st := range states {
		items = append(items, entity.MenuItem{
			Text:   st.TrimmedText(),
			Href:   st.Attr("href"),
			Active: st.HasClass(s.loc.ActiveClass),
		})
	}
	return items
}

// VerifyMenuItemsVisible checks the given entries, or every top-level entry when none
// are given.
func (s *Sidebar) VerifyMenuItemsVisible(ctx context.Context, names ...string) bool {
	if len(names) == 0 {
		names = TopLevelMenu
	}
	for _, name := range names {
		if !s.in.IsVisible(ctx, s.MenuItemLocator(name)) {
			s.in.Logger().Warn("menu item not visible", "item", name)
			return false
		}
	}
	return true
}
