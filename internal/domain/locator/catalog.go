package locator

import (
	"fmt"
	"sort"
	"strings"

	"browser-pom/internal/domain/entity"
)

// Catalog holds every locator the page objects use, grouped per screen. Entries that
// take arguments are templates with ordinal placeholders.
type Catalog struct {
	Login     LoginLocators     `yaml:"login"`
	Users     UsersLocators     `yaml:"users"`
	Common    CommonLocators    `yaml:"common"`
	Sidebar   SidebarLocators   `yaml:"sidebar"`
	Search    SearchLocators    `yaml:"search"`
	Filter    FilterLocators    `yaml:"filter"`
	Columns   ColumnLocators    `yaml:"columns"`
	Tabs      TabLocators       `yaml:"tabs"`
	Dashboard DashboardLocators `yaml:"dashboard"`
}

type LoginLocators struct {
	EmailInput     string `yaml:"emailInput"`
	PasswordInput  string `yaml:"passwordInput"`
	LoginButton    string `yaml:"loginButton"`
	CodeInput      string `yaml:"codeInput"`
	VerifyButton   string `yaml:"verifyButton"`
	RememberMe     string `yaml:"rememberMe"`
	ErrorMessage   string `yaml:"errorMessage"`
	ToastContainer string `yaml:"toastContainer"`
	ToastMessage   string `yaml:"toastMessage"`
	ToastDismiss   string `yaml:"toastDismiss"`
}

type UsersLocators struct {
	Path            string `yaml:"path"`
	NewUserButton   string `yaml:"newUserButton"`
	EditUsersButton string `yaml:"editUsersButton"`
	// Cell is templated on 1-based row and column.
	Cell string `yaml:"cell"`
	// Column is templated on the 1-based column and matches that cell in every row.
	Column     string `yaml:"column"`
	RowByText  string `yaml:"rowByText"`
	RowActions string `yaml:"rowActions"`
}

type CommonLocators struct {
	Header           string `yaml:"header"`
	Footer           string `yaml:"footer"`
	Logo             string `yaml:"logo"`
	LoadingSpinner   string `yaml:"loadingSpinner"`
	ErrorAlert       string `yaml:"errorAlert"`
	SuccessAlert     string `yaml:"successAlert"`
	Toast            string `yaml:"toast"`
	ToastWithText    string `yaml:"toastWithText"`
	Table            string `yaml:"table"`
	TableHeader      string `yaml:"tableHeader"`
	TableRows        string `yaml:"tableRows"`
	RowsPerPage      string `yaml:"rowsPerPage"`
	RowsPerPageLabel string `yaml:"rowsPerPageLabel"`
	PaginationStatus string `yaml:"paginationStatus"`
	FirstPage        string `yaml:"firstPage"`
	PreviousPage     string `yaml:"previousPage"`
	NextPage         string `yaml:"nextPage"`
	LastPage         string `yaml:"lastPage"`
	Options          string `yaml:"options"`
	OptionByText     string `yaml:"optionByText"`
}

type SidebarLocators struct {
	Root          string `yaml:"root"`
	Toggle        string `yaml:"toggle"`
	Logo          string `yaml:"logo"`
	MenuItem      string `yaml:"menuItem"`
	GroupToggle   string `yaml:"groupToggle"`
	Links         string `yaml:"links"`
	ActiveClass   string `yaml:"activeClass"`
	ExpandedClass string `yaml:"expandedClass"`
}

type SearchLocators struct {
	Input       string `yaml:"input"`
	Button      string `yaml:"button"`
	ClearButton string `yaml:"clearButton"`
}

type FilterLocators struct {
	Button      string `yaml:"button"`
	ApplyButton string `yaml:"applyButton"`
	ResetButton string `yaml:"resetButton"`
	// Field is templated on the field label.
	Field string `yaml:"field"`
	// DropdownField matches Field only when it sits inside a dropdown widget.
	DropdownField string `yaml:"dropdownField"`
}

type ColumnLocators struct {
	ShowButton string `yaml:"showButton"`
	Checkbox   string `yaml:"checkbox"`
	Checkboxes string `yaml:"checkboxes"`
	Labels     string `yaml:"labels"`
}

type TabLocators struct {
	ARIA                string   `yaml:"aria"`
	Panel               string   `yaml:"panel"`
	ActiveClasses       []string `yaml:"activeClasses"`
	Floating            string   `yaml:"floating"`
	FloatingActiveClass string   `yaml:"floatingActiveClass"`
}

type DashboardLocators struct {
	WelcomeMessage   string `yaml:"welcomeMessage"`
	LogoutButton     string `yaml:"logoutButton"`
	UserProfile      string `yaml:"userProfile"`
	NotificationIcon string `yaml:"notificationIcon"`
}

// Validate reports the templated entries page objects cannot work without.
func (c Catalog) Validate() error {
	required := map[string]string{
		"users.cell":           c.Users.Cell,
		"users.column":         c.Users.Column,
		"users.rowActions":     c.Users.RowActions,
		"common.toastWithText": c.Common.ToastWithText,
		"common.optionByText":  c.Common.OptionByText,
		"sidebar.menuItem":     c.Sidebar.MenuItem,
		"sidebar.groupToggle":  c.Sidebar.GroupToggle,
		"filter.field":         c.Filter.Field,
		"filter.dropdownField": c.Filter.DropdownField,
		"columns.checkbox":     c.Columns.Checkbox,
		"columns.checkboxes":   c.Columns.Checkboxes,
		"tabs.aria":            c.Tabs.ARIA,
		"tabs.floating":        c.Tabs.Floating,
	}

	var missing []string
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing %s", entity.ErrInvalidTemplate, strings.Join(missing, ", "))
	}

	for name, value := range map[string]string{"tabs.aria": c.Tabs.ARIA, "tabs.floating": c.Tabs.Floating, "columns.checkboxes": c.Columns.Checkboxes} {
		if !IsXPath(value) {
			return fmt.Errorf("%w: %s must be XPath", entity.ErrInvalidTemplate, name)
		}
	}
	return nil
}
