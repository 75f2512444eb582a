package entity

type PageKey string

const (
	PageLogin     PageKey = "login"
	PageUsers     PageKey = "users"
	PageDashboard PageKey = "dashboard"

	ComponentSidebar  PageKey = "sidebar"
	ComponentHeader   PageKey = "header"
	ComponentTabs     PageKey = "tabs"
	ComponentSearch   PageKey = "search"
	ComponentFilter   PageKey = "filter"
	ComponentPaging   PageKey = "paging"
	ComponentColumns  PageKey = "columns"
	ComponentFeedback PageKey = "feedback"
)

// AllPageKeys lists every key the page factory must be able to build.
var AllPageKeys = []PageKey{
	PageLogin,
	PageUsers,
	PageDashboard,
	ComponentSidebar,
	ComponentHeader,
	ComponentTabs,
	ComponentSearch,
	ComponentFilter,
	ComponentPaging,
	ComponentColumns,
	ComponentFeedback,
}

func (k PageKey) String() string {
	return string(k)
}
