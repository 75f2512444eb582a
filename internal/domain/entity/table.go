package entity

// Tab is one entry of a tab strip, in DOM order.
type Tab struct {
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

type TabIdiom string

const (
	TabIdiomARIA     TabIdiom = "aria"
	TabIdiomFloating TabIdiom = "floating"
)

type MenuItem struct {
	Text   string `json:"text"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// PaginationInfo is the parsed "start-end of total" status line.
type PaginationInfo struct {
	Start int
	End   int
	Total int
}

type UserRow struct {
	LoginID      string `json:"login_id"`
	FullName     string `json:"full_name"`
	APIAccess    string `json:"api_access"`
	RoleGroup    string `json:"role_group"`
	UserGroup    string `json:"user_group"`
	AccessMethod string `json:"access_method"`
	Status       string `json:"status"`
	MemberInfo   string `json:"member_info"`
}

type UserColumn string

const (
	ColumnLoginID      UserColumn = "userLoginId"
	ColumnFullName     UserColumn = "fullName"
	ColumnAPIAccess    UserColumn = "apiAccess"
	ColumnRoleGroup    UserColumn = "roleGroup"
	ColumnUserGroup    UserColumn = "userGroup"
	ColumnAccessMethod UserColumn = "accessMethod"
	ColumnStatus       UserColumn = "status"
	ColumnMemberInfo   UserColumn = "memberInfo"
)

// UserColumns is the on-screen column order of the users table.
var UserColumns = []UserColumn{
	ColumnLoginID,
	ColumnFullName,
	ColumnAPIAccess,
	ColumnRoleGroup,
	ColumnUserGroup,
	ColumnAccessMethod,
	ColumnStatus,
	ColumnMemberInfo,
}

type FillResult string

const (
	FillResultFilled  FillResult = "filled"
	FillResultSkipped FillResult = "skipped"
)
