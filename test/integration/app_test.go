//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"browser-pom/internal/infrastructure/env"
)

const loginHTML = `<!DOCTYPE html>
<html>
<body>
	<form onsubmit="event.preventDefault(); location.href='/home';">
		<input name="email" type="email" />
		<input name="password" type="password" />
		<label><input name="remember" type="checkbox" /> Remember me</label>
		<button type="submit">Sign in</button>
	</form>
</body>
</html>`

const homeHTML = `<!DOCTYPE html>
<html>
<body>
	<div class="MuiDrawer-root MuiDrawer-docked">
		<nav>
			<button><span>Dashboard</span></button>
			<button><span>Reports</span></button>
		</nav>
	</div>
	<div role="tablist">
		<button role="tab" id="tab-overview" aria-selected="true">Overview</button>
		<button role="tab" id="tab-details" aria-selected="false">Details</button>
	</div>
	<div id="panel-overview" aria-labelledby="tab-overview">Overview panel</div>
	<div id="panel-details" aria-labelledby="tab-details" hidden>Details panel</div>
	<script>
		document.querySelectorAll('[role="tab"]').forEach(function (tab) {
			tab.addEventListener('click', function () {
				setTimeout(function () {
					document.querySelectorAll('[role="tab"]').forEach(function (t) {
						var on = t === tab;
						t.setAttribute('aria-selected', on ? 'true' : 'false');
						document.querySelector('[aria-labelledby="' + t.id + '"]').hidden = !on;
					});
				}, 150);
			});
		});
	</script>
</body>
</html>`

type user struct {
	loginID, fullName, apiAccess, roleGroup, userGroup, accessMethod, status, memberInfo string
}

var allUsers = func() []user {
	out := make([]user, 0, 12)
	for i := 1; i <= 12; i++ {
		status := "Active"
		if i%4 == 0 {
			status = "Inactive"
		}
		out = append(out, user{
			loginID:      fmt.Sprintf("user%02d", i),
			fullName:     fmt.Sprintf("User %02d", i),
			apiAccess:    "No",
			roleGroup:    "Viewers",
			userGroup:    "Default",
			accessMethod: "Password",
			status:       status,
			memberInfo:   fmt.Sprintf("user%02d@example.com", i),
		})
	}
	return out
}()

const pageSize = 5

// usersHTML renders one page of the users table with MUI-like pagination.
func usersHTML(page int) string {
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(allUsers))
	last := (len(allUsers) + pageSize - 1) / pageSize

	var rows strings.Builder
	for _, u := range allUsers[start:end] {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			u.loginID, u.fullName, u.apiAccess, u.roleGroup, u.userGroup, u.accessMethod, u.status, u.memberInfo)
	}

	disabled := func(b bool) string {
		if b {
			return "disabled"
		}
		return ""
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
	<table>
		<thead><tr><th>Login ID</th><th>Full name</th><th>API access</th><th>Role group</th><th>User group</th><th>Access method</th><th>Status</th><th>Member info</th></tr></thead>
		<tbody>%s</tbody>
	</table>
	<div class="MuiTablePagination-root">
		<p class="MuiTablePagination-displayedRows">%d–%d of %d</p>
		<button aria-label="first page" %s onclick="location.href='/users?page=1'">first</button>
		<button aria-label="previous page" %s onclick="location.href='/users?page=%d'">prev</button>
		<button aria-label="next page" %s onclick="location.href='/users?page=%d'">next</button>
		<button aria-label="last page" %s onclick="location.href='/users?page=%d'">last</button>
	</div>
</body>
</html>`, rows.String(), start+1, end, len(allUsers),
		disabled(page == 1), disabled(page == 1), page-1,
		disabled(page == last), page+1, disabled(page == last), last)
}

// columnsHTML mimics an MUI column picker: the native checkboxes sit at opacity 0
// over the styled icon and the popup closes on a click on the table header.
const columnsHTML = `<!DOCTYPE html>
<html>
<body>
	<header>Admin</header>
	<button aria-label="View Columns" onclick="document.getElementById('picker').style.display='block'">Columns</button>
	<div id="picker" style="display:none">
		<div class="MuiFormGroup-root">
			<label><span class="MuiCheckbox-root" style="position:relative;display:inline-block;width:24px;height:24px"><input type="checkbox" name="login" checked style="opacity:0;position:absolute;left:0;top:0;width:24px;height:24px;margin:0"></span><span class="MuiFormControlLabel-label">Login ID</span></label>
			<label><span class="MuiCheckbox-root" style="position:relative;display:inline-block;width:24px;height:24px"><input type="checkbox" name="email" style="opacity:0;position:absolute;left:0;top:0;width:24px;height:24px;margin:0"></span><span class="MuiFormControlLabel-label">Email</span></label>
		</div>
	</div>
	<table>
		<thead onclick="document.getElementById('picker').style.display='none'"><tr><th>Login ID</th></tr></thead>
		<tbody><tr><td>user01</td></tr></tbody>
	</table>
	<footer>v1</footer>
</body>
</html>`

func newApp(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, body)
		}
	}
	mux.HandleFunc("/", serve(loginHTML))
	mux.HandleFunc("/home", serve(homeHTML))
	mux.HandleFunc("/columns", serve(columnsHTML))
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		page := 1
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)
		serve(usersHTML(page))(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func settingsFor(t *testing.T, baseURL string) env.Settings {
	t.Helper()
	return env.Settings{
		BaseURL:       baseURL,
		Driver:        env.DriverRod,
		Browser:       "chromium",
		Headless:      true,
		ActionTimeout: 5 * time.Second,
		WaitTimeout:   10 * time.Second,
		PollInterval:  50 * time.Millisecond,
		ScreenshotDir: t.TempDir(),
		LogDir:        t.TempDir(),
		LogLevel:      "debug",
		MaxPages:      10,
	}
}
