//go:build integration

package playwright

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/domain/entity"
)

const page = `<!DOCTYPE html>
<html>
<body>
	<input id="q" placeholder="Search" value="old" />
	<ul><li role="option">15</li><li role="option">25</li></ul>
	<button id="go" onclick="document.getElementById('out').textContent = document.getElementById('q').value">Go</button>
	<div id="out"></div>
</body>
</html>`

func TestDriver_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Install = true
	d, err := NewDriver(context.Background(), cfg)
	require.NoError(t, err)
	defer d.Close()

	ctx := context.Background()
	require.NoError(t, d.Navigate(ctx, srv.URL))

	require.NoError(t, d.Fill(ctx, `//input[@placeholder="Search"]`, "alice"))
	require.NoError(t, d.Click(ctx, "#go", entity.ClickOptions{}))

	out, err := d.Query(ctx, "#out")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "alice", out[0].TrimmedText())

	options, err := d.Query(ctx, `(//li[@role="option"])[2]`)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "25", options[0].TrimmedText())

	err = d.Click(ctx, "#missing", entity.ClickOptions{})
	assert.ErrorIs(t, err, entity.ErrElementNotFound)

	shot, err := d.Screenshot(ctx, true)
	require.NoError(t, err)
	assert.Positive(t, shot.Height)
}

const windows = `<!DOCTYPE html>
<html>
<body>
	<a id="popup" href="?popup=1" target="_blank">Open</a>
	<button id="pick" onclick="document.getElementById('file').click()">Attach</button>
	<input id="file" type="file" style="display:none"
		onchange="document.getElementById('picked').textContent = this.files[0].name" />
	<div id="picked"></div>
	<div id="card" style="width:80px;height:40px">Card</div>
	<div id="lane" style="width:200px;height:100px;margin-top:40px">Done</div>
	<script>
		let dragging = false;
		document.getElementById('card').addEventListener('mousedown', () => { dragging = true; });
		document.getElementById('lane').addEventListener('mouseup', () => {
			if (dragging) document.getElementById('lane').textContent = 'Dropped';
		});
	</script>
</body>
</html>`

func TestDriver_PagesChooserAndDrag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(windows))
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Install = true
	d, err := NewDriver(context.Background(), cfg)
	require.NoError(t, err)
	defer d.Close()

	ctx := context.Background()
	require.NoError(t, d.Navigate(ctx, srv.URL))

	idx, err := d.WaitForNewPage(ctx, func(ctx context.Context) error {
		return d.Click(ctx, "#popup", entity.ClickOptions{})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, d.CurrentURL(), "popup=1")
	require.NoError(t, d.CloseCurrentPage(ctx))
	assert.Equal(t, 1, d.PageCount())

	file := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(file, []byte("id\n1\n"), 0o644))
	require.NoError(t, d.UploadViaChooser(ctx, func(ctx context.Context) error {
		return d.Click(ctx, "#pick", entity.ClickOptions{})
	}, []string{file}))
	picked, err := d.Query(ctx, "#picked")
	require.NoError(t, err)
	assert.Equal(t, "users.csv", picked[0].TrimmedText())

	require.NoError(t, d.DragAndDrop(ctx, "#card", "#lane"))
	lane, err := d.Query(ctx, "#lane")
	require.NoError(t, err)
	assert.Equal(t, "Dropped", lane[0].TrimmedText())

	require.NoError(t, d.Reload(ctx))
	require.NoError(t, d.ClearCookies(ctx))
}
