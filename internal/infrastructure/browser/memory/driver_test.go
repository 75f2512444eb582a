package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/domain/entity"
)

func TestQuery_ExactAndPositional(t *testing.T) {
	d := New()
	d.Set(`//*[@role="tab"]`, &Element{Tag: "button", Text: "A"}, &Element{Tag: "button", Text: "B"})

	all, err := d.Query(context.Background(), `xpath=//*[@role="tab"]`)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	second, err := d.Query(context.Background(), `(//*[@role="tab"])[2]`)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "B", second[0].Text)

	none, err := d.Query(context.Background(), `(//*[@role="tab"])[3]`)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuery_SnapshotIsACopy(t *testing.T) {
	d := New()
	el := &Element{Tag: "a", Attributes: map[string]string{"href": "/"}}
	d.Set("a", el)

	states, err := d.Query(context.Background(), "a")
	require.NoError(t, err)
	states[0].Attributes["href"] = "/changed"

	assert.Equal(t, "/", el.Attributes["href"])
	assert.Equal(t, "auto", states[0].PointerEvents)
	assert.True(t, states[0].Visible)
	assert.True(t, states[0].Enabled)
}

func TestClick_TogglesCheckboxAndRunsHook(t *testing.T) {
	d := New()
	box := &Element{Tag: "input", Attributes: map[string]string{"type": "checkbox"}}
	hooked := false
	box.OnClick = func(*Driver) { hooked = true }
	d.Set("#c", box)

	require.NoError(t, d.Click(context.Background(), "#c", entity.ClickOptions{}))
	assert.True(t, box.Checked)
	assert.True(t, hooked)

	require.NoError(t, d.DoubleClick(context.Background(), "#c"))
	assert.True(t, box.Checked)
}

func TestFailNextAndNotFound(t *testing.T) {
	d := New()
	d.Set("#x", &Element{Tag: "button"})
	d.FailNext("#x", 1)

	assert.ErrorIs(t, d.Click(context.Background(), "#x", entity.ClickOptions{}), ErrDetached)
	assert.NoError(t, d.Click(context.Background(), "#x", entity.ClickOptions{}))
	assert.ErrorIs(t, d.Fill(context.Background(), "#y", "v"), entity.ErrElementNotFound)
}

func TestScreenshotDefault(t *testing.T) {
	d := New()

	shot, err := d.Screenshot(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "png", shot.Format)
	assert.Equal(t, 1280, shot.Width)
	assert.Equal(t, 720, shot.Height)
}

func TestNavigateHookAndClose(t *testing.T) {
	d := New()
	d.OnNavigate = func(d *Driver, url string) {
		d.Set("#page", &Element{Tag: "main", Text: url})
	}

	require.NoError(t, d.Navigate(context.Background(), "http://app.local/users"))
	states, err := d.Query(context.Background(), "#page")
	require.NoError(t, err)
	assert.Equal(t, "http://app.local/users", states[0].Text)

	require.NoError(t, d.Close())
	assert.True(t, d.Closed())
}
