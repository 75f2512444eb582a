package wait

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/domain/entity"
	"browser-pom/internal/infrastructure/browser/memory"
	"browser-pom/internal/infrastructure/logger"
)

func newTestWaiter() (*Waiter, *memory.Driver) {
	d := memory.New()
	return NewWaiter(d, NewPoller(10*time.Millisecond, time.Second), logger.NewNop()), d
}

func TestWaitForVisible_TimesOutBeforeElementAppears(t *testing.T) {
	w, d := newTestWaiter()
	el := &memory.Element{Tag: "div", Hidden: true}
	d.Set("#banner", el)

	timer := time.AfterFunc(150*time.Millisecond, func() {
		d.Mutate(func() { el.Hidden = false })
	})
	defer timer.Stop()

	err := w.WaitForVisible(context.Background(), "#banner", 100*time.Millisecond)

	var wte *entity.WaitTimeoutError
	require.ErrorAs(t, err, &wte)
	assert.Contains(t, wte.Condition, "#banner")
}

func TestWaitForVisible_SucceedsWhenElementAppears(t *testing.T) {
	w, d := newTestWaiter()
	el := &memory.Element{Tag: "div", Hidden: true}
	d.Set("#banner", el)

	timer := time.AfterFunc(30*time.Millisecond, func() {
		d.Mutate(func() { el.Hidden = false })
	})
	defer timer.Stop()

	require.NoError(t, w.WaitForVisible(context.Background(), "#banner", 500*time.Millisecond))
}

func TestWaitForVisible_NoMatchReportsNotFound(t *testing.T) {
	w, _ := newTestWaiter()

	err := w.WaitForVisible(context.Background(), "#missing", 30*time.Millisecond)

	assert.ErrorIs(t, err, entity.ErrWaitTimeout)
	assert.ErrorIs(t, err, entity.ErrElementNotFound)
}

func TestWaitForHidden(t *testing.T) {
	w, d := newTestWaiter()

	require.NoError(t, w.WaitForHidden(context.Background(), ".loading-spinner", 50*time.Millisecond))

	d.Set(".loading-spinner", &memory.Element{Tag: "div"})
	assert.ErrorIs(t, w.WaitForHidden(context.Background(), ".loading-spinner", 30*time.Millisecond), entity.ErrWaitTimeout)

	d.Set(".loading-spinner", &memory.Element{Tag: "div", Hidden: true})
	assert.NoError(t, w.WaitForHidden(context.Background(), ".loading-spinner", 30*time.Millisecond))
}

func TestWaitForEnabledAndChecked(t *testing.T) {
	w, d := newTestWaiter()
	btn := &memory.Element{Tag: "button", Disabled: true}
	box := &memory.Element{Tag: "input", Attributes: map[string]string{"type": "checkbox"}}
	d.Set("#save", btn)
	d.Set("#agree", box)

	assert.Error(t, w.WaitForEnabled(context.Background(), "#save", 30*time.Millisecond))
	assert.Error(t, w.WaitForChecked(context.Background(), "#agree", 30*time.Millisecond))

	d.Mutate(func() {
		btn.Disabled = false
		box.Checked = true
	})

	assert.NoError(t, w.WaitForEnabled(context.Background(), "#save", 30*time.Millisecond))
	assert.NoError(t, w.WaitForChecked(context.Background(), "#agree", 30*time.Millisecond))
}

func TestWaitForTextContains(t *testing.T) {
	w, d := newTestWaiter()
	toast := &memory.Element{Tag: "div", Text: "Saving..."}
	d.Set("//div[@role=\"alert\"]", toast)

	timer := time.AfterFunc(20*time.Millisecond, func() {
		d.Mutate(func() { toast.Text = "Saved successfully" })
	})
	defer timer.Stop()

	require.NoError(t, w.WaitForTextContains(context.Background(), "//div[@role=\"alert\"]", "Saved", 500*time.Millisecond))
}

func TestWaitForCountAndURL(t *testing.T) {
	w, d := newTestWaiter()
	d.Set("//table//tr[td]", &memory.Element{Tag: "tr"}, &memory.Element{Tag: "tr"})

	assert.NoError(t, w.WaitForCount(context.Background(), "//table//tr[td]", 2, 30*time.Millisecond))
	assert.Error(t, w.WaitForCount(context.Background(), "//table//tr[td]", 3, 30*time.Millisecond))

	require.NoError(t, d.Navigate(context.Background(), "http://app.local/users?page=2"))
	assert.NoError(t, w.WaitForURLContains(context.Background(), "/users", 30*time.Millisecond))
	assert.Error(t, w.WaitForURLContains(context.Background(), "/dashboard", 30*time.Millisecond))
}

func TestWaiterPollUntil(t *testing.T) {
	w, _ := newTestWaiter()
	n := 0

	err := w.PollUntil(context.Background(), "counter reaches 2", func(context.Context) (bool, error) {
		n++
		return n >= 2, nil
	}, 200*time.Millisecond, 5*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
