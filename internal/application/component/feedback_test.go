package component

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/domain/entity"
	"browser-pom/internal/domain/locator"
	"browser-pom/internal/infrastructure/browser/memory"
)

func TestFeedback_WaitForLoadingToDisappear(t *testing.T) {
	in, d, cat := newTestKit()
	f := NewFeedback(in, cat.Common)
	ctx := context.Background()

	require.NoError(t, f.WaitForLoadingToDisappear(ctx, 50*time.Millisecond), "no spinner counts as gone")

	spinner := &memory.Element{Tag: "div"}
	d.Set(cat.Common.LoadingSpinner, spinner)
	go func() {
		time.Sleep(30 * time.Millisecond)
		d.Mutate(func() { spinner.Hidden = true })
	}()
	require.NoError(t, f.WaitForLoadingToDisappear(ctx, time.Second))
}

func TestFeedback_LoadingSpinnerStuck(t *testing.T) {
	in, d, cat := newTestKit()
	f := NewFeedback(in, cat.Common)
	d.Set(cat.Common.LoadingSpinner, &memory.Element{Tag: "div"})

	err := f.WaitForLoadingToDisappear(context.Background(), 30*time.Millisecond)
	assert.ErrorIs(t, err, entity.ErrWaitTimeout)
}

func TestFeedback_WaitForToast(t *testing.T) {
	in, d, cat := newTestKit()
	f := NewFeedback(in, cat.Common)
	ctx := context.Background()

	d.Set(locator.MustBuild(cat.Common.ToastWithText, "User saved"), &memory.Element{Tag: "div", Text: "User saved"})
	require.NoError(t, f.WaitForToast(ctx, "User saved", 50*time.Millisecond))

	err := f.WaitForToast(ctx, "", 30*time.Millisecond)
	assert.ErrorIs(t, err, entity.ErrElementNotFound)

	d.Set(cat.Common.Toast, &memory.Element{Tag: "div"})
	require.NoError(t, f.WaitForToast(ctx, "", 50*time.Millisecond))
}

func TestFeedback_Alerts(t *testing.T) {
	in, d, cat := newTestKit()
	f := NewFeedback(in, cat.Common)
	ctx := context.Background()

	assert.False(t, f.IsErrorAlertVisible(ctx))
	assert.False(t, f.IsSuccessAlertVisible(ctx))

	d.Set(cat.Common.ErrorAlert, &memory.Element{Tag: "div"})
	d.Set(cat.Common.SuccessAlert, &memory.Element{Tag: "div", Hidden: true})
	assert.True(t, f.IsErrorAlertVisible(ctx))
	assert.False(t, f.IsSuccessAlertVisible(ctx))
}

func TestFeedback_Table(t *testing.T) {
	in, d, cat := newTestKit()
	f := NewFeedback(in, cat.Common)
	ctx := context.Background()

	assert.False(t, f.IsTableVisible(ctx))
	assert.Error(t, f.WaitForTable(ctx, 30*time.Millisecond))

	table := &memory.Element{Tag: "table", Hidden: true}
	d.Set(cat.Common.Table, table)
	go func() {
		time.Sleep(20 * time.Millisecond)
		d.Mutate(func() { table.Hidden = false })
	}()
	require.NoError(t, f.WaitForTable(ctx, time.Second))
	assert.True(t, f.IsTableVisible(ctx))
}

func TestHeader(t *testing.T) {
	in, d, cat := newTestKit()
	h := NewHeader(in, cat.Common)
	ctx := context.Background()

	assert.False(t, h.IsVisible(ctx))
	assert.False(t, h.IsFooterVisible(ctx))
	assert.Error(t, h.ClickLogo(ctx))

	d.Set(cat.Common.Header, &memory.Element{Tag: "header"})
	d.Set(cat.Common.Logo, &memory.Element{Tag: "img"})
	d.Set(cat.Common.Footer, &memory.Element{Tag: "footer"})
	assert.True(t, h.IsVisible(ctx))
	assert.True(t, h.IsFooterVisible(ctx))
	require.NoError(t, h.ClickLogo(ctx))
}
