package interaction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"browser-pom/internal/infrastructure/browser/memory"
)

func TestQueries_SafeDefaultsWhenMissing(t *testing.T) {
	ctx := context.Background()
	in, _ := newTestInteractor(Config{})

	assert.Equal(t, "", in.GetText(ctx, "#missing"))
	assert.Equal(t, "", in.InputValue(ctx, "#missing"))
	assert.Equal(t, "", in.GetAttribute(ctx, "#missing", "href"))
	assert.False(t, in.HasClass(ctx, "#missing", "active"))
	assert.False(t, in.IsVisible(ctx, "#missing"))
	assert.True(t, in.IsNotVisible(ctx, "#missing"))
	assert.False(t, in.IsDisabled(ctx, "#missing"))
	assert.False(t, in.IsChecked(ctx, "#missing"))
	assert.False(t, in.Exists(ctx, "#missing"))
	assert.Zero(t, in.Count(ctx, "#missing"))
	assert.Empty(t, in.Texts(ctx, "#missing"))
}

func TestQueries_ReadState(t *testing.T) {
	ctx := context.Background()
	in, d := newTestInteractor(Config{})
	d.Set("#title", &memory.Element{Tag: "h1", Text: "  Users  "})
	d.Set("#email", &memory.Element{Tag: "input", Text: "", Value: "a@b.c"})
	d.Set("#link", &memory.Element{
		Tag:        "a",
		Attributes: map[string]string{"href": "/users"},
		Classes:    []string{"nav", "active"},
	})
	d.Set("#next", &memory.Element{Tag: "button", Disabled: true})
	d.Set("#agree", &memory.Element{Tag: "input", Checked: true})
	d.Set("#gone", &memory.Element{Tag: "div", Hidden: true})

	assert.Equal(t, "Users", in.GetText(ctx, "#title"))
	assert.Equal(t, "  Users  ", in.GetText(ctx, "#title", TextOptions{NoTrim: true}))
	assert.Equal(t, "a@b.c", in.GetText(ctx, "#email", TextOptions{PreferValue: true}))
	assert.Equal(t, "/users", in.GetAttribute(ctx, "#link", "href"))
	assert.True(t, in.HasClass(ctx, "#link", "active"))
	assert.False(t, in.HasClass(ctx, "#link", "act"))
	assert.True(t, in.IsVisible(ctx, "#title"))
	assert.True(t, in.IsNotVisible(ctx, "#gone"))
	assert.True(t, in.IsDisabled(ctx, "#next"))
	assert.True(t, in.IsChecked(ctx, "#agree"))
}

func TestTextsAndCount(t *testing.T) {
	ctx := context.Background()
	in, d := newTestInteractor(Config{})
	d.Set("//li", &memory.Element{Tag: "li", Text: " 5 "}, &memory.Element{Tag: "li", Text: "10"}, &memory.Element{Tag: "li", Text: "25"})

	assert.Equal(t, 3, in.Count(ctx, "//li"))
	assert.Equal(t, []string{"5", "10", "25"}, in.Texts(ctx, "//li"))
	assert.Equal(t, "10", in.GetText(ctx, "(//li)[2]"))
}

func TestDropdownHelpers(t *testing.T) {
	ctx := context.Background()
	in, d := newTestInteractor(Config{})
	d.Set("#rows", &memory.Element{Tag: "div"})
	d.Set("//li[@role=\"option\"]",
		&memory.Element{Tag: "li", Text: "5"},
		&memory.Element{Tag: "li", Text: "10"},
		&memory.Element{Tag: "li", Text: "25"},
	)

	values, err := in.DropdownValues(ctx, "#rows", "//li[@role=\"option\"]")
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "10", "25"}, values)

	picked, err := in.SelectDropdownByIndex(ctx, "#rows", "//li[@role=\"option\"]", 1)
	require.NoError(t, err)
	assert.Equal(t, "10", picked)
	clicks := d.ActionsOf("click")
	assert.Equal(t, "(//li[@role=\"option\"])[2]", clicks[len(clicks)-1].Selector)

	_, err = in.SelectDropdownByIndex(ctx, "#rows", "//li[@role=\"option\"]", 3)
	assert.Error(t, err)

	random, err := in.SelectRandomDropdownValue(ctx, "#rows", "//li[@role=\"option\"]")
	require.NoError(t, err)
	assert.Contains(t, values, random)

	_, err = in.SelectDropdownByIndex(ctx, "#rows", "li.option", 0)
	assert.Error(t, err)
}

func TestDropdownValues_Empty(t *testing.T) {
	in, d := newTestInteractor(Config{})
	d.Set("#rows", &memory.Element{Tag: "div"})

	_, err := in.DropdownValues(context.Background(), "#rows", "//li[@role=\"option\"]")
	assert.Error(t, err)
}
