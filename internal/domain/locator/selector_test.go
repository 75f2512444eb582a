package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsXPath(t *testing.T) {
	assert.True(t, IsXPath(`//div`))
	assert.True(t, IsXPath(`(//div)[2]`))
	assert.True(t, IsXPath(`xpath=//div`))
	assert.False(t, IsXPath(`div.main`))
	assert.False(t, IsXPath(`#id`))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, `xpath=//div`, Normalize(`//div`))
	assert.Equal(t, `xpath=//div`, Normalize(`xpath=//div`))
	assert.Equal(t, `input[name="email"]`, Normalize(`input[name="email"]`))
}

func TestNth(t *testing.T) {
	assert.Equal(t, `(//*[@role="tab"])[1]`, Nth(`//*[@role="tab"]`, 0))
	assert.Equal(t, `(//li)[3]`, Nth(`xpath=//li`, 2))
}

func TestDynamicHelpers(t *testing.T) {
	assert.Equal(t, `//button[contains(., "Save") or contains(@value, "Save")]`, Button("Save"))
	assert.Equal(t, `//table[@id="users"]//tr[2]/td[5]`, TableCell("users", 2, 5))
	assert.Equal(t, `//input[@name="q" and @type="text"]`, ByAttributes("input", map[string]string{"type": "text", "name": "q"}))
	assert.Equal(t, `//div`, ByAttributes("div", nil))
	assert.Equal(t, `//form//input[@type="submit"]`, Child("//form", "input", map[string]string{"type": "submit"}))
	assert.Equal(t, `//td/parent::*`, Parent("//td", ""))
	assert.Equal(t, `#main`, CSSByID("main"))
	assert.Equal(t, `[data-test="x"]`, CSSByAttribute("data-test", "x"))
}

func TestFactoryHelpers(t *testing.T) {
	assert.Equal(t, `//span[contains(text(), 'Users')]`, WithText("//span")("Users"))
	assert.Equal(t, `//input[@name='email']`, WithAttribute("//input", "name")("email"))
	assert.Equal(t, `(//li)[4]`, NthOf("//li")(4))
}
