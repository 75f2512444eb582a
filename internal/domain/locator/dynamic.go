package locator

import (
	"fmt"
	"sort"
	"strings"
)

func ExactText(text string) string {
	return fmt.Sprintf(`//*/text()[normalize-space(.)="%s"]/parent::*`, text)
}

func ContainsText(text string) string {
	return fmt.Sprintf(`//*[contains(text(), "%s")]`, text)
}

func Button(text string) string {
	return fmt.Sprintf(`//button[contains(., "%s") or contains(@value, "%s")]`, text, text)
}

func Link(text string) string {
	return fmt.Sprintf(`//a[contains(., "%s")]`, text)
}

func InputByLabel(label string) string {
	return fmt.Sprintf(`//label[contains(text(), "%s")]/following::input[1]`, label)
}

func InputByPlaceholder(placeholder string) string {
	return fmt.Sprintf(`//input[@placeholder="%s"]`, placeholder)
}

func DropdownByLabel(label string) string {
	return fmt.Sprintf(`//label[contains(text(), "%s")]/following::select[1]`, label)
}

func DropdownOption(text string) string {
	return fmt.Sprintf(`//option[contains(text(), "%s")]`, text)
}

func CheckboxByLabel(label string) string {
	return inputNearLabel(label, "checkbox")
}

func RadioByLabel(label string) string {
	return inputNearLabel(label, "radio")
}

func inputNearLabel(label, typ string) string {
	return fmt.Sprintf(`//label[contains(text(), "%[1]s")]/preceding::input[@type="%[2]s"][1] | //label[contains(text(), "%[1]s")]/following::input[@type="%[2]s"][1]`, label, typ)
}

// TableCell addresses a 1-based row/column cell of the table with the given id.
func TableCell(tableID string, row, column int) string {
	return fmt.Sprintf(`//table[@id="%s"]//tr[%d]/td[%d]`, tableID, row, column)
}

func TableRowWithText(tableID, text string) string {
	return fmt.Sprintf(`//table[@id="%s"]//tr[contains(., "%s")]`, tableID, text)
}

func ByAttribute(tag, attribute, value string) string {
	return fmt.Sprintf(`//%s[@%s="%s"]`, tag, attribute, value)
}

// ByAttributes joins attribute conditions in key order so the result is stable.
func ByAttributes(tag string, attributes map[string]string) string {
	if len(attributes) == 0 {
		return "//" + tag
	}
	return fmt.Sprintf("//%s[%s]", tag, conditions(attributes))
}

func Child(parent, childTag string, attributes map[string]string) string {
	if len(attributes) == 0 {
		return fmt.Sprintf("%s//%s", parent, childTag)
	}
	return fmt.Sprintf("%s//%s[%s]", parent, childTag, conditions(attributes))
}

func conditions(attributes map[string]string) string {
	keys := make([]string, 0, len(attributes))
	for k := range attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf(`@%s="%s"`, k, attributes[k]))
	}
	return strings.Join(parts, " and ")
}

func NextSibling(selector, siblingTag string) string {
	return fmt.Sprintf("%s/following-sibling::%s[1]", selector, siblingTag)
}

func PreviousSibling(selector, siblingTag string) string {
	return fmt.Sprintf("%s/preceding-sibling::%s[1]", selector, siblingTag)
}

func Parent(selector, parentTag string) string {
	if parentTag == "" {
		parentTag = "*"
	}
	return fmt.Sprintf("%s/parent::%s", selector, parentTag)
}

func ByPosition(tag string, position int) string {
	return fmt.Sprintf("//%s[%d]", tag, position)
}

func ByClass(tag, className string) string {
	return fmt.Sprintf(`//%s[contains(@class, "%s")]`, tag, className)
}

func ByID(tag, id string) string {
	return fmt.Sprintf(`//%s[@id="%s"]`, tag, id)
}

func ByName(tag, name string) string {
	return fmt.Sprintf(`//%s[@name="%s"]`, tag, name)
}

func CSSByID(id string) string {
	return "#" + id
}

func CSSByClass(className string) string {
	return "." + className
}

func CSSByAttribute(attribute, value string) string {
	return fmt.Sprintf(`[%s="%s"]`, attribute, value)
}

// Factory variants: bind the base once, parameterize per call site.

func WithText(base string) func(text string) string {
	return func(text string) string {
		return fmt.Sprintf("%s[contains(text(), '%s')]", base, text)
	}
}

func WithAttribute(base, attribute string) func(value string) string {
	return func(value string) string {
		return fmt.Sprintf("%s[@%s='%s']", base, attribute, value)
	}
}

func WithClass(base string) func(className string) string {
	return func(className string) string {
		return fmt.Sprintf("%s[contains(@class, '%s')]", base, className)
	}
}

func WithID(base string) func(id string) string {
	return func(id string) string {
		return fmt.Sprintf("%s[@id='%s']", base, id)
	}
}

// NthOf returns a 1-based positional accessor over base.
func NthOf(base string) func(position int) string {
	return func(position int) string {
		return fmt.Sprintf("(%s)[%d]", base, position)
	}
}
