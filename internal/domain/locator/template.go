// Package locator builds element locator strings from ordinal templates such as
// `//button[contains(., "{0}")]`.
package locator

import (
	"fmt"
	"regexp"
	"strconv"

	"browser-pom/internal/domain/entity"
)

var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

// Template is a locator containing ordinal placeholders {0}, {1}, ...
type Template string

// Func resolves a compiled template against positional arguments.
type Func func(args ...any) string

// Build substitutes every {i} with the i-th argument. Placeholders without a matching
// argument resolve to the empty string. Substitution is a single pass, so argument
// values are never re-scanned for placeholders.
func Build(template string, args ...any) (string, error) {
	if template == "" {
		return "", entity.ErrInvalidTemplate
	}
	return substitute(template, args), nil
}

// MustBuild is Build for templates known at compile time.
func MustBuild(template string, args ...any) string {
	s, err := Build(template, args...)
	if err != nil {
		panic(fmt.Sprintf("locator: %v", err))
	}
	return s
}

// Compile returns a reusable locator function for template.
func Compile(template string) (Func, error) {
	if template == "" {
		return nil, entity.ErrInvalidTemplate
	}
	return func(args ...any) string {
		return substitute(template, args)
	}, nil
}

func (t Template) Format(args ...any) string {
	return MustBuild(string(t), args...)
}

func (t Template) Func() Func {
	f, err := Compile(string(t))
	if err != nil {
		panic(fmt.Sprintf("locator: %v", err))
	}
	return f
}

// Placeholders returns the distinct ordinal indexes used by template, in first-use order.
func Placeholders(template string) []int {
	var out []int
	seen := make(map[int]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func substitute(template string, args []any) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		n, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || n >= len(args) || args[n] == nil {
			return ""
		}
		return fmt.Sprint(args[n])
	})
}
