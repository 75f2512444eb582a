package entity

import (
	"slices"
	"strings"
)

// ElementState is a point-in-time snapshot of one element matched by a locator.
type ElementState struct {
	Tag           string            `json:"tag"`
	Text          string            `json:"text"`
	Value         string            `json:"value"`
	Attributes    map[string]string `json:"attributes"`
	Classes       []string          `json:"classes"`
	Visible       bool              `json:"visible"`
	Enabled       bool              `json:"enabled"`
	Checked       bool              `json:"checked"`
	PointerEvents string            `json:"pointerEvents"`
	InViewport    bool              `json:"inViewport"`
}

func (s ElementState) Attr(name string) string {
	if s.Attributes == nil {
		return ""
	}
	return s.Attributes[name]
}

// HasClass matches whole class tokens, so "collapsed" does not match "sidebar-collapsed".
func (s ElementState) HasClass(class string) bool {
	return slices.Contains(s.Classes, class)
}

// Interactable reports whether a click would land on the element.
func (s ElementState) Interactable() bool {
	return s.Visible && s.Enabled && s.PointerEvents != "none"
}

func (s ElementState) TrimmedText() string {
	return strings.TrimSpace(s.Text)
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

type ClickOptions struct {
	Count int
	Force bool
}
