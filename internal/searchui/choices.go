package searchui

import (
	"slices"
	"strings"
)

// Choices is one selection widget: its options and the current selection.
type Choices struct {
	Options  []string
	Selected string
}

// Set replaces the options and clears the selection.
func (c *Choices) Set(options []string) {
	c.Options = slices.Clone(options)
	c.Selected = ""
}

// Clear removes every option and the selection.
func (c *Choices) Clear() {
	c.Options = nil
	c.Selected = ""
}

// Has reports whether v is one of the options.
func (c Choices) Has(v string) bool {
	return slices.Contains(c.Options, v)
}

// Select makes v the selection when it is one of the options. An empty v
// clears the selection.
func (c *Choices) Select(v string) {
	v = strings.TrimSpace(v)
	if v != "" && !c.Has(v) {
		return
	}
	c.Selected = v
}

func (c Choices) clone() Choices {
	return Choices{Options: slices.Clone(c.Options), Selected: c.Selected}
}
