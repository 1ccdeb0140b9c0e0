package models

import (
	"regexp"
	"strconv"
	"strings"
)

var tableNumberRe = regexp.MustCompile(`\d+`)

// Group represents one table of the live order.
// A new table starts with four empty seats followed by the shared slot.
type Group struct {
	// ID is the unique identifier for the table (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g., "3번 테이블").
	// The leading number is used for default naming and history titles.
	Name string `json:"name"`

	// Items are the seats of the table in display order.
	// The shared slot, when present, is conventionally last.
	Items []Person `json:"items"`

	// Collapsed is the fold state of the table card.
	Collapsed bool `json:"isCollapsed,omitempty"`
}

// SharedSlot returns the index of the table's shared slot, or -1.
func (g Group) SharedSlot() int {
	for i, p := range g.Items {
		if p.IsShared() {
			return i
		}
	}
	return -1
}

// HasOrders reports whether any seat of the table holds a sub-item.
func (g Group) HasOrders() bool {
	for _, p := range g.Items {
		if len(p.SubItems) > 0 {
			return true
		}
	}
	return false
}

// Number returns the first run of digits in the table name as an integer.
func (g Group) Number() (int, bool) {
	m := tableNumberRe.FindString(g.Name)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Label returns the short table label used in titles: the first run of
// digits in the name, otherwise its first non-blank character.
func (g Group) Label() string {
	name := strings.TrimSpace(g.Name)
	if m := tableNumberRe.FindString(name); m != "" {
		return m
	}
	for _, r := range name {
		return string(r)
	}
	return ""
}

// CloneSubItems returns a deep copy of items.
// A nil input stays nil so JSON output is unchanged.
func CloneSubItems(items []SubItem) []SubItem {
	if items == nil {
		return nil
	}
	out := make([]SubItem, len(items))
	copy(out, items)
	return out
}

// ClonePerson returns a deep copy of p.
func ClonePerson(p Person) Person {
	p.SubItems = CloneSubItems(p.SubItems)
	return p
}

// CloneGroup returns a deep copy of g.
func CloneGroup(g Group) Group {
	if g.Items != nil {
		items := make([]Person, len(g.Items))
		for i, p := range g.Items {
			items[i] = ClonePerson(p)
		}
		g.Items = items
	}
	return g
}

// CloneGroups returns a deep copy of groups.
func CloneGroups(groups []Group) []Group {
	if groups == nil {
		return nil
	}
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = CloneGroup(g)
	}
	return out
}
