package order

import (
	"slices"
	"strings"
	"sync"

	"github.com/limchang/cafe-test/internal/models"
)

// DefaultDrinks is the initial drink list. The undecided sentinel is
// always first.
var DefaultDrinks = []string{models.UndecidedItem, "아메리카노", "카페라떼", "카라멜마끼아또", "복숭아 아이스티"}

// DefaultDesserts is the initial dessert list.
var DefaultDesserts = []string{"케이크", "스콘", "크로와상", "마카롱"}

// Menu is the ordered catalog of drink and dessert names.
type Menu struct {
	mu       sync.Mutex
	drinks   []string
	desserts []string
}

// NewMenu creates a menu with the default lists.
func NewMenu() *Menu {
	return &Menu{
		drinks:   slices.Clone(DefaultDrinks),
		desserts: slices.Clone(DefaultDesserts),
	}
}

// MenuLists is a copy of both lists.
type MenuLists struct {
	Drinks   []string `json:"drinks"`
	Desserts []string `json:"desserts"`
}

// Lists returns a copy of both lists.
func (m *Menu) Lists() MenuLists {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MenuLists{Drinks: slices.Clone(m.drinks), Desserts: slices.Clone(m.desserts)}
}

// Items returns a copy of the list for t. PENDING has no list.
func (m *Menu) Items(t models.ItemType) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l := m.list(t); l != nil {
		return slices.Clone(*l)
	}
	return nil
}

// Add appends name to the list for t unless it is blank, a sentinel or
// already present. It reports whether the list changed.
func (m *Menu) Add(name string, t models.ItemType) bool {
	name = strings.TrimSpace(name)
	if name == "" || models.IsSentinelItem(name) {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.list(t)
	if l == nil || slices.Contains(*l, name) {
		return false
	}
	*l = append(slices.Clone(*l), name)
	return true
}

// Remove deletes name from the list for t. The undecided sentinel stays.
func (m *Menu) Remove(name string, t models.ItemType) bool {
	if name == models.UndecidedItem {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.list(t)
	if l == nil {
		return false
	}
	i := slices.Index(*l, name)
	if i < 0 {
		return false
	}
	*l = slices.Delete(slices.Clone(*l), i, i+1)
	return true
}

// SetList replaces the list for t with names, dropping blanks and
// duplicates. The drink list always starts with the undecided sentinel.
func (m *Menu) SetList(t models.ItemType, names []string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.list(t)
	if l == nil {
		return false
	}

	var out []string
	if t == models.ItemTypeDrink {
		out = append(out, models.UndecidedItem)
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(out, n) || n == models.NotEatingItem {
			continue
		}
		out = append(out, n)
	}
	*l = out
	return true
}

// Move moves the item at index from to index to. The undecided sentinel
// cannot be moved and nothing can be moved in front of it.
func (m *Menu) Move(t models.ItemType, from, to int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.list(t)
	if l == nil {
		return false
	}
	items := *l
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return false
	}
	if t == models.ItemTypeDrink && (from == 0 || to == 0) {
		return false
	}

	out := slices.Clone(items)
	name := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, name)
	*l = out
	return true
}

// Search returns the items of t whose name contains query, ignoring case.
func (m *Menu) Search(t models.ItemType, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []string
	for _, item := range m.Items(t) {
		if strings.Contains(strings.ToLower(item), q) {
			out = append(out, item)
		}
	}
	return out
}

// QuickPicks returns up to n concrete drinks for the one-tap buttons.
// Pinned drinks come first, in menu order, followed by the rest.
func (m *Menu) QuickPicks(n int, pinned []string) []string {
	var first, rest []string
	for _, d := range m.Items(models.ItemTypeDrink) {
		if models.IsSentinelItem(d) {
			continue
		}
		if slices.Contains(pinned, d) {
			first = append(first, d)
		} else {
			rest = append(rest, d)
		}
	}
	out := append(first, rest...)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (m *Menu) list(t models.ItemType) *[]string {
	switch t {
	case models.ItemTypeDrink:
		return &m.drinks
	case models.ItemTypeDessert:
		return &m.desserts
	}
	return nil
}
