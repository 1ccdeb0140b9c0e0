package calculator

import (
	"slices"
	"strings"

	"github.com/limchang/cafe-test/internal/models"
)

// MemoRef attributes one memo phrase to the person who asked for it.
type MemoRef struct {
	Memo     string `json:"memo"`
	Avatar   string `json:"avatar"`
	PersonID string `json:"personId"`
	GroupID  string `json:"groupId"`
}

// Line is one distinct (item, temperature, size) total across all tables.
type Line struct {
	Type            models.ItemType    `json:"type"`
	ItemName        string             `json:"itemName"`
	Temperature     models.Temperature `json:"temperature,omitempty"`
	Size            models.DrinkSize   `json:"size,omitempty"`
	Count           int                `json:"count"`
	IndividualMemos []MemoRef          `json:"individualMemos"`
}

// Summary is the aggregated view of a whole order.
type Summary struct {
	Lines      []Line `json:"lines"`
	TotalCount int    `json:"totalCount"`
}

type lineKey struct {
	typ  models.ItemType
	temp models.Temperature
	size models.DrinkSize
	name string
}

// Aggregate folds every sub-item of every table into per-item totals.
// Shared slots are included. Undecided and not-eating sentinels are skipped.
//
// Drinks are grouped by temperature and name, plus size when showDrinkSize
// is set; everything else is grouped by name alone. Lines are ordered drinks
// first, then by item name. The input is not modified.
func Aggregate(groups []models.Group, showDrinkSize bool) Summary {
	index := make(map[lineKey]int)
	var lines []Line

	for _, g := range groups {
		for _, p := range g.Items {
			avatar := p.Avatar
			if avatar == "" {
				avatar = models.PlaceholderAvatar
			}
			for _, si := range p.SubItems {
				name := strings.TrimSpace(si.ItemName)
				if name == "" || models.IsSentinelItem(si.ItemName) || models.IsSentinelItem(name) {
					continue
				}

				key := lineKey{typ: models.ItemTypeDessert, name: name}
				var size models.DrinkSize
				if si.Type == models.ItemTypeDrink {
					if showDrinkSize {
						size = si.Size
						if size == "" {
							size = models.SizeTall
						}
					}
					key = lineKey{typ: models.ItemTypeDrink, temp: si.Temperature, size: size, name: name}
				}

				i, ok := index[key]
				if !ok {
					line := Line{Type: si.Type, ItemName: name, IndividualMemos: []MemoRef{}}
					if si.Type == models.ItemTypeDrink {
						line.Temperature = si.Temperature
						line.Size = size
					}
					lines = append(lines, line)
					i = len(lines) - 1
					index[key] = i
				}

				lines[i].Count += si.Qty()
				for _, memo := range SplitMemo(si.Memo) {
					lines[i].IndividualMemos = append(lines[i].IndividualMemos, MemoRef{
						Memo:     memo,
						Avatar:   avatar,
						PersonID: p.ID,
						GroupID:  g.ID,
					})
				}
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b Line) int {
		ad, bd := a.Type == models.ItemTypeDrink, b.Type == models.ItemTypeDrink
		if ad != bd {
			if ad {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ItemName, b.ItemName)
	})

	total := 0
	for _, l := range lines {
		total += l.Count
	}
	if lines == nil {
		lines = []Line{}
	}
	return Summary{Lines: lines, TotalCount: total}
}

// SplitMemo splits a comma-joined memo into trimmed, non-empty phrases.
func SplitMemo(memo string) []string {
	if memo == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(memo, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JoinMemo is the inverse of SplitMemo.
func JoinMemo(phrases []string) string {
	return strings.Join(phrases, ", ")
}

// MemoGroup collects the records of one memo phrase on a line.
type MemoGroup struct {
	Memo string `json:"memo"`

	// People has one entry per person, for avatar chips.
	People []MemoRef `json:"people"`

	// Refs keeps every record, for jump-to-person navigation.
	Refs []MemoRef `json:"refs"`
}

// GroupMemos groups a line's memo records by identical phrase text,
// in order of first appearance.
func GroupMemos(line Line) []MemoGroup {
	var groups []MemoGroup
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, ref := range line.IndividualMemos {
		i, ok := index[ref.Memo]
		if !ok {
			groups = append(groups, MemoGroup{Memo: ref.Memo})
			i = len(groups) - 1
			index[ref.Memo] = i
			seen[ref.Memo] = make(map[string]bool)
		}
		groups[i].Refs = append(groups[i].Refs, ref)
		if !seen[ref.Memo][ref.PersonID] {
			seen[ref.Memo][ref.PersonID] = true
			groups[i].People = append(groups[i].People, ref)
		}
	}
	return groups
}
