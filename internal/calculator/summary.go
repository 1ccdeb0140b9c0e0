package calculator

import (
	"fmt"
	"strings"

	"github.com/limchang/cafe-test/internal/models"
)

// AllSummaryText renders aggregated lines as copyable text, one per line:
//
//	[ICE] 아메리카노: 3개
//	케이크: 1개
func AllSummaryText(lines []Line) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		t := l.ItemName
		if l.Type == models.ItemTypeDrink {
			t = fmt.Sprintf("[%s] %s", l.Temperature, t)
			if l.Size != "" {
				t += " (" + string(l.Size) + ")"
			}
		}
		out = append(out, fmt.Sprintf("%s: %d개", t, l.Count))
	}
	return strings.Join(out, "\n")
}

// TableSummaryText renders the order per table, skipping tables without
// concrete items:
//
//	1번 테이블: [HOT] 카페라떼 x2, 케이크
func TableSummaryText(groups []models.Group) string {
	var rows []string
	for _, g := range groups {
		var texts []string
		for _, p := range g.Items {
			for _, si := range p.SubItems {
				if models.IsSentinelItem(si.ItemName) || strings.TrimSpace(si.ItemName) == "" {
					continue
				}
				t := si.ItemName
				if si.Type == models.ItemTypeDrink {
					t = fmt.Sprintf("[%s] %s", si.Temperature, t)
				}
				if si.Quantity > 1 {
					t += fmt.Sprintf(" x%d", si.Quantity)
				}
				texts = append(texts, t)
			}
		}
		if len(texts) > 0 {
			rows = append(rows, g.Name+": "+strings.Join(texts, ", "))
		}
	}
	return strings.Join(rows, "\n")
}

// SummaryMode selects which text is stored with a history entry.
type SummaryMode string

const (
	ModeAll   SummaryMode = "all"
	ModeTable SummaryMode = "table"
)

// SummaryText renders groups in the given mode. Unknown modes fall back to
// the aggregated text.
func SummaryText(mode SummaryMode, groups []models.Group, showDrinkSize bool) string {
	if mode == ModeTable {
		return TableSummaryText(groups)
	}
	return AllSummaryText(Aggregate(groups, showDrinkSize).Lines)
}
