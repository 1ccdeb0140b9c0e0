package calculator

import "github.com/limchang/cafe-test/internal/models"

// PersonRef points at one seat of the order.
type PersonRef struct {
	PersonID string `json:"personId"`
	GroupID  string `json:"groupId"`
	Avatar   string `json:"avatar"`
}

// Headcount summarizes how far the table order has progressed.
type Headcount struct {
	Total     int         `json:"total"`
	Decided   int         `json:"decided"`
	Undecided []PersonRef `json:"undecided"`
	NotEating []PersonRef `json:"notEating"`
}

// AllDecided reports whether at least one person is seated and nobody is
// still choosing.
func (h Headcount) AllDecided() bool {
	return h.Total > 0 && len(h.Undecided) == 0
}

// CountPeople computes the headcount of groups.
//
// Algorithm:
// - Shared slots are not people and are skipped entirely
// - Seats without an avatar and seats with only undecided items are undecided
// - Not-eating seats count as decided and are also listed separately
// - Decided = total - undecided
func CountPeople(groups []models.Group) Headcount {
	h := Headcount{Undecided: []PersonRef{}, NotEating: []PersonRef{}}
	for _, g := range groups {
		for _, p := range g.Items {
			status := models.Classify(p)
			if status == models.StatusShared {
				continue
			}
			h.Total++

			ref := PersonRef{PersonID: p.ID, GroupID: g.ID, Avatar: p.Avatar}
			switch status {
			case models.StatusAwaitingAvatar, models.StatusUndecided:
				h.Undecided = append(h.Undecided, ref)
			case models.StatusNotEating:
				h.NotEating = append(h.NotEating, ref)
			}
		}
	}
	h.Decided = h.Total - len(h.Undecided)
	return h
}

// HasUndecided reports whether a table has a seated person who has not
// chosen yet. Seats still waiting for an avatar do not count here.
func HasUndecided(g models.Group) bool {
	for _, p := range g.Items {
		if models.Classify(p) == models.StatusUndecided {
			return true
		}
	}
	return false
}
