package order

import (
	"github.com/limchang/cafe-test/internal/calculator"
	"github.com/limchang/cafe-test/internal/models"
)

// View is a consistent, deep-copied picture of the board.
type View struct {
	Groups        []models.Group                 `json:"groups"`
	ActiveGroupID string                         `json:"activeGroupId,omitempty"`
	Sync          SyncState                      `json:"sync"`
	CanUndo       bool                           `json:"canUndo"`
	Notice        *Notice                        `json:"notice,omitempty"`
	HighlightedID string                         `json:"highlightedPersonId,omitempty"`
	Statuses      map[string]models.PersonStatus `json:"statuses"`
	Version       uint64                         `json:"version"`

	// UndecidedTables holds the ids of tables where someone seated has not
	// chosen yet.
	UndecidedTables map[string]bool `json:"undecidedTables"`
}

// Snapshot returns the current view of the board.
func (b *Board) Snapshot() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := View{
		Groups:        models.CloneGroups(b.groups),
		ActiveGroupID: b.activeGroup,
		Sync:          b.sync.export(),
		CanUndo:       b.hasUndo,
		HighlightedID: b.spotted,
		Statuses:      make(map[string]models.PersonStatus),
		Version:       b.version,

		UndecidedTables: make(map[string]bool),
	}
	if v.Groups == nil {
		v.Groups = []models.Group{}
	}
	if b.notice != nil {
		n := *b.notice
		v.Notice = &n
	}
	for _, g := range b.groups {
		if calculator.HasUndecided(g) {
			v.UndecidedTables[g.ID] = true
		}
		for _, p := range g.Items {
			v.Statuses[p.ID] = models.Classify(p)
		}
	}
	return v
}
