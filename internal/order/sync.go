package order

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/limchang/cafe-test/internal/models"
)

// ErrNotSharedSlot is returned when sync is toggled from a regular seat.
var ErrNotSharedSlot = errors.New("sync can only be toggled from a shared slot")

// syncState mirrors one table's shared slot into every other table's
// shared slot while active.
type syncState struct {
	active         bool
	sourcePersonID string
	sourceGroupID  string
}

// SyncState describes shared-menu sync for readers.
type SyncState struct {
	Active         bool   `json:"active"`
	SourcePersonID string `json:"sourcePersonId,omitempty"`
	SourceGroupID  string `json:"sourceGroupId,omitempty"`
}

// SyncState returns the current shared-menu sync state.
func (b *Board) SyncState() SyncState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sync.export()
}

func (s syncState) export() SyncState {
	return SyncState{Active: s.active, SourcePersonID: s.sourcePersonID, SourceGroupID: s.sourceGroupID}
}

// ToggleSharedSync turns sync off when it is on, whatever id is given.
// Otherwise it makes the given shared slot the source and merges its selections into every other
// shared slot. It returns whether sync is now active.
func (b *Board) ToggleSharedSync(personID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sync.active {
		b.sync = syncState{}
		b.noticeLocked("공유 메뉴 동기화를 껐습니다")
		slog.Info("Shared sync deactivated", "person_id", personID)
		return false, nil
	}

	gi, pi, ok := b.findPerson(personID)
	if !ok {
		return false, nil
	}
	source := b.groups[gi].Items[pi]
	if !source.IsShared() {
		return false, ErrNotSharedSlot
	}

	b.sync = syncState{active: true, sourcePersonID: source.ID, sourceGroupID: b.groups[gi].ID}

	items := markSynced(source.SubItems)
	groups := slices.Clone(b.groups)
	for i := range groups {
		si := groups[i].SharedSlot()
		if si < 0 {
			continue
		}
		if i == gi && si == pi {
			replaceSubItems(groups, i, si, items)
			continue
		}
		mirror := mergeMirror(groups[i].Items[si].SubItems, items, false, b.newID)
		replaceSubItems(groups, i, si, mirror)
	}
	b.groups = groups
	b.touch()

	b.noticeLocked("공유 메뉴 동기화를 켰습니다")
	slog.Info("Shared sync activated", "person_id", source.ID, "group_id", b.sync.sourceGroupID)
	return true, nil
}

func (b *Board) isSyncSourceLocked(p models.Person) bool {
	return b.sync.active && p.IsShared() && p.ID == b.sync.sourcePersonID
}

// checkSyncSourceLocked turns sync off once the source slot is gone.
func (b *Board) checkSyncSourceLocked() {
	if !b.sync.active {
		return
	}
	gi, pi, ok := b.findPerson(b.sync.sourcePersonID)
	if ok && b.groups[gi].Items[pi].IsShared() {
		b.sync.sourceGroupID = b.groups[gi].ID
		return
	}
	slog.Info("Shared sync source removed, deactivating", "person_id", b.sync.sourcePersonID)
	b.sync = syncState{}
}

// propagateLocked stores the new selections of the source slot and
// mirrors them into every other shared slot.
func (b *Board) propagateLocked(gi, pi int, items []models.SubItem) {
	items = markSynced(items)
	groups := slices.Clone(b.groups)
	replaceSubItems(groups, gi, pi, items)

	sourceID := groups[gi].Items[pi].ID
	for i := range groups {
		si := groups[i].SharedSlot()
		if si < 0 || groups[i].Items[si].ID == sourceID {
			continue
		}
		mirror := mergeMirror(groups[i].Items[si].SubItems, items, true, b.newID)
		replaceSubItems(groups, i, si, mirror)
	}
	b.groups = groups
	b.touch()
}

// mergeMirror merges the source selections into a mirror slot.
//
// Mirror items are matched to source items by name, in order of
// occurrence: the n-th mirror item named X takes the quantity of the n-th
// source item named X. Unmatched source items are appended as synced
// copies. With prune set, synced mirror items left unmatched are dropped.
// Local mirror items are always kept.
func mergeMirror(mirror, source []models.SubItem, prune bool, newID func() string) []models.SubItem {
	queue := make(map[string][]int)
	for i, s := range source {
		queue[s.ItemName] = append(queue[s.ItemName], i)
	}
	used := make([]bool, len(source))

	out := make([]models.SubItem, 0, len(mirror)+len(source))
	for _, m := range mirror {
		if q := queue[m.ItemName]; len(q) > 0 {
			s := source[q[0]]
			queue[m.ItemName] = q[1:]
			used[q[0]] = true
			m.Quantity = s.Qty()
			m.Synced = true
			out = append(out, m)
			continue
		}
		if prune && m.Synced {
			continue
		}
		out = append(out, m)
	}
	for i, s := range source {
		if used[i] {
			continue
		}
		s.ID = newID()
		s.Synced = true
		out = append(out, s)
	}
	return out
}

func markSynced(items []models.SubItem) []models.SubItem {
	out := make([]models.SubItem, len(items))
	for i, si := range items {
		si.Synced = true
		out[i] = si
	}
	return out
}

// replaceSubItems swaps in a new copy of seat pi of table gi with items.
// groups must already be a private copy of the table list.
func replaceSubItems(groups []models.Group, gi, pi int, items []models.SubItem) {
	g := groups[gi]
	g.Items = slices.Clone(g.Items)
	p := g.Items[pi]
	p.SubItems = items
	g.Items[pi] = p
	groups[gi] = g
}
