// Package order owns the live order tree: tables, seats and their menu
// selections. All mutations go through Board, which serializes them and
// hands out deep copies to readers.
package order

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/limchang/cafe-test/internal/calculator"
	"github.com/limchang/cafe-test/internal/models"
	"github.com/limchang/cafe-test/internal/scheduler"
)

// ErrReservedAvatar is returned when the shared-slot emoji is assigned to a seat.
var ErrReservedAvatar = errors.New("avatar is reserved for the shared slot")

const (
	seatsPerTable = 4

	timerUndo      = "undo"
	timerNotice    = "notice"
	timerHighlight = "highlight"
)

// Config controls the lifetimes of transient board state.
// Zero values fall back to the defaults.
type Config struct {
	UndoWindow   time.Duration
	NoticeTTL    time.Duration
	HighlightTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.UndoWindow <= 0 {
		c.UndoWindow = 3 * time.Second
	}
	if c.NoticeTTL <= 0 {
		c.NoticeTTL = 3 * time.Second
	}
	if c.HighlightTTL <= 0 {
		c.HighlightTTL = 2 * time.Second
	}
	return c
}

// Notice is a short message that dismisses itself.
type Notice struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Board is the single owner of the live order tree.
//
// Every mutation replaces the touched table and seat with new values, so
// slices handed to the aggregation cache are never edited afterwards.
type Board struct {
	mu sync.Mutex

	groups      []models.Group
	activeGroup string
	sync        syncState

	undo    []models.Group
	hasUndo bool
	undoSeq uint64
	notice  *Notice
	spotted string
	spotSeq uint64

	version uint64
	cache   summaryCache

	menu   *Menu
	timers *scheduler.Timers
	cfg    Config
	newID  func() string
}

type summaryCache struct {
	ok       bool
	version  uint64
	showSize bool
	summary  calculator.Summary
}

// NewBoard creates an empty board backed by menu.
func NewBoard(menu *Menu, cfg Config) *Board {
	if menu == nil {
		menu = NewMenu()
	}
	return &Board{
		menu:   menu,
		timers: scheduler.New(),
		cfg:    cfg.withDefaults(),
		newID:  uuid.NewString,
	}
}

// Close cancels pending timers and waits for running ones.
func (b *Board) Close() {
	b.timers.Stop()
}

// Menu returns the catalog the board registers new item names in.
func (b *Board) Menu() *Menu {
	return b.menu
}

// AddGroup appends a table with four empty seats and a shared slot.
func (b *Board) AddGroup() models.Group {
	b.mu.Lock()
	defer b.mu.Unlock()

	g := b.addGroupLocked()
	slog.Debug("Table added", "group_id", g.ID, "name", g.Name)
	return models.CloneGroup(g)
}

func (b *Board) addGroupLocked() models.Group {
	items := make([]models.Person, 0, seatsPerTable+1)
	for range seatsPerTable {
		items = append(items, b.emptyPerson())
	}
	items = append(items, b.sharedPersonLocked())

	g := models.Group{
		ID:    b.newID(),
		Name:  fmt.Sprintf("%d번 테이블", NextTableNumber(b.groups)),
		Items: items,
	}
	b.groups = append(slices.Clone(b.groups), g)
	b.activeGroup = g.ID
	b.touch()
	return g
}

// NextTableNumber returns one more than the highest table number in use.
func NextTableNumber(groups []models.Group) int {
	highest := 0
	for _, g := range groups {
		if n, ok := g.Number(); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

func (b *Board) emptyPerson() models.Person {
	return models.Person{ID: b.newID(), SubItems: []models.SubItem{}}
}

// sharedPersonLocked builds a new shared slot. While sync is active it is
// seeded from the first table's shared slot.
func (b *Board) sharedPersonLocked() models.Person {
	p := models.Person{ID: b.newID(), Avatar: models.SharedAvatar, SubItems: []models.SubItem{}}
	if !b.sync.active || len(b.groups) == 0 {
		return p
	}
	first := b.groups[0]
	si := first.SharedSlot()
	if si < 0 {
		return p
	}
	for _, item := range first.Items[si].SubItems {
		item.ID = b.newID()
		item.Synced = true
		p.SubItems = append(p.SubItems, item)
	}
	return p
}

// RemoveGroup deletes a table. The previous state can be restored with Undo.
func (b *Board) RemoveGroup(groupID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, ok := b.findGroup(groupID)
	if !ok {
		return false
	}

	b.saveUndoLocked()
	b.groups = slices.Delete(slices.Clone(b.groups), gi, gi+1)
	if b.activeGroup == groupID {
		b.activeGroup = ""
		if len(b.groups) > 0 {
			b.activeGroup = b.groups[0].ID
		}
	}
	b.checkSyncSourceLocked()
	b.touch()
	b.noticeLocked("테이블이 삭제되었습니다")
	return true
}

// RenameGroup sets a table name. Blank names keep the previous name.
// The previous state can be restored with Undo.
func (b *Board) RenameGroup(groupID, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, ok := b.findGroup(groupID)
	if !ok {
		return false
	}

	b.saveUndoLocked()
	if name = strings.TrimSpace(name); name != "" {
		b.setGroupLocked(gi, func(g *models.Group) { g.Name = name })
	}
	b.noticeLocked("테이블 이름이 변경되었습니다")
	return true
}

// UpdateGroupName renames a table in place without an undo snapshot.
// Blank names are ignored.
func (b *Board) UpdateGroupName(groupID, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, ok := b.findGroup(groupID)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return false
	}
	b.setGroupLocked(gi, func(g *models.Group) { g.Name = name })
	return true
}

// SetActiveGroup moves the focus to a table.
func (b *Board) SetActiveGroup(groupID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.findGroup(groupID); !ok {
		return false
	}
	b.activeGroup = groupID
	return true
}

// SetCollapsed folds or unfolds a table card.
func (b *Board) SetCollapsed(groupID string, collapsed bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, ok := b.findGroup(groupID)
	if !ok {
		return false
	}
	b.setGroupLocked(gi, func(g *models.Group) { g.Collapsed = collapsed })
	return true
}

// Undo restores the state saved by the last RemoveGroup or RenameGroup,
// if the undo window has not expired.
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasUndo {
		return false
	}
	b.groups = b.undo
	b.undo, b.hasUndo = nil, false
	b.timers.Cancel(timerUndo)

	if _, ok := b.findGroup(b.activeGroup); !ok {
		b.activeGroup = ""
		if len(b.groups) > 0 {
			b.activeGroup = b.groups[0].ID
		}
	}
	b.checkSyncSourceLocked()
	b.touch()
	b.noticeLocked("이전 상태로 되돌렸습니다")
	return true
}

// ResetAll clears every table, turns sync off and starts over with one
// fresh table. It does nothing unless confirmed is set.
func (b *Board) ResetAll(confirmed bool) bool {
	if !confirmed {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.groups = nil
	b.activeGroup = ""
	b.sync = syncState{}
	b.undo, b.hasUndo = nil, false
	b.timers.Cancel(timerUndo)
	b.spotted = ""
	b.addGroupLocked()
	b.noticeLocked("모든 주문이 초기화되었습니다")
	slog.Info("Board reset")
	return true
}

// LoadGroups replaces the whole order with a deep copy of groups.
// Sync is turned off and the undo snapshot is dropped.
func (b *Board) LoadGroups(groups []models.Group) {
	b.mu.Lock()
	defer b.mu.Unlock()

	loaded := models.CloneGroups(groups)
	for gi := range loaded {
		for pi := range loaded[gi].Items {
			if loaded[gi].Items[pi].SubItems == nil {
				loaded[gi].Items[pi].SubItems = []models.SubItem{}
			}
		}
	}

	b.groups = loaded
	b.activeGroup = ""
	if len(loaded) > 0 {
		b.activeGroup = loaded[0].ID
	}
	b.sync = syncState{}
	b.undo, b.hasUndo = nil, false
	b.timers.Cancel(timerUndo)
	b.touch()
}

// AddPerson adds an empty seat in front of the table's shared slot.
func (b *Board) AddPerson(groupID string) (models.Person, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, ok := b.findGroup(groupID)
	if !ok {
		return models.Person{}, false
	}

	p := b.emptyPerson()
	b.setGroupLocked(gi, func(g *models.Group) {
		at := g.SharedSlot()
		if at < 0 {
			at = len(g.Items)
		}
		g.Items = slices.Insert(g.Items, at, p)
	})
	return models.ClonePerson(p), true
}

// AddSharedSlot gives a table without one a new shared slot.
func (b *Board) AddSharedSlot(groupID string) (models.Person, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, ok := b.findGroup(groupID)
	if !ok || b.groups[gi].SharedSlot() >= 0 {
		return models.Person{}, false
	}

	p := b.sharedPersonLocked()
	b.setGroupLocked(gi, func(g *models.Group) { g.Items = append(g.Items, p) })
	return models.ClonePerson(p), true
}

// RemovePerson removes a seat from whichever table holds it.
func (b *Board) RemovePerson(personID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, pi, ok := b.findPerson(personID)
	if !ok {
		return false
	}
	b.setGroupLocked(gi, func(g *models.Group) { g.Items = slices.Delete(g.Items, pi, pi+1) })
	b.checkSyncSourceLocked()
	return true
}

// ResetPerson clears a seat's avatar and selections. A shared slot keeps
// its avatar. Resetting the sync source clears the synced items of every
// mirror and turns sync off.
func (b *Board) ResetPerson(personID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, pi, ok := b.findPerson(personID)
	if !ok {
		return false
	}
	if b.isSyncSourceLocked(b.groups[gi].Items[pi]) {
		b.propagateLocked(gi, pi, []models.SubItem{})
		b.sync = syncState{}
		slog.Info("Shared sync source reset, deactivating", "person_id", personID)
	}
	b.setPersonLocked(gi, pi, func(p *models.Person) {
		if !p.IsShared() {
			p.Avatar = ""
		}
		p.SubItems = []models.SubItem{}
		p.Memo = ""
	})
	return true
}

// SetAvatar assigns an avatar to a seat. The shared-slot emoji is rejected
// and the shared slot itself keeps its avatar.
func (b *Board) SetAvatar(personID, emoji string) (bool, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == models.SharedAvatar {
		return false, ErrReservedAvatar
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	gi, pi, ok := b.findPerson(personID)
	if !ok || b.groups[gi].Items[pi].IsShared() {
		return false, nil
	}
	b.setPersonLocked(gi, pi, func(p *models.Person) { p.Avatar = emoji })
	return true, nil
}

// SetPersonMemo sets the free-text note of a seat.
func (b *Board) SetPersonMemo(personID, memo string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, pi, ok := b.findPerson(personID)
	if !ok {
		return false
	}
	b.setPersonLocked(gi, pi, func(p *models.Person) { p.Memo = strings.TrimSpace(memo) })
	return true
}

// Highlight marks a seat for a short time and focuses its table.
// It returns the id of that table.
func (b *Board) Highlight(personID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, _, ok := b.findPerson(personID)
	if !ok {
		return "", false
	}
	b.spotted = personID
	b.activeGroup = b.groups[gi].ID

	b.spotSeq++
	seq := b.spotSeq
	b.timers.Schedule(timerHighlight, b.cfg.HighlightTTL, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.spotSeq == seq {
			b.spotted = ""
		}
	})
	return b.groups[gi].ID, true
}

// Groups returns a deep copy of every table.
func (b *Board) Groups() []models.Group {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.CloneGroups(b.groups)
}

// Summary returns the aggregation of the current order.
// The result is cached until the next mutation and must not be modified.
func (b *Board) Summary(showDrinkSize bool) calculator.Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cache.ok && b.cache.version == b.version && b.cache.showSize == showDrinkSize {
		return b.cache.summary
	}
	s := calculator.Aggregate(b.groups, showDrinkSize)
	b.cache = summaryCache{ok: true, version: b.version, showSize: showDrinkSize, summary: s}
	return s
}

func (b *Board) findGroup(groupID string) (int, bool) {
	for i, g := range b.groups {
		if g.ID == groupID {
			return i, true
		}
	}
	return 0, false
}

func (b *Board) findPerson(personID string) (int, int, bool) {
	for i, g := range b.groups {
		for j, p := range g.Items {
			if p.ID == personID {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// setGroupLocked applies fn to a fresh copy of table gi and swaps it in.
func (b *Board) setGroupLocked(gi int, fn func(g *models.Group)) {
	groups := slices.Clone(b.groups)
	g := groups[gi]
	g.Items = slices.Clone(g.Items)
	fn(&g)
	groups[gi] = g
	b.groups = groups
	b.touch()
}

// setPersonLocked applies fn to a fresh copy of seat pi of table gi.
func (b *Board) setPersonLocked(gi, pi int, fn func(p *models.Person)) {
	b.setGroupLocked(gi, func(g *models.Group) {
		p := models.ClonePerson(g.Items[pi])
		fn(&p)
		g.Items[pi] = p
	})
}

func (b *Board) saveUndoLocked() {
	b.undo = models.CloneGroups(b.groups)
	b.hasUndo = true

	b.undoSeq++
	seq := b.undoSeq
	b.timers.Schedule(timerUndo, b.cfg.UndoWindow, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.undoSeq == seq {
			b.undo, b.hasUndo = nil, false
		}
	})
}

func (b *Board) noticeLocked(msg string) {
	n := &Notice{ID: b.newID(), Message: msg}
	b.notice = n
	b.timers.Schedule(timerNotice, b.cfg.NoticeTTL, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.notice == n {
			b.notice = nil
		}
	})
}

// touch marks a change of the order tree and invalidates the
// aggregation cache.
func (b *Board) touch() {
	b.version++
}
