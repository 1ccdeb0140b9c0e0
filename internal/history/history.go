// Package history keeps the saved snapshots of past orders, most recent
// first, and persists them as one JSON blob.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/limchang/cafe-test/internal/models"
	"github.com/limchang/cafe-test/internal/storage"
)

// ErrEntryNotFound is returned when no entry has the requested id.
var ErrEntryNotFound = errors.New("history entry not found")

// DefaultTitle is used when no table has any order.
const DefaultTitle = "새 주문"

// Patch lists the entry fields Update changes. Nil fields are kept.
type Patch struct {
	Memo  *string `json:"memo,omitempty"`
	Title *string `json:"title,omitempty"`
}

// Log is the in-memory history list backed by a storage.Store.
type Log struct {
	mu      sync.Mutex
	store   storage.Store
	entries []models.HistoryEntry

	now   func() time.Time
	newID func() string
}

// New creates an empty log. Call Load to read persisted entries.
func New(store storage.Store) *Log {
	return &Log{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load reads the persisted list. A missing or malformed blob leaves the
// log empty and is not an error. Load never writes.
func (l *Log) Load(ctx context.Context) error {
	raw, err := l.store.Get(ctx, storage.HistoryKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Warn("Ignoring malformed history blob", "error", err)
		return nil
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()

	slog.Info("History loaded", "entries", len(entries))
	return nil
}

// Save prepends a deep copy of groups as a new entry.
func (l *Log) Save(ctx context.Context, groups []models.Group, summaryText string, totalCount int, memo string) (models.HistoryEntry, error) {
	entry := models.HistoryEntry{
		ID:          l.newID(),
		Timestamp:   l.now().UnixMilli(),
		Groups:      models.CloneGroups(groups),
		TotalCount:  totalCount,
		SummaryText: summaryText,
		Memo:        strings.TrimSpace(memo),
		Title:       Title(groups),
	}
	if entry.Groups == nil {
		entry.Groups = []models.Group{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := append([]models.HistoryEntry{entry}, l.entries...)
	if err := l.persistLocked(ctx, next); err != nil {
		return models.HistoryEntry{}, err
	}
	return cloneEntry(entry), nil
}

// List returns a deep copy of every entry, most recent first.
func (l *Log) List() []models.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.HistoryEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = cloneEntry(e)
	}
	return out
}

// Get returns a deep copy of one entry.
func (l *Log) Get(id string) (models.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return models.HistoryEntry{}, ErrEntryNotFound
	}
	return cloneEntry(l.entries[i]), nil
}

// Delete removes one entry.
func (l *Log) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return ErrEntryNotFound
	}
	return l.persistLocked(ctx, slices.Delete(slices.Clone(l.entries), i, i+1))
}

// Update changes the memo or title of one entry.
func (l *Log) Update(ctx context.Context, id string, patch Patch) (models.HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return models.HistoryEntry{}, ErrEntryNotFound
	}

	e := l.entries[i]
	if patch.Memo != nil {
		e.Memo = strings.TrimSpace(*patch.Memo)
	}
	if patch.Title != nil {
		if t := strings.TrimSpace(*patch.Title); t != "" {
			e.Title = t
		}
	}

	next := slices.Clone(l.entries)
	next[i] = e
	if err := l.persistLocked(ctx, next); err != nil {
		return models.HistoryEntry{}, err
	}
	return cloneEntry(e), nil
}

func (l *Log) indexLocked(id string) int {
	return slices.IndexFunc(l.entries, func(e models.HistoryEntry) bool { return e.ID == id })
}

// persistLocked writes entries and makes them current once the write succeeds.
func (l *Log) persistLocked(ctx context.Context, entries []models.HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := l.store.Put(ctx, storage.HistoryKey, raw); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	l.entries = entries
	return nil
}

// Title names an order after the tables that hold at least one selection,
// e.g. "1, 3번 테이블".
func Title(groups []models.Group) string {
	var labels []string
	for _, g := range groups {
		if !g.HasOrders() {
			continue
		}
		if label := g.Label(); label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) == 0 {
		return DefaultTitle
	}
	return strings.Join(labels, ", ") + "번 테이블"
}

// FullGroups returns a deep copy of the tables stored in entry.
func FullGroups(entry models.HistoryEntry) []models.Group {
	return models.CloneGroups(entry.Groups)
}

// PeopleOnlyGroups returns the tables of entry with every seat's
// selections and memo cleared. Names and avatars are kept.
func PeopleOnlyGroups(entry models.HistoryEntry) []models.Group {
	groups := models.CloneGroups(entry.Groups)
	for gi := range groups {
		for pi := range groups[gi].Items {
			groups[gi].Items[pi].SubItems = []models.SubItem{}
			groups[gi].Items[pi].Memo = ""
		}
	}
	return groups
}

func cloneEntry(e models.HistoryEntry) models.HistoryEntry {
	e.Groups = models.CloneGroups(e.Groups)
	return e
}
