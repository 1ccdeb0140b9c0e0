// Package settings holds the user preferences and persists them as one
// JSON blob.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/limchang/cafe-test/internal/models"
	"github.com/limchang/cafe-test/internal/storage"
)

var (
	// ErrEmojiIndex is returned when SetEmoji addresses a missing palette slot.
	ErrEmojiIndex = errors.New("emoji index out of range")

	// ErrReservedEmoji is returned when the shared-slot emoji is put in the palette.
	ErrReservedEmoji = errors.New("emoji is reserved for the shared slot")

	// ErrUnknownCategory is returned for an unknown random-avatar category.
	ErrUnknownCategory = errors.New("unknown emoji category")
)

// Manager owns the current settings.
type Manager struct {
	mu      sync.Mutex
	store   storage.Store
	current models.AppSettings
}

// New creates a manager holding the defaults. Call Load to read the
// persisted settings.
func New(store storage.Store) *Manager {
	return &Manager{store: store, current: models.DefaultSettings()}
}

// Load reads the persisted settings and merges them over the defaults key
// by key. Missing or malformed keys keep their defaults. Load never writes.
func (m *Manager) Load(ctx context.Context) error {
	raw, err := m.store.Get(ctx, storage.SettingsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	merged := Merge(raw)

	m.mu.Lock()
	m.current = merged
	m.mu.Unlock()

	slog.Info("Settings loaded", "show_drink_size", merged.ShowDrinkSize, "quick_memos", len(merged.QuickMemos))
	return nil
}

// Merge decodes a settings blob over the defaults.
func Merge(raw []byte) models.AppSettings {
	s := models.DefaultSettings()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		slog.Warn("Ignoring malformed settings blob", "error", err)
		return s
	}

	decode := func(key string, dst any) bool {
		v, ok := fields[key]
		if !ok {
			return false
		}
		if err := json.Unmarshal(v, dst); err != nil {
			slog.Warn("Ignoring malformed settings key", "key", key, "error", err)
			return false
		}
		return true
	}

	var show bool
	if decode("showDrinkSize", &show) {
		s.ShowDrinkSize = show
	}

	var memos []string
	if decode("quickMemos", &memos) && memos != nil {
		s.QuickMemos = uniqueTrimmed(memos)
	}

	var emojis []string
	if decode("defaultEmojis", &emojis) {
		for i := range s.DefaultEmojis {
			if i < len(emojis) {
				if e := strings.TrimSpace(emojis[i]); e != "" && e != models.SharedAvatar {
					s.DefaultEmojis[i] = e
				}
			}
		}
	}

	var category models.EmojiCategory
	if decode("randomCategory", &category) && category.Valid() {
		s.RandomCategory = category
	}

	var checked []string
	if decode("checkedDrinkItems", &checked) && checked != nil {
		s.CheckedDrinkItems = uniqueTrimmed(checked)
	}

	return s
}

// Get returns a copy of the current settings.
func (m *Manager) Get() models.AppSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// SetShowDrinkSize turns cup-size tracking on or off.
func (m *Manager) SetShowDrinkSize(ctx context.Context, show bool) (models.AppSettings, error) {
	return m.update(ctx, func(s *models.AppSettings) error {
		s.ShowDrinkSize = show
		return nil
	})
}

// AddQuickMemo appends a request phrase. Blank and duplicate phrases are ignored.
func (m *Manager) AddQuickMemo(ctx context.Context, memo string) (models.AppSettings, error) {
	return m.update(ctx, func(s *models.AppSettings) error {
		s.QuickMemos = uniqueTrimmed(append(s.QuickMemos, memo))
		return nil
	})
}

// RemoveQuickMemo deletes a request phrase.
func (m *Manager) RemoveQuickMemo(ctx context.Context, memo string) (models.AppSettings, error) {
	return m.update(ctx, func(s *models.AppSettings) error {
		s.QuickMemos = slices.DeleteFunc(s.QuickMemos, func(q string) bool { return q == memo })
		return nil
	})
}

// SetEmoji replaces one slot of the avatar palette. A blank emoji restores
// the built-in default for that slot.
func (m *Manager) SetEmoji(ctx context.Context, index int, emoji string) (models.AppSettings, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == models.SharedAvatar {
		return models.AppSettings{}, ErrReservedEmoji
	}
	return m.update(ctx, func(s *models.AppSettings) error {
		if index < 0 || index >= len(s.DefaultEmojis) {
			return ErrEmojiIndex
		}
		if emoji == "" {
			emoji = models.DefaultEmojis[index]
		}
		s.DefaultEmojis[index] = emoji
		return nil
	})
}

// SetRandomCategory selects the palette of the random-avatar button.
func (m *Manager) SetRandomCategory(ctx context.Context, c models.EmojiCategory) (models.AppSettings, error) {
	if !c.Valid() {
		return models.AppSettings{}, ErrUnknownCategory
	}
	return m.update(ctx, func(s *models.AppSettings) error {
		s.RandomCategory = c
		return nil
	})
}

// SetDrinkChecked pins or unpins a drink shortcut.
func (m *Manager) SetDrinkChecked(ctx context.Context, name string, checked bool) (models.AppSettings, error) {
	name = strings.TrimSpace(name)
	return m.update(ctx, func(s *models.AppSettings) error {
		s.CheckedDrinkItems = slices.DeleteFunc(s.CheckedDrinkItems, func(d string) bool { return d == name })
		if checked && name != "" {
			s.CheckedDrinkItems = append(s.CheckedDrinkItems, name)
		}
		return nil
	})
}

// RandomAvatar picks an emoji from the configured category.
func (m *Manager) RandomAvatar() string {
	m.mu.Lock()
	palette := models.CategoryEmojis[m.current.RandomCategory]
	m.mu.Unlock()

	if len(palette) == 0 {
		palette = models.CategoryEmojis[models.CategoryAnimals]
	}
	return palette[rand.IntN(len(palette))]
}

// update applies fn to a copy of the settings, persists the result and
// makes it current.
func (m *Manager) update(ctx context.Context, fn func(s *models.AppSettings) error) (models.AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current.Clone()
	if err := fn(&next); err != nil {
		return models.AppSettings{}, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := m.store.Put(ctx, storage.SettingsKey, raw); err != nil {
		return models.AppSettings{}, fmt.Errorf("failed to persist settings: %w", err)
	}

	m.current = next
	return next.Clone(), nil
}

func uniqueTrimmed(in []string) []string {
	out := []string{}
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
