package order

import (
	"slices"
	"strings"

	"github.com/limchang/cafe-test/internal/calculator"
	"github.com/limchang/cafe-test/internal/models"
)

// SubItemPatch lists the fields UpdateSubItem changes. Nil fields are kept.
type SubItemPatch struct {
	Type        *models.ItemType    `json:"type,omitempty"`
	ItemName    *string             `json:"itemName,omitempty"`
	Temperature *models.Temperature `json:"temperature,omitempty"`
	Size        *models.DrinkSize   `json:"size,omitempty"`
	Quantity    *int                `json:"quantity,omitempty"`
	Memo        *string             `json:"memo,omitempty"`
}

// DefaultTemperature guesses the temperature of a newly chosen drink.
func DefaultTemperature(name string) models.Temperature {
	if strings.Contains(name, "스무디") || strings.Contains(name, "아이스") {
		return models.TemperatureIce
	}
	return models.TemperatureHot
}

// applyDefaults makes an untyped item a drink and fills in the drink
// temperature and size.
func applyDefaults(si *models.SubItem) {
	if !si.Type.Valid() {
		si.Type = models.ItemTypeDrink
	}
	if si.Type != models.ItemTypeDrink {
		return
	}
	if !si.Temperature.Valid() {
		si.Temperature = DefaultTemperature(si.ItemName)
	}
	if !si.Size.Valid() {
		si.Size = models.SizeTall
	}
}

// SetSubItems replaces the selections of a seat.
func (b *Board) SetSubItems(personID string, items []models.SubItem) bool {
	return b.editSubItems(personID, func([]models.SubItem) ([]models.SubItem, bool) {
		return models.CloneSubItems(items), true
	})
}

// AddSubItem appends a selection to a seat, filling in the id and the
// drink defaults.
func (b *Board) AddSubItem(personID string, item models.SubItem) (models.SubItem, bool) {
	item.ItemName = strings.TrimSpace(item.ItemName)
	applyDefaults(&item)
	item.Memo = calculator.JoinMemo(calculator.SplitMemo(item.Memo))
	item.Synced = false

	var added models.SubItem
	ok := b.editSubItems(personID, func(items []models.SubItem) ([]models.SubItem, bool) {
		item.ID = b.newID()
		added = item
		return append(items, item), true
	})
	return added, ok
}

// UpdateSubItem applies patch to one selection of a seat.
func (b *Board) UpdateSubItem(personID, subItemID string, patch SubItemPatch) bool {
	return b.editSubItem(personID, subItemID, func(si *models.SubItem) bool {
		if patch.Type != nil && patch.Type.Valid() {
			si.Type = *patch.Type
		}
		if patch.ItemName != nil {
			si.ItemName = strings.TrimSpace(*patch.ItemName)
		}
		if patch.Temperature != nil && patch.Temperature.Valid() {
			si.Temperature = *patch.Temperature
		}
		if patch.Size != nil && patch.Size.Valid() {
			si.Size = *patch.Size
		}
		if patch.Quantity != nil {
			si.Quantity = max(*patch.Quantity, 1)
		}
		if patch.Memo != nil {
			si.Memo = calculator.JoinMemo(calculator.SplitMemo(*patch.Memo))
		}
		return true
	})
}

// RemoveSubItem drops one selection of a seat.
func (b *Board) RemoveSubItem(personID, subItemID string) bool {
	return b.editSubItems(personID, func(items []models.SubItem) ([]models.SubItem, bool) {
		i := slices.IndexFunc(items, func(si models.SubItem) bool { return si.ID == subItemID })
		if i < 0 {
			return nil, false
		}
		return slices.Delete(items, i, i+1), true
	})
}

// SetQuantity sets the portion count of a selection, never below one.
func (b *Board) SetQuantity(personID, subItemID string, qty int) bool {
	return b.editSubItem(personID, subItemID, func(si *models.SubItem) bool {
		si.Quantity = max(qty, 1)
		return true
	})
}

// SetTemperature sets HOT or ICE on a selection.
func (b *Board) SetTemperature(personID, subItemID string, temp models.Temperature) bool {
	if !temp.Valid() {
		return false
	}
	return b.editSubItem(personID, subItemID, func(si *models.SubItem) bool {
		si.Temperature = temp
		return true
	})
}

// SetSize sets the cup size of a selection.
func (b *Board) SetSize(personID, subItemID string, size models.DrinkSize) bool {
	if !size.Valid() {
		return false
	}
	return b.editSubItem(personID, subItemID, func(si *models.SubItem) bool {
		si.Size = size
		return true
	})
}

// SetMemo replaces the request phrases of a selection.
func (b *Board) SetMemo(personID, subItemID, memo string) bool {
	return b.editSubItem(personID, subItemID, func(si *models.SubItem) bool {
		si.Memo = calculator.JoinMemo(calculator.SplitMemo(memo))
		return true
	})
}

// AddMemoPhrase appends a request phrase unless the selection has it.
func (b *Board) AddMemoPhrase(personID, subItemID, phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" || strings.Contains(phrase, ",") {
		return false
	}
	return b.editSubItem(personID, subItemID, func(si *models.SubItem) bool {
		phrases := calculator.SplitMemo(si.Memo)
		if slices.Contains(phrases, phrase) {
			return false
		}
		si.Memo = calculator.JoinMemo(append(phrases, phrase))
		return true
	})
}

// RemoveMemoPhrase drops a request phrase from a selection.
func (b *Board) RemoveMemoPhrase(personID, subItemID, phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	return b.editSubItem(personID, subItemID, func(si *models.SubItem) bool {
		phrases := calculator.SplitMemo(si.Memo)
		i := slices.Index(phrases, phrase)
		if i < 0 {
			return false
		}
		si.Memo = calculator.JoinMemo(slices.Delete(phrases, i, i+1))
		return true
	})
}

// SetAllNotEating marks every listed seat as not eating and returns how
// many seats changed. Shared slots are skipped.
func (b *Board) SetAllNotEating(personIDs []string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, id := range personIDs {
		gi, pi, ok := b.findPerson(id)
		if !ok || b.groups[gi].Items[pi].IsShared() {
			continue
		}
		b.setPersonLocked(gi, pi, func(p *models.Person) {
			p.SubItems = []models.SubItem{{
				ID:          b.newID(),
				Type:        models.ItemTypeDrink,
				ItemName:    models.NotEatingItem,
				Temperature: models.TemperatureHot,
				Size:        models.SizeTall,
				Quantity:    1,
			}}
		})
		n++
	}
	if n > 0 {
		b.noticeLocked("선택한 인원을 안 먹음으로 표시했습니다")
	}
	return n
}

// editSubItem applies fn to a copy of one selection.
func (b *Board) editSubItem(personID, subItemID string, fn func(si *models.SubItem) bool) bool {
	return b.editSubItems(personID, func(items []models.SubItem) ([]models.SubItem, bool) {
		i := slices.IndexFunc(items, func(si models.SubItem) bool { return si.ID == subItemID })
		if i < 0 {
			return nil, false
		}
		si := items[i]
		if !fn(&si) {
			return nil, false
		}
		items[i] = si
		return items, true
	})
}

// editSubItems hands fn a private copy of a seat's selections and stores
// the result, propagating it when the seat is the sync source.
func (b *Board) editSubItems(personID string, fn func(items []models.SubItem) ([]models.SubItem, bool)) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gi, pi, ok := b.findPerson(personID)
	if !ok {
		return false
	}
	items, changed := fn(models.CloneSubItems(b.groups[gi].Items[pi].SubItems))
	if !changed {
		return false
	}
	b.applySubItemsLocked(gi, pi, b.normalizeLocked(items))
	return true
}

// normalizeLocked gives every item a unique id, fills in the drink
// defaults, clamps quantities and registers new item names in the menu.
func (b *Board) normalizeLocked(items []models.SubItem) []models.SubItem {
	out := make([]models.SubItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, si := range items {
		if si.ID == "" || seen[si.ID] {
			si.ID = b.newID()
		}
		seen[si.ID] = true
		applyDefaults(&si)
		si.Quantity = si.Qty()
		if si.Type == models.ItemTypeDrink || si.Type == models.ItemTypeDessert {
			b.menu.Add(si.ItemName, si.Type)
		}
		out = append(out, si)
	}
	return out
}

func (b *Board) applySubItemsLocked(gi, pi int, items []models.SubItem) {
	if b.isSyncSourceLocked(b.groups[gi].Items[pi]) {
		b.propagateLocked(gi, pi, items)
		return
	}
	b.setPersonLocked(gi, pi, func(p *models.Person) { p.SubItems = items })
}
