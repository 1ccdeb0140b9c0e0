package models

// ItemType is the menu category of a SubItem.
type ItemType string

const (
	ItemTypeDrink   ItemType = "DRINK"
	ItemTypeDessert ItemType = "DESSERT"
	ItemTypePending ItemType = "PENDING"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeDrink, ItemTypeDessert, ItemTypePending:
		return true
	}
	return false
}

// Temperature is only meaningful for drinks.
type Temperature string

const (
	TemperatureHot Temperature = "HOT"
	TemperatureIce Temperature = "ICE"
)

// Valid reports whether t is HOT or ICE.
func (t Temperature) Valid() bool {
	return t == TemperatureHot || t == TemperatureIce
}

// DrinkSize is only meaningful for drinks when size tracking is enabled.
type DrinkSize string

const (
	SizeTall   DrinkSize = "Tall"
	SizeGrande DrinkSize = "Grande"
	SizeVenti  DrinkSize = "Venti"
)

// Valid reports whether s is one of the three cup sizes.
func (s DrinkSize) Valid() bool {
	switch s {
	case SizeTall, SizeGrande, SizeVenti:
		return true
	}
	return false
}

// Sentinel values stored in the order tree.
const (
	// UndecidedItem is the drink name for "not chosen yet".
	UndecidedItem = "미정"

	// NotEatingItem is the single sub-item of a person who orders nothing.
	NotEatingItem = "안 먹음"

	// SharedAvatar marks the shared slot of a table.
	SharedAvatar = "😋"

	// PlaceholderAvatar is shown for people without an avatar.
	PlaceholderAvatar = "👤"
)

// IsSentinelItem reports whether name is excluded from aggregation.
func IsSentinelItem(name string) bool {
	return name == UndecidedItem || name == NotEatingItem
}

// SubItem represents one menu selection of a person.
type SubItem struct {
	// ID is the unique identifier for the sub-item (UUID format).
	ID string `json:"id"`

	// Type is DRINK, DESSERT or PENDING.
	Type ItemType `json:"type"`

	// ItemName is the menu item name (e.g., "아메리카노").
	ItemName string `json:"itemName"`

	// Temperature is HOT or ICE for drinks.
	Temperature Temperature `json:"temperature,omitempty"`

	// Size is the cup size for drinks.
	// Only used for grouping when size tracking is enabled in settings.
	Size DrinkSize `json:"size,omitempty"`

	// Quantity is the number of portions. Zero reads as one.
	Quantity int `json:"quantity,omitempty"`

	// Memo is a comma-joined list of request phrases (e.g., "샷추가, 덜쓰게").
	Memo string `json:"memo,omitempty"`

	// Synced marks a shared-slot item that mirrors the sync source.
	Synced bool `json:"isSynced,omitempty"`
}

// Qty returns the effective quantity, never less than one.
func (s SubItem) Qty() int {
	if s.Quantity < 1 {
		return 1
	}
	return s.Quantity
}

// Person represents one seat at a table.
// Persons are called "order items" by the browser client.
type Person struct {
	// ID is unique across the whole order (UUID format).
	ID string `json:"id"`

	// Avatar is an emoji. Empty means the seat is waiting for an avatar.
	Avatar string `json:"avatar"`

	// SubItems are the selections of this person, in display order.
	SubItems []SubItem `json:"subItems"`

	// Memo is a free-text note for the whole person.
	Memo string `json:"memo,omitempty"`
}

// IsShared reports whether p is the shared slot of its table.
func (p Person) IsShared() bool {
	return p.Avatar == SharedAvatar
}

// PersonStatus is the derived state of a Person.
type PersonStatus string

const (
	StatusAwaitingAvatar PersonStatus = "AWAITING_AVATAR"
	StatusShared         PersonStatus = "SHARED"
	StatusNotEating      PersonStatus = "NOT_EATING"
	StatusUndecided      PersonStatus = "UNDECIDED"
	StatusDecided        PersonStatus = "DECIDED"
)

// Classify derives the state of p from its avatar and sub-items.
func Classify(p Person) PersonStatus {
	switch {
	case p.Avatar == "":
		return StatusAwaitingAvatar
	case p.Avatar == SharedAvatar:
		return StatusShared
	case len(p.SubItems) == 1 && p.SubItems[0].ItemName == NotEatingItem:
		return StatusNotEating
	}
	for _, si := range p.SubItems {
		if si.ItemName != UndecidedItem {
			return StatusDecided
		}
	}
	return StatusUndecided
}
