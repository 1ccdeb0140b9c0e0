package models

// EmojiCategory selects the palette used for random avatars.
type EmojiCategory string

const (
	CategoryAnimals EmojiCategory = "ANIMALS"
	CategoryFaces   EmojiCategory = "FACES"
	CategoryHands   EmojiCategory = "HANDS"
	CategoryNumbers EmojiCategory = "NUMBERS"
)

// Valid reports whether c is a known category.
func (c EmojiCategory) Valid() bool {
	_, ok := CategoryEmojis[c]
	return ok
}

// CategoryEmojis are the random-avatar palettes.
var CategoryEmojis = map[EmojiCategory][]string{
	CategoryAnimals: {"🦁", "🐯", "🐨", "🐷", "🐸", "🐵", "🐔", "🐧", "🐦", "🐥", "🦉", "🐺", "🐻‍❄️", "🐴", "🦄", "🐝"},
	CategoryFaces:   {"😀", "😍", "😎", "🤔", "😴", "🤩", "🥳", "🥺", "😡", "🤢", "🤡", "👻", "👽", "🤖", "💩", "✨"},
	CategoryHands:   {"👍", "👎", "👊", "✌️", "👌", "✋", "👐", "🙌", "👏", "🙏", "🤝", "🤘", "🤙", "👋", "✍️", "💪"},
	CategoryNumbers: {"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"},
}

// DefaultEmojis is the fixed-length avatar palette shown on an empty seat.
var DefaultEmojis = []string{"👨", "👩", "👶", "🧓", "👵", "👦", "👧", "🐶", "😺", "🐯", "🐷"}

// DefaultQuickMemos are the request phrases offered out of the box.
var DefaultQuickMemos = []string{"샷추가", "덜쓰게", "물 따로", "얼음물"}

// AppSettings holds the user preferences persisted in the settings blob.
type AppSettings struct {
	// ShowDrinkSize enables cup sizes in the menu and in aggregation.
	ShowDrinkSize bool `json:"showDrinkSize"`

	// QuickMemos are the one-tap request phrases, unique and ordered.
	QuickMemos []string `json:"quickMemos"`

	// DefaultEmojis is the avatar palette, addressed by index.
	DefaultEmojis []string `json:"defaultEmojis"`

	// RandomCategory selects the palette of the dice button.
	RandomCategory EmojiCategory `json:"randomCategory"`

	// CheckedDrinkItems are the pinned drink shortcuts.
	CheckedDrinkItems []string `json:"checkedDrinkItems"`
}

// DefaultSettings returns a fresh copy of the built-in defaults.
func DefaultSettings() AppSettings {
	return AppSettings{
		ShowDrinkSize:     false,
		QuickMemos:        append([]string(nil), DefaultQuickMemos...),
		DefaultEmojis:     append([]string(nil), DefaultEmojis...),
		RandomCategory:    CategoryAnimals,
		CheckedDrinkItems: []string{},
	}
}

// Clone returns a deep copy of s.
func (s AppSettings) Clone() AppSettings {
	s.QuickMemos = append([]string(nil), s.QuickMemos...)
	s.DefaultEmojis = append([]string(nil), s.DefaultEmojis...)
	s.CheckedDrinkItems = append([]string{}, s.CheckedDrinkItems...)
	return s
}
