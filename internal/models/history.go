package models

// HistoryEntry represents a saved snapshot of the whole order.
// Only Memo and Title may change after the entry is created.
type HistoryEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string `json:"id"`

	// Timestamp is the Unix time in milliseconds when the entry was saved.
	Timestamp int64 `json:"timestamp"`

	// Groups is a deep copy of every table at save time.
	Groups []Group `json:"groups"`

	// TotalCount is the number of ordered portions at save time.
	TotalCount int `json:"totalCount"`

	// SummaryText is the copyable order text shown when the entry was saved.
	SummaryText string `json:"summaryText"`

	// Memo is an optional user note.
	Memo string `json:"memo,omitempty"`

	// Title is generated from the table numbers (e.g., "1, 3번 테이블").
	Title string `json:"title"`
}
