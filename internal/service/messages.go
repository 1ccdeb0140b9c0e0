package service

import (
	"github.com/limchang/cafe-test/internal/calculator"
	"github.com/limchang/cafe-test/internal/history"
	"github.com/limchang/cafe-test/internal/models"
	"github.com/limchang/cafe-test/internal/order"
)

// BoardResponse is returned by every board mutation.
type BoardResponse struct {
	Board     order.View           `json:"board"`
	Summary   calculator.Summary   `json:"summary"`
	Headcount calculator.Headcount `json:"headcount"`

	// Changed is false when the call referenced a missing id or was
	// otherwise a no-op.
	Changed bool `json:"changed"`
}

type GroupRequest struct {
	GroupID string `json:"groupId"`
}

type RenameGroupRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type SetCollapsedRequest struct {
	GroupID   string `json:"groupId"`
	Collapsed bool   `json:"collapsed"`
}

type ResetAllRequest struct {
	Confirmed bool `json:"confirmed"`
}

type PersonRequest struct {
	PersonID string `json:"personId"`
}

type SetAvatarRequest struct {
	PersonID string `json:"personId"`
	Avatar   string `json:"avatar"`
}

type SetPersonMemoRequest struct {
	PersonID string `json:"personId"`
	Memo     string `json:"memo"`
}

type SetSubItemsRequest struct {
	PersonID string           `json:"personId"`
	SubItems []models.SubItem `json:"subItems"`
}

type AddSubItemRequest struct {
	PersonID string         `json:"personId"`
	SubItem  models.SubItem `json:"subItem"`
}

type UpdateSubItemRequest struct {
	PersonID  string             `json:"personId"`
	SubItemID string             `json:"subItemId"`
	Patch     order.SubItemPatch `json:"patch"`
}

type SubItemRequest struct {
	PersonID  string `json:"personId"`
	SubItemID string `json:"subItemId"`
}

type SetQuantityRequest struct {
	PersonID  string `json:"personId"`
	SubItemID string `json:"subItemId"`
	Quantity  int    `json:"quantity"`
}

type SetTemperatureRequest struct {
	PersonID    string             `json:"personId"`
	SubItemID   string             `json:"subItemId"`
	Temperature models.Temperature `json:"temperature"`
}

type SetSizeRequest struct {
	PersonID  string           `json:"personId"`
	SubItemID string           `json:"subItemId"`
	Size      models.DrinkSize `json:"size"`
}

// SubItemMemoRequest carries a whole memo for SetMemo or one phrase for
// AddMemoPhrase and RemoveMemoPhrase.
type SubItemMemoRequest struct {
	PersonID  string `json:"personId"`
	SubItemID string `json:"subItemId"`
	Memo      string `json:"memo"`
}

type SetAllNotEatingRequest struct {
	PersonIDs []string `json:"personIds"`
}

type SummaryRequest struct {
	Mode calculator.SummaryMode `json:"mode"`
}

// SummaryLine is an aggregation line with its memos grouped by phrase.
type SummaryLine struct {
	calculator.Line
	MemoGroups []calculator.MemoGroup `json:"memoGroups"`
}

type SummaryResponse struct {
	Lines      []SummaryLine        `json:"lines"`
	TotalCount int                  `json:"totalCount"`
	Text       string               `json:"text"`
	Headcount  calculator.Headcount `json:"headcount"`
}

type SaveHistoryRequest struct {
	Mode calculator.SummaryMode `json:"mode"`
	Memo string                 `json:"memo"`
}

type HistoryIDRequest struct {
	ID string `json:"id"`
}

type LoadHistoryRequest struct {
	ID         string `json:"id"`
	PeopleOnly bool   `json:"peopleOnly"`
}

type UpdateHistoryRequest struct {
	ID    string        `json:"id"`
	Patch history.Patch `json:"patch"`
}

type HistoryEntryResponse struct {
	Entry models.HistoryEntry `json:"entry"`
}

type ListHistoryResponse struct {
	Entries []models.HistoryEntry `json:"entries"`
}

// SettingsResponse is returned by every settings and menu call.
type SettingsResponse struct {
	Settings   models.AppSettings `json:"settings"`
	Menu       order.MenuLists    `json:"menu"`
	QuickPicks []string           `json:"quickPicks"`
}

type SetShowDrinkSizeRequest struct {
	Show bool `json:"show"`
}

type QuickMemoRequest struct {
	Memo string `json:"memo"`
}

type SetEmojiRequest struct {
	Index int    `json:"index"`
	Emoji string `json:"emoji"`
}

type SetRandomCategoryRequest struct {
	Category models.EmojiCategory `json:"category"`
}

type SetDrinkCheckedRequest struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type MenuItemRequest struct {
	Type models.ItemType `json:"type"`
	Name string          `json:"name"`
}

type SetMenuListRequest struct {
	Type  models.ItemType `json:"type"`
	Names []string        `json:"names"`
}

type MoveMenuItemRequest struct {
	Type models.ItemType `json:"type"`
	From int             `json:"from"`
	To   int             `json:"to"`
}

type SearchMenuRequest struct {
	Type  models.ItemType `json:"type"`
	Query string          `json:"query"`
}

type SearchMenuResponse struct {
	Items []string `json:"items"`
}

type RandomAvatarResponse struct {
	Avatar string `json:"avatar"`
}
