package order

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/limchang/cafe-test/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTestBoard(t *testing.T, cfg Config) *Board {
	t.Helper()
	b := NewBoard(NewMenu(), cfg)
	t.Cleanup(b.Close)
	b.AddGroup()
	return b
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestAddGroupDefaults(t *testing.T) {
	b := setupTestBoard(t, Config{})
	for range 3 {
		b.AddGroup()
	}

	groups := b.Groups()
	if len(groups) != 4 {
		t.Fatalf("groups = %d, want 4", len(groups))
	}

	var names []string
	for _, g := range groups {
		names = append(names, g.Name)
		if len(g.Items) != 5 {
			t.Errorf("%s has %d seats, want 5", g.Name, len(g.Items))
		}
		if si := g.SharedSlot(); si != len(g.Items)-1 {
			t.Errorf("%s shared slot at %d, want last", g.Name, si)
		}
		for _, p := range g.Items[:4] {
			if p.Avatar != "" || len(p.SubItems) != 0 {
				t.Errorf("seat %+v is not empty", p)
			}
		}
	}
	want := []string{"1번 테이블", "2번 테이블", "3번 테이블", "4번 테이블"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if got := b.Snapshot().ActiveGroupID; got != groups[3].ID {
		t.Errorf("active group = %q, want the newest table", got)
	}
}

func TestNextTableNumberUsesHighest(t *testing.T) {
	groups := []models.Group{{Name: "2번 테이블"}, {Name: "창가 7"}, {Name: "테라스"}}
	if got := NextTableNumber(groups); got != 8 {
		t.Errorf("NextTableNumber() = %d, want 8", got)
	}
	if got := NextTableNumber(nil); got != 1 {
		t.Errorf("NextTableNumber(nil) = %d, want 1", got)
	}
}

func TestRemoveGroupAndUndo(t *testing.T) {
	b := setupTestBoard(t, Config{UndoWindow: time.Hour})
	second := b.AddGroup()
	first := b.Groups()[0]

	if !b.SetActiveGroup(second.ID) {
		t.Fatal("SetActiveGroup() = false")
	}
	if !b.RemoveGroup(second.ID) {
		t.Fatal("RemoveGroup() = false")
	}

	v := b.Snapshot()
	if len(v.Groups) != 1 || v.ActiveGroupID != first.ID {
		t.Errorf("after remove: %d groups, active %q; want 1, %q", len(v.Groups), v.ActiveGroupID, first.ID)
	}
	if !v.CanUndo || v.Notice == nil {
		t.Errorf("after remove: canUndo=%v notice=%v", v.CanUndo, v.Notice)
	}

	if !b.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := len(b.Groups()); got != 2 {
		t.Errorf("after undo: %d groups, want 2", got)
	}
	if b.Undo() {
		t.Error("second Undo() = true, want single-step undo")
	}
}

func TestUndoSnapshotIsDeepCopy(t *testing.T) {
	b := setupTestBoard(t, Config{UndoWindow: time.Hour})
	g := b.Groups()[0]
	b.RenameGroup(g.ID, "창가")

	b.mu.Lock()
	b.groups[0].Name = "changed in place"
	b.groups[0].Items[0].Avatar = "🦊"
	b.mu.Unlock()

	if !b.Undo() {
		t.Fatal("Undo() = false")
	}
	restored := b.Groups()[0]
	if restored.Name != g.Name || restored.Items[0].Avatar != "" {
		t.Errorf("snapshot shares memory with the live tree: %q, %q", restored.Name, restored.Items[0].Avatar)
	}
}

func TestUndoExpires(t *testing.T) {
	b := setupTestBoard(t, Config{UndoWindow: 20 * time.Millisecond})
	g := b.Groups()[0]
	b.RemoveGroup(g.ID)

	waitFor(t, func() bool { return !b.Snapshot().CanUndo })
	if b.Undo() {
		t.Error("Undo() after expiry = true")
	}
	if got := len(b.Groups()); got != 0 {
		t.Errorf("groups = %d, want 0", got)
	}
}

func TestNoticeDismisses(t *testing.T) {
	b := setupTestBoard(t, Config{NoticeTTL: 20 * time.Millisecond})
	b.RenameGroup(b.Groups()[0].ID, "창가")

	if b.Snapshot().Notice == nil {
		t.Fatal("expected a notice after rename")
	}
	waitFor(t, func() bool { return b.Snapshot().Notice == nil })
}

func TestRenameGroup(t *testing.T) {
	b := setupTestBoard(t, Config{UndoWindow: time.Hour})
	id := b.Groups()[0].ID

	tests := []struct {
		input string
		want  string
	}{
		{input: "  창가 자리 ", want: "창가 자리"},
		{input: "   ", want: "창가 자리"},
		{input: "", want: "창가 자리"},
	}
	for _, tt := range tests {
		if !b.RenameGroup(id, tt.input) {
			t.Fatalf("RenameGroup(%q) = false", tt.input)
		}
		if got := b.Groups()[0].Name; got != tt.want {
			t.Errorf("RenameGroup(%q): name = %q, want %q", tt.input, got, tt.want)
		}
	}

	if !b.Undo() {
		t.Fatal("Undo() after rename = false")
	}
	if got := b.Groups()[0].Name; got != "창가 자리" {
		t.Errorf("undo restored %q, want the state before the last rename", got)
	}

	if b.UpdateGroupName(id, " ") {
		t.Error("UpdateGroupName with blank name = true")
	}
	if !b.UpdateGroupName(id, "테라스") || b.Groups()[0].Name != "테라스" {
		t.Error("UpdateGroupName did not rename")
	}
}

func TestMissingIDsAreNoOps(t *testing.T) {
	b := setupTestBoard(t, Config{})
	before := b.Snapshot()

	checks := map[string]bool{
		"RemoveGroup":    b.RemoveGroup("nope"),
		"RenameGroup":    b.RenameGroup("nope", "x"),
		"RemovePerson":   b.RemovePerson("nope"),
		"ResetPerson":    b.ResetPerson("nope"),
		"SetSubItems":    b.SetSubItems("nope", nil),
		"RemoveSubItem":  b.RemoveSubItem("nope", "nope"),
		"SetQuantity":    b.SetQuantity("nope", "nope", 3),
		"SetMemo":        b.SetMemo("nope", "nope", "x"),
		"SetCollapsed":   b.SetCollapsed("nope", true),
		"SetActiveGroup": b.SetActiveGroup("nope"),
	}
	for name, ok := range checks {
		if ok {
			t.Errorf("%s on a missing id = true", name)
		}
	}
	if _, ok := b.AddPerson("nope"); ok {
		t.Error("AddPerson on a missing table = true")
	}
	if ok, err := b.SetAvatar("nope", "🐶"); ok || err != nil {
		t.Errorf("SetAvatar on a missing seat = %v, %v", ok, err)
	}

	after := b.Snapshot()
	if diff := cmp.Diff(before.Groups, after.Groups); diff != "" {
		t.Errorf("tree changed (-before +after):\n%s", diff)
	}
	if after.Version != before.Version {
		t.Errorf("version moved from %d to %d", before.Version, after.Version)
	}
}

func TestAddPersonBeforeSharedSlot(t *testing.T) {
	b := setupTestBoard(t, Config{})
	g := b.Groups()[0]

	p, ok := b.AddPerson(g.ID)
	if !ok {
		t.Fatal("AddPerson() = false")
	}
	items := b.Groups()[0].Items
	if len(items) != 6 || items[4].ID != p.ID || !items[5].IsShared() {
		t.Errorf("new seat not placed before the shared slot: %+v", items)
	}
}

func TestSharedSlotLifecycle(t *testing.T) {
	b := setupTestBoard(t, Config{})
	g := b.Groups()[0]
	shared := g.Items[g.SharedSlot()]

	if _, ok := b.AddSharedSlot(g.ID); ok {
		t.Error("AddSharedSlot on a table with a slot = true")
	}
	b.RemovePerson(shared.ID)
	if b.Groups()[0].SharedSlot() != -1 {
		t.Fatal("shared slot not removed")
	}
	p, ok := b.AddSharedSlot(g.ID)
	if !ok || !p.IsShared() {
		t.Fatalf("AddSharedSlot() = %+v, %v", p, ok)
	}
}

func TestSetAvatar(t *testing.T) {
	b := setupTestBoard(t, Config{})
	g := b.Groups()[0]
	seat := g.Items[0]
	shared := g.Items[g.SharedSlot()]

	if _, err := b.SetAvatar(seat.ID, models.SharedAvatar); !errors.Is(err, ErrReservedAvatar) {
		t.Errorf("SetAvatar(shared emoji) error = %v, want ErrReservedAvatar", err)
	}
	if ok, _ := b.SetAvatar(shared.ID, "🐶"); ok {
		t.Error("shared slot avatar changed")
	}
	if ok, err := b.SetAvatar(seat.ID, "🐶"); !ok || err != nil {
		t.Fatalf("SetAvatar() = %v, %v", ok, err)
	}

	v := b.Snapshot()
	if v.Statuses[seat.ID] != models.StatusUndecided {
		t.Errorf("status = %s, want UNDECIDED", v.Statuses[seat.ID])
	}
	if v.Statuses[shared.ID] != models.StatusShared {
		t.Errorf("shared status = %s", v.Statuses[shared.ID])
	}

	for _, g := range v.Groups {
		n := 0
		for _, p := range g.Items {
			if p.IsShared() {
				n++
			}
		}
		if n > 1 {
			t.Errorf("%s has %d shared slots", g.Name, n)
		}
	}
}

func TestResetPerson(t *testing.T) {
	b := setupTestBoard(t, Config{})
	seat := b.Groups()[0].Items[0]
	b.SetAvatar(seat.ID, "🐶")
	b.AddSubItem(seat.ID, models.SubItem{ItemName: "아메리카노"})
	b.SetPersonMemo(seat.ID, "늦게 옴")

	if !b.ResetPerson(seat.ID) {
		t.Fatal("ResetPerson() = false")
	}
	p := b.Groups()[0].Items[0]
	if p.Avatar != "" || len(p.SubItems) != 0 || p.Memo != "" {
		t.Errorf("seat not reset: %+v", p)
	}
	if got := b.Snapshot().Statuses[seat.ID]; got != models.StatusAwaitingAvatar {
		t.Errorf("status = %s, want AWAITING_AVATAR", got)
	}
}

func TestResetSharedSlotKeepsAvatar(t *testing.T) {
	b := setupTestBoard(t, Config{})
	g := b.Groups()[0]
	slot := g.Items[g.SharedSlot()]
	b.AddSubItem(slot.ID, models.SubItem{Type: models.ItemTypeDessert, ItemName: "케이크"})

	if !b.ResetPerson(slot.ID) {
		t.Fatal("ResetPerson() = false")
	}
	p := b.Groups()[0].Items[g.SharedSlot()]
	if p.Avatar != models.SharedAvatar || len(p.SubItems) != 0 {
		t.Errorf("shared slot after reset: %+v", p)
	}
	if got := b.Snapshot().Statuses[slot.ID]; got != models.StatusShared {
		t.Errorf("status = %s, want SHARED", got)
	}
}

func TestAddSubItemDefaultsAndMenu(t *testing.T) {
	b := setupTestBoard(t, Config{})
	seat := b.Groups()[0].Items[0]

	tests := []struct {
		item     models.SubItem
		wantTemp models.Temperature
		wantType models.ItemType
	}{
		{item: models.SubItem{ItemName: "딸기 스무디"}, wantTemp: models.TemperatureIce, wantType: models.ItemTypeDrink},
		{item: models.SubItem{ItemName: "아이스 초코"}, wantTemp: models.TemperatureIce, wantType: models.ItemTypeDrink},
		{item: models.SubItem{ItemName: "유자차"}, wantTemp: models.TemperatureHot, wantType: models.ItemTypeDrink},
		{item: models.SubItem{ItemName: "티라미수", Type: models.ItemTypeDessert}, wantType: models.ItemTypeDessert},
	}
	for _, tt := range tests {
		got, ok := b.AddSubItem(seat.ID, tt.item)
		if !ok {
			t.Fatalf("AddSubItem(%s) = false", tt.item.ItemName)
		}
		if got.ID == "" || got.Type != tt.wantType || got.Temperature != tt.wantTemp || got.Qty() != 1 {
			t.Errorf("AddSubItem(%s) = %+v", tt.item.ItemName, got)
		}
		if got.Type == models.ItemTypeDrink && got.Size != models.SizeTall {
			t.Errorf("AddSubItem(%s) size = %q, want Tall", tt.item.ItemName, got.Size)
		}
	}

	lists := b.Menu().Lists()
	for _, want := range []string{"딸기 스무디", "아이스 초코", "유자차"} {
		if !slices.Contains(lists.Drinks, want) {
			t.Errorf("drink %q not registered in menu", want)
		}
	}
	if !slices.Contains(lists.Desserts, "티라미수") {
		t.Error("dessert not registered in menu")
	}
}

func TestSetSubItemsAppliesDefaults(t *testing.T) {
	b := setupTestBoard(t, Config{})
	seats := b.Groups()[0].Items

	b.SetSubItems(seats[0].ID, []models.SubItem{{Type: models.ItemTypeDrink, ItemName: "아메리카노"}})
	b.AddSubItem(seats[1].ID, models.SubItem{Type: models.ItemTypeDrink, ItemName: "아메리카노"})

	got := b.Groups()[0].Items[0].SubItems[0]
	if got.Temperature != models.TemperatureHot || got.Size != models.SizeTall || got.ID == "" {
		t.Errorf("SetSubItems stored %+v", got)
	}

	summary := b.Summary(false)
	if len(summary.Lines) != 1 || summary.Lines[0].Count != 2 {
		t.Errorf("lines = %+v, want one line of 2", summary.Lines)
	}
}

func TestSetSubItemsReplacesDuplicateIDs(t *testing.T) {
	b := setupTestBoard(t, Config{})
	seat := b.Groups()[0].Items[0]

	b.SetSubItems(seat.ID, []models.SubItem{
		{ID: "x", Type: models.ItemTypeDessert, ItemName: "케이크"},
		{ID: "x", Type: models.ItemTypeDessert, ItemName: "스콘"},
	})

	items := b.Groups()[0].Items[0].SubItems
	if len(items) != 2 || items[0].ID != "x" || items[1].ID == "x" || items[1].ID == "" {
		t.Fatalf("ids = %q, %q", items[0].ID, items[1].ID)
	}
	if !b.SetQuantity(seat.ID, items[1].ID, 2) {
		t.Fatal("second item not addressable by its id")
	}
	if got := b.Groups()[0].Items[0].SubItems[1].Quantity; got != 2 {
		t.Errorf("quantity = %d, want 2", got)
	}
}

func TestSubItemEdits(t *testing.T) {
	b := setupTestBoard(t, Config{})
	seat := b.Groups()[0].Items[0]
	si, _ := b.AddSubItem(seat.ID, models.SubItem{ItemName: "카페라떼"})

	b.SetQuantity(seat.ID, si.ID, 0)
	b.SetTemperature(seat.ID, si.ID, models.TemperatureIce)
	b.SetSize(seat.ID, si.ID, models.SizeVenti)
	b.SetMemo(seat.ID, si.ID, " 샷추가 ,,")
	b.AddMemoPhrase(seat.ID, si.ID, "덜쓰게")
	if b.AddMemoPhrase(seat.ID, si.ID, "샷추가") {
		t.Error("duplicate phrase was added")
	}

	got := b.Groups()[0].Items[0].SubItems[0]
	want := models.SubItem{
		ID: si.ID, Type: models.ItemTypeDrink, ItemName: "카페라떼",
		Temperature: models.TemperatureIce, Size: models.SizeVenti,
		Quantity: 1, Memo: "샷추가, 덜쓰게",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sub-item mismatch (-want +got):\n%s", diff)
	}

	if b.SetTemperature(seat.ID, si.ID, "WARM") {
		t.Error("invalid temperature accepted")
	}
	b.RemoveMemoPhrase(seat.ID, si.ID, "샷추가")
	qty := 4
	name := "바닐라라떼"
	b.UpdateSubItem(seat.ID, si.ID, SubItemPatch{Quantity: &qty, ItemName: &name})

	got = b.Groups()[0].Items[0].SubItems[0]
	if got.Memo != "덜쓰게" || got.Quantity != 4 || got.ItemName != "바닐라라떼" {
		t.Errorf("after patch: %+v", got)
	}
	if !slices.Contains(b.Menu().Items(models.ItemTypeDrink), "바닐라라떼") {
		t.Error("renamed drink not registered in menu")
	}

	if !b.RemoveSubItem(seat.ID, si.ID) || len(b.Groups()[0].Items[0].SubItems) != 0 {
		t.Error("RemoveSubItem did not remove")
	}
}

func TestSetAllNotEating(t *testing.T) {
	b := setupTestBoard(t, Config{})
	g := b.Groups()[0]
	ids := []string{g.Items[0].ID, g.Items[1].ID, g.Items[g.SharedSlot()].ID, "missing"}
	for _, id := range ids[:2] {
		b.SetAvatar(id, "🐶")
	}

	if n := b.SetAllNotEating(ids); n != 2 {
		t.Errorf("SetAllNotEating() = %d, want 2", n)
	}

	v := b.Snapshot()
	for _, id := range ids[:2] {
		if v.Statuses[id] != models.StatusNotEating {
			t.Errorf("status of %s = %s, want NOT_EATING", id, v.Statuses[id])
		}
	}
	p := v.Groups[0].Items[0]
	if len(p.SubItems) != 1 || p.SubItems[0].Temperature != models.TemperatureHot || p.SubItems[0].Size != models.SizeTall {
		t.Errorf("not-eating sub-items = %+v", p.SubItems)
	}
	if slices.Contains(b.Menu().Items(models.ItemTypeDrink), models.NotEatingItem) {
		t.Error("not-eating sentinel registered in menu")
	}
}

func TestSummaryCache(t *testing.T) {
	b := setupTestBoard(t, Config{})
	seat := b.Groups()[0].Items[0]
	b.AddSubItem(seat.ID, models.SubItem{ItemName: "아메리카노", Quantity: 2})

	s1 := b.Summary(false)
	if s1.TotalCount != 2 {
		t.Fatalf("total = %d, want 2", s1.TotalCount)
	}
	b.AddSubItem(seat.ID, models.SubItem{ItemName: "스콘", Type: models.ItemTypeDessert})
	if got := b.Summary(false).TotalCount; got != 3 {
		t.Errorf("total after edit = %d, want 3 (stale cache?)", got)
	}
}

func TestSnapshotUndecidedTables(t *testing.T) {
	b := setupTestBoard(t, Config{})
	g := b.Groups()[0]
	seat := g.Items[0].ID

	if b.Snapshot().UndecidedTables[g.ID] {
		t.Error("table with only empty seats flagged undecided")
	}

	b.SetAvatar(seat, "🐶")
	if !b.Snapshot().UndecidedTables[g.ID] {
		t.Error("seated person without a choice not flagged")
	}

	b.AddSubItem(seat, models.SubItem{ItemName: "아메리카노"})
	if b.Snapshot().UndecidedTables[g.ID] {
		t.Error("table still flagged after everyone seated chose")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	b := setupTestBoard(t, Config{})
	seat := b.Groups()[0].Items[0]
	b.AddSubItem(seat.ID, models.SubItem{ItemName: "아메리카노"})

	v := b.Snapshot()
	v.Groups[0].Items[0].SubItems[0].ItemName = "changed"
	v.Groups[0].Name = "changed"

	g := b.Groups()[0]
	if g.Name == "changed" || g.Items[0].SubItems[0].ItemName == "changed" {
		t.Error("snapshot shares memory with the board")
	}
}

func TestHighlightClears(t *testing.T) {
	b := setupTestBoard(t, Config{HighlightTTL: 20 * time.Millisecond})
	b.AddGroup()
	first := b.Groups()[0]

	gid, ok := b.Highlight(first.Items[1].ID)
	if !ok || gid != first.ID {
		t.Fatalf("Highlight() = %q, %v", gid, ok)
	}
	v := b.Snapshot()
	if v.HighlightedID != first.Items[1].ID || v.ActiveGroupID != first.ID {
		t.Errorf("highlight=%q active=%q", v.HighlightedID, v.ActiveGroupID)
	}
	waitFor(t, func() bool { return b.Snapshot().HighlightedID == "" })
}

func TestResetAll(t *testing.T) {
	b := setupTestBoard(t, Config{})
	b.AddGroup()
	b.AddGroup()

	if b.ResetAll(false) {
		t.Error("ResetAll(false) = true")
	}
	if got := len(b.Groups()); got != 3 {
		t.Errorf("declined reset changed the board: %d groups", got)
	}

	if !b.ResetAll(true) {
		t.Fatal("ResetAll(true) = false")
	}
	groups := b.Groups()
	if len(groups) != 1 || groups[0].Name != "1번 테이블" {
		t.Errorf("after reset: %+v", groups)
	}
}

func TestLoadGroups(t *testing.T) {
	b := setupTestBoard(t, Config{})
	in := []models.Group{{ID: "g", Name: "5번 테이블", Items: []models.Person{{ID: "p", Avatar: "🐶"}}}}

	b.LoadGroups(in)
	in[0].Name = "mutated"

	v := b.Snapshot()
	if v.Groups[0].Name != "5번 테이블" || v.ActiveGroupID != "g" {
		t.Errorf("loaded view = %+v", v)
	}
	if v.Groups[0].Items[0].SubItems == nil {
		t.Error("nil sub-items not normalized")
	}
	if g := b.AddGroup(); g.Name != "6번 테이블" {
		t.Errorf("next table = %q, want 6번 테이블", g.Name)
	}
}
