package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		person Person
		want   PersonStatus
	}{
		{
			name:   "no avatar",
			person: Person{ID: "p1"},
			want:   StatusAwaitingAvatar,
		},
		{
			name:   "no avatar with items",
			person: Person{ID: "p1", SubItems: []SubItem{{ItemName: "아메리카노"}}},
			want:   StatusAwaitingAvatar,
		},
		{
			name:   "shared slot",
			person: Person{ID: "p1", Avatar: SharedAvatar, SubItems: []SubItem{{ItemName: NotEatingItem}}},
			want:   StatusShared,
		},
		{
			name:   "single not-eating item",
			person: Person{ID: "p1", Avatar: "🐶", SubItems: []SubItem{{ItemName: NotEatingItem}}},
			want:   StatusNotEating,
		},
		{
			name: "not-eating next to a real item",
			person: Person{ID: "p1", Avatar: "🐶", SubItems: []SubItem{
				{ItemName: NotEatingItem},
				{ItemName: "스콘"},
			}},
			want: StatusDecided,
		},
		{
			name:   "avatar without items",
			person: Person{ID: "p1", Avatar: "🐶"},
			want:   StatusUndecided,
		},
		{
			name: "only undecided items",
			person: Person{ID: "p1", Avatar: "🐶", SubItems: []SubItem{
				{ItemName: UndecidedItem},
				{ItemName: UndecidedItem},
			}},
			want: StatusUndecided,
		},
		{
			name: "one concrete item",
			person: Person{ID: "p1", Avatar: "🐶", SubItems: []SubItem{
				{ItemName: UndecidedItem},
				{ItemName: "카페라떼"},
			}},
			want: StatusDecided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.person); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQty(t *testing.T) {
	if got := (SubItem{}).Qty(); got != 1 {
		t.Errorf("zero quantity: got %d, want 1", got)
	}
	if got := (SubItem{Quantity: -3}).Qty(); got != 1 {
		t.Errorf("negative quantity: got %d, want 1", got)
	}
	if got := (SubItem{Quantity: 4}).Qty(); got != 4 {
		t.Errorf("quantity 4: got %d, want 4", got)
	}
}

func TestCloneGroupsIsDeep(t *testing.T) {
	original := []Group{{
		ID:   "g1",
		Name: "1번 테이블",
		Items: []Person{
			{ID: "p1", Avatar: "🐶", SubItems: []SubItem{{ID: "s1", ItemName: "아메리카노", Quantity: 2}}},
			{ID: "p2", Avatar: SharedAvatar},
		},
	}}

	clone := CloneGroups(original)
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone differs (-original +clone):\n%s", diff)
	}

	clone[0].Name = "changed"
	clone[0].Items[0].Avatar = "🐱"
	clone[0].Items[0].SubItems[0].Quantity = 9
	clone[0].Items = append(clone[0].Items, Person{ID: "p3"})

	if original[0].Name != "1번 테이블" {
		t.Errorf("name leaked into original: %q", original[0].Name)
	}
	if original[0].Items[0].Avatar != "🐶" {
		t.Errorf("avatar leaked into original: %q", original[0].Items[0].Avatar)
	}
	if original[0].Items[0].SubItems[0].Quantity != 2 {
		t.Errorf("quantity leaked into original: %d", original[0].Items[0].SubItems[0].Quantity)
	}
	if len(original[0].Items) != 2 {
		t.Errorf("append leaked into original: %d items", len(original[0].Items))
	}
}

func TestGroupSharedSlot(t *testing.T) {
	g := Group{Items: []Person{{ID: "a"}, {ID: "b", Avatar: SharedAvatar}}}
	if got := g.SharedSlot(); got != 1 {
		t.Errorf("SharedSlot() = %d, want 1", got)
	}
	if got := (Group{Items: []Person{{ID: "a"}}}).SharedSlot(); got != -1 {
		t.Errorf("SharedSlot() without slot = %d, want -1", got)
	}
}

func TestGroupNumberAndLabel(t *testing.T) {
	tests := []struct {
		name      string
		wantNum   int
		wantOK    bool
		wantLabel string
	}{
		{name: "3번 테이블", wantNum: 3, wantOK: true, wantLabel: "3"},
		{name: "창가 12 자리 7", wantNum: 12, wantOK: true, wantLabel: "12"},
		{name: "창가", wantLabel: "창"},
		{name: "  창가", wantLabel: "창"},
		{name: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Group{Name: tt.name}
			n, ok := g.Number()
			if n != tt.wantNum || ok != tt.wantOK {
				t.Errorf("Number() = %d, %v, want %d, %v", n, ok, tt.wantNum, tt.wantOK)
			}
			if got := g.Label(); got != tt.wantLabel {
				t.Errorf("Label() = %q, want %q", got, tt.wantLabel)
			}
		})
	}
}

func TestDefaultSettingsAreIndependent(t *testing.T) {
	a := DefaultSettings()
	a.QuickMemos[0] = "changed"
	a.DefaultEmojis[0] = "🤖"

	b := DefaultSettings()
	if b.QuickMemos[0] != "샷추가" {
		t.Errorf("default quick memos mutated: %q", b.QuickMemos[0])
	}
	if b.DefaultEmojis[0] != "👨" {
		t.Errorf("default emojis mutated: %q", b.DefaultEmojis[0])
	}
	if len(DefaultEmojis) != 11 {
		t.Errorf("default palette length = %d, want 11", len(DefaultEmojis))
	}
}
