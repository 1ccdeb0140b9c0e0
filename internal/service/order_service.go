package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/limchang/cafe-test/internal/calculator"
	"github.com/limchang/cafe-test/internal/models"
	"github.com/limchang/cafe-test/internal/order"
	"github.com/limchang/cafe-test/internal/settings"
)

// OrderService exposes the order board.
type OrderService struct {
	board    *order.Board
	settings *settings.Manager
}

// NewOrderService creates a new OrderService over the given board.
func NewOrderService(board *order.Board, settings *settings.Manager) *OrderService {
	return &OrderService{board: board, settings: settings}
}

// boardResponse snapshots the board together with its summary.
func boardResponse(board *order.Board, settings *settings.Manager, changed bool) *connect.Response[BoardResponse] {
	view := board.Snapshot()
	return connect.NewResponse(&BoardResponse{
		Board:     view,
		Summary:   board.Summary(settings.Get().ShowDrinkSize),
		Headcount: calculator.CountPeople(view.Groups),
		Changed:   changed,
	})
}

func (s *OrderService) respond(changed bool) *connect.Response[BoardResponse] {
	return boardResponse(s.board, s.settings, changed)
}

func (s *OrderService) GetBoard(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[BoardResponse], error) {
	return s.respond(true), nil
}

// GetSummary aggregates the whole order and renders its clipboard text.
func (s *OrderService) GetSummary(ctx context.Context, req *connect.Request[SummaryRequest]) (*connect.Response[SummaryResponse], error) {
	mode := req.Msg.Mode
	if mode == "" {
		mode = calculator.ModeAll
	}
	if mode != calculator.ModeAll && mode != calculator.ModeTable {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown summary mode %q", mode))
	}

	show := s.settings.Get().ShowDrinkSize
	groups := s.board.Groups()
	summary := s.board.Summary(show)

	lines := make([]SummaryLine, len(summary.Lines))
	for i, l := range summary.Lines {
		lines[i] = SummaryLine{Line: l, MemoGroups: calculator.GroupMemos(l)}
	}

	slog.Debug("Summary computed", "mode", mode, "lines", len(lines), "total_count", summary.TotalCount)

	return connect.NewResponse(&SummaryResponse{
		Lines:      lines,
		TotalCount: summary.TotalCount,
		Text:       calculator.SummaryText(mode, groups, show),
		Headcount:  calculator.CountPeople(groups),
	}), nil
}

func (s *OrderService) AddGroup(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[BoardResponse], error) {
	g := s.board.AddGroup()
	slog.Info("Table added", "group_id", g.ID, "name", g.Name)
	return s.respond(true), nil
}

func (s *OrderService) RemoveGroup(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[BoardResponse], error) {
	changed := s.board.RemoveGroup(req.Msg.GroupID)
	if changed {
		slog.Info("Table removed", "group_id", req.Msg.GroupID)
	}
	return s.respond(changed), nil
}

// RenameGroup commits a table name with an undo snapshot.
func (s *OrderService) RenameGroup(ctx context.Context, req *connect.Request[RenameGroupRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.RenameGroup(req.Msg.GroupID, req.Msg.Name)), nil
}

// UpdateGroupName changes a table name while it is being typed.
func (s *OrderService) UpdateGroupName(ctx context.Context, req *connect.Request[RenameGroupRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.UpdateGroupName(req.Msg.GroupID, req.Msg.Name)), nil
}

func (s *OrderService) SetActiveGroup(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.SetActiveGroup(req.Msg.GroupID)), nil
}

func (s *OrderService) SetCollapsed(ctx context.Context, req *connect.Request[SetCollapsedRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.SetCollapsed(req.Msg.GroupID, req.Msg.Collapsed)), nil
}

func (s *OrderService) Undo(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[BoardResponse], error) {
	changed := s.board.Undo()
	if changed {
		slog.Info("Undo applied")
	}
	return s.respond(changed), nil
}

// ResetAll discards every table. The caller must confirm.
func (s *OrderService) ResetAll(ctx context.Context, req *connect.Request[ResetAllRequest]) (*connect.Response[BoardResponse], error) {
	if !req.Msg.Confirmed {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("reset requires confirmation"))
	}
	s.board.ResetAll(true)
	slog.Info("Board reset")
	return s.respond(true), nil
}

func (s *OrderService) AddPerson(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[BoardResponse], error) {
	_, ok := s.board.AddPerson(req.Msg.GroupID)
	return s.respond(ok), nil
}

func (s *OrderService) AddSharedSlot(ctx context.Context, req *connect.Request[GroupRequest]) (*connect.Response[BoardResponse], error) {
	_, ok := s.board.AddSharedSlot(req.Msg.GroupID)
	return s.respond(ok), nil
}

func (s *OrderService) RemovePerson(ctx context.Context, req *connect.Request[PersonRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.RemovePerson(req.Msg.PersonID)), nil
}

func (s *OrderService) ResetPerson(ctx context.Context, req *connect.Request[PersonRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.ResetPerson(req.Msg.PersonID)), nil
}

func (s *OrderService) SetAvatar(ctx context.Context, req *connect.Request[SetAvatarRequest]) (*connect.Response[BoardResponse], error) {
	changed, err := s.board.SetAvatar(req.Msg.PersonID, req.Msg.Avatar)
	if err != nil {
		slog.Warn("SetAvatar rejected", "person_id", req.Msg.PersonID, "error", err)
		return nil, toConnectError(err)
	}
	return s.respond(changed), nil
}

// SetRandomAvatar gives a seat an emoji from the configured category.
func (s *OrderService) SetRandomAvatar(ctx context.Context, req *connect.Request[PersonRequest]) (*connect.Response[BoardResponse], error) {
	changed, err := s.board.SetAvatar(req.Msg.PersonID, s.settings.RandomAvatar())
	if err != nil {
		return nil, toConnectError(err)
	}
	return s.respond(changed), nil
}

func (s *OrderService) SetPersonMemo(ctx context.Context, req *connect.Request[SetPersonMemoRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.SetPersonMemo(req.Msg.PersonID, req.Msg.Memo)), nil
}

// Highlight marks a seat briefly and makes its table active.
func (s *OrderService) Highlight(ctx context.Context, req *connect.Request[PersonRequest]) (*connect.Response[BoardResponse], error) {
	_, ok := s.board.Highlight(req.Msg.PersonID)
	return s.respond(ok), nil
}

func (s *OrderService) ToggleSharedSync(ctx context.Context, req *connect.Request[PersonRequest]) (*connect.Response[BoardResponse], error) {
	active, err := s.board.ToggleSharedSync(req.Msg.PersonID)
	if err != nil {
		slog.Warn("ToggleSharedSync rejected", "person_id", req.Msg.PersonID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Shared sync toggled", "person_id", req.Msg.PersonID, "active", active)
	return s.respond(true), nil
}

func (s *OrderService) SetSubItems(ctx context.Context, req *connect.Request[SetSubItemsRequest]) (*connect.Response[BoardResponse], error) {
	for _, si := range req.Msg.SubItems {
		if err := validateSubItem(si); err != nil {
			return nil, err
		}
	}
	return s.respond(s.board.SetSubItems(req.Msg.PersonID, req.Msg.SubItems)), nil
}

func (s *OrderService) AddSubItem(ctx context.Context, req *connect.Request[AddSubItemRequest]) (*connect.Response[BoardResponse], error) {
	if err := validateSubItem(req.Msg.SubItem); err != nil {
		return nil, err
	}
	_, ok := s.board.AddSubItem(req.Msg.PersonID, req.Msg.SubItem)
	return s.respond(ok), nil
}

func (s *OrderService) UpdateSubItem(ctx context.Context, req *connect.Request[UpdateSubItemRequest]) (*connect.Response[BoardResponse], error) {
	p := req.Msg.Patch
	if p.Type != nil && !p.Type.Valid() {
		return nil, invalidArgument("item type", string(*p.Type))
	}
	if p.Temperature != nil && !p.Temperature.Valid() {
		return nil, invalidArgument("temperature", string(*p.Temperature))
	}
	if p.Size != nil && !p.Size.Valid() {
		return nil, invalidArgument("size", string(*p.Size))
	}
	return s.respond(s.board.UpdateSubItem(req.Msg.PersonID, req.Msg.SubItemID, p)), nil
}

func (s *OrderService) RemoveSubItem(ctx context.Context, req *connect.Request[SubItemRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.RemoveSubItem(req.Msg.PersonID, req.Msg.SubItemID)), nil
}

func (s *OrderService) SetQuantity(ctx context.Context, req *connect.Request[SetQuantityRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.SetQuantity(req.Msg.PersonID, req.Msg.SubItemID, req.Msg.Quantity)), nil
}

func (s *OrderService) SetTemperature(ctx context.Context, req *connect.Request[SetTemperatureRequest]) (*connect.Response[BoardResponse], error) {
	if !req.Msg.Temperature.Valid() {
		return nil, invalidArgument("temperature", string(req.Msg.Temperature))
	}
	return s.respond(s.board.SetTemperature(req.Msg.PersonID, req.Msg.SubItemID, req.Msg.Temperature)), nil
}

func (s *OrderService) SetSize(ctx context.Context, req *connect.Request[SetSizeRequest]) (*connect.Response[BoardResponse], error) {
	if !req.Msg.Size.Valid() {
		return nil, invalidArgument("size", string(req.Msg.Size))
	}
	return s.respond(s.board.SetSize(req.Msg.PersonID, req.Msg.SubItemID, req.Msg.Size)), nil
}

func (s *OrderService) SetMemo(ctx context.Context, req *connect.Request[SubItemMemoRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.SetMemo(req.Msg.PersonID, req.Msg.SubItemID, req.Msg.Memo)), nil
}

func (s *OrderService) AddMemoPhrase(ctx context.Context, req *connect.Request[SubItemMemoRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.AddMemoPhrase(req.Msg.PersonID, req.Msg.SubItemID, req.Msg.Memo)), nil
}

func (s *OrderService) RemoveMemoPhrase(ctx context.Context, req *connect.Request[SubItemMemoRequest]) (*connect.Response[BoardResponse], error) {
	return s.respond(s.board.RemoveMemoPhrase(req.Msg.PersonID, req.Msg.SubItemID, req.Msg.Memo)), nil
}

// SetAllNotEating marks every listed seat as ordering nothing.
func (s *OrderService) SetAllNotEating(ctx context.Context, req *connect.Request[SetAllNotEatingRequest]) (*connect.Response[BoardResponse], error) {
	n := s.board.SetAllNotEating(req.Msg.PersonIDs)
	slog.Debug("Seats marked not eating", "requested", len(req.Msg.PersonIDs), "changed", n)
	return s.respond(n > 0), nil
}

// validateSubItem rejects unknown enum values. Empty values are filled
// with defaults by the board.
func validateSubItem(si models.SubItem) error {
	if si.Type != "" && !si.Type.Valid() {
		return invalidArgument("item type", string(si.Type))
	}
	if si.Temperature != "" && !si.Temperature.Valid() {
		return invalidArgument("temperature", string(si.Temperature))
	}
	if si.Size != "" && !si.Size.Valid() {
		return invalidArgument("size", string(si.Size))
	}
	return nil
}

func invalidArgument(field, value string) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("invalid %s %q", field, value))
}
