package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/limchang/cafe-test/internal/calculator"
	"github.com/limchang/cafe-test/internal/history"
	"github.com/limchang/cafe-test/internal/models"
	"github.com/limchang/cafe-test/internal/order"
	"github.com/limchang/cafe-test/internal/settings"
)

// HistoryService saves board snapshots and restores them.
type HistoryService struct {
	log      *history.Log
	board    *order.Board
	settings *settings.Manager
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(log *history.Log, board *order.Board, settings *settings.Manager) *HistoryService {
	return &HistoryService{log: log, board: board, settings: settings}
}

// SaveHistory stores the current board with its rendered summary.
func (s *HistoryService) SaveHistory(ctx context.Context, req *connect.Request[SaveHistoryRequest]) (*connect.Response[HistoryEntryResponse], error) {
	slog.Info("SaveHistory request received", "mode", req.Msg.Mode)

	mode := req.Msg.Mode
	if mode == "" {
		mode = calculator.ModeAll
	}
	if mode != calculator.ModeAll && mode != calculator.ModeTable {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown summary mode %q", mode))
	}

	show := s.settings.Get().ShowDrinkSize
	groups := s.board.Groups()
	total := calculator.Aggregate(groups, show).TotalCount
	text := calculator.SummaryText(mode, groups, show)

	entry, err := s.log.Save(ctx, groups, text, total, req.Msg.Memo)
	if err != nil {
		slog.Error("SaveHistory failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("SaveHistory successful", "entry_id", entry.ID, "title", entry.Title, "total_count", total)
	return connect.NewResponse(&HistoryEntryResponse{Entry: entry}), nil
}

func (s *HistoryService) ListHistory(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[ListHistoryResponse], error) {
	entries := s.log.List()
	slog.Debug("ListHistory successful", "count", len(entries))
	return connect.NewResponse(&ListHistoryResponse{Entries: entries}), nil
}

func (s *HistoryService) GetHistory(ctx context.Context, req *connect.Request[HistoryIDRequest]) (*connect.Response[HistoryEntryResponse], error) {
	entry, err := s.log.Get(req.Msg.ID)
	if err != nil {
		slog.Warn("GetHistory failed", "entry_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&HistoryEntryResponse{Entry: entry}), nil
}

// LoadHistory replaces the board with a saved entry, optionally keeping
// only the seats and their avatars.
func (s *HistoryService) LoadHistory(ctx context.Context, req *connect.Request[LoadHistoryRequest]) (*connect.Response[BoardResponse], error) {
	slog.Info("LoadHistory request received", "entry_id", req.Msg.ID, "people_only", req.Msg.PeopleOnly)

	entry, err := s.log.Get(req.Msg.ID)
	if err != nil {
		slog.Warn("LoadHistory failed", "entry_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	var groups []models.Group
	if req.Msg.PeopleOnly {
		groups = history.PeopleOnlyGroups(entry)
	} else {
		groups = history.FullGroups(entry)
	}
	s.board.LoadGroups(groups)

	slog.Info("LoadHistory successful", "entry_id", entry.ID, "tables", len(groups))
	return boardResponse(s.board, s.settings, true), nil
}

func (s *HistoryService) UpdateHistory(ctx context.Context, req *connect.Request[UpdateHistoryRequest]) (*connect.Response[HistoryEntryResponse], error) {
	entry, err := s.log.Update(ctx, req.Msg.ID, req.Msg.Patch)
	if err != nil {
		slog.Error("UpdateHistory failed", "entry_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("UpdateHistory successful", "entry_id", entry.ID)
	return connect.NewResponse(&HistoryEntryResponse{Entry: entry}), nil
}

func (s *HistoryService) DeleteHistory(ctx context.Context, req *connect.Request[HistoryIDRequest]) (*connect.Response[emptypb.Empty], error) {
	if err := s.log.Delete(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteHistory failed", "entry_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("DeleteHistory successful", "entry_id", req.Msg.ID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}
