package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/limchang/cafe-test/internal/models"
	"github.com/limchang/cafe-test/internal/order"
	"github.com/limchang/cafe-test/internal/settings"
)

// QuickPickCount is the number of one-tap drink buttons.
const QuickPickCount = 4

// SettingsService exposes the preferences and the menu catalog.
type SettingsService struct {
	settings *settings.Manager
	menu     *order.Menu
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settings *settings.Manager, menu *order.Menu) *SettingsService {
	return &SettingsService{settings: settings, menu: menu}
}

func (s *SettingsService) respond(current models.AppSettings) *connect.Response[SettingsResponse] {
	return connect.NewResponse(&SettingsResponse{
		Settings:   current,
		Menu:       s.menu.Lists(),
		QuickPicks: s.menu.QuickPicks(QuickPickCount, current.CheckedDrinkItems),
	})
}

func (s *SettingsService) result(method string, current models.AppSettings, err error) (*connect.Response[SettingsResponse], error) {
	if err != nil {
		slog.Error(method+" failed", "error", err)
		return nil, toConnectError(err)
	}
	return s.respond(current), nil
}

func (s *SettingsService) GetSettings(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[SettingsResponse], error) {
	return s.respond(s.settings.Get()), nil
}

func (s *SettingsService) SetShowDrinkSize(ctx context.Context, req *connect.Request[SetShowDrinkSizeRequest]) (*connect.Response[SettingsResponse], error) {
	current, err := s.settings.SetShowDrinkSize(ctx, req.Msg.Show)
	return s.result("SetShowDrinkSize", current, err)
}

func (s *SettingsService) AddQuickMemo(ctx context.Context, req *connect.Request[QuickMemoRequest]) (*connect.Response[SettingsResponse], error) {
	current, err := s.settings.AddQuickMemo(ctx, req.Msg.Memo)
	return s.result("AddQuickMemo", current, err)
}

func (s *SettingsService) RemoveQuickMemo(ctx context.Context, req *connect.Request[QuickMemoRequest]) (*connect.Response[SettingsResponse], error) {
	current, err := s.settings.RemoveQuickMemo(ctx, req.Msg.Memo)
	return s.result("RemoveQuickMemo", current, err)
}

func (s *SettingsService) SetEmoji(ctx context.Context, req *connect.Request[SetEmojiRequest]) (*connect.Response[SettingsResponse], error) {
	current, err := s.settings.SetEmoji(ctx, req.Msg.Index, req.Msg.Emoji)
	return s.result("SetEmoji", current, err)
}

func (s *SettingsService) SetRandomCategory(ctx context.Context, req *connect.Request[SetRandomCategoryRequest]) (*connect.Response[SettingsResponse], error) {
	current, err := s.settings.SetRandomCategory(ctx, req.Msg.Category)
	return s.result("SetRandomCategory", current, err)
}

// SetDrinkChecked pins a drink to the quick picks.
func (s *SettingsService) SetDrinkChecked(ctx context.Context, req *connect.Request[SetDrinkCheckedRequest]) (*connect.Response[SettingsResponse], error) {
	current, err := s.settings.SetDrinkChecked(ctx, req.Msg.Name, req.Msg.Checked)
	return s.result("SetDrinkChecked", current, err)
}

func (s *SettingsService) RandomAvatar(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[RandomAvatarResponse], error) {
	return connect.NewResponse(&RandomAvatarResponse{Avatar: s.settings.RandomAvatar()}), nil
}

func (s *SettingsService) AddMenuItem(ctx context.Context, req *connect.Request[MenuItemRequest]) (*connect.Response[SettingsResponse], error) {
	if err := validateMenuType(req.Msg.Type); err != nil {
		return nil, err
	}
	if s.menu.Add(req.Msg.Name, req.Msg.Type) {
		slog.Info("Menu item added", "type", req.Msg.Type, "name", req.Msg.Name)
	}
	return s.respond(s.settings.Get()), nil
}

func (s *SettingsService) RemoveMenuItem(ctx context.Context, req *connect.Request[MenuItemRequest]) (*connect.Response[SettingsResponse], error) {
	if err := validateMenuType(req.Msg.Type); err != nil {
		return nil, err
	}
	if s.menu.Remove(req.Msg.Name, req.Msg.Type) {
		slog.Info("Menu item removed", "type", req.Msg.Type, "name", req.Msg.Name)
	}
	return s.respond(s.settings.Get()), nil
}

func (s *SettingsService) SetMenuList(ctx context.Context, req *connect.Request[SetMenuListRequest]) (*connect.Response[SettingsResponse], error) {
	if err := validateMenuType(req.Msg.Type); err != nil {
		return nil, err
	}
	s.menu.SetList(req.Msg.Type, req.Msg.Names)
	return s.respond(s.settings.Get()), nil
}

func (s *SettingsService) MoveMenuItem(ctx context.Context, req *connect.Request[MoveMenuItemRequest]) (*connect.Response[SettingsResponse], error) {
	if err := validateMenuType(req.Msg.Type); err != nil {
		return nil, err
	}
	s.menu.Move(req.Msg.Type, req.Msg.From, req.Msg.To)
	return s.respond(s.settings.Get()), nil
}

func (s *SettingsService) SearchMenu(ctx context.Context, req *connect.Request[SearchMenuRequest]) (*connect.Response[SearchMenuResponse], error) {
	if err := validateMenuType(req.Msg.Type); err != nil {
		return nil, err
	}
	items := s.menu.Search(req.Msg.Type, req.Msg.Query)
	if items == nil {
		items = []string{}
	}
	return connect.NewResponse(&SearchMenuResponse{Items: items}), nil
}

func validateMenuType(t models.ItemType) error {
	if t != models.ItemTypeDrink && t != models.ItemTypeDessert {
		return invalidArgument("menu type", string(t))
	}
	return nil
}
