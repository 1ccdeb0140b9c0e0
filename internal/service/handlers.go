package service

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/limchang/cafe-test/internal/history"
	"github.com/limchang/cafe-test/internal/order"
	"github.com/limchang/cafe-test/internal/settings"
)

// Fully-qualified service names.
const (
	OrderServiceName    = "cafesync.v1.OrderService"
	HistoryServiceName  = "cafesync.v1.HistoryService"
	SettingsServiceName = "cafesync.v1.SettingsService"
)

// Procedure returns the path of one method, e.g.
// "/cafesync.v1.OrderService/AddGroup".
func Procedure(service, method string) string {
	return "/" + service + "/" + method
}

// handle registers one unary method on mux.
func handle[Req, Res any](
	mux *http.ServeMux,
	service, method string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	procedure := Procedure(service, method)
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append(append([]connect.HandlerOption{}, opts...), WithJSON())
}

// NewOrderServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewOrderServiceHandler(svc *OrderService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()

	handle(mux, OrderServiceName, "GetBoard", svc.GetBoard, opts)
	handle(mux, OrderServiceName, "GetSummary", svc.GetSummary, opts)

	handle(mux, OrderServiceName, "AddGroup", svc.AddGroup, opts)
	handle(mux, OrderServiceName, "RemoveGroup", svc.RemoveGroup, opts)
	handle(mux, OrderServiceName, "RenameGroup", svc.RenameGroup, opts)
	handle(mux, OrderServiceName, "UpdateGroupName", svc.UpdateGroupName, opts)
	handle(mux, OrderServiceName, "SetActiveGroup", svc.SetActiveGroup, opts)
	handle(mux, OrderServiceName, "SetCollapsed", svc.SetCollapsed, opts)
	handle(mux, OrderServiceName, "Undo", svc.Undo, opts)
	handle(mux, OrderServiceName, "ResetAll", svc.ResetAll, opts)

	handle(mux, OrderServiceName, "AddPerson", svc.AddPerson, opts)
	handle(mux, OrderServiceName, "AddSharedSlot", svc.AddSharedSlot, opts)
	handle(mux, OrderServiceName, "RemovePerson", svc.RemovePerson, opts)
	handle(mux, OrderServiceName, "ResetPerson", svc.ResetPerson, opts)
	handle(mux, OrderServiceName, "SetAvatar", svc.SetAvatar, opts)
	handle(mux, OrderServiceName, "SetRandomAvatar", svc.SetRandomAvatar, opts)
	handle(mux, OrderServiceName, "SetPersonMemo", svc.SetPersonMemo, opts)
	handle(mux, OrderServiceName, "Highlight", svc.Highlight, opts)
	handle(mux, OrderServiceName, "ToggleSharedSync", svc.ToggleSharedSync, opts)

	handle(mux, OrderServiceName, "SetSubItems", svc.SetSubItems, opts)
	handle(mux, OrderServiceName, "AddSubItem", svc.AddSubItem, opts)
	handle(mux, OrderServiceName, "UpdateSubItem", svc.UpdateSubItem, opts)
	handle(mux, OrderServiceName, "RemoveSubItem", svc.RemoveSubItem, opts)
	handle(mux, OrderServiceName, "SetQuantity", svc.SetQuantity, opts)
	handle(mux, OrderServiceName, "SetTemperature", svc.SetTemperature, opts)
	handle(mux, OrderServiceName, "SetSize", svc.SetSize, opts)
	handle(mux, OrderServiceName, "SetMemo", svc.SetMemo, opts)
	handle(mux, OrderServiceName, "AddMemoPhrase", svc.AddMemoPhrase, opts)
	handle(mux, OrderServiceName, "RemoveMemoPhrase", svc.RemoveMemoPhrase, opts)
	handle(mux, OrderServiceName, "SetAllNotEating", svc.SetAllNotEating, opts)

	return "/" + OrderServiceName + "/", mux
}

// NewHistoryServiceHandler mounts the history methods.
func NewHistoryServiceHandler(svc *HistoryService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()

	handle(mux, HistoryServiceName, "SaveHistory", svc.SaveHistory, opts)
	handle(mux, HistoryServiceName, "ListHistory", svc.ListHistory, opts)
	handle(mux, HistoryServiceName, "GetHistory", svc.GetHistory, opts)
	handle(mux, HistoryServiceName, "LoadHistory", svc.LoadHistory, opts)
	handle(mux, HistoryServiceName, "UpdateHistory", svc.UpdateHistory, opts)
	handle(mux, HistoryServiceName, "DeleteHistory", svc.DeleteHistory, opts)

	return "/" + HistoryServiceName + "/", mux
}

// NewSettingsServiceHandler mounts the settings and menu methods.
func NewSettingsServiceHandler(svc *SettingsService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()

	handle(mux, SettingsServiceName, "GetSettings", svc.GetSettings, opts)
	handle(mux, SettingsServiceName, "SetShowDrinkSize", svc.SetShowDrinkSize, opts)
	handle(mux, SettingsServiceName, "AddQuickMemo", svc.AddQuickMemo, opts)
	handle(mux, SettingsServiceName, "RemoveQuickMemo", svc.RemoveQuickMemo, opts)
	handle(mux, SettingsServiceName, "SetEmoji", svc.SetEmoji, opts)
	handle(mux, SettingsServiceName, "SetRandomCategory", svc.SetRandomCategory, opts)
	handle(mux, SettingsServiceName, "SetDrinkChecked", svc.SetDrinkChecked, opts)
	handle(mux, SettingsServiceName, "RandomAvatar", svc.RandomAvatar, opts)

	handle(mux, SettingsServiceName, "AddMenuItem", svc.AddMenuItem, opts)
	handle(mux, SettingsServiceName, "RemoveMenuItem", svc.RemoveMenuItem, opts)
	handle(mux, SettingsServiceName, "SetMenuList", svc.SetMenuList, opts)
	handle(mux, SettingsServiceName, "MoveMenuItem", svc.MoveMenuItem, opts)
	handle(mux, SettingsServiceName, "SearchMenu", svc.SearchMenu, opts)

	return "/" + SettingsServiceName + "/", mux
}

// toConnectError maps domain errors to Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, order.ErrReservedAvatar),
		errors.Is(err, order.ErrNotSharedSlot),
		errors.Is(err, settings.ErrEmojiIndex),
		errors.Is(err, settings.ErrReservedEmoji),
		errors.Is(err, settings.ErrUnknownCategory):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, history.ErrEntryNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
