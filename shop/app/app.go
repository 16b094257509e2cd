// Package app assembles the storefront bot: catalog service, order flow,
// and the transport wiring that binds them to Telegram updates.
package app

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/shopbot/core/bootstrap"
	coreconfig "github.com/m3rciful/shopbot/core/config"
	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/commands"
	"github.com/m3rciful/shopbot/core/telegram/middleware"
	tgrouter "github.com/m3rciful/shopbot/core/telegram/router"
	"github.com/m3rciful/shopbot/core/telegram/state"
	"github.com/m3rciful/shopbot/core/telegram/ui"
	"github.com/m3rciful/shopbot/shop/catalog"
	"github.com/m3rciful/shopbot/shop/orders"
	"github.com/m3rciful/shopbot/shop/storage"
)

// App holds the wired storefront components.
type App struct {
	cfg      *coreconfig.Config
	catalog  *catalog.Service
	sessions *orders.Sessions
	router   *orders.Router
	out      *teleMessenger
}

// New builds the application from configuration and bootstrap results.
// The storage backend comes from config: the file store needs no
// infrastructure, the postgres store reuses the bootstrap connection.
func New(cfg *coreconfig.Config, res *bootstrap.Result) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	var store catalog.Store
	switch cfg.Storage.Backend {
	case coreconfig.StorageBackendPostgres:
		if res == nil || res.DB == nil {
			return nil, fmt.Errorf("app: postgres backend selected but no database connection")
		}
		store = storage.NewPGStore(res.DB)
	default:
		store = storage.NewFileStore(cfg.Storage.FilePath)
	}

	catalogSvc, err := catalog.NewService(store)
	if err != nil {
		return nil, fmt.Errorf("app: catalog init failed: %w", err)
	}

	out := &teleMessenger{}
	a := &App{
		cfg:      cfg,
		catalog:  catalogSvc,
		sessions: orders.NewSessions(state.NewMemoryManager()),
		out:      out,
	}
	a.router = orders.NewRouter(catalogSvc, out, cfg.Shop.IsAdmin, cfg.Shop.DestChats())

	state.RegisterHandler(orders.StateAwaitingPhone, a.onPhoneText)

	return a, nil
}

func (a *App) registry() *tg.Registry {
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.onStart,
		Description: "Открыть магазин",
	})
	reg.RegisterCommand("/myid", commands.Command{
		Handler:     a.onMyID,
		Description: "Показать chat_id",
		Hidden:      true,
	})

	for _, key := range []string{
		orders.KeyOrder,
		orders.KeyRefresh,
		orders.KeyBackMain,
		orders.KeyCategory,
		orders.KeyPick,
		orders.KeyAccept,
		orders.KeyReject,
	} {
		_ = reg.RegisterCallback(key, a.actionHandler(key))
	}

	reg.SetCallbackNotFound(ui.UnknownCallback(textStaleButton))
	reg.SetTextFallback(ui.IgnoreText())

	return reg
}

// stateStrings bridges the FSM manager to the string-typed state middleware.
type stateStrings struct{ mgr state.Manager }

func (s stateStrings) GetState(userID int64) string {
	return string(s.mgr.GetState(userID))
}

// TelegramRunOptions builds the full transport wiring for the bot runtime.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := a.registry()

	routes := tgrouter.CommandRoutes(reg, tgrouter.CommandRouteOptions{
		IsAdmin: a.cfg.Shop.IsAdmin,
	})
	routes = append(routes, tgrouter.CallbackRoute(reg, tgrouter.CallbackOptions{}))
	routes = append(routes, tgrouter.TextRoutes(a.sessions.Manager(), reg, tgrouter.TextOptions{})...)

	contactGate := middleware.State(stateStrings{mgr: a.sessions.Manager()}, string(orders.StateAwaitingPhone))
	routes = append(routes,
		tg.Route{
			Endpoint: tele.OnContact,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(contactGate(a.onContact))),
		},
		tg.Route{
			Endpoint: tele.OnChannelPost,
			Handler:  middleware.RecoverMiddleware(a.onChannelPost),
		},
	)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}
