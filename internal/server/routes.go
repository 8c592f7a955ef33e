package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/huntbase/zonehunt/internal/geo"
	"github.com/huntbase/zonehunt/internal/session"
)

// Deps collects everything the route handlers need.
type Deps struct {
	Store    Store
	Sessions *session.Registry
	Locator  *geo.Locator
	DB       *sql.DB

	// AdminPasswordHash is a bcrypt hash; empty disables admin login.
	AdminPasswordHash string
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("ZoneHunt API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB))

	r.Post("/api/join", handleJoin(deps.Store, deps.Sessions))

	// Player routes. The session is resolved from the Bearer token.
	r.Route("/api/game", func(r chi.Router) {
		r.Get("/state", handleState(deps.Store, deps.Sessions, deps.Locator))
		r.Post("/location", handleLocation(deps.Sessions, deps.Locator))
		r.Post("/cancel", handleCancel(deps.Sessions))

		r.Post("/deposit", handleDeposit(deps.Store, deps.Sessions, deps.Locator))
		r.Post("/deposit/confirm", handleDepositConfirm(deps.Store, deps.Sessions, broker))

		r.Post("/challenge", handleChallenge(deps.Store, deps.Sessions))
		r.Post("/challenge/confirm", handleChallengeConfirm(deps.Store, deps.Sessions, broker))

		r.Post("/cards/draw", handleCardDraw(deps.Store, deps.Sessions))
		r.Post("/cards/use", handleCardUse(deps.Store, deps.Sessions))
		r.Post("/cards/confirm", handleCardConfirm(deps.Store, deps.Sessions, broker))
		r.Post("/cards/input", handleCardInput(deps.Store, deps.Sessions, broker))
		r.Post("/cards/answer", handleCardAnswer(deps.Store, deps.Sessions))

		r.Post("/curses/ack", handleCurseAck(deps.Store, deps.Sessions, broker))
		r.Post("/curses/clear", handleCurseClear(deps.Store, deps.Sessions))
		r.Post("/curses/clear/confirm", handleCurseClearConfirm(deps.Store, deps.Sessions, broker))

		r.Get("/events", handleEvents(deps.Sessions, broker))
	})

	// Game-master routes: cookie session, bcrypt login.
	r.Post("/api/admin/login", handleAdminLogin(deps.Store, deps.AdminPasswordHash))
	r.Post("/api/admin/logout", handleAdminLogout(deps.Store))
	admin := r.With(adminAuthMiddleware(deps.Store))
	admin.Get("/api/admin/games", handleAdminListGames(deps.Store))
	admin.Delete("/api/admin/games/{gameID}", handleAdminDeleteGame(deps.Store))
}
