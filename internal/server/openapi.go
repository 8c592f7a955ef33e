package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "ZoneHunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the ZoneHunt city game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/join")
	postJoin.SetSummary("Join a game")
	postJoin.SetDescription("Join a game as the orange or pink team. The first join of a game ID creates the game. Returns a session token.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(JoinResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postJoin)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the full map view for the player's team and drains pending notifications. Requires Bearer token.")
	getState.AddRespStructure(StateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// POST /api/game/location
	postLocation, _ := r.NewOperationContext(http.MethodPost, "/api/game/location")
	postLocation.SetSummary("Report location")
	postLocation.SetDescription("Records the client's latest location fix and returns the nearest zone. Requires Bearer token.")
	postLocation.AddReqStructure(LocationRequest{})
	postLocation.AddRespStructure(LocationResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postLocation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLocation)

	// POST /api/game/cancel
	postCancel, _ := r.NewOperationContext(http.MethodPost, "/api/game/cancel")
	postCancel.SetSummary("Cancel dialog")
	postCancel.SetDescription("Abandons any open confirmation dialog. Requires Bearer token.")
	postCancel.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postCancel.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postCancel)

	// POST /api/game/deposit
	postDeposit, _ := r.NewOperationContext(http.MethodPost, "/api/game/deposit")
	postDeposit.SetSummary("Start a deposit")
	postDeposit.SetDescription("Opens the deposit confirmation dialog for the zone nearest the last location fix. Requires Bearer token.")
	postDeposit.AddReqStructure(DepositRequest{})
	postDeposit.AddRespStructure(DepositPreview{}, openapi.WithHTTPStatus(http.StatusOK))
	postDeposit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postDeposit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postDeposit)

	// POST /api/game/deposit/confirm
	postDepositConfirm, _ := r.NewOperationContext(http.MethodPost, "/api/game/deposit/confirm")
	postDepositConfirm.SetSummary("Confirm a deposit")
	postDepositConfirm.SetDescription("Commits the pending deposit. Debit and zone credit land atomically. Requires Bearer token.")
	postDepositConfirm.AddRespStructure(DepositResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postDepositConfirm.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postDepositConfirm)

	// POST /api/game/challenge
	postChallenge, _ := r.NewOperationContext(http.MethodPost, "/api/game/challenge")
	postChallenge.SetSummary("Start a challenge completion")
	postChallenge.SetDescription("Matches a map popup's text against open challenges and opens the confirmation dialog. Requires Bearer token.")
	postChallenge.AddReqStructure(ChallengeRequest{})
	postChallenge.AddRespStructure(ChallengePreview{}, openapi.WithHTTPStatus(http.StatusOK))
	postChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postChallenge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postChallenge)

	// POST /api/game/challenge/confirm
	postChallengeConfirm, _ := r.NewOperationContext(http.MethodPost, "/api/game/challenge/confirm")
	postChallengeConfirm.SetSummary("Confirm a challenge completion")
	postChallengeConfirm.SetDescription("Commits the completion: reward credit, completed-set entry, and gold rush consumption land atomically. Requires Bearer token.")
	postChallengeConfirm.AddRespStructure(ChallengeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postChallengeConfirm.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postChallengeConfirm)

	// POST /api/game/cards/draw
	postDraw, _ := r.NewOperationContext(http.MethodPost, "/api/game/cards/draw")
	postDraw.SetSummary("Draw a card")
	postDraw.SetDescription("Pays the draw cost and deals a random card the team has never drawn. Requires Bearer token.")
	postDraw.AddRespStructure(DrawResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postDraw.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postDraw)

	// POST /api/game/cards/use
	postUse, _ := r.NewOperationContext(http.MethodPost, "/api/game/cards/use")
	postUse.SetSummary("Start playing a card")
	postUse.SetDescription("Opens the play-confirmation dialog for a hand card. Requires Bearer token.")
	postUse.AddReqStructure(CardUseRequest{})
	postUse.AddRespStructure(CardUsePreview{}, openapi.WithHTTPStatus(http.StatusOK))
	postUse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postUse.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postUse)

	// POST /api/game/cards/confirm
	postCardConfirm, _ := r.NewOperationContext(http.MethodPost, "/api/game/cards/confirm")
	postCardConfirm.SetSummary("Confirm playing a card")
	postCardConfirm.SetDescription("Plain curses commit immediately, input curses advance to the value prompt, trivia cards debit the wager and advance to the answer prompt. Requires Bearer token.")
	postCardConfirm.AddReqStructure(CardConfirmRequest{})
	postCardConfirm.AddRespStructure(CursePlayedResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCardConfirm.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postCardConfirm.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCardConfirm)

	// POST /api/game/cards/input
	postCardInput, _ := r.NewOperationContext(http.MethodPost, "/api/game/cards/input")
	postCardInput.SetSummary("Supply a curse value")
	postCardInput.SetDescription("Commits an input-parameterized curse with the supplied measurement value. Requires Bearer token.")
	postCardInput.AddReqStructure(CardInputRequest{})
	postCardInput.AddRespStructure(CursePlayedResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCardInput.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postCardInput.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCardInput)

	// POST /api/game/cards/answer
	postCardAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/game/cards/answer")
	postCardAnswer.SetSummary("Answer a trivia card")
	postCardAnswer.SetDescription("Resolves the active trivia card. A correct answer pays out the wager times four. Requires Bearer token.")
	postCardAnswer.AddReqStructure(CardAnswerRequest{})
	postCardAnswer.AddRespStructure(CardAnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCardAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCardAnswer)

	// POST /api/game/curses/ack
	postCurseAck, _ := r.NewOperationContext(http.MethodPost, "/api/game/curses/ack")
	postCurseAck.SetSummary("Acknowledge a curse")
	postCurseAck.SetDescription("Acknowledges the first pending curse. Auto-clear curses are removed immediately. Requires Bearer token.")
	postCurseAck.AddRespStructure(CurseAckResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCurseAck.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCurseAck)

	// POST /api/game/curses/clear
	postCurseClear, _ := r.NewOperationContext(http.MethodPost, "/api/game/curses/clear")
	postCurseClear.SetSummary("Start clearing a curse")
	postCurseClear.SetDescription("Opens the clear-confirmation dialog for an acknowledged curse. Requires Bearer token.")
	postCurseClear.AddReqStructure(CurseClearRequest{})
	postCurseClear.AddRespStructure(CurseClearPreview{}, openapi.WithHTTPStatus(http.StatusOK))
	postCurseClear.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postCurseClear.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCurseClear)

	// POST /api/game/curses/clear/confirm
	postCurseClearConfirm, _ := r.NewOperationContext(http.MethodPost, "/api/game/curses/clear/confirm")
	postCurseClearConfirm.SetSummary("Confirm clearing a curse")
	postCurseClearConfirm.SetDescription("Removes the curse and notifies the team that placed it, atomically. Requires Bearer token.")
	postCurseClearConfirm.AddRespStructure(CurseClearResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCurseClearConfirm.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCurseClearConfirm)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream with live hints for the player's team. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Game-master login")
	postLogin.SetDescription("Authenticate with the game-master password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Game-master logout")
	postLogout.SetDescription("Clears the game-master session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/admin/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns all games with team balances and banked totals. Requires admin_session cookie.")
	listGames.AddRespStructure(AdminGamesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listGames)

	// DELETE /api/admin/games/{gameID}
	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/games/{gameID}")
	deleteGame.SetSummary("Delete game")
	deleteGame.SetDescription("Deletes a game and both its team documents. Requires admin_session cookie.")
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteGame)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
