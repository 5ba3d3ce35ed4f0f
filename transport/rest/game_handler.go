package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/service"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/tictactoe"
)

const maxBodyBytes = 64 << 10

type gameService interface {
	Describe(ctx context.Context, route service.Route, origin string) (*entity.ActionGetResponse, error)
	Play(ctx context.Context, route service.Route, req *service.PlayRequest) (*entity.ActionPostResponse, error)
}

// GameActionHandler serves one route family.
type GameActionHandler struct {
	logger *slog.Logger

	route   service.Route
	games   gameService
	baseURL string
}

func NewGameActionHandler(logger *slog.Logger, route service.Route, games gameService, baseURL string) *GameActionHandler {
	return &GameActionHandler{
		logger:  logger.With("component", "game_handler", "route", route.Name),
		route:   route,
		games:   games,
		baseURL: baseURL,
	}
}

func (that *GameActionHandler) Mount(router chi.Router) {
	router.Get(that.route.Path, that.Get)
	router.Post(that.route.Path, that.Post)
	router.Options(that.route.Path, preflight)
}

func (that *GameActionHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Get")

	descriptor, err := that.games.Describe(r.Context(), that.route, requestOrigin(that.baseURL, r))
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, descriptor)
}

func (that *GameActionHandler) Post(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Post")

	body, account, err := decodeActionPost(w, r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	query := r.URL.Query()
	req := &service.PlayRequest{
		Account: account,
		Action:  query.Get("action"),
		Params: tictactoe.Params{
			Position: query.Get("position"),
		},
		Origin: requestOrigin(that.baseURL, r),
	}
	if body.Data != nil {
		req.Params.Name = body.Data.Name
	}

	resp, err := that.games.Play(r.Context(), that.route, req)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func decodeActionPost(w http.ResponseWriter, r *http.Request) (*entity.ActionPostRequest, solana.PublicKey, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body entity.ActionPostRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, solana.PublicKey{}, apperror.ErrInvalidBody
	}

	account, err := solana.PublicKeyFromBase58(body.Account)
	if err != nil {
		return nil, solana.PublicKey{}, apperror.ErrInvalidAccount
	}

	return &body, account, nil
}
