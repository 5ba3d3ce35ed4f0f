package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

const DonatePath = "/api/actions/donate"

type donationService interface {
	Describe(path, origin string) *entity.ActionGetResponse
	Donate(ctx context.Context, account solana.PublicKey, amount string) (*entity.ActionPostResponse, error)
}

type DonateHandler struct {
	logger *slog.Logger

	donations donationService
	baseURL   string
}

func NewDonateHandler(logger *slog.Logger, donations donationService, baseURL string) *DonateHandler {
	return &DonateHandler{
		logger:    logger.With("component", "donate_handler"),
		donations: donations,
		baseURL:   baseURL,
	}
}

func (that *DonateHandler) Mount(router chi.Router) {
	router.Get(DonatePath, that.Get)
	router.Post(DonatePath, that.Post)
	router.Options(DonatePath, preflight)
}

func (that *DonateHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, that.donations.Describe(DonatePath, requestOrigin(that.baseURL, r)))
}

func (that *DonateHandler) Post(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Post")

	_, account, err := decodeActionPost(w, r)
	if err != nil {
		writeError(w, log, err)
		return
	}

	resp, err := that.donations.Donate(r.Context(), account, r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
