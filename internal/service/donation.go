package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

const (
	donateIconPath = "/img/donate.png"
	maxDonationSOL = 1_000_000
)

type DonationService interface {
	Describe(path, origin string) *entity.ActionGetResponse
	Donate(ctx context.Context, account solana.PublicKey, amount string) (*entity.ActionPostResponse, error)
}

type donationService struct {
	logger *slog.Logger

	transactions TransactionBuilder
	recipient    solana.PublicKey
	presets      []float64
}

func NewDonationService(logger *slog.Logger, transactions TransactionBuilder, recipient solana.PublicKey, presets []float64) DonationService {
	return &donationService{
		logger:       logger.With("component", "donation_service"),
		transactions: transactions,
		recipient:    recipient,
		presets:      presets,
	}
}

func (that *donationService) Describe(path, origin string) *entity.ActionGetResponse {
	actions := make([]entity.LinkedAction, 0, len(that.presets)+1)
	for _, amount := range that.presets {
		value := formatSOL(amount)
		actions = append(actions, entity.LinkedAction{
			Type:  entity.ActionTypePost,
			Href:  path + "?amount=" + value,
			Label: fmt.Sprintf("Send %s SOL", value),
		})
	}

	actions = append(actions, entity.LinkedAction{
		Type:  entity.ActionTypePost,
		Href:  path + "?amount={amount}",
		Label: "Send SOL",
		Parameters: []entity.ActionParameter{
			{Type: "number", Name: "amount", Label: "Enter a SOL amount", Required: true},
		},
	})

	return &entity.ActionGetResponse{
		Type:        entity.ActionTypeAction,
		Icon:        origin + donateIconPath,
		Title:       "Support Solana Tic-Tac-Toe",
		Description: "Send a donation to keep the game running",
		Label:       "Donate",
		Links:       &entity.ActionLinks{Actions: actions},
	}
}

func (that *donationService) Donate(ctx context.Context, account solana.PublicKey, amount string) (*entity.ActionPostResponse, error) {
	sol, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}

	tx, err := that.transactions.Transfer(ctx, account, that.recipient, SOLToLamports(sol))
	if err != nil {
		return nil, apperror.Collaborator("failed to build transaction", err)
	}

	that.logger.Info("donation prepared", "account", account.String(), "amount", sol)

	return &entity.ActionPostResponse{
		Type:        entity.ActionTypeTransaction,
		Transaction: tx,
		Message:     fmt.Sprintf("Thanks for donating %s SOL!", formatSOL(sol)),
	}, nil
}

// parseAmount - accepts a positive decimal SOL amount worth at least one lamport.
func parseAmount(amount string) (float64, error) {
	sol, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(sol) || math.IsInf(sol, 0) || sol <= 0 || sol > maxDonationSOL || SOLToLamports(sol) == 0 {
		return 0, apperror.ErrInvalidAmount
	}

	return sol, nil
}

func formatSOL(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
