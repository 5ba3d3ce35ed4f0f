package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/repository"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/tictactoe"
)

const trophyName = "Tic-Tac-Toe Champion"

type GameService interface {
	Describe(ctx context.Context, route Route, origin string) (*entity.ActionGetResponse, error)
	Play(ctx context.Context, route Route, req *PlayRequest) (*entity.ActionPostResponse, error)
}

// PlayRequest is a validated POST against a game route.
type PlayRequest struct {
	Account solana.PublicKey
	Action  string
	Params  tictactoe.Params
	Origin  string
}

type gameRepo interface {
	GetByKey(ctx context.Context, key string) (*entity.Game, error)
	Update(ctx context.Context, key string, fn repository.UpdateFunc) (*entity.Game, error)
}

type gameService struct {
	logger *slog.Logger

	gameRepo     gameRepo
	transactions TransactionBuilder
	minter       Minter
	mintSymbol   string
}

// NewGameService - minter may be nil when no route mints.
func NewGameService(logger *slog.Logger, gameRepo gameRepo, transactions TransactionBuilder, minter Minter, mintSymbol string) GameService {
	return &gameService{
		logger:       logger.With("component", "game_service"),
		gameRepo:     gameRepo,
		transactions: transactions,
		minter:       minter,
		mintSymbol:   mintSymbol,
	}
}

func (that *gameService) Describe(ctx context.Context, route Route, origin string) (*entity.ActionGetResponse, error) {
	game, err := that.gameRepo.GetByKey(ctx, route.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return tictactoe.Describe(*game, route.Path, origin), nil
}

// Play applies the action and builds the transaction inside one repository update,
// so a failing collaborator leaves the stored game untouched.
func (that *gameService) Play(ctx context.Context, route Route, req *PlayRequest) (*entity.ActionPostResponse, error) {
	log := that.logger.With("method", "Play", "route", route.Name, "action", req.Action)

	var (
		message     string
		transaction string
	)

	game, err := that.gameRepo.Update(ctx, route.Name, func(game *entity.Game) error {
		wasFinished := game.IsFinished()

		var applyErr error
		message, applyErr = tictactoe.Apply(game, req.Action, req.Params)
		if applyErr != nil {
			return applyErr
		}

		tx, txErr := that.transactions.Transfer(ctx, req.Account, route.recipientFor(req.Account), route.Lamports)
		if txErr != nil {
			return apperror.Collaborator("failed to build transaction", txErr)
		}
		transaction = tx

		if route.MintOnWin && !wasFinished && game.IsFinished() {
			receipt, mintErr := that.mintTrophy(ctx, game, req)
			if mintErr != nil {
				return apperror.Collaborator("failed to mint trophy", mintErr)
			}

			message = fmt.Sprintf("%s. %s wins! Trophy minted: %s", message, game.Winner, receipt.ID)
		}

		return nil
	})
	if err != nil {
		log.Warn("action rejected", "error", err)
		return nil, fmt.Errorf("failed to play: %w", err)
	}

	log.Info("action applied", "account", req.Account.String(), "winner", game.Winner)

	return &entity.ActionPostResponse{
		Type:        entity.ActionTypeTransaction,
		Transaction: transaction,
		Message:     message,
		Links: &entity.PostResponseLinks{
			Next: &entity.NextActionLink{
				Type:   entity.NextActionTypeInline,
				Action: tictactoe.Describe(*game, route.Path, req.Origin),
			},
		},
	}, nil
}

func (that *gameService) mintTrophy(ctx context.Context, game *entity.Game, req *PlayRequest) (*entity.MintReceipt, error) {
	if that.minter == nil {
		return nil, ErrMinterNotConfigured
	}

	return that.minter.Mint(ctx, &entity.MintRequest{
		Name:        trophyName,
		Symbol:      that.mintSymbol,
		Description: fmt.Sprintf("%s won a game of Tic-Tac-Toe on Solana as %s", game.Player, game.Winner),
		Image:       tictactoe.BoardIconURL(req.Origin, game.Board),
		Owner:       req.Account.String(),
	})
}
