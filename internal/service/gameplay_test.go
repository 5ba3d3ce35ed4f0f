package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/repository"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/tictactoe"
)

const testOrigin = "https://blinks.example"

var errMinterDown = errors.New("minter down")

var (
	tictactoeRoute = Route{Name: "tictactoe", Path: "/api/actions/tictactoe", SelfTransfer: true, Lamports: 1_000_000}
	mintRoute      = Route{Name: "mint", Path: "/api/actions/mint", Recipient: testRecipient, Lamports: 1_000_000, MintOnWin: true}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func playRequest(action string, params tictactoe.Params) *PlayRequest {
	return &PlayRequest{Account: testPayer, Action: action, Params: params, Origin: testOrigin}
}

func TestGameService_Describe(t *testing.T) {
	ctx := context.Background()
	gameService := NewGameService(discardLogger(), repository.NewMemoryGameRepository(), &mockTransactionBuilder{}, nil, "TTT")

	// When: describing a route nobody played yet
	descriptor, err := gameService.Describe(ctx, tictactoeRoute, testOrigin)

	// Then: the entry screen is returned
	require.NoError(t, err)
	assert.Equal(t, "Enter Your Name", descriptor.Label)
	assert.Equal(t, "/api/actions/tictactoe?action=setName", descriptor.Links.Actions[0].Href)
}

func TestGameService_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("Set name sends the transfer to self", func(t *testing.T) {
		// Given: a self transfer route
		transactions := &mockTransactionBuilder{}
		transactions.On("Transfer", mock.Anything, testPayer, testPayer, uint64(1_000_000)).Return("dHg=", nil).Once()
		gameService := NewGameService(discardLogger(), repository.NewMemoryGameRepository(), transactions, nil, "TTT")

		// When: the player sets a name
		resp, err := gameService.Play(ctx, tictactoeRoute, playRequest(tictactoe.ActionSetName, tictactoe.Params{Name: "Alice"}))

		// Then: the transaction and the next board are returned
		require.NoError(t, err)
		assert.Equal(t, entity.ActionTypeTransaction, resp.Type)
		assert.Equal(t, "dHg=", resp.Transaction)
		assert.Equal(t, "Welcome, Alice! Game started.", resp.Message)
		require.NotNil(t, resp.Links)
		assert.Equal(t, entity.NextActionTypeInline, resp.Links.Next.Type)
		assert.Equal(t, "Tic-Tac-Toe - X's turn", resp.Links.Next.Action.Label)
		assert.Len(t, resp.Links.Next.Action.Links.Actions, 9)
		transactions.AssertExpectations(t)
	})

	t.Run("Validation errors skip the transaction", func(t *testing.T) {
		transactions := &mockTransactionBuilder{}
		gameService := NewGameService(discardLogger(), repository.NewMemoryGameRepository(), transactions, nil, "TTT")

		_, err := gameService.Play(ctx, tictactoeRoute, playRequest("dance", tictactoe.Params{}))

		require.ErrorIs(t, err, apperror.ErrInvalidAction)
		transactions.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Transaction failure leaves the game untouched", func(t *testing.T) {
		// Given: a started game and a failing RPC node
		gameRepo := repository.NewMemoryGameRepository()
		_, err := gameRepo.Update(ctx, tictactoeRoute.Name, func(game *entity.Game) error {
			return game.Start("Alice")
		})
		require.NoError(t, err)

		transactions := &mockTransactionBuilder{}
		transactions.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errRPCUnavailable).Once()
		gameService := NewGameService(discardLogger(), gameRepo, transactions, nil, "TTT")

		// When: a move is made
		_, err = gameService.Play(ctx, tictactoeRoute, playRequest(tictactoe.ActionMove, tictactoe.Params{Position: "4"}))

		// Then: a collaborator error is returned and the move was not committed
		require.ErrorIs(t, err, errRPCUnavailable)
		assert.True(t, apperror.IsKind(err, apperror.KindCollaborator))

		stored, err := gameRepo.GetByKey(ctx, tictactoeRoute.Name)
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, stored.Board[4])
		assert.Equal(t, entity.PlayerX, stored.Turn)
	})

	t.Run("Winning move on the mint route mints a trophy", func(t *testing.T) {
		// Given: X is one move from winning on the mint route
		gameRepo := repository.NewMemoryGameRepository()
		_, err := gameRepo.Update(ctx, mintRoute.Name, func(game *entity.Game) error {
			if err := game.Start("Alice"); err != nil {
				return err
			}
			for _, cell := range []int{0, 3, 1, 4} {
				if err := game.MakeTurn(cell); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		transactions := &mockTransactionBuilder{}
		transactions.On("Transfer", mock.Anything, testPayer, testRecipient, uint64(1_000_000)).Return("dHg=", nil).Once()
		minter := &mockMinter{}
		minter.On("Mint", mock.Anything, mock.MatchedBy(func(req *entity.MintRequest) bool {
			return req.Owner == testPayer.String() &&
				req.Symbol == "TTT" &&
				req.Image == "https://blinks.example/img/tictactoe-XXXOO----.png"
		})).Return(&entity.MintReceipt{ID: "mint-1"}, nil).Once()
		gameService := NewGameService(discardLogger(), gameRepo, transactions, minter, "TTT")

		// When: X completes the top row
		resp, err := gameService.Play(ctx, mintRoute, playRequest(tictactoe.ActionMove, tictactoe.Params{Position: "2"}))

		// Then: the trophy id is reported and the next screen offers a reset
		require.NoError(t, err)
		assert.Equal(t, "Move made at position 2. X wins! Trophy minted: mint-1", resp.Message)
		assert.Equal(t, "Game Over - X wins!", resp.Links.Next.Action.Label)
		minter.AssertExpectations(t)
		transactions.AssertExpectations(t)
	})

	t.Run("Mint failure rolls back the winning move", func(t *testing.T) {
		gameRepo := repository.NewMemoryGameRepository()
		_, err := gameRepo.Update(ctx, mintRoute.Name, func(game *entity.Game) error {
			if err := game.Start("Alice"); err != nil {
				return err
			}
			for _, cell := range []int{0, 3, 1, 4} {
				if err := game.MakeTurn(cell); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		transactions := &mockTransactionBuilder{}
		transactions.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("dHg=", nil).Once()
		minter := &mockMinter{}
		minter.On("Mint", mock.Anything, mock.Anything).Return(nil, errMinterDown).Once()
		gameService := NewGameService(discardLogger(), gameRepo, transactions, minter, "TTT")

		_, err = gameService.Play(ctx, mintRoute, playRequest(tictactoe.ActionMove, tictactoe.Params{Position: "2"}))

		require.ErrorIs(t, err, errMinterDown)
		assert.True(t, apperror.IsKind(err, apperror.KindCollaborator))

		stored, err := gameRepo.GetByKey(ctx, mintRoute.Name)
		require.NoError(t, err)
		assert.False(t, stored.IsFinished())
		assert.Equal(t, entity.EmptyCell, stored.Board[2])
	})

	t.Run("Routes keep separate games", func(t *testing.T) {
		transactions := &mockTransactionBuilder{}
		transactions.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("dHg=", nil)
		gameService := NewGameService(discardLogger(), repository.NewMemoryGameRepository(), transactions, nil, "TTT")

		_, err := gameService.Play(ctx, tictactoeRoute, playRequest(tictactoe.ActionSetName, tictactoe.Params{Name: "Alice"}))
		require.NoError(t, err)

		descriptor, err := gameService.Describe(ctx, Route{Name: "other", Path: "/api/actions/other"}, testOrigin)
		require.NoError(t, err)
		assert.Equal(t, "Enter Your Name", descriptor.Label)
	})
}

func TestRoute_recipientFor(t *testing.T) {
	t.Run("Self transfer pays the acting account", func(t *testing.T) {
		assert.Equal(t, testPayer, tictactoeRoute.recipientFor(testPayer))
	})

	t.Run("Configured recipient is used", func(t *testing.T) {
		assert.Equal(t, testRecipient, mintRoute.recipientFor(testPayer))
	})

	t.Run("System program recipient is not treated as self", func(t *testing.T) {
		// Given: a route paying the all-zero system program key
		route := Route{Name: "system", Recipient: solana.SystemProgramID}

		// Then: the transfer still goes to that key
		assert.Equal(t, solana.SystemProgramID, route.recipientFor(testPayer))
	})
}
