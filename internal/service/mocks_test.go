package service

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

type mockTransactionBuilder struct {
	mock.Mock
}

func (that *mockTransactionBuilder) Transfer(ctx context.Context, from, to solana.PublicKey, lamports uint64) (string, error) {
	args := that.Called(ctx, from, to, lamports)
	return args.String(0), args.Error(1)
}

type mockMinter struct {
	mock.Mock
}

func (that *mockMinter) Mint(ctx context.Context, req *entity.MintRequest) (*entity.MintReceipt, error) {
	args := that.Called(ctx, req)

	receipt, _ := args.Get(0).(*entity.MintReceipt)
	return receipt, args.Error(1)
}

type mockBlockhashSource struct {
	mock.Mock
}

func (that *mockBlockhashSource) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	args := that.Called(ctx, commitment)

	result, _ := args.Get(0).(*rpc.GetLatestBlockhashResult)
	return result, args.Error(1)
}
