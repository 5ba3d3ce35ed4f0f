package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
)

var ErrZeroTransfer = errors.New("transfer amount must be positive")

// TransactionBuilder builds unsigned transactions for the client wallet to sign.
type TransactionBuilder interface {
	Transfer(ctx context.Context, from, to solana.PublicKey, lamports uint64) (string, error)
}

type blockhashSource interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
}

type transactionBuilder struct {
	rpc        blockhashSource
	commitment rpc.CommitmentType
}

// NewTransactionBuilder - source is usually an *rpc.Client pointed at a Solana cluster.
func NewTransactionBuilder(source blockhashSource, commitment string) TransactionBuilder {
	return &transactionBuilder{
		rpc:        source,
		commitment: rpc.CommitmentType(commitment),
	}
}

// Transfer returns a base64 SystemProgram transfer paid by from, with empty signature slots.
func (that *transactionBuilder) Transfer(ctx context.Context, from, to solana.PublicKey, lamports uint64) (string, error) {
	tx, err := that.buildTransfer(ctx, from, to, lamports)
	if err != nil {
		return "", err
	}

	// the wallet fills these in; the wire format still needs one slot per required signer
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)

	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}

	return base64.StdEncoding.EncodeToString(raw), nil
}

func (that *transactionBuilder) buildTransfer(ctx context.Context, from, to solana.PublicKey, lamports uint64) (*solana.Transaction, error) {
	if lamports == 0 {
		return nil, ErrZeroTransfer
	}

	latest, err := that.rpc.GetLatestBlockhash(ctx, that.commitment)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	if latest == nil || latest.Value == nil {
		return nil, errors.New("failed to get latest blockhash: empty response")
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, from, to).Build(),
		},
		latest.Value.Blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}

	return tx, nil
}

// SOLToLamports converts a SOL amount to lamports, rounding to the nearest lamport.
func SOLToLamports(amount float64) uint64 {
	return uint64(amount*float64(solana.LAMPORTS_PER_SOL) + 0.5)
}
