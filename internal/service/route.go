package service

import "github.com/gagliardetto/solana-go"

// Route is one mounted game action family. Each family owns its own game.
type Route struct {
	Name string
	Path string

	// SelfTransfer sends the transfer back to the acting account and ignores Recipient.
	SelfTransfer bool
	Recipient    solana.PublicKey
	Lamports     uint64

	// MintOnWin mints a trophy to the account whose move wins the game.
	MintOnWin bool
}

func (that Route) recipientFor(account solana.PublicKey) solana.PublicKey {
	if that.SelfTransfer {
		return account
	}
	return that.Recipient
}
