package entity

// MintRequest is the body sent to the external minting API.
type MintRequest struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Owner       string `json:"owner"`
}

type MintReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}
