package entity

// Solana Actions wire types. Field names follow the Actions specification.

const (
	ActionTypeAction      = "action"
	ActionTypePost        = "post"
	ActionTypeTransaction = "transaction"
	NextActionTypeInline  = "inline"
)

type ActionGetResponse struct {
	Type        string       `json:"type"`
	Icon        string       `json:"icon"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Disabled    bool         `json:"disabled,omitempty"`
	Links       *ActionLinks `json:"links,omitempty"`
}

type ActionLinks struct {
	Actions []LinkedAction `json:"actions"`
}

type LinkedAction struct {
	Type       string            `json:"type"`
	Href       string            `json:"href"`
	Label      string            `json:"label"`
	Disabled   bool              `json:"disabled,omitempty"`
	Parameters []ActionParameter `json:"parameters,omitempty"`
}

type ActionParameter struct {
	Type     string `json:"type,omitempty"`
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Required bool   `json:"required,omitempty"`
}

type ActionPostRequest struct {
	Account string          `json:"account"`
	Data    *ActionPostData `json:"data,omitempty"`
}

type ActionPostData struct {
	Name string `json:"name,omitempty"`
}

type ActionPostResponse struct {
	Type        string             `json:"type"`
	Transaction string             `json:"transaction"`
	Message     string             `json:"message,omitempty"`
	Links       *PostResponseLinks `json:"links,omitempty"`
}

type PostResponseLinks struct {
	Next *NextActionLink `json:"next"`
}

// NextActionLink embeds the descriptor the client should render once the transaction is confirmed.
type NextActionLink struct {
	Type   string             `json:"type"`
	Action *ActionGetResponse `json:"action"`
}

type ActionError struct {
	Message string `json:"message"`
}

type ActionsJSON struct {
	Rules []ActionRule `json:"rules"`
}

type ActionRule struct {
	PathPattern string `json:"pathPattern"`
	APIPath     string `json:"apiPath"`
}
