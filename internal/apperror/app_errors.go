package apperror

import "errors"

// Kind classifies an Error. Every kind is reported to the caller the same way.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindInvalidState
	KindCollaborator
)

func (that Kind) String() string {
	switch that {
	case KindValidation:
		return "validation"
	case KindInvalidState:
		return "invalid_state"
	case KindCollaborator:
		return "collaborator"
	default:
		return "unknown"
	}
}

// Error is a tagged error whose message is safe to return to the client verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (that *Error) Error() string {
	if that.Err != nil {
		return that.Message + ": " + that.Err.Error()
	}

	return that.Message
}

func (that *Error) Unwrap() error {
	return that.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// Collaborator wraps a failure of an external system (RPC node, minting API).
func Collaborator(message string, err error) *Error {
	return &Error{Kind: KindCollaborator, Message: message, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.Kind == kind
}

var (
	ErrNameRequired     = Validation("Name is required")
	ErrInvalidPosition  = Validation("Invalid position input")
	ErrInvalidAction    = Validation("Invalid action")
	ErrInvalidAccount   = Validation("Invalid 'account' provided. It's not a real pubkey")
	ErrInvalidAmount    = Validation("Invalid 'amount' input")
	ErrInvalidBody      = Validation("Invalid request body")
	ErrGameFinished     = InvalidState("Game is already over")
	ErrGameIsNotStarted = InvalidState("Game has not started")
	ErrCellOccupied     = InvalidState("position already occupied")
	ErrConcurrentUpdate = InvalidState("Game state changed, try again")
)
