package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

const (
	ActionSetName = "setName"
	ActionMove    = "move"
	ActionReset   = "reset"
)

// Params carries the inputs an action may need. Position is kept raw so parsing failures surface as validation errors.
type Params struct {
	Name     string
	Position string
}

// Apply runs action against gameInstance and returns the confirmation message for the client.
// On error gameInstance is left as it was.
func Apply(gameInstance *entity.Game, action string, params Params) (string, error) {
	switch action {
	case ActionSetName:
		if err := gameInstance.Start(params.Name); err != nil {
			return "", err
		}

		return fmt.Sprintf("Welcome, %s! Game started.", gameInstance.Player), nil
	case ActionMove:
		cell := parsePosition(params.Position)
		if err := gameInstance.MakeTurn(cell); err != nil {
			return "", err
		}

		return fmt.Sprintf("Move made at position %d", cell), nil
	case ActionReset:
		gameInstance.Reset()

		return "New game started", nil
	default:
		return "", apperror.ErrInvalidAction
	}
}

// parsePosition - returns -1 for anything that is not a plain integer, which MakeTurn rejects as out of range.
func parsePosition(position string) int {
	cell, err := strconv.Atoi(strings.TrimSpace(position))
	if err != nil {
		return -1
	}

	return cell
}
