package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-blinks/internal/entity"
)

const (
	titlePrefix    = "Solana Tic-Tac-Toe"
	entryIconPath  = "/img/tictactoe-entry.png"
	emptyCellToken = "-"
)

// Describe renders the descriptor for the current state of gameInstance.
// basePath is the route the actions post back to, origin the scheme and host used for icon URLs.
func Describe(gameInstance entity.Game, basePath, origin string) *entity.ActionGetResponse {
	if !gameInstance.IsStarted() {
		return &entity.ActionGetResponse{
			Type:        entity.ActionTypeAction,
			Icon:        origin + entryIconPath,
			Title:       titlePrefix + " - Player Entry",
			Description: "Enter your name to start playing Tic-Tac-Toe on Solana",
			Label:       "Enter Your Name",
			Links: &entity.ActionLinks{
				Actions: []entity.LinkedAction{
					{
						Type:  entity.ActionTypePost,
						Href:  actionHref(basePath, ActionSetName),
						Label: "Start Game",
						Parameters: []entity.ActionParameter{
							{Name: "name", Label: "Your Name", Required: true},
						},
					},
				},
			},
		}
	}

	descriptor := &entity.ActionGetResponse{
		Type:  entity.ActionTypeAction,
		Icon:  BoardIconURL(origin, gameInstance.Board),
		Title: fmt.Sprintf("%s - %s's Game", titlePrefix, gameInstance.Player),
	}

	switch {
	case gameInstance.IsFinished(), gameInstance.IsDraw():
		descriptor.Label = fmt.Sprintf("Game Over - %s wins!", gameInstance.Winner)
		if gameInstance.IsDraw() {
			descriptor.Label = "Game Over - It's a draw!"
		}
		descriptor.Description = "Game has ended. Start a new game?"
		descriptor.Links = &entity.ActionLinks{
			Actions: []entity.LinkedAction{
				{Type: entity.ActionTypePost, Href: actionHref(basePath, ActionReset), Label: "New Game"},
			},
		}
	default:
		mark := gameInstance.CurrentMark()
		descriptor.Label = fmt.Sprintf("Tic-Tac-Toe - %s's turn", mark)
		descriptor.Description = fmt.Sprintf("It's %s's turn to move", mark)
		descriptor.Links = &entity.ActionLinks{Actions: cellActions(gameInstance.Board, basePath)}
	}

	return descriptor
}

// BoardIconURL encodes the nine cells into the icon file name, "-" standing for an empty cell.
func BoardIconURL(origin string, board [9]string) string {
	var state strings.Builder
	for _, cell := range board {
		if cell == entity.EmptyCell {
			state.WriteString(emptyCellToken)
			continue
		}
		state.WriteString(cell)
	}

	return fmt.Sprintf("%s/img/tictactoe-%s.png", origin, state.String())
}

func cellActions(board [9]string, basePath string) []entity.LinkedAction {
	actions := make([]entity.LinkedAction, 0, len(board))
	for i, cell := range board {
		label := cell
		if cell == entity.EmptyCell {
			label = strconv.Itoa(i + 1)
		}

		actions = append(actions, entity.LinkedAction{
			Type:     entity.ActionTypePost,
			Href:     actionHref(basePath, ActionMove) + "&position=" + strconv.Itoa(i),
			Label:    label,
			Disabled: cell != entity.EmptyCell,
		})
	}

	return actions
}

func actionHref(basePath, action string) string {
	return basePath + "?action=" + action
}
