package entity

import "github.com/rocketscienceinc/tictactoe-blinks/internal/apperror"

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// WinCombos lists rows, then columns, then diagonals. The order decides which line is reported first.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game is the whole state of one route family. An empty Player means no game is in progress.
type Game struct {
	Player string    `json:"player"`
	Board  [9]string `json:"board"`
	Turn   string    `json:"turn"`
	Winner string    `json:"winner,omitempty"`
}

func NewGame() *Game {
	return &Game{
		Turn: PlayerX,
	}
}

// Start begins a new game for name, discarding any previous board.
func (that *Game) Start(name string) error {
	if name == "" {
		return apperror.ErrNameRequired
	}

	that.Player = name
	that.Reset()

	return nil
}

// Reset clears the board and the winner but keeps the player.
func (that *Game) Reset() {
	that.Board = [9]string{}
	that.Turn = PlayerX
	that.Winner = ""
}

// MakeTurn places the mark whose turn it is on cell.
func (that *Game) MakeTurn(cell int) error {
	if !that.IsStarted() {
		return apperror.ErrGameIsNotStarted
	}

	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return apperror.ErrInvalidPosition
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = that.CurrentMark()
	that.Winner = that.DetermineWinner()

	// the turn stays with the winner
	if that.Winner == "" {
		that.Turn = toggleMark(that.CurrentMark())
	}

	return nil
}

func (that *Game) DetermineWinner() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return ""
}

func (that *Game) CurrentMark() string {
	if that.Turn == PlayerO {
		return PlayerO
	}
	return PlayerX
}

func (that *Game) IsStarted() bool {
	return that.Player != ""
}

func (that *Game) IsFinished() bool {
	return that.Winner != ""
}

// IsDraw reports a full board without a winner.
func (that *Game) IsDraw() bool {
	if that.IsFinished() {
		return false
	}

	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func toggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
