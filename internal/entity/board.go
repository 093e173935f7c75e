package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 3
)

// Position is a single cell coordinate on the board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line describes a three-in-a-row by its two endpoint cells.
type Line struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Board is the 3x3 grid. A cell holds PlayerX, PlayerO or EmptyCell.
type Board [BoardSize][BoardSize]string

// lines covers 3 rows, 3 columns and 2 diagonals, in the order they are scanned.
var lines = [8][3]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Result scans rows, columns and diagonals for three identical marks.
// It returns the winning mark and the completed line, or EmptyCell and nil
// when no line is complete. Turn alternation guarantees at most one player
// can hold a completed line at a time.
func (that *Board) Result() (string, *Line) {
	for _, combo := range lines {
		a := that[combo[0].Row][combo[0].Col]
		b := that[combo[1].Row][combo[1].Col]
		c := that[combo[2].Row][combo[2].Col]

		if a != EmptyCell && a == b && b == c {
			return a, &Line{From: combo[0], To: combo[2]}
		}
	}

	return EmptyCell, nil
}

func (that *Board) IsFull() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

// AvailableMoves lists the open cells in row-major order.
func (that *Board) AvailableMoves() []Position {
	moves := make([]Position, 0, BoardSize*BoardSize)
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				moves = append(moves, Position{Row: row, Col: col})
			}
		}
	}

	return moves
}

func (that *Board) InRange(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// ToggleMark returns the other player's mark.
func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
