package puzzle

import "strconv"

const (
	tileGrid    = 3
	tileCells   = tileGrid * tileGrid
	maxShuffles = 1000
	tileBlank   = 0
)

// fallbackBoard is one move from solved. Used when shuffling gives up or no
// Shuffler is supplied.
var fallbackBoard = [tileCells]int{1, 2, 3, 4, 5, 6, 7, 0, 8}

// Tile is the 3x3 sliding puzzle. Cell 0 is the blank.
type Tile struct {
	board  [tileCells]int
	solved bool
}

func (t *Tile) Kind() string { return KindTile }

// Init shuffles until the board is solvable and not already solved.
func (t *Tile) Init(_ string, rng Shuffler) {
	t.solved = false
	if rng == nil {
		t.board = fallbackBoard
		return
	}
	for range maxShuffles {
		t.board = solvedBoard()
		for i := len(t.board) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			t.board[i], t.board[j] = t.board[j], t.board[i]
		}
		if Solvable(t.board[:]) && !isSolvedBoard(t.board) {
			return
		}
	}
	t.board = fallbackBoard
}

// HandleInput slides the tile at in.Index into the blank if they are
// orthogonally adjacent.
func (t *Tile) HandleInput(in Input) Outcome {
	if t.solved || in.Index < 0 || in.Index >= tileCells {
		return Outcome{Status: Ignored}
	}
	blank := t.blank()
	if !adjacent(in.Index, blank) {
		return Outcome{Status: Ignored}
	}
	t.board[in.Index], t.board[blank] = t.board[blank], t.board[in.Index]
	if isSolvedBoard(t.board) {
		t.solved = true
		return Outcome{Status: Solved}
	}
	return Outcome{Status: Changed}
}

func (t *Tile) Solved() bool { return t.solved }

func (t *Tile) Prompt() string { return "Solve the sliding tile puzzle..." }

func (t *Tile) View() View {
	cells := make([]string, tileCells)
	for i, v := range t.board {
		if v != tileBlank {
			cells[i] = strconv.Itoa(v)
		}
	}
	return View{Kind: KindTile, Cells: cells, Solved: t.solved}
}

// Board returns a copy of the current board.
func (t *Tile) Board() []int {
	out := make([]int, tileCells)
	copy(out, t.board[:])
	return out
}

func (t *Tile) blank() int {
	for i, v := range t.board {
		if v == tileBlank {
			return i
		}
	}
	return -1
}

// Solvable reports whether a 3x3 board can reach the solved state: the
// number of inversions among non-blank tiles must be even.
func Solvable(board []int) bool {
	inversions := 0
	for i := 0; i < len(board)-1; i++ {
		for j := i + 1; j < len(board); j++ {
			if board[i] != tileBlank && board[j] != tileBlank && board[i] > board[j] {
				inversions++
			}
		}
	}
	return inversions%2 == 0
}

func solvedBoard() [tileCells]int {
	var b [tileCells]int
	for i := 0; i < tileCells-1; i++ {
		b[i] = i + 1
	}
	return b
}

func isSolvedBoard(b [tileCells]int) bool {
	return b == solvedBoard()
}

func adjacent(a, b int) bool {
	ar, ac := a/tileGrid, a%tileGrid
	br, bc := b/tileGrid, b%tileGrid
	return (ar == br && abs(ac-bc) == 1) || (ac == bc && abs(ar-br) == 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
