package engine

import "github.com/rook9/chess"

// pst holds a fixed, symmetric piece-square bonus per (piece type, square),
// indexed as a White-perspective table. Black's bonus on square sq is read
// from pst[pt][mirror(sq)], per the vertical-mirror convention in the
// evaluator's White-minus-Black contract. Values are implementation choices
// locked for reproducibility; evaluator tests check symmetry and
// decomposition closure rather than exact numbers.
var pst = map[chess.PieceType][64]int{
	chess.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	chess.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	chess.Rook: {
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	chess.King: {
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	},
}

// materialValue holds the fixed per-piece material base, in centipawns.
// Kings carry no material value; they are never traded.
var materialValue = map[chess.PieceType]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   0,
}

// mobilityWeight scales the number of pseudo-legal target squares of a
// piece into a centipawn bonus. Pawns and kings are excluded from mobility
// scoring, per the evaluator's "castling and pawn pushes are not counted"
// rule generalized to the whole piece.
var mobilityWeight = map[chess.PieceType]int{
	chess.Pawn:   0,
	chess.Knight: 4,
	chess.Bishop: 5,
	chess.Rook:   2,
	chess.Queen:  1,
	chess.King:   0,
}

const (
	doubledPawnPenalty  = 10
	isolatedPawnPenalty = 12
	passedPawnBonus     = 20

	kingShieldBonus     = 8
	kingAttackerPenalty = 10
)

// mirrorSquare reflects sq across the board's horizontal center line
// (rank r <-> rank 7-r), used to read White PST tables from Black's side.
func mirrorSquare(sq chess.Square) chess.Square {
	return chess.NewSquare(sq.File(), chess.Rank(7-int8(sq.Rank())))
}
