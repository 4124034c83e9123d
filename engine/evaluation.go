package engine

import "github.com/rook9/chess"

// PieceBreakdown is a single piece's contribution to the position's
// White-minus-Black score, split by term. SignedTotal is this piece's share
// and the sum of SignedTotal across all occupied squares must equal the
// overall score exactly, by construction: every term below is computed as a
// per-piece contribution rather than a global total distributed afterward.
type PieceBreakdown struct {
	Base          int
	PST           int
	Mobility      int
	PawnStructure int
	KingSafety    int
	SignedTotal   int
}

// Evaluation is the result of a full static evaluation: the White-minus-
// Black centipawn score plus the artifacts derived from it.
type Evaluation struct {
	ScoreWhiteMinusBlack int
	PieceValues          map[chess.Square]int
	PieceBreakdown       map[chess.Square]PieceBreakdown
	Heatmap              map[chess.Square]int
}

// Evaluate computes a full evaluation of pos, White-minus-Black, along with
// the per-piece decomposition and heatmap. The sign conversion to
// side-to-move perspective happens only at the search/eval boundary in
// Search, never here.
func Evaluate(pos *chess.Position) Evaluation {
	breakdown := map[chess.Square]PieceBreakdown{}

	for _, c := range [2]chess.Color{chess.White, chess.Black} {
		sign := 1
		if c == chess.Black {
			sign = -1
		}
		for _, pt := range allPieceTypes {
			piece := chess.NewPiece(pt, c)
			bb := pos.Board().BB(piece)
			for tmp := bb; tmp != chess.EmptyBB; {
				sq, next, ok := tmp.PopLSB()
				if !ok {
					break
				}
				tmp = next
				bd := pieceContribution(pos, sq, pt, c)
				bd.SignedTotal = sign * bd.SignedTotal
				breakdown[sq] = bd
			}
		}
	}

	total := 0
	for _, bd := range breakdown {
		total += bd.SignedTotal
	}

	values := make(map[chess.Square]int, len(breakdown))
	for sq, bd := range breakdown {
		values[sq] = bd.SignedTotal
	}

	return Evaluation{
		ScoreWhiteMinusBlack: total,
		PieceValues:          values,
		PieceBreakdown:       breakdown,
		Heatmap:              heatmap(pos),
	}
}

var allPieceTypes = [6]chess.PieceType{
	chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King,
}

// pieceContribution computes one piece's unsigned (White-perspective
// magnitude) contribution across all terms; the caller applies the sign for
// Black. SignedTotal here is the unsigned sum, negated by the caller.
func pieceContribution(pos *chess.Position, sq chess.Square, pt chess.PieceType, c chess.Color) PieceBreakdown {
	base := materialValue[pt]

	pstSq := sq
	if c == chess.Black {
		pstSq = mirrorSquare(sq)
	}
	pstVal := pst[pt][pstSq]

	mob := mobility(pos, sq, pt, c) * mobilityWeight[pt]

	var pawnStruct, kingSafety int
	switch pt {
	case chess.Pawn:
		pawnStruct = pawnStructureTerm(pos, sq, c)
	case chess.King:
		kingSafety = kingSafetyTerm(pos, sq, c)
	}

	total := base + pstVal + mob + pawnStruct + kingSafety
	return PieceBreakdown{
		Base:          base,
		PST:           pstVal,
		Mobility:      mob,
		PawnStructure: pawnStruct,
		KingSafety:    kingSafety,
		SignedTotal:   total,
	}
}

// mobility counts pseudo-legal target squares for the piece on sq, with
// slider rays resolved against current occupancy and own-color squares
// excluded; pawns and kings always report zero (not scored by this term).
func mobility(pos *chess.Position, sq chess.Square, pt chess.PieceType, c chess.Color) int {
	b := pos.Board()
	own := b.Occupancy(c)
	occ := b.Both()

	var targets chess.Bitboard
	switch pt {
	case chess.Knight:
		targets = chess.GetKnightAttacks(sq)
	case chess.Bishop:
		targets = chess.GenerateBishopAttacks(sq, occ)
	case chess.Rook:
		targets = chess.GenerateRookAttacks(sq, occ)
	case chess.Queen:
		targets = chess.GenerateQueenAttacks(sq, occ)
	default:
		return 0
	}
	return (targets &^ own).PopCount()
}

// pawnStructureTerm returns the doubled/isolated/passed contribution for the
// pawn of color c on sq, in White-perspective magnitude.
func pawnStructureTerm(pos *chess.Position, sq chess.Square, c chess.Color) int {
	b := pos.Board()
	friendly := b.BB(chess.NewPiece(chess.Pawn, c))
	enemy := b.BB(chess.NewPiece(chess.Pawn, c.Other()))

	score := 0

	fileBB := chess.BBFile(sq.File())
	filePawns := friendly & fileBB
	if filePawns.PopCount() > 1 {
		// Beyond the first pawn on this file counts as doubled; attribute
		// the penalty once per pawn beyond the lowest-indexed one.
		lsb, ok := filePawns.LSB()
		if ok && sq != lsb {
			score -= doubledPawnPenalty
		}
	}

	if chess.AdjacentFilesMask(sq)&friendly == chess.EmptyBB {
		score -= isolatedPawnPenalty
	}

	if chess.IsPassedPawn(sq, c, friendly, enemy) {
		score += passedPawnBonus
	}

	return score
}

// kingSafetyTerm returns the pawn-shield and attacker-penalty contribution
// for the king of color c on sq, in White-perspective magnitude. Each
// opponent piece attacking at least one square of the king's ring costs one
// penalty.
func kingSafetyTerm(pos *chess.Position, sq chess.Square, c chess.Color) int {
	b := pos.Board()
	friendlyPawns := b.BB(chess.NewPiece(chess.Pawn, c))
	shieldCount := (chess.KingPawnShieldMask(sq, c) & friendlyPawns).PopCount()

	var attackerSet chess.Bitboard
	ringMask := chess.GetKingAttacks(sq)
	opponent := c.Other()
	for tmp := ringMask; tmp != chess.EmptyBB; {
		ringSq, next, ok := tmp.PopLSB()
		if !ok {
			break
		}
		tmp = next
		attackerSet |= chess.AttackersTo(pos, ringSq, opponent)
	}
	attackers := attackerSet.PopCount()

	return shieldCount*kingShieldBonus - attackers*kingAttackerPenalty
}

// heatmap reports, for every square, the signed difference between the
// number of White and Black attackers, omitting squares where it is zero.
func heatmap(pos *chess.Position) map[chess.Square]int {
	h := map[chess.Square]int{}
	for sq := chess.A1; sq <= chess.H8; sq++ {
		white := chess.AttackersTo(pos, sq, chess.White).PopCount()
		black := chess.AttackersTo(pos, sq, chess.Black).PopCount()
		if diff := white - black; diff != 0 {
			h[sq] = diff
		}
	}
	return h
}
