package chess

// promotionPieces is the fixed generation order for promotions: Queen, Rook,
// Bishop, Knight. Move ordering in the engine package relies on this order
// being preserved by the generator.
var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoLegalMoves generates every pseudo-legal move for the side to move:
// ordinary moves, captures, promotions, en passant, double pawn pushes, and
// castling, without checking whether the mover is left in check.
func PseudoLegalMoves(pos *Position) []Move {
	moves := make([]Move, 0, 48)
	us := pos.stm
	them := us.Other()
	b := pos.board
	own := b.Occupancy(us)
	occ := b.Both()

	moves = genPawnMoves(pos, us, own, occ, moves)
	moves = genLeaperMoves(b, b.BB(NewPiece(Knight, us)), GetKnightAttacks, own, moves, Knight, us)
	moves = genLeaperMoves(b, b.BB(NewPiece(King, us)), GetKingAttacks, own, moves, King, us)
	moves = genSliderMoves(b, b.BB(NewPiece(Bishop, us)), GenerateBishopAttacks, occ, own, moves, Bishop, us)
	moves = genSliderMoves(b, b.BB(NewPiece(Rook, us)), GenerateRookAttacks, occ, own, moves, Rook, us)
	moves = genSliderMoves(b, b.BB(NewPiece(Queen, us)), GenerateQueenAttacks, occ, own, moves, Queen, us)
	moves = genCastles(pos, us, them, moves)
	return moves
}

func genPawnMoves(pos *Position, us Color, own, occ Bitboard, moves []Move) []Move {
	b := pos.board
	pawn := NewPiece(Pawn, us)
	pawns := b.BB(pawn)
	empty := ^occ
	enemy := b.Occupancy(us.Other())

	forward := 8
	startRank, promoRank := Rank2, Rank8
	if us == Black {
		forward = -8
		startRank, promoRank = Rank7, Rank1
	}

	for tmp := pawns; tmp != EmptyBB; {
		sq, next, _ := tmp.PopLSB()
		tmp = next

		one := sq + Square(forward)
		if one.Valid() && empty.Occupied(one) {
			appendPawnMove(&moves, pawn, sq, one, NoPiece, promoRank)
			if sq.Rank() == startRank {
				two := sq + Square(2*forward)
				if empty.Occupied(two) {
					moves = append(moves, NewMove(sq, two, pawn, NoPiece, NoPieceType, DoublePawnPush))
				}
			}
		}

		attacks := GetPawnAttacks(sq, us)
		for att := attacks & enemy; att != EmptyBB; {
			to, nx, _ := att.PopLSB()
			att = nx
			captured := b.Piece(to)
			appendPawnMove(&moves, pawn, sq, to, captured, promoRank)
		}

		if pos.epSquare != NoSquare && attacks.Occupied(pos.epSquare) {
			var capturedSq Square
			if us == White {
				capturedSq = pos.epSquare - 8
			} else {
				capturedSq = pos.epSquare + 8
			}
			captured := b.Piece(capturedSq)
			moves = append(moves, NewMove(sq, pos.epSquare, pawn, captured, NoPieceType, Capture|EnPassant))
		}
	}
	return moves
}

// appendPawnMove appends either a single quiet/capture move, or, when to is
// on the promotion rank, one move per promotion piece in generator order.
func appendPawnMove(moves *[]Move, pawn Piece, from, to Square, captured Piece, promoRank Rank) {
	tag := Quiet
	if captured != NoPiece {
		tag = Capture
	}
	if to.Rank() == promoRank {
		for _, pt := range promotionPieces {
			*moves = append(*moves, NewMove(from, to, pawn, captured, pt, tag|Promotion))
		}
		return
	}
	*moves = append(*moves, NewMove(from, to, pawn, captured, NoPieceType, tag))
}

func genLeaperMoves(b *Board, pieces Bitboard, attacksOf func(Square) Bitboard, own Bitboard, moves []Move, pt PieceType, us Color) []Move {
	piece := NewPiece(pt, us)
	for tmp := pieces; tmp != EmptyBB; {
		sq, next, _ := tmp.PopLSB()
		tmp = next
		targets := attacksOf(sq) &^ own
		for t := targets; t != EmptyBB; {
			to, nx, _ := t.PopLSB()
			t = nx
			captured := b.Piece(to)
			tag := Quiet
			if captured != NoPiece {
				tag = Capture
			}
			moves = append(moves, NewMove(sq, to, piece, captured, NoPieceType, tag))
		}
	}
	return moves
}

func genSliderMoves(b *Board, pieces Bitboard, attacksOf func(Square, Bitboard) Bitboard, occ, own Bitboard, moves []Move, pt PieceType, us Color) []Move {
	piece := NewPiece(pt, us)
	for tmp := pieces; tmp != EmptyBB; {
		sq, next, _ := tmp.PopLSB()
		tmp = next
		targets := attacksOf(sq, occ) &^ own
		for t := targets; t != EmptyBB; {
			to, nx, _ := t.PopLSB()
			t = nx
			captured := b.Piece(to)
			tag := Quiet
			if captured != NoPiece {
				tag = Capture
			}
			moves = append(moves, NewMove(sq, to, piece, captured, NoPieceType, tag))
		}
	}
	return moves
}

func genCastles(pos *Position, us, them Color, moves []Move) []Move {
	b := pos.board
	occ := b.Both()

	if us == White {
		if pos.castle.CanCastle(White, true) &&
			occ&(SquareBB(F1)|SquareBB(G1)) == EmptyBB &&
			!pos.isAttacked(E1, them) && !pos.isAttacked(F1, them) && !pos.isAttacked(G1, them) {
			moves = append(moves, NewMove(E1, G1, WhiteKing, NoPiece, NoPieceType, KingSideCastle))
		}
		if pos.castle.CanCastle(White, false) &&
			occ&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == EmptyBB &&
			!pos.isAttacked(E1, them) && !pos.isAttacked(D1, them) && !pos.isAttacked(C1, them) {
			moves = append(moves, NewMove(E1, C1, WhiteKing, NoPiece, NoPieceType, QueenSideCastle))
		}
		return moves
	}

	if pos.castle.CanCastle(Black, true) &&
		occ&(SquareBB(F8)|SquareBB(G8)) == EmptyBB &&
		!pos.isAttacked(E8, them) && !pos.isAttacked(F8, them) && !pos.isAttacked(G8, them) {
		moves = append(moves, NewMove(E8, G8, BlackKing, NoPiece, NoPieceType, KingSideCastle))
	}
	if pos.castle.CanCastle(Black, false) &&
		occ&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == EmptyBB &&
		!pos.isAttacked(E8, them) && !pos.isAttacked(D8, them) && !pos.isAttacked(C8, them) {
		moves = append(moves, NewMove(E8, C8, BlackKing, NoPiece, NoPieceType, QueenSideCastle))
	}
	return moves
}

// LegalMoves filters PseudoLegalMoves down to moves that do not leave the
// mover's own king in check, by making each move, testing check, and
// unmaking — the same code path the search uses to descend the tree.
func LegalMoves(pos *Position) []Move {
	pseudo := PseudoLegalMoves(pos)
	legal := make([]Move, 0, len(pseudo))
	mover := pos.stm
	for _, m := range pseudo {
		pos.Make(m)
		if !pos.isAttacked(pos.board.KingSquare(mover), mover.Other()) {
			legal = append(legal, m)
		}
		pos.Unmake()
	}
	return legal
}

// IsSquareAttacked reports whether sq is attacked by any piece of color by.
func IsSquareAttacked(pos *Position, sq Square, by Color) bool {
	return pos.isAttacked(sq, by)
}

// AttackersTo returns the bitboard of all pieces of color by that attack sq,
// used by the evaluator's heatmap to count (not just detect) attackers.
func AttackersTo(pos *Position, sq Square, by Color) Bitboard {
	return pos.attackersTo(sq, by)
}

// Perft counts the leaf nodes of the legal move tree rooted at pos at the
// given depth. It is the move generator's correctness oracle.
func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range LegalMoves(pos) {
		pos.Make(m)
		nodes += Perft(pos, depth-1)
		pos.Unmake()
	}
	return nodes
}

// PerftDivide returns, for each legal root move, the perft count of the
// subtree rooted at that move, keyed by its long algebraic form.
func PerftDivide(pos *Position, depth int) map[string]uint64 {
	result := map[string]uint64{}
	if depth < 1 {
		return result
	}
	for _, m := range LegalMoves(pos) {
		pos.Make(m)
		result[m.String()] = Perft(pos, depth-1)
		pos.Unmake()
	}
	return result
}
