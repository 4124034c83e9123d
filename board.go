package chess

import (
	"strconv"
	"strings"
)

// A Board represents a chess board and its relationship between squares and pieces using bitboards.
type Board struct {
	// Piece Bitboards
	bbWhiteKing   Bitboard
	bbWhiteQueen  Bitboard
	bbWhiteRook   Bitboard
	bbWhiteBishop Bitboard
	bbWhiteKnight Bitboard
	bbWhitePawn   Bitboard
	bbBlackKing   Bitboard
	bbBlackQueen  Bitboard
	bbBlackRook   Bitboard
	bbBlackBishop Bitboard
	bbBlackKnight Bitboard
	bbBlackPawn   Bitboard

	// Convenience Bitboards
	whiteSqs Bitboard // Combined white pieces
	blackSqs Bitboard // Combined black pieces
	emptySqs Bitboard // Unoccupied squares

	// King Locations (cached for efficiency)
	whiteKingSq Square
	blackKingSq Square
}

// NewBoard returns a board initialized from a square-to-piece mapping.
func NewBoard(m map[Square]Piece) *Board {
	b := &Board{} // Initializes all Bitboard fields to EmptyBB (0)
	for sq, p := range m {
		sqBB := SquareBB(sq) // Get bitboard for the square
		if sqBB == EmptyBB { // Skip invalid squares if any
			continue
		}
		switch p {
		case WhiteKing:
			b.bbWhiteKing |= sqBB
		case WhiteQueen:
			b.bbWhiteQueen |= sqBB
		case WhiteRook:
			b.bbWhiteRook |= sqBB
		case WhiteBishop:
			b.bbWhiteBishop |= sqBB
		case WhiteKnight:
			b.bbWhiteKnight |= sqBB
		case WhitePawn:
			b.bbWhitePawn |= sqBB
		case BlackKing:
			b.bbBlackKing |= sqBB
		case BlackQueen:
			b.bbBlackQueen |= sqBB
		case BlackRook:
			b.bbBlackRook |= sqBB
		case BlackBishop:
			b.bbBlackBishop |= sqBB
		case BlackKnight:
			b.bbBlackKnight |= sqBB
		case BlackPawn:
			b.bbBlackPawn |= sqBB
		}
	}
	b.calcConvienceBBs(nil) // Calculate combined BBs and find kings
	return b
}

// Piece returns the piece located on the given square by checking the individual bitboards.
// Returns NoPiece if the square is empty or invalid.
func (b *Board) Piece(sq Square) Piece {
	sqBB := SquareBB(sq)
	if sqBB == EmptyBB { // Handle invalid square index
		return NoPiece
	}

	// Check White Pieces
	if (b.bbWhiteKing & sqBB) != 0 {
		return WhiteKing
	}
	if (b.bbWhiteQueen & sqBB) != 0 {
		return WhiteQueen
	}
	if (b.bbWhiteRook & sqBB) != 0 {
		return WhiteRook
	}
	if (b.bbWhiteBishop & sqBB) != 0 {
		return WhiteBishop
	}
	if (b.bbWhiteKnight & sqBB) != 0 {
		return WhiteKnight
	}
	if (b.bbWhitePawn & sqBB) != 0 {
		return WhitePawn
	}

	// Check Black Pieces
	if (b.bbBlackKing & sqBB) != 0 {
		return BlackKing
	}
	if (b.bbBlackQueen & sqBB) != 0 {
		return BlackQueen
	}
	if (b.bbBlackRook & sqBB) != 0 {
		return BlackRook
	}
	if (b.bbBlackBishop & sqBB) != 0 {
		return BlackBishop
	}
	if (b.bbBlackKnight & sqBB) != 0 {
		return BlackKnight
	}
	if (b.bbBlackPawn & sqBB) != 0 {
		return BlackPawn
	}

	return NoPiece // Square is empty
}

// update applies a move to the board, modifying the bitboard representation.
// Assumes the move is valid.
func (b *Board) update(m *Move) {
	p1 := b.Piece(m.S1()) // Piece being moved
	s1 := m.S1()
	s2 := m.S2()

	// 1. Clear the origin square (s1) for the moving piece (p1)
	bbp1 := b.bbForPiece(p1)
	b.setBBForPiece(p1, bbp1.Clear(s1))

	// 2. Handle capture: Clear the destination square (s2) for any captured piece
	// Note: En passant capture is handled separately below.
	if m.HasTag(Capture) && !m.HasTag(EnPassant) {
		p2 := b.Piece(s2) // Piece on destination square
		if p2 != NoPiece {
			bbp2 := b.bbForPiece(p2)
			b.setBBForPiece(p2, bbp2.Clear(s2))
		}
	}

	// 3. Place the moving piece (p1) on the destination square (s2)
	// If promotion occurs, this is temporary; the pawn is removed and promo piece added below.
	bbp1 = b.bbForPiece(p1) // Re-fetch (might have been cleared)
	b.setBBForPiece(p1, bbp1.Set(s2))

	// 4. Handle Special Moves
	promoType := m.Promo()
	if promoType != NoPieceType {
		promoPiece := NewPiece(promoType, p1.Color())
		// Remove the pawn that just arrived at s2
		b.setBBForPiece(p1, b.bbForPiece(p1).Clear(s2))
		// Add the promoted piece at s2
		bbPromo := b.bbForPiece(promoPiece)
		b.setBBForPiece(promoPiece, bbPromo.Set(s2))
	} else if m.HasTag(EnPassant) {
		var capturedPawnSq Square
		if p1.Color() == White { // White captures Black pawn
			capturedPawnSq = s2 - 8 // Black pawn is one rank below EP square s2
			b.bbBlackPawn = b.bbBlackPawn.Clear(capturedPawnSq)
		} else { // Black captures White pawn
			capturedPawnSq = s2 + 8 // White pawn is one rank above EP square s2
			b.bbWhitePawn = b.bbWhitePawn.Clear(capturedPawnSq)
		}
	} else if m.HasTag(KingSideCastle) {
		if p1.Color() == White { // White O-O
			b.bbWhiteRook = b.bbWhiteRook.Clear(H1).Set(F1)
		} else { // Black O-O
			b.bbBlackRook = b.bbBlackRook.Clear(H8).Set(F8)
		}
	} else if m.HasTag(QueenSideCastle) {
		if p1.Color() == White { // White O-O-O
			b.bbWhiteRook = b.bbWhiteRook.Clear(A1).Set(D1)
		} else { // Black O-O-O
			b.bbBlackRook = b.bbBlackRook.Clear(A8).Set(D8)
		}
	}

	// 5. Recalculate convenience bitboards and update king locations
	b.calcConvienceBBs(m)
}

// unmake reverses update(m), restoring the board to its pre-move state. It
// relies on m carrying the captured piece (if any), since the board no
// longer holds that information once update has cleared the square.
func (b *Board) unmake(m Move) {
	s1, s2 := m.S1(), m.S2()
	mover := m.Piece()

	// Remove whatever piece currently sits on s2: the promoted piece if this
	// was a promotion, otherwise the original mover.
	landed := mover
	if m.Promo() != NoPieceType {
		landed = NewPiece(m.Promo(), mover.Color())
	}
	b.setBBForPiece(landed, b.bbForPiece(landed).Clear(s2))

	// Put the mover back on s1.
	b.setBBForPiece(mover, b.bbForPiece(mover).Set(s1))

	switch {
	case m.HasTag(EnPassant):
		var capSq Square
		if mover.Color() == White {
			capSq = s2 - 8
		} else {
			capSq = s2 + 8
		}
		b.setBBForPiece(m.Captured(), b.bbForPiece(m.Captured()).Set(capSq))
	case m.HasTag(Capture):
		b.setBBForPiece(m.Captured(), b.bbForPiece(m.Captured()).Set(s2))
	case m.HasTag(KingSideCastle):
		if mover.Color() == White {
			b.bbWhiteRook = b.bbWhiteRook.Clear(F1).Set(H1)
		} else {
			b.bbBlackRook = b.bbBlackRook.Clear(F8).Set(H8)
		}
	case m.HasTag(QueenSideCastle):
		if mover.Color() == White {
			b.bbWhiteRook = b.bbWhiteRook.Clear(D1).Set(A1)
		} else {
			b.bbBlackRook = b.bbBlackRook.Clear(D8).Set(A8)
		}
	}

	b.calcConvienceBBs(nil)
}

// calcConvienceBBs updates the combined white, black, and empty square bitboards,
// and caches the king's square location.
// If m is not nil, it assumes the king might have moved and updates kingSq accordingly.
func (b *Board) calcConvienceBBs(m *Move) {
	b.whiteSqs = b.bbWhiteKing | b.bbWhiteQueen | b.bbWhiteRook | b.bbWhiteBishop | b.bbWhiteKnight | b.bbWhitePawn
	b.blackSqs = b.bbBlackKing | b.bbBlackQueen | b.bbBlackRook | b.bbBlackBishop | b.bbBlackKnight | b.bbBlackPawn
	b.emptySqs = ^(b.whiteSqs | b.blackSqs)

	// Update king square caches
	if m == nil { // Initial calculation or state load
		// Find kings by checking their bitboards (safer than assuming LSB if BB could be empty/invalid)
		b.whiteKingSq = NoSquare
		wKingSq, wOk := b.bbWhiteKing.LSB()
		if wOk {
			b.whiteKingSq = wKingSq
		}

		b.blackKingSq = NoSquare
		bKingSq, bOk := b.bbBlackKing.LSB()
		if bOk {
			b.blackKingSq = bKingSq
		}
	} else { // Update based on move
		if m.S1() == b.whiteKingSq {
			b.whiteKingSq = m.S2()
		} else if m.S1() == b.blackKingSq {
			b.blackKingSq = m.S2()
		}
		// If a castle move, the king square is already updated based on S1->S2.
	}
}

// copy creates a deep copy of the board.
func (b *Board) copy() *Board {
	return &Board{
		// Copy Bitboards
		bbWhiteKing:   b.bbWhiteKing,
		bbWhiteQueen:  b.bbWhiteQueen,
		bbWhiteRook:   b.bbWhiteRook,
		bbWhiteBishop: b.bbWhiteBishop,
		bbWhiteKnight: b.bbWhiteKnight,
		bbWhitePawn:   b.bbWhitePawn,
		bbBlackKing:   b.bbBlackKing,
		bbBlackQueen:  b.bbBlackQueen,
		bbBlackRook:   b.bbBlackRook,
		bbBlackBishop: b.bbBlackBishop,
		bbBlackKnight: b.bbBlackKnight,
		bbBlackPawn:   b.bbBlackPawn,
		// Copy Convenience Bitboards
		whiteSqs: b.whiteSqs,
		blackSqs: b.blackSqs,
		emptySqs: b.emptySqs,
		// Copy King Locations
		whiteKingSq: b.whiteKingSq,
		blackKingSq: b.blackKingSq,
	}
}

// White returns the combined occupancy bitboard of all White pieces.
func (b *Board) White() Bitboard { return b.whiteSqs }

// Black returns the combined occupancy bitboard of all Black pieces.
func (b *Board) Black() Bitboard { return b.blackSqs }

// Both returns the combined occupancy bitboard of all pieces.
func (b *Board) Both() Bitboard { return b.whiteSqs | b.blackSqs }

// Occupancy returns the combined occupancy bitboard for the given side.
func (b *Board) Occupancy(c Color) Bitboard {
	if c == Black {
		return b.blackSqs
	}
	return b.whiteSqs
}

// BB returns the bitboard for a given colored piece.
func (b *Board) BB(p Piece) Bitboard { return b.bbForPiece(p) }

// KingSquare returns the cached square of the king of the given color,
// or NoSquare if that side has no king on the board.
func (b *Board) KingSquare(c Color) Square {
	if c == Black {
		return b.blackKingSq
	}
	return b.whiteKingSq
}

// Update applies m to the board, mutating its bitboards. It is the exported
// form of update, called by Position.Make before it updates the game-state
// bookkeeping (castling rights, en passant, clocks).
func (b *Board) Update(m Move) { b.update(&m) }

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board { return b.copy() }

// hasSufficientMaterial checks if there is enough material on the board for a checkmate to be possible.
// Used for automatic draw detection (Insufficient Material).
func (b *Board) hasSufficientMaterial() bool {
	// Rule out easy cases first:
	// Any pawn, rook, or queen guarantees sufficient material.
	if (b.bbWhitePawn | b.bbWhiteRook | b.bbWhiteQueen |
		b.bbBlackPawn | b.bbBlackRook | b.bbBlackQueen) != EmptyBB {
		return true
	}

	// If we reach here, only Kings, Knights, and Bishops remain.
	whiteKnights := b.bbWhiteKnight.PopCount()
	whiteBishops := b.bbWhiteBishop.PopCount()
	blackKnights := b.bbBlackKnight.PopCount()
	blackBishops := b.bbBlackBishop.PopCount()

	// K vs K is insufficient
	if whiteKnights == 0 && whiteBishops == 0 && blackKnights == 0 && blackBishops == 0 {
		return false
	}

	// K+N vs K is insufficient
	if whiteKnights == 1 && whiteBishops == 0 && blackKnights == 0 && blackBishops == 0 {
		return false
	}
	if blackKnights == 1 && blackBishops == 0 && whiteKnights == 0 && whiteBishops == 0 {
		return false
	}

	// K+B vs K is insufficient
	if whiteBishops == 1 && whiteKnights == 0 && blackKnights == 0 && blackBishops == 0 {
		return false
	}
	if blackBishops == 1 && blackKnights == 0 && whiteKnights == 0 && whiteBishops == 0 {
		return false
	}

	// K+B vs K+B (Bishops on same color) is insufficient
	if whiteKnights == 0 && blackKnights == 0 && whiteBishops == 1 && blackBishops == 1 {
		// Check if bishops are on the same color square
		wbSq, wOk := b.bbWhiteBishop.LSB()
		bbSq, bOk := b.bbBlackBishop.LSB()
		if wOk && bOk && SquareColor(wbSq) == SquareColor(bbSq) {
			return false
		}
	}

	// All other scenarios (e.g., K+N+N vs K, K+B+N vs K, K+B+B vs K etc.) are generally sufficient.
	// Note: K+N+N vs K is technically insufficient in FIDE rules, but complex to detect edge cases perfectly here.
	// Most engines treat it as sufficient or rely on game outcome/rules elsewhere.
	// The FIDE rule mainly applies if the stronger side cannot force mate.
	// For draw claim purposes (like in insufficient material rule), this simplified check is common.

	return true
}

// --- Helper methods for getting/setting specific piece bitboards ---

// bbForPiece returns the specific Bitboard for the given piece.
// Returns EmptyBB if the piece is NoPiece.
func (b *Board) bbForPiece(p Piece) Bitboard {
	switch p {
	case WhiteKing:
		return b.bbWhiteKing
	case WhiteQueen:
		return b.bbWhiteQueen
	case WhiteRook:
		return b.bbWhiteRook
	case WhiteBishop:
		return b.bbWhiteBishop
	case WhiteKnight:
		return b.bbWhiteKnight
	case WhitePawn:
		return b.bbWhitePawn
	case BlackKing:
		return b.bbBlackKing
	case BlackQueen:
		return b.bbBlackQueen
	case BlackRook:
		return b.bbBlackRook
	case BlackBishop:
		return b.bbBlackBishop
	case BlackKnight:
		return b.bbBlackKnight
	case BlackPawn:
		return b.bbBlackPawn
	default:
		return EmptyBB
	}
}

// setBBForPiece updates the specific Bitboard for the given piece.
// Panics if the piece is invalid (should not happen with internal use).
func (b *Board) setBBForPiece(p Piece, bb Bitboard) {
	switch p {
	case WhiteKing:
		b.bbWhiteKing = bb
	case WhiteQueen:
		b.bbWhiteQueen = bb
	case WhiteRook:
		b.bbWhiteRook = bb
	case WhiteBishop:
		b.bbWhiteBishop = bb
	case WhiteKnight:
		b.bbWhiteKnight = bb
	case WhitePawn:
		b.bbWhitePawn = bb
	case BlackKing:
		b.bbBlackKing = bb
	case BlackQueen:
		b.bbBlackQueen = bb
	case BlackRook:
		b.bbBlackRook = bb
	case BlackBishop:
		b.bbBlackBishop = bb
	case BlackKnight:
		b.bbBlackKnight = bb
	case BlackPawn:
		b.bbBlackPawn = bb
	default:
		// This should ideally not be reached if called with valid pieces
		panic("chess: setBBForPiece called with invalid piece")
	}
}

// --- FEN and Debugging ---

// Draw returns visual representation of the board useful for debugging.
func (b *Board) Draw() string {
	s := "\n  a b c d e f g h\n"
	for r := Rank8; r >= Rank1; r-- {
		s += Rank(r).String() + " " // Rank number (adjust if Rank String gives 1-8)
		// If Rank String returns 0-7, use: s += strconv.Itoa(int(r)+1) + " "
		for f := FileA; f <= FileH; f++ {
			p := b.Piece(NewSquare(f, r))
			if p == NoPiece {
				// Use dot or space based on square color for better readability
				if SquareColor(NewSquare(f, r)) == White { // Light square
					s += ". "
				} else { // Dark square
					s += "+ " // Or another char for dark empty
				}
			} else {
				s += p.String() + " " // Use Unicode piece character
			}
		}
		s += Rank(r).String() + "\n" // Rank number again
		// If Rank String returns 0-7, use: s += strconv.Itoa(int(r)+1) + "\n"
	}
	s += "  a b c d e f g h\n"
	return s
}

// String implements the fmt.Stringer interface and returns
// a string in the FEN board format: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR
func (b *Board) String() string {
	var fen strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		emptyCount := 0
		for f := FileA; f <= FileH; f++ {
			sq := NewSquare(f, r)
			p := b.Piece(sq)
			if p == NoPiece {
				emptyCount++
			} else {
				if emptyCount > 0 {
					fen.WriteString(strconv.Itoa(emptyCount))
					emptyCount = 0
				}
				fen.WriteString(p.getFENChar()) // Use existing helper for FEN char
			}
		}
		if emptyCount > 0 {
			fen.WriteString(strconv.Itoa(emptyCount))
		}
		if r != Rank1 {
			fen.WriteString("/")
		}
	}
	return fen.String()
}

