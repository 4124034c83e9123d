package chess

import "strings"

// MoveTag is a bitmask describing the special properties of a Move. A Move
// can carry more than one tag (e.g. a capturing promotion is both Capture
// and Promotion).
type MoveTag uint8

const (
	Quiet           MoveTag = 0
	Capture         MoveTag = 1 << 0
	EnPassant       MoveTag = 1 << 1
	DoublePawnPush  MoveTag = 1 << 2
	KingSideCastle  MoveTag = 1 << 3
	QueenSideCastle MoveTag = 1 << 4
	Promotion       MoveTag = 1 << 5
)

// Move is a tagged (from, to, promotion?) move. It is a small value type,
// cheap to copy and to hold in slices during move generation and search.
type Move struct {
	s1, s2   Square
	piece    Piece
	captured Piece
	promo    PieceType
	tag      MoveTag
}

// NewMove builds a Move. captured is NoPiece for non-captures; promo is
// NoPieceType for non-promotions.
func NewMove(s1, s2 Square, piece, captured Piece, promo PieceType, tag MoveTag) Move {
	return Move{s1: s1, s2: s2, piece: piece, captured: captured, promo: promo, tag: tag}
}

// S1 returns the origin square.
func (m Move) S1() Square { return m.s1 }

// S2 returns the destination square.
func (m Move) S2() Square { return m.s2 }

// Piece returns the moving piece.
func (m Move) Piece() Piece { return m.piece }

// Captured returns the captured piece, or NoPiece if the move is not a capture.
func (m Move) Captured() Piece { return m.captured }

// Promo returns the promotion piece type, or NoPieceType if the move is not a promotion.
func (m Move) Promo() PieceType { return m.promo }

// HasTag reports whether the move carries the given tag (or set of tags).
func (m Move) HasTag(tag MoveTag) bool { return m.tag&tag == tag }

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool { return m.HasTag(Capture) }

// IsCastle reports whether the move is a castling move, either side.
func (m Move) IsCastle() bool { return m.HasTag(KingSideCastle) || m.HasTag(QueenSideCastle) }

// String renders the move in long algebraic form: from, to, and, for
// promotions, a lowercase promotion letter (e.g. "e7e8q").
func (m Move) String() string {
	var sb strings.Builder
	sb.WriteString(m.s1.String())
	sb.WriteString(m.s2.String())
	if m.promo != NoPieceType {
		sb.WriteString(m.promo.String())
	}
	return sb.String()
}

// UCI is an alias for String, named for callers used to the UCI long
// algebraic convention.
func (m Move) UCI() string { return m.String() }
