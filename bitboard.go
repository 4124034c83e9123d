package chess

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit integer used to represent the state of a chessboard.
type Bitboard uint64

// --- Constants ---

const (
	NumOfSquaresInBoard = 64 // Total squares on the board.
	NumOfFiles          = 8  // Number of files (columns).
	NumOfRanks          = 8  // Number of ranks (rows).
)

// Internal color indices used to index per-color precomputed tables.
const (
	WhiteIdx = 0 // Index for White
	BlackIdx = 1 // Index for Black
)

// Directions for ray generation (N, NE, E, SE, S, SW, W, NW). Used for sliders.
const (
	North = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections // Total number of directions = 8
)

// --- Predefined Bitboard Constants ---

const (
	EmptyBB Bitboard = 0

	// Files (LSB = Rank 1)
	FileABB Bitboard = 0x0101010101010101
	FileBBB Bitboard = FileABB << 1
	FileCBB Bitboard = FileABB << 2
	FileDBB Bitboard = FileABB << 3
	FileEBB Bitboard = FileABB << 4
	FileFBB Bitboard = FileABB << 5
	FileGBB Bitboard = FileABB << 6
	FileHBB Bitboard = FileABB << 7

	// Ranks (LSB = File A)
	Rank1BB Bitboard = 0xFF
	Rank2BB Bitboard = Rank1BB << (8 * 1)
	Rank3BB Bitboard = Rank1BB << (8 * 2)
	Rank4BB Bitboard = Rank1BB << (8 * 3)
	Rank5BB Bitboard = Rank1BB << (8 * 4)
	Rank6BB Bitboard = Rank1BB << (8 * 5)
	Rank7BB Bitboard = Rank1BB << (8 * 6)
	Rank8BB Bitboard = Rank1BB << (8 * 7)

	// Colors
	LightSquaresBB Bitboard = 0x55AA55AA55AA55AA // A1 is dark (0), B1 is light (1)... H8 is dark (0)

	// Edge Masks
	NotAFile  Bitboard = ^FileABB
	NotHFile  Bitboard = ^FileHBB
	NotABFile Bitboard = ^(FileABB | FileBBB)
	NotGHFile Bitboard = ^(FileGBB | FileHBB)
)

// --- Precomputed Attack, Geometry, and Evaluation Data ---
// These tables are initialized in the init() function below.
var (
	// --- Basic Board Geometry ---
	fileMasks          [NumOfFiles]Bitboard          // [file] Mask for each file.
	rankMasks          [NumOfRanks]Bitboard          // [rank] Mask for each rank.
	adjacentFilesMasks [NumOfSquaresInBoard]Bitboard // [square] Mask for adjacent files.

	// --- Direct Piece Attacks & Moves (Empty Board) ---
	// Indexed by [colorIdx][square] for pawns, [square] for others.
	pawnAttacks    [2][NumOfSquaresInBoard]Bitboard // Squares attacked *by* a pawn on sq (captures).
	pawnAttackedBy [2][NumOfSquaresInBoard]Bitboard // Squares a pawn *must be on* to attack sq.
	knightAttacks  [NumOfSquaresInBoard]Bitboard    // Squares attacked by a knight on sq.
	kingAttacks    [NumOfSquaresInBoard]Bitboard    // Squares attacked by a king on sq.

	// --- Slider Geometry & Ray Info (Empty Board) ---
	// Rays are the basis for classical (non-magic) slider attack generation.
	rays [NumOfSquaresInBoard][NumDirections]Bitboard // Ray in direction from sq (excluding sq).

	// --- Pawn Structure & Evaluation Masks ---
	// Indexed by [colorIdx][square] unless otherwise noted.
	forwardRanksMasks [2][NumOfSquaresInBoard]Bitboard // [colorIdx][sq] Mask for all ranks strictly ahead of the square.
	passedPawnMasks   [2][NumOfSquaresInBoard]Bitboard // [colorIdx][pawnSq] Squares in front (same & adjacent files) of a potential passed pawn.
	pawnShieldMasks   [2][NumOfSquaresInBoard]Bitboard // [colorIdx][kingSq] 3-file band on the single rank directly in front of the king.
)

// colorToIndex maps chess.Color to the internal per-color table index (White=0, Black=1).
func colorToIndex(c Color) int {
	if c == Black {
		return BlackIdx
	}
	return WhiteIdx
}

// --- Initialization ---

// init calls all individual initialization functions for the precomputed tables.
func init() {
	initFileRankMasks()
	initAdjacentFilesMasks()   // Needs fileMasks
	initForwardRanksMasks()    // Needs rankMasks
	initPawnAttacksAndPushes() // Initializes pawnAttacks, pawnAttackedBy
	initKnightAttacks()
	initKingAttacks()
	initRays()             // Initializes rays (depends on geometry helpers)
	initPassedPawnMasks()  // Uses fileMasks, adjacentFilesMasks, forwardRanksMasks
	initPawnShieldMasks()  // Uses fileMasks, rankMasks
}

// Initializes file and rank masks.
func initFileRankMasks() {
	for f := FileA; f <= FileH; f++ {
		fileMasks[f] = FileABB << f
	}
	for r := Rank1; r <= Rank8; r++ {
		rankMasks[r] = Rank1BB << (r * 8)
	}
}

// Initializes adjacent files masks.
func initAdjacentFilesMasks() {
	for sq := A1; sq <= H8; sq++ {
		f := sq.File()
		mask := EmptyBB
		if f > FileA {
			mask |= fileMasks[f-1]
		}
		if f < FileH {
			mask |= fileMasks[f+1]
		}
		adjacentFilesMasks[sq] = mask
	}
}

// Initializes forward ranks masks (ranks strictly ahead).
func initForwardRanksMasks() {
	for sq := A1; sq <= H8; sq++ {
		rank := sq.Rank()
		whiteMask := EmptyBB
		for r := rank + 1; r <= Rank8; r++ {
			whiteMask |= rankMasks[r]
		}
		forwardRanksMasks[WhiteIdx][sq] = whiteMask
		blackMask := EmptyBB
		for r := rank - 1; r >= Rank1; r-- {
			blackMask |= rankMasks[r]
		}
		forwardRanksMasks[BlackIdx][sq] = blackMask
	}
}

// Initializes pawn attack and reverse-attack tables.
func initPawnAttacksAndPushes() {
	for sq := A1; sq <= H8; sq++ {
		sqBB := SquareBB(sq)
		file := sq.File()
		rank := sq.Rank()

		// --- White Pawns ---
		whiteAttacks := EmptyBB
		if file > FileA && rank < Rank8 { // NW capture
			whiteAttacks |= sqBB << 7
		}
		if file < FileH && rank < Rank8 { // NE capture
			whiteAttacks |= sqBB << 9
		}
		pawnAttacks[WhiteIdx][sq] = whiteAttacks

		attackedByWhite := EmptyBB // Squares a white pawn must be on to attack sq
		if file > FileA && rank > Rank1 {
			attackedByWhite |= sqBB >> 9
		}
		if file < FileH && rank > Rank1 {
			attackedByWhite |= sqBB >> 7
		}
		pawnAttackedBy[WhiteIdx][sq] = attackedByWhite

		// --- Black Pawns ---
		blackAttacks := EmptyBB
		if file > FileA && rank > Rank1 { // SW capture
			blackAttacks |= sqBB >> 9
		}
		if file < FileH && rank > Rank1 { // SE capture
			blackAttacks |= sqBB >> 7
		}
		pawnAttacks[BlackIdx][sq] = blackAttacks

		attackedByBlack := EmptyBB // Squares a black pawn must be on to attack sq
		if file > FileA && rank < Rank8 {
			attackedByBlack |= sqBB << 7
		}
		if file < FileH && rank < Rank8 {
			attackedByBlack |= sqBB << 9
		}
		pawnAttackedBy[BlackIdx][sq] = attackedByBlack
	}
}

// Initializes knight attack tables.
func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		sqBB := SquareBB(sq)
		attacks := EmptyBB
		attacks |= (sqBB << 17) & NotAFile  // Up 2, Right 1
		attacks |= (sqBB << 15) & NotHFile  // Up 2, Left 1
		attacks |= (sqBB << 10) & NotABFile // Up 1, Right 2
		attacks |= (sqBB << 6) & NotGHFile  // Up 1, Left 2
		attacks |= (sqBB >> 6) & NotABFile  // Down 1, Right 2
		attacks |= (sqBB >> 10) & NotGHFile // Down 1, Left 2
		attacks |= (sqBB >> 15) & NotAFile  // Down 2, Right 1
		attacks |= (sqBB >> 17) & NotHFile  // Down 2, Left 1
		knightAttacks[sq] = attacks
	}
}

// Initializes king attack tables.
func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		sqBB := SquareBB(sq)
		attacks := EmptyBB
		attacks |= (sqBB << 9) & NotAFile // NorthEast
		attacks |= sqBB << 8              // North
		attacks |= (sqBB << 7) & NotHFile // NorthWest
		attacks |= (sqBB << 1) & NotAFile // East
		attacks |= (sqBB >> 1) & NotHFile // West
		attacks |= (sqBB >> 7) & NotAFile // SouthEast
		attacks |= sqBB >> 8              // South
		attacks |= (sqBB >> 9) & NotHFile // SouthWest
		kingAttacks[sq] = attacks
	}
}

// Initializes ray attack tables (used for sliders). Rays exclude the starting square.
func initRays() {
	// Steps: N=8, NE=9, E=1, SE=-7, S=-8, SW=-9, W=-1, NW=7
	steps := [NumDirections]int{8, 9, 1, -7, -8, -9, -1, 7}
	for sq := A1; sq <= H8; sq++ {
		for dir := 0; dir < NumDirections; dir++ {
			ray := EmptyBB
			currentSqIdx := int(sq)
			for {
				currentSqIdx += steps[dir]
				if currentSqIdx < 0 || currentSqIdx >= NumOfSquaresInBoard {
					break
				}

				nextSq := Square(currentSqIdx)
				prevSq := Square(currentSqIdx - steps[dir])

				// Wrapped around an edge if the file/rank jump exceeds a king move.
				df := abs(int(nextSq.File()) - int(prevSq.File()))
				dr := abs(int(nextSq.Rank()) - int(prevSq.Rank()))
				if max(df, dr) > 1 {
					break
				}

				ray |= SquareBB(nextSq)
			}
			rays[sq][dir] = ray
		}
	}
}

// Initializes passed pawn masks (same & adjacent files, ranks strictly ahead).
func initPassedPawnMasks() {
	for sq := A1; sq <= H8; sq++ {
		file := sq.File()
		sameAndAdjFiles := BBFile(file) | adjacentFilesMasks[sq]
		passedPawnMasks[WhiteIdx][sq] = forwardRanksMasks[WhiteIdx][sq] & sameAndAdjFiles
		passedPawnMasks[BlackIdx][sq] = forwardRanksMasks[BlackIdx][sq] & sameAndAdjFiles
	}
}

// Initializes king pawn-shield masks: the 3-file band centered on the king's
// file, restricted to the single rank directly ahead of the king on its own
// side of the board (rank+1 for White, rank-1 for Black). Empty if that rank
// runs off the board.
func initPawnShieldMasks() {
	for sq := A1; sq <= H8; sq++ {
		kingFile := sq.File()
		kingRank := sq.Rank()

		shieldFiles := BBFile(kingFile)
		if kingFile > FileA {
			shieldFiles |= BBFile(kingFile - 1)
		}
		if kingFile < FileH {
			shieldFiles |= BBFile(kingFile + 1)
		}

		if kingRank < Rank8 {
			pawnShieldMasks[WhiteIdx][sq] = bbRank(kingRank+1) & shieldFiles
		}
		if kingRank > Rank1 {
			pawnShieldMasks[BlackIdx][sq] = bbRank(kingRank-1) & shieldFiles
		}
	}
}

// --- Geometric Helpers ---

// SquareColor returns the color of the square (White for light, Black for dark).
// Assumes A1 is dark.
func SquareColor(sq Square) Color {
	if sq < A1 || sq > H8 {
		return NoColor
	}
	if (SquareBB(sq) & LightSquaresBB) != 0 {
		return White
	}
	return Black
}

// isPositiveRayDir checks if a direction index corresponds to a positive shift (N, NE, E, NW).
func isPositiveRayDir(dir int) bool {
	return dir == North || dir == NorthEast || dir == East || dir == NorthWest
}

// BBFile returns a bitboard mask for the given file.
func BBFile(f File) Bitboard {
	if f >= FileA && f <= FileH {
		return fileMasks[f]
	}
	return EmptyBB
}

// bbRank returns a bitboard mask for the given rank.
func bbRank(r Rank) Bitboard {
	if r >= Rank1 && r <= Rank8 {
		return rankMasks[r]
	}
	return EmptyBB
}

// --- Helper Functions ---

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// max returns the larger of two integers.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SquareBB returns a bitboard with only the bit for sq set.
func SquareBB(sq Square) Bitboard {
	if sq >= A1 && sq <= H8 {
		return 1 << sq
	}
	return EmptyBB
}

// Set sets the bit corresponding to the square. Handles invalid squares.
func (b Bitboard) Set(sq Square) Bitboard { return b | SquareBB(sq) }

// Clear clears the bit corresponding to the square. Handles invalid squares.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ SquareBB(sq) }

// Occupied checks if the square is occupied (bit is set). Handles invalid squares.
func (b Bitboard) Occupied(sq Square) bool {
	return (b & SquareBB(sq)) != 0
}

// PopCount counts the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB finds the index of the least significant bit. Returns (square, true) or (NoSquare, false).
func (b Bitboard) LSB() (Square, bool) {
	if b == 0 {
		return NoSquare, false
	}
	sq := Square(bits.TrailingZeros64(uint64(b)))
	return sq, true
}

// MSB finds the index of the most significant bit. Returns (square, true) or (NoSquare, false).
func (b Bitboard) MSB() (Square, bool) {
	if b == 0 {
		return NoSquare, false
	}
	sq := Square(NumOfSquaresInBoard - 1 - bits.LeadingZeros64(uint64(b)))
	return sq, true
}

// PopLSB finds and removes the least significant bit. Returns (square, new bitboard, true) or (NoSquare, original bitboard, false).
func (b Bitboard) PopLSB() (Square, Bitboard, bool) {
	if b == 0 {
		return NoSquare, b, false
	}
	lsbIndex := bits.TrailingZeros64(uint64(b))
	sq := Square(lsbIndex)
	return sq, b & (b - 1), true
}

// Ray returns the precomputed ray from sq in direction dir (excluding sq).
func Ray(sq Square, dir int) Bitboard {
	if sq < A1 || sq > H8 || dir < 0 || dir >= NumDirections {
		return EmptyBB
	}
	return rays[sq][dir]
}

// Scan returns a slice of all squares corresponding to set bits, ordered LSB to MSB.
func (b Bitboard) Scan() []Square {
	count := b.PopCount()
	if count == 0 {
		return []Square{}
	}
	squares := make([]Square, 0, count)
	for tempBB := b; tempBB != EmptyBB; {
		sq, next, _ := tempBB.PopLSB()
		squares = append(squares, sq)
		tempBB = next
	}
	return squares
}

// String renders the bitboard as a 64-character sequence of 1s and 0s, MSB first.
func (b Bitboard) String() string {
	return fmt.Sprintf("%064b", uint64(b))
}

// Draw renders the bitboard as an 8x8 grid of dots and X's for debugging.
func (b Bitboard) Draw() string {
	var s strings.Builder
	for r := Rank8; r >= Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Occupied(NewSquare(f, r)) {
				s.WriteString("X ")
			} else {
				s.WriteString(". ")
			}
		}
		s.WriteString("\n")
	}
	return s.String()
}

// Reverse reverses the bit order of the bitboard (square 0 <-> square 63).
func (b Bitboard) Reverse() Bitboard { return Bitboard(bits.Reverse64(uint64(b))) }

// And returns the bitwise AND of b and other.
func (b Bitboard) And(other Bitboard) Bitboard { return b & other }

// --- Piece Attacks ---

// GetPawnAttacks returns the squares attacked by a pawn of 'color' on 'sq'.
func GetPawnAttacks(sq Square, color Color) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return pawnAttacks[colorToIndex(color)][sq]
}

// getPawnAttackedBy returns the squares where a pawn of 'color' would attack 'sq'.
func getPawnAttackedBy(color Color, sq Square) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return pawnAttackedBy[colorToIndex(color)][sq]
}

// GetKnightAttacks returns the squares attacked by a knight on 'sq'.
func GetKnightAttacks(sq Square) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return knightAttacks[sq]
}

// GetKingAttacks returns the squares attacked by a king on 'sq'.
func GetKingAttacks(sq Square) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return kingAttacks[sq]
}

// generateSliderAttacks generates Rook, Bishop, or Queen attacks from sq, considering blockers.
// dirs is a slice of direction indices (e.g., {North, East, South, West} for Rook).
// Uses precomputed rays; this is the classical (non-magic) approach.
func generateSliderAttacks(sq Square, blockers Bitboard, dirs []int) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	attacks := EmptyBB
	for _, dir := range dirs {
		ray := Ray(sq, dir)
		blockedRay := ray & blockers

		if blockedRay != 0 {
			var blockerSq Square
			var ok bool
			if isPositiveRayDir(dir) {
				blockerSq, ok = blockedRay.LSB()
			} else {
				blockerSq, ok = blockedRay.MSB()
			}
			if ok {
				// Attack = ray from sq, minus the ray from the blocker onward
				// (this keeps the blocker square itself as an attacked square).
				attacks |= ray &^ Ray(blockerSq, dir)
			}
		} else {
			attacks |= ray
		}
	}
	return attacks
}

// GenerateRookAttacks calculates rook attacks from a square, considering blockers.
func GenerateRookAttacks(sq Square, blockers Bitboard) Bitboard {
	return generateSliderAttacks(sq, blockers, []int{North, East, South, West})
}

// GenerateBishopAttacks calculates bishop attacks from a square, considering blockers.
func GenerateBishopAttacks(sq Square, blockers Bitboard) Bitboard {
	return generateSliderAttacks(sq, blockers, []int{NorthEast, SouthEast, SouthWest, NorthWest})
}

// GenerateQueenAttacks calculates queen attacks from a square, considering blockers.
func GenerateQueenAttacks(sq Square, blockers Bitboard) Bitboard {
	return GenerateRookAttacks(sq, blockers) | GenerateBishopAttacks(sq, blockers)
}

// --- Tactical/Evaluation Helpers ---

// GetAttackersTo returns the bitboard of 'attackerColor' pieces attacking targetSq,
// given the occupancy and each piece-type bitboard of that color.
func GetAttackersTo(targetSq Square, attackerColor Color, occupied Bitboard,
	pawns, knights, bishops, rooks, queens, king Bitboard) Bitboard {

	if targetSq < A1 || targetSq > H8 {
		return EmptyBB
	}

	attackers := EmptyBB
	attackers |= getPawnAttackedBy(attackerColor, targetSq) & pawns
	attackers |= GetKnightAttacks(targetSq) & knights
	attackers |= GenerateBishopAttacks(targetSq, occupied) & (bishops | queens)
	attackers |= GenerateRookAttacks(targetSq, occupied) & (rooks | queens)
	attackers |= GetKingAttacks(targetSq) & king
	return attackers
}

// IsPassedPawn checks if a pawn on 'pawnSq' of 'color' is passed: no opponent
// pawn stands on the same or an adjacent file on a rank strictly ahead of it.
func IsPassedPawn(pawnSq Square, color Color, friendlyPawns, opponentPawns Bitboard) bool {
	if pawnSq < A1 || pawnSq > H8 || !SquareBB(pawnSq).And(friendlyPawns).Occupied(pawnSq) {
		return false
	}
	return (passedPawnMasks[colorToIndex(color)][pawnSq] & opponentPawns) == EmptyBB
}

// AdjacentFilesMask returns the mask for files adjacent to the given square's file.
func AdjacentFilesMask(sq Square) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return adjacentFilesMasks[sq]
}

// KingPawnShieldMask returns the 3-square pawn shield band (rank directly
// ahead of the king, king's file and its two neighbors) for a king on sq.
func KingPawnShieldMask(sq Square, color Color) Bitboard {
	if sq < A1 || sq > H8 {
		return EmptyBB
	}
	return pawnShieldMasks[colorToIndex(color)][sq]
}
