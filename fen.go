package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the canonical starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenBoard parses the piece-placement field of a FEN string (the part before
// the first space) into a Board.
func fenBoard(field string) (*Board, error) {
	rows := strings.Split(field, "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("%w: piece placement %q does not have 8 ranks", ErrInvalidFEN, field)
	}

	m := map[Square]Piece{}
	for i, row := range rows {
		r := Rank(Rank8 - Rank(i))
		f := FileA
		for _, ch := range row {
			switch {
			case ch >= '1' && ch <= '8':
				f += File(ch - '0')
			default:
				p, err := pieceFromFENChar(ch)
				if err != nil {
					return nil, err
				}
				if f > FileH {
					return nil, fmt.Errorf("%w: rank %q overflows the board", ErrInvalidFEN, row)
				}
				m[NewSquare(f, r)] = p
				f++
			}
		}
		if f != FileH+1 {
			return nil, fmt.Errorf("%w: rank %q does not sum to 8 files", ErrInvalidFEN, row)
		}
	}
	return NewBoard(m), nil
}

func pieceFromFENChar(ch rune) (Piece, error) {
	switch ch {
	case 'P':
		return WhitePawn, nil
	case 'N':
		return WhiteKnight, nil
	case 'B':
		return WhiteBishop, nil
	case 'R':
		return WhiteRook, nil
	case 'Q':
		return WhiteQueen, nil
	case 'K':
		return WhiteKing, nil
	case 'p':
		return BlackPawn, nil
	case 'n':
		return BlackKnight, nil
	case 'b':
		return BlackBishop, nil
	case 'r':
		return BlackRook, nil
	case 'q':
		return BlackQueen, nil
	case 'k':
		return BlackKing, nil
	default:
		return NoPiece, fmt.Errorf("%w: unrecognized piece character %q", ErrInvalidFEN, ch)
	}
}

// ParseFEN parses a FEN string into a Position. The first four fields (piece
// placement, side to move, castling, en passant) are required; halfmove
// clock and fullmove number default to 0 and 1 respectively when omitted.
// On any structural error it returns ErrInvalidFEN and no Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: %q has fewer than 4 fields", ErrInvalidFEN, fen)
	}

	board, err := fenBoard(fields[0])
	if err != nil {
		return nil, err
	}

	var stm Color
	switch fields[1] {
	case "w":
		stm = White
	case "b":
		stm = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q must be 'w' or 'b'", ErrInvalidFEN, fields[1])
	}

	castle := CastleRights{}
	if len(fields) >= 3 {
		castle, err = parseCastleRights(fields[2])
		if err != nil {
			return nil, err
		}
	}

	epSquare := NoSquare
	if len(fields) >= 4 && fields[3] != "-" {
		epSquare, err = ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant field %q: %v", ErrInvalidFEN, fields[3], err)
		}
	}

	halfmove := 0
	if len(fields) >= 5 {
		halfmove, err = strconv.Atoi(fields[4])
		if err != nil || halfmove < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q must be a non-negative integer", ErrInvalidFEN, fields[4])
		}
	}

	fullmove := 1
	if len(fields) >= 6 {
		fullmove, err = strconv.Atoi(fields[5])
		if err != nil || fullmove < 1 {
			return nil, fmt.Errorf("%w: fullmove number %q must be a positive integer", ErrInvalidFEN, fields[5])
		}
	}

	if board.bbWhiteKing.PopCount() != 1 || board.bbBlackKing.PopCount() != 1 {
		return nil, fmt.Errorf("%w: position must have exactly one king per side", ErrInvalidFEN)
	}

	return &Position{
		board:    board,
		stm:      stm,
		castle:   castle,
		epSquare: epSquare,
		halfmove: halfmove,
		fullmove: fullmove,
	}, nil
}

func parseCastleRights(field string) (CastleRights, error) {
	if field == "-" {
		return CastleRights{}, nil
	}
	var cr CastleRights
	for _, ch := range field {
		switch ch {
		case 'K':
			cr.WhiteKingSide = true
		case 'Q':
			cr.WhiteQueenSide = true
		case 'k':
			cr.BlackKingSide = true
		case 'q':
			cr.BlackQueenSide = true
		default:
			return CastleRights{}, fmt.Errorf("%w: castling field %q has unrecognized character %q", ErrInvalidFEN, field, ch)
		}
	}
	return cr, nil
}
