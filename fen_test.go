package chess

import (
	"math/rand"
	"testing"
)

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"not a fen at all",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbXr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Fatalf("ParseFEN(%q) succeeded, want ErrInvalidFEN", fen)
		}
	}
}

func TestParseFENStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN(start): %v", err)
	}
	if pos.SideToMove() != White {
		t.Fatalf("side to move = %v, want White", pos.SideToMove())
	}
	if pos.CastleRights().String() != "KQkq" {
		t.Fatalf("castle rights = %q, want KQkq", pos.CastleRights().String())
	}
	if pos.EnPassant() != NoSquare {
		t.Fatalf("en passant = %v, want NoSquare", pos.EnPassant())
	}
	if got := pos.String(); got != StartFEN {
		t.Fatalf("round-tripped FEN = %q, want %q", got, StartFEN)
	}
}

// TestFENRoundTripRandomGames plays random legal games from the start
// position and checks that parsing the emitted FEN at every ply reproduces
// an identical position string, the property required for parse_fen and
// emit_fen to be mutual inverses.
func TestFENRoundTripRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for game := 0; game < 20; game++ {
		pos, err := ParseFEN(StartFEN)
		if err != nil {
			t.Fatalf("parse start fen: %v", err)
		}
		for ply := 0; ply < 30; ply++ {
			legal := LegalMoves(pos)
			if len(legal) == 0 {
				break
			}
			m := legal[rng.Intn(len(legal))]
			pos.Make(m)

			fen := pos.String()
			reparsed, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("game %d ply %d: ParseFEN(%q) failed: %v", game, ply, fen, err)
			}
			if got := reparsed.String(); got != fen {
				t.Fatalf("game %d ply %d: round trip mismatch: %q != %q", game, ply, got, fen)
			}
		}
	}
}
