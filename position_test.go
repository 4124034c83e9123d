package chess

import (
	"math/rand"
	"testing"
)

// TestMakeUnmakeRoundTrip plays random legal games and checks that Unmake
// restores every observable field exactly after each Make, across many
// random openings.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 25; game++ {
		pos, err := ParseFEN(StartFEN)
		if err != nil {
			t.Fatalf("parse start fen: %v", err)
		}
		for ply := 0; ply < 40; ply++ {
			legal := LegalMoves(pos)
			if len(legal) == 0 {
				break
			}
			m := legal[rng.Intn(len(legal))]
			before := pos.String()

			pos.Make(m)
			pos.Unmake()

			after := pos.String()
			if before != after {
				t.Fatalf("game %d ply %d: make/unmake of %s: %q != %q", game, ply, m, before, after)
			}

			pos.Make(m)
		}
	}
}

func TestLegalMovesDoNotLeaveMoverInCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for game := 0; game < 10; game++ {
		pos, err := ParseFEN(StartFEN)
		if err != nil {
			t.Fatalf("parse start fen: %v", err)
		}
		for ply := 0; ply < 25; ply++ {
			legal := LegalMoves(pos)
			if len(legal) == 0 {
				break
			}
			for _, m := range legal {
				mover := pos.SideToMove()
				pos.Make(m)
				if IsSquareAttacked(pos, pos.Board().KingSquare(mover), mover.Other()) {
					t.Fatalf("game %d ply %d: move %s leaves %v's king in check", game, ply, m, mover)
				}
				pos.Unmake()
			}
			m := legal[rng.Intn(len(legal))]
			pos.Make(m)
		}
	}
}

func TestEnPassantFieldsAfterDoublePush(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	e2, _ := ParseSquare("e2")
	e4, _ := ParseSquare("e4")
	pos.Make(NewMove(e2, e4, WhitePawn, NoPiece, NoPieceType, DoublePawnPush))

	if pos.SideToMove() != Black {
		t.Fatalf("side to move = %v, want Black", pos.SideToMove())
	}
	e3, _ := ParseSquare("e3")
	if pos.EnPassant() != e3 {
		t.Fatalf("en passant = %v, want e3", pos.EnPassant())
	}
	if pos.HalfmoveClock() != 0 {
		t.Fatalf("halfmove clock = %d, want 0", pos.HalfmoveClock())
	}
}

func TestCheckInvariantsHoldsAfterRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}
	for ply := 0; ply < 60; ply++ {
		legal := LegalMoves(pos)
		if len(legal) == 0 {
			break
		}
		pos.Make(legal[rng.Intn(len(legal))])
		if err := pos.checkInvariants(); err != nil {
			t.Fatalf("ply %d: invariant violation: %v", ply, err)
		}
	}
}

func TestGameStatusInsufficientMaterial(t *testing.T) {
	pos, err := ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	legal := LegalMoves(pos)
	if len(legal) == 0 {
		t.Fatal("bare kings position has no legal moves")
	}
	if status := pos.GameStatus(legal); status != InsufficientMaterial {
		t.Fatalf("game status = %v, want insufficient_material", status)
	}
}
