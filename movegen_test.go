package chess

import "testing"

func TestLegalMovesStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}
	legal := LegalMoves(pos)
	if len(legal) != 20 {
		t.Fatalf("legal moves from start = %d, want 20", len(legal))
	}

	var hasE2E4, hasG1F3, hasE2E5 bool
	for _, m := range legal {
		switch m.String() {
		case "e2e4":
			hasE2E4 = true
		case "g1f3":
			hasG1F3 = true
		case "e2e5":
			hasE2E5 = true
		}
	}
	if !hasE2E4 {
		t.Fatal("legal moves from start missing e2e4")
	}
	if !hasG1F3 {
		t.Fatal("legal moves from start missing g1f3")
	}
	if hasE2E5 {
		t.Fatal("legal moves from start wrongly include e2e5")
	}
}

func TestLegalMovesAreSubsetOfPseudoLegal(t *testing.T) {
	pos, err := ParseFEN(kiwipeteFEN)
	if err != nil {
		t.Fatalf("parse kiwipete fen: %v", err)
	}
	pseudo := map[string]bool{}
	for _, m := range PseudoLegalMoves(pos) {
		pseudo[m.String()] = true
	}
	legal := LegalMoves(pos)
	if len(legal) == 0 {
		t.Fatal("no legal moves generated for kiwipete")
	}
	for _, m := range legal {
		if !pseudo[m.String()] {
			t.Fatalf("legal move %s is not present in pseudo-legal set", m)
		}
	}
}

func TestLegalMovesExcludePseudoLegalThatLeaveKingInCheck(t *testing.T) {
	// The white rook on e2 is pinned to its own king on e1 by the black
	// rook on e8 (black king on a8); any rook move off the e-file must be
	// filtered out of the legal set even though it is pseudo-legal.
	pos, err := ParseFEN("k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	legal := LegalMoves(pos)
	for _, m := range legal {
		if m.Piece().Type() != Rook {
			continue
		}
		if m.S2().File() != FileE {
			t.Fatalf("pinned rook move %s should have been filtered as illegal", m)
		}
	}
}

func TestDoublePawnPushSetsEnPassantAndClock(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	var move Move
	for _, m := range LegalMoves(pos) {
		if m.String() == "e2e4" {
			move = m
		}
	}
	if move == (Move{}) {
		t.Fatal("e2e4 not found among legal moves")
	}
	pos.Make(move)

	if pos.SideToMove() != Black {
		t.Fatalf("side to move = %v, want Black", pos.SideToMove())
	}
	e3, _ := ParseSquare("e3")
	if pos.EnPassant() != e3 {
		t.Fatalf("en passant target = %v, want e3", pos.EnPassant())
	}
	if pos.HalfmoveClock() != 0 {
		t.Fatalf("halfmove clock = %d, want 0", pos.HalfmoveClock())
	}
}

func TestGameStatusCheckmate(t *testing.T) {
	// Fool's mate position: White to move, mated by the black queen on h4.
	pos, err := ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	legal := LegalMoves(pos)
	if status := pos.GameStatus(legal); status != Checkmate {
		t.Fatalf("game status = %v, want checkmate", status)
	}
}

func TestGameStatusStalemate(t *testing.T) {
	// Classic stalemate: black king on a8 has no legal moves and is not in check.
	pos, err := ParseFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	legal := LegalMoves(pos)
	if status := pos.GameStatus(legal); status != Stalemate {
		t.Fatalf("game status = %v, want stalemate", status)
	}
}

func TestCastlingRequiresUnattackedPath(t *testing.T) {
	// Black rook on f8 attacks f1 down an open file, which the white king
	// would cross while castling kingside; that castle must not be generated.
	pos, err := ParseFEN("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	for _, m := range LegalMoves(pos) {
		if m.HasTag(KingSideCastle) {
			t.Fatalf("kingside castle %s should be illegal: f1 is attacked", m)
		}
	}
}

func TestEnPassantCaptureRemovesPawn(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	if err != nil {
		t.Fatalf("parse fen: %v", err)
	}
	var move Move
	for _, m := range LegalMoves(pos) {
		if m.String() == "d4e3" {
			move = m
		}
	}
	if move == (Move{}) {
		t.Fatal("d4e3 en passant capture not found among legal moves")
	}
	pos.Make(move)

	e4, _ := ParseSquare("e4")
	if pos.Board().Piece(e4) != NoPiece {
		t.Fatalf("captured pawn still present on e4 after en passant")
	}
	pos.Unmake()
	if pos.Board().Piece(e4) != WhitePawn {
		t.Fatalf("unmake did not restore captured pawn on e4")
	}
}
