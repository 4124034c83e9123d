package chess

import "testing"

// Kiwipete is the standard move-generator stress position: it exercises
// castling, en passant, and promotions all from one FEN.
const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftStartPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		pos, err := ParseFEN(StartFEN)
		if err != nil {
			t.Fatalf("parse start fen: %v", err)
		}
		got := Perft(pos, c.depth)
		if got != c.nodes {
			t.Fatalf("perft(start, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{2, 2039},
		{3, 97862},
	}
	for _, c := range cases {
		pos, err := ParseFEN(kiwipeteFEN)
		if err != nil {
			t.Fatalf("parse kiwipete fen: %v", err)
		}
		got := Perft(pos, c.depth)
		if got != c.nodes {
			t.Fatalf("perft(kiwipete, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("parse start fen: %v", err)
	}
	div := PerftDivide(pos, 3)
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 8902 {
		t.Fatalf("perft divide sum = %d, want 8902", sum)
	}
}
