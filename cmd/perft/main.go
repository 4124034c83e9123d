package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rook9/chess"
)

func main() {
	fen := flag.String("fen", chess.StartFEN, "FEN string (defaults to the starting position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-root-move node counts instead of the total")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := chess.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse fen: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := chess.PerftDivide(pos, *depth)
		keys := make([]string, 0, len(div))
		var total uint64
		for k, n := range div {
			keys = append(keys, k)
			total += n
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, div[k])
		}
		fmt.Printf("Total: %d\n", total)
		return
	}

	start := time.Now()
	nodes := chess.Perft(pos, *depth)
	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("depth %d: %d nodes in %s (%.0f nps)\n", *depth, nodes, elapsed, nps)
}
