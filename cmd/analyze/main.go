package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/rook9/chess"
	"github.com/rook9/chess/engine"
)

func main() {
	fen := flag.String("fen", chess.StartFEN, "FEN string to analyze")
	maxDepth := flag.Int("depth", 6, "maximum search depth")
	timeLimit := flag.Duration("time", 2*time.Second, "wall-clock time budget")
	snapshotInterval := flag.Duration("snapshot", 140*time.Millisecond, "minimum gap between streamed snapshots")
	stream := flag.Bool("stream", false, "print snapshot records as the search progresses")
	showBoard := flag.Bool("board", false, "print an ASCII board before and after the chosen move")
	flag.Parse()

	pos, err := chess.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("parse fen: %v", err)
	}

	if *showBoard {
		fmt.Print(pos.Board().Draw())
	}

	var pub *engine.Publisher
	ctx := context.Background()
	if *stream {
		pub = engine.NewPublisher(*snapshotInterval)
		go drain(ctx, pub)
	}

	result := engine.Search(ctx, pos, *maxDepth, *timeLimit, pub)

	if !result.HasBestMove {
		log.Printf("no legal moves from %s", *fen)
		return
	}

	pos.Make(result.BestMove)
	status := pos.GameStatus(chess.LegalMoves(pos))

	if *showBoard {
		fmt.Print(pos.Board().Draw())
	}

	fmt.Printf("best_move=%s score_cp=%d depth=%d nodes=%d nps=%d cutoffs=%d elapsed_ms=%d status=%s\n",
		result.BestMove, result.BestScore, result.Depth, result.Nodes, result.NPS, result.Cutoffs, result.ElapsedMs, status)
}

func drain(ctx context.Context, pub *engine.Publisher) {
	for {
		rec, ok := pub.Next(ctx)
		if !ok {
			return
		}
		fmt.Printf("[%s] depth=%d eval=%.2f nodes=%d nps=%d current_move=%s\n",
			rec.Type, rec.Depth, rec.Eval, rec.Nodes, rec.NPS, rec.CurrentMove)
		if rec.Type != engine.SnapshotRecord {
			return
		}
	}
}
