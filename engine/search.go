package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rook9/chess"
)

// Mate is the sentinel score for checkmate, chosen well clear of any
// plausible evaluator range so mate scores are never confused with material
// imbalances.
const Mate = 100000

// CandidateScore is one root move's most recently observed score, kept
// alongside its move for ordered reporting.
type CandidateScore struct {
	Move  chess.Move
	Score int
}

// Result is the outcome of a search: the committed best line from the last
// fully completed depth, plus the counters and evaluator artifacts the
// instrumentation channel and external callers read from.
type Result struct {
	BestMove    chess.Move
	HasBestMove bool
	BestScore   int
	PV          []chess.Move
	Candidates  []CandidateScore
	Nodes       uint64
	Cutoffs     uint64
	ElapsedMs   int64
	Depth          int
	NPS            uint64
	CurrentMove    chess.Move
	HasCurrentMove bool

	Eval Evaluation
}

// Search runs iterative-deepening negamax with alpha-beta pruning over pos,
// from depth 1 up to maxDepth, for at most timeLimit of wall-clock time, or
// until ctx is cancelled. Either condition aborts identically: the search
// discards the in-progress depth and returns the last fully completed one.
// If pub is non-nil, it receives snapshot and terminal records as described
// by Publisher.
func Search(ctx context.Context, pos *chess.Position, maxDepth int, timeLimit time.Duration, pub *Publisher) Result {
	start := time.Now()
	s := &searcher{pos: pos, start: start, timeLimit: timeLimit, ctx: ctx, pub: pub}

	// Movegen and make/unmake treat their own invariant failures as bugs,
	// not user errors; a panic here is an InternalError. Report it on the
	// open channel, then let it propagate, per the package's error policy.
	defer func() {
		if r := recover(); r != nil {
			if pub != nil {
				pub.Error(fmt.Errorf("%w: %v", ErrInternal, r).Error(), "internal_error")
			}
			panic(r)
		}
	}()

	var committed Result
	for depth := 1; depth <= maxDepth; depth++ {
		result, ok := s.searchRoot(depth)
		if !ok {
			break
		}
		result.Depth = depth
		result.ElapsedMs = time.Since(start).Milliseconds()
		result.NPS = nps(s.nodes, result.ElapsedMs)
		result.Nodes = s.nodes
		result.Cutoffs = s.cutoffs
		result.Eval = Evaluate(pos)
		committed = result

		if pub != nil {
			pub.publishDepthComplete(committed)
		}

		if s.aborted() {
			break
		}
	}

	if pub != nil {
		pub.complete(committed)
	}
	return committed
}

func nps(nodes uint64, elapsedMs int64) uint64 {
	if elapsedMs < 1 {
		elapsedMs = 1
	}
	return nodes * 1000 / uint64(elapsedMs)
}

// searcher carries the mutable state of one Search call: node/cutoff
// counters and the time/cancellation boundary every recursion checks.
type searcher struct {
	pos       *chess.Position
	start     time.Time
	timeLimit time.Duration
	ctx       context.Context
	pub       *Publisher

	nodes   uint64
	cutoffs uint64
}

func (s *searcher) aborted() bool {
	if s.ctx != nil && s.ctx.Err() != nil {
		return true
	}
	return time.Since(s.start) >= s.timeLimit
}

// searchRoot runs one full iterative-deepening depth at the root, returning
// ok=false if the depth was abandoned partway through due to an abort.
func (s *searcher) searchRoot(depth int) (Result, bool) {
	moves := orderMoves(chess.LegalMoves(s.pos))
	if len(moves) == 0 {
		score := terminalScore(s.pos, 0)
		return Result{BestScore: score}, true
	}

	const alpha0, beta0 = -Mate - 1, Mate + 1
	alpha := alpha0
	bestScore := alpha0
	var bestMove chess.Move
	var bestPV []chess.Move
	candidates := make([]CandidateScore, 0, len(moves))

	// Root-move snapshots carry the root position's evaluator artifacts,
	// computed once per depth; the root position is the same for every move.
	var rootEval Evaluation
	if s.pub != nil {
		rootEval = Evaluate(s.pos)
	}

	for _, m := range moves {
		if s.aborted() {
			return Result{}, false
		}

		s.pos.Make(m)
		childScore, childPV, aborted := s.negamax(depth-1, -beta0, -alpha, 1)
		s.pos.Unmake()
		if aborted {
			return Result{}, false
		}
		score := -childScore

		candidates = append(candidates, CandidateScore{Move: m, Score: score})

		if score > bestScore {
			bestScore = score
			bestMove = m
			bestPV = append([]chess.Move{m}, childPV...)
		}
		if score > alpha {
			alpha = score
		}

		if s.pub != nil {
			s.pub.publishRootMove(Result{
				Depth:          depth - 1,
				Eval:           rootEval,
				CurrentMove:    m,
				HasCurrentMove: true,
				BestMove:       bestMove,
				HasBestMove:    true,
				BestScore:   bestScore,
				PV:          bestPV,
				Candidates:  candidates,
				Nodes:       s.nodes,
				Cutoffs:     s.cutoffs,
				ElapsedMs:   time.Since(s.start).Milliseconds(),
				NPS:         nps(s.nodes, time.Since(s.start).Milliseconds()),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	return Result{
		BestMove:    bestMove,
		HasBestMove: true,
		BestScore:   bestScore,
		PV:          bestPV,
		Candidates:  candidates,
	}, true
}

// negamax evaluates pos (already made by the caller) to depth, returning the
// side-to-move-perspective score and the principal variation suffix below
// this node. aborted is true if the search ran out of time or was cancelled
// partway through; in that case score and pv are meaningless.
func (s *searcher) negamax(depth, alpha, beta, ply int) (score int, pv []chess.Move, aborted bool) {
	s.nodes++

	if depth == 0 {
		return sideToMoveEval(s.pos), nil, false
	}

	moves := orderMoves(chess.LegalMoves(s.pos))
	if len(moves) == 0 {
		return terminalScore(s.pos, ply), nil, false
	}

	for _, m := range moves {
		if s.aborted() {
			return 0, nil, true
		}

		s.pos.Make(m)
		childScore, childPV, abortedChild := s.negamax(depth-1, -beta, -alpha, ply+1)
		s.pos.Unmake()
		if abortedChild {
			return 0, nil, true
		}
		childScoreNeg := -childScore

		if childScoreNeg >= beta {
			s.cutoffs++
			return beta, pv, false
		}
		if childScoreNeg > alpha {
			alpha = childScoreNeg
			pv = append([]chess.Move{m}, childPV...)
		}
	}

	return alpha, pv, false
}

// sideToMoveEval converts the evaluator's White-minus-Black score into
// side-to-move perspective, the single sign flip the package performs.
func sideToMoveEval(pos *chess.Position) int {
	score := Evaluate(pos).ScoreWhiteMinusBlack
	if pos.SideToMove() == chess.Black {
		return -score
	}
	return score
}

// terminalScore returns the negamax base-case score when no legal moves
// exist: a mate score favoring whoever delivered it (sooner mates score
// higher in magnitude), or zero for stalemate.
func terminalScore(pos *chess.Position, ply int) int {
	if pos.InCheck() {
		return -Mate + ply
	}
	return 0
}

// orderMoves sorts moves by the fixed category priority (captures,
// promotions, castling, everything else), preserving generator order within
// each category via a stable sort.
func orderMoves(moves []chess.Move) []chess.Move {
	ordered := make([]chess.Move, len(moves))
	copy(ordered, moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		return moveClass(ordered[i]) < moveClass(ordered[j])
	})
	return ordered
}

func moveClass(m chess.Move) int {
	switch {
	case m.IsCapture():
		return 0
	case m.HasTag(chess.Promotion):
		return 1
	case m.IsCastle():
		return 2
	default:
		return 3
	}
}
