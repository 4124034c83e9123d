package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rook9/chess"
)

// RecordType distinguishes the three kinds of record a Publisher emits.
type RecordType int

const (
	SnapshotRecord RecordType = iota
	CompleteRecord
	ErrorRecord
)

func (t RecordType) String() string {
	switch t {
	case CompleteRecord:
		return "complete"
	case ErrorRecord:
		return "error"
	default:
		return "snapshot"
	}
}

// PieceBreakdownFields mirrors PieceBreakdown with the normative field names
// from the external record shape.
type PieceBreakdownFields struct {
	Base          int `json:"base"`
	PST           int `json:"pst"`
	Mobility      int `json:"mobility"`
	PawnStructure int `json:"pawn_structure"`
	KingSafety    int `json:"king_safety"`
	SignedTotal   int `json:"signed_total"`
}

// Record is one message on the instrumentation channel: a progress snapshot
// or the single terminal complete/error record for a search.
type Record struct {
	Type RecordType

	Depth       int
	Eval        float64
	EvalCp      int
	Nodes       uint64
	NPS         uint64
	Cutoffs     uint64
	ElapsedMs   int64
	CurrentMove string
	PV          []string
	BestMove    string

	CandidateMoves map[string]int
	PieceValues    map[string]int
	PieceBreakdown map[string]PieceBreakdownFields
	Heatmap        map[string]int

	Message string
	Kind    string
}

// toRecord converts a Result into the public Record shape; typ distinguishes
// a progress snapshot from the terminal complete. BestScore is already in
// side-to-move perspective, so no sign conversion happens here.
func toRecord(r Result, typ RecordType) Record {
	score := r.BestScore
	rec := Record{
		Type:      typ,
		Depth:     r.Depth,
		EvalCp:    score,
		Eval:      float64(score) / 100.0,
		Nodes:     r.Nodes,
		NPS:       r.NPS,
		Cutoffs:   r.Cutoffs,
		ElapsedMs: r.ElapsedMs,
		PV:        movesToUCI(r.PV),
	}
	if r.HasCurrentMove {
		rec.CurrentMove = r.CurrentMove.String()
	}
	if r.HasBestMove {
		rec.BestMove = r.BestMove.String()
	}
	rec.CandidateMoves = candidatesToMap(r.Candidates)
	rec.PieceValues = squareIntMap(r.Eval.PieceValues)
	rec.PieceBreakdown = squareBreakdownMap(r.Eval.PieceBreakdown)
	rec.Heatmap = squareIntMap(r.Eval.Heatmap)
	return rec
}

func movesToUCI(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func candidatesToMap(cands []CandidateScore) map[string]int {
	m := make(map[string]int, len(cands))
	for _, c := range cands {
		m[c.Move.String()] = c.Score
	}
	return m
}

func squareIntMap(src map[chess.Square]int) map[string]int {
	m := make(map[string]int, len(src))
	for sq, v := range src {
		m[sq.String()] = v
	}
	return m
}

func squareBreakdownMap(src map[chess.Square]PieceBreakdown) map[string]PieceBreakdownFields {
	m := make(map[string]PieceBreakdownFields, len(src))
	for sq, bd := range src {
		m[sq.String()] = PieceBreakdownFields{
			Base:          bd.Base,
			PST:           bd.PST,
			Mobility:      bd.Mobility,
			PawnStructure: bd.PawnStructure,
			KingSafety:    bd.KingSafety,
			SignedTotal:   bd.SignedTotal,
		}
	}
	return m
}

// Publisher is the single-slot overwrite cell described for the
// instrumentation channel: a mutex-guarded pending record plus a
// capacity-1 signal, rather than a queue. The search task writes to it
// without ever blocking; a consumer drains it with Next.
type Publisher struct {
	mu       sync.Mutex
	slot     Record
	hasSlot  bool
	closed   bool
	signal   chan struct{}
	interval time.Duration
	lastEmit time.Time
}

// NewPublisher returns a Publisher throttled to at most one snapshot per
// interval. interval <= 0 selects the 140ms default; intervals below 50ms
// are clamped up to it.
func NewPublisher(interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = 140 * time.Millisecond
	}
	if interval < 50*time.Millisecond {
		interval = 50 * time.Millisecond
	}
	return &Publisher{
		signal:   make(chan struct{}, 1),
		interval: interval,
	}
}

// publishRootMove offers a progress snapshot after one root move completes.
// Within the throttle window, it still replaces the slot's content
// (coalescing) without resetting the emission clock, waking the consumer, or
// making the slot readable by Next; a later emission or the terminal record
// supersedes it.
func (p *Publisher) publishRootMove(r Result) { p.offerSnapshot(r) }

// publishDepthComplete offers a progress snapshot after a full depth commits.
func (p *Publisher) publishDepthComplete(r Result) { p.offerSnapshot(r) }

func (p *Publisher) offerSnapshot(r Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	rec := toRecord(r, SnapshotRecord)
	p.slot = rec

	now := time.Now()
	if now.Sub(p.lastEmit) < p.interval {
		return
	}
	p.hasSlot = true
	p.lastEmit = now
	p.notifyLocked()
}

func (p *Publisher) notifyLocked() {
	select {
	case p.signal <- struct{}{}:
	default:
	}
}

// complete emits the single terminal success record and closes the
// publisher to further snapshots. It is never dropped: the overwrite always
// succeeds and there is no further writer after it.
func (p *Publisher) complete(r Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.slot = toRecord(r, CompleteRecord)
	p.hasSlot = true
	p.closed = true
	p.notifyLocked()
}

// Error emits the single terminal failure record and closes the publisher.
func (p *Publisher) Error(message, kind string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.slot = Record{Type: ErrorRecord, Message: message, Kind: kind}
	p.hasSlot = true
	p.closed = true
	p.notifyLocked()
}

// Cancel sends a wake-up signal to a Next blocked waiting for a record. It
// does not close the publisher or stop a search (Search observes ctx
// cancellation directly); a woken Next with nothing pending and the
// publisher still open goes back to waiting.
func (p *Publisher) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifyLocked()
}

// Next blocks until a record is available or ctx is done, returning
// ok=false once the publisher is closed and fully drained.
func (p *Publisher) Next(ctx context.Context) (Record, bool) {
	for {
		p.mu.Lock()
		if p.hasSlot {
			rec := p.slot
			p.hasSlot = false
			p.mu.Unlock()
			return rec, true
		}
		closed := p.closed
		p.mu.Unlock()
		if closed {
			return Record{}, false
		}
		select {
		case <-p.signal:
		case <-ctx.Done():
			return Record{}, false
		}
	}
}
