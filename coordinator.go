package gen5seed

import (
	"log"
	"os"
	"sync"

	"github.com/nazocore/gen5seed/internal/assembler"
	"github.com/nazocore/gen5seed/internal/chunker"
	"github.com/nazocore/gen5seed/internal/gen5types"
	"github.com/nazocore/gen5seed/internal/searchworker"
	"github.com/nazocore/gen5seed/internal/targetset"
)

// Callbacks are the caller's streaming hooks. Every field is optional; a
// nil field is simply never invoked.
type Callbacks struct {
	OnProgress           func(ProgressSnapshot)
	OnAggregatedProgress func(AggregatedProgress)
	OnResult             func(InitialSeedResult)
	OnComplete           func()
	OnError              func(error)
	OnPaused             func()
	OnResumed            func()
	OnStopped            func()

	// Logger receives lifecycle transitions. Per-tick assembler skips are
	// not logged; they are only counted (see Debug). When nil, a logger
	// writing to os.Stderr with a "gen5seed: " prefix is used.
	Logger *log.Logger
	// Debug enables per-worker AssemblerSkip counters in every
	// ProgressSnapshot the coordinator forwards.
	Debug bool
}

type coordinatorState int

const (
	stateIdle coordinatorState = iota
	stateRunning
	statePaused
	stateStopping
	stateTerminal
)

// SearchHandle is the caller's handle to one search. There is no
// process-wide singleton; every search owns its own handle.
type SearchHandle struct {
	mu    sync.Mutex
	state coordinatorState

	cb       Callbacks
	logger   *log.Logger
	controls []*searchworker.Control

	progress  map[int]gen5types.ProgressSnapshot
	active    int
	completed int

	wg sync.WaitGroup
}

// StartSearch validates conditions and the target-seed list, splits the
// search space across parallelism workers, and starts them. It returns
// synchronously once every worker has been launched; results and progress
// stream back asynchronously through cb.
//
// parallelism is fixed for the lifetime of the returned handle: a handle
// only ever exists already started, so there is no reconfiguration path on
// it. Callers that want a different worker count start a new search.
func StartSearch(conditions SearchConditions, targetSeeds []uint32, parallelism int, cb Callbacks) (*SearchHandle, error) {
	if err := conditions.Validate(); err != nil {
		return nil, err
	}

	dedup := make(map[uint32]struct{}, len(targetSeeds))
	for _, s := range targetSeeds {
		dedup[s] = struct{}{}
	}
	if len(dedup) == 0 {
		return nil, &gen5types.ErrTargetSetEmpty{}
	}
	if len(dedup) > targetset.MaxSize {
		return nil, &gen5types.ErrTargetSetTooLarge{Count: len(dedup), Max: targetset.MaxSize}
	}

	fixture, err := assembler.NewFixture(conditions)
	if err != nil {
		return nil, err
	}

	if parallelism < 1 {
		parallelism = 1
	}

	logger := cb.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "gen5seed: ", log.LstdFlags)
	}

	split := chunker.Split(conditions, parallelism)
	if len(split.Chunks) == 0 {
		return nil, &gen5types.ErrInvalidSearchConditions{Reason: "datetime range produced zero chunks"}
	}

	targets := targetset.New(targetSeeds)

	h := &SearchHandle{
		state:    stateRunning,
		cb:       cb,
		logger:   logger,
		controls: make([]*searchworker.Control, len(split.Chunks)),
		progress: make(map[int]gen5types.ProgressSnapshot, len(split.Chunks)),
		active:   len(split.Chunks),
	}

	logger.Printf("search starting: %d worker(s), %d target seed(s), load balance score %d", len(split.Chunks), len(dedup), split.LoadBalanceScore)

	for _, chunk := range split.Chunks {
		control := searchworker.NewControl()
		h.controls[chunk.WorkerID] = control

		h.wg.Add(1)
		go h.runWorker(fixture, conditions, chunk, targets, control)
	}

	return h, nil
}

func (h *SearchHandle) runWorker(fixture assembler.Fixture, cond gen5types.SearchConditions, chunk gen5types.WorkerChunk, targets *targetset.Set, control *searchworker.Control) {
	defer h.wg.Done()

	workerCb := searchworker.Callbacks{
		Debug: h.cb.Debug,
		OnProgress: func(p gen5types.ProgressSnapshot) {
			h.handleProgress(p)
		},
		OnResult: func(r gen5types.InitialSeedResult) {
			if h.cb.OnResult != nil {
				h.cb.OnResult(r)
			}
		},
	}

	final := searchworker.Run(fixture, cond, chunk, targets, control, workerCb)
	h.handleWorkerDone(chunk.WorkerID, final)
}

func (h *SearchHandle) handleProgress(p gen5types.ProgressSnapshot) {
	h.mu.Lock()
	h.progress[p.WorkerID] = p
	agg := h.aggregateLocked()
	h.mu.Unlock()

	if h.cb.OnProgress != nil {
		h.cb.OnProgress(p)
	}
	if h.cb.OnAggregatedProgress != nil {
		h.cb.OnAggregatedProgress(agg)
	}
}

// aggregateLocked builds an AggregatedProgress from the current per-worker
// snapshots. Callers must hold h.mu.
func (h *SearchHandle) aggregateLocked() gen5types.AggregatedProgress {
	agg := gen5types.AggregatedProgress{
		Workers: make(map[int]gen5types.ProgressSnapshot, len(h.progress)),
	}
	for id, p := range h.progress {
		agg.Workers[id] = p
		agg.CurrentStep += p.CurrentStep
		agg.TotalSteps += p.TotalSteps
		agg.ElapsedMillis += p.ElapsedMillis
		switch p.Status {
		case gen5types.StatusCompleted, gen5types.StatusStopped, gen5types.StatusError:
			agg.CompletedWorkers++
		default:
			agg.ActiveWorkers++
		}
	}
	return agg
}

func (h *SearchHandle) handleWorkerDone(workerID int, final gen5types.ProgressSnapshot) {
	h.mu.Lock()
	h.progress[workerID] = final
	h.completed++
	allDone := h.completed >= h.active
	if allDone {
		h.state = stateTerminal
	}
	h.mu.Unlock()

	h.logger.Printf("worker %d finished: status=%s matches=%d steps=%d/%d", workerID, final.Status, final.MatchesFound, final.CurrentStep, final.TotalSteps)

	if allDone {
		if h.cb.OnComplete != nil {
			h.cb.OnComplete()
		}
	}
}

// Pause requests every worker suspend at its next checkpoint.
func (h *SearchHandle) Pause() {
	h.mu.Lock()
	if h.state != stateRunning {
		h.mu.Unlock()
		h.reportNotRunning()
		return
	}
	h.state = statePaused
	controls := append([]*searchworker.Control(nil), h.controls...)
	h.mu.Unlock()

	for _, c := range controls {
		c.Pause()
	}
	h.logger.Print("search paused")
	if h.cb.OnPaused != nil {
		h.cb.OnPaused()
	}
}

// Resume clears a pending pause on every worker.
func (h *SearchHandle) Resume() {
	h.mu.Lock()
	if h.state != statePaused {
		h.mu.Unlock()
		h.reportNotRunning()
		return
	}
	h.state = stateRunning
	controls := append([]*searchworker.Control(nil), h.controls...)
	h.mu.Unlock()

	for _, c := range controls {
		c.Resume()
	}
	h.logger.Print("search resumed")
	if h.cb.OnResumed != nil {
		h.cb.OnResumed()
	}
}

// Stop requests every worker exit at its next checkpoint. Matches already
// emitted remain valid; Stop does not block until workers drain.
func (h *SearchHandle) Stop() {
	h.mu.Lock()
	if h.state == stateTerminal || h.state == stateIdle {
		h.mu.Unlock()
		h.reportNotRunning()
		return
	}
	h.state = stateStopping
	controls := append([]*searchworker.Control(nil), h.controls...)
	h.mu.Unlock()

	for _, c := range controls {
		c.Stop()
	}
	h.logger.Print("search stopping")
	if h.cb.OnStopped != nil {
		h.cb.OnStopped()
	}
}

// reportNotRunning surfaces a control-protocol violation through OnError,
// since Pause/Resume/Stop have no error return in the Go-idiomatic
// signature.
func (h *SearchHandle) reportNotRunning() {
	h.logger.Print("control call on a handle that is not in the expected state")
	if h.cb.OnError != nil {
		h.cb.OnError(&gen5types.ErrNotRunning{})
	}
}

// Poll returns the coordinator's current aggregated progress and whether
// the search has reached a terminal state, for callers that prefer polling
// over callbacks.
func (h *SearchHandle) Poll() (AggregatedProgress, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.aggregateLocked(), h.state == stateTerminal
}

// Wait blocks until every worker has reached a terminal state. It is not
// part of the core's callback surface; it exists for callers (including
// tests and the CLI) that prefer a synchronous join over polling or
// OnComplete.
func (h *SearchHandle) Wait() {
	h.wg.Wait()
}
