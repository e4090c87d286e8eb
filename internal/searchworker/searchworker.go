// Package searchworker implements the per-worker enumeration driver: it
// walks a WorkerChunk's datetime x Timer0 x VCount cross-product in fixed
// order, hashing each tick and testing it against the target-seed index,
// streaming matches and periodic progress to the caller.
package searchworker

import (
	"time"

	"github.com/nazocore/gen5seed/internal/assembler"
	"github.com/nazocore/gen5seed/internal/gen5types"
	"github.com/nazocore/gen5seed/internal/seedcalc"
	"github.com/nazocore/gen5seed/internal/targetset"
)

// progressInterval bounds how often a snapshot is emitted: often enough
// that a caller never waits more than spec's ~200ms ceiling, not so often
// it exceeds the ~10Hz spec also caps reporting at.
const progressInterval = 150 * time.Millisecond

// Callbacks are the per-worker streaming hooks the coordinator (or a
// standalone caller) supplies.
type Callbacks struct {
	OnProgress func(gen5types.ProgressSnapshot)
	OnResult   func(gen5types.InitialSeedResult)
	// Debug, when set, populates ProgressSnapshot.AssemblerSkips. Left
	// false in normal operation since assembler skips are expected and
	// not actionable by most callers.
	Debug bool
}

// Run drives one worker's chunk to completion or stop, blocking while
// paused. It returns the final ProgressSnapshot with a terminal Status
// (Completed or Stopped).
func Run(fixture assembler.Fixture, cond gen5types.SearchConditions, chunk gen5types.WorkerChunk, targets *targetset.Set, control *Control, cb Callbacks) gen5types.ProgressSnapshot {
	timer0Count := uint64(chunk.Timer0Max) - uint64(chunk.Timer0Min) + 1
	vcountCount := uint64(chunk.VCountMax) - uint64(chunk.VCountMin) + 1
	if fixture.UseAutoConfiguration {
		vcountCount = 1 // auto-configuration resolves exactly one VCount per Timer0
	}
	chunkSeconds := uint64(chunk.End.Sub(chunk.Start)/time.Second) + 1
	totalSteps := chunkSeconds * timer0Count * vcountCount

	start := time.Now()
	lastReport := start
	var currentStep uint64
	var matchesFound uint64
	var assemblerSkips uint64

	snapshot := func(status gen5types.Status, cur time.Time) gen5types.ProgressSnapshot {
		elapsed := time.Since(start)
		var remaining time.Duration
		if currentStep > 0 && currentStep < totalSteps {
			perStep := elapsed / time.Duration(currentStep)
			remaining = perStep * time.Duration(totalSteps-currentStep)
		}
		snap := gen5types.ProgressSnapshot{
			WorkerID:                 chunk.WorkerID,
			CurrentStep:              currentStep,
			TotalSteps:               totalSteps,
			ElapsedMillis:            elapsed.Milliseconds(),
			EstimatedRemainingMillis: remaining.Milliseconds(),
			MatchesFound:             matchesFound,
			CurrentDateTime:          cur,
			Status:                   status,
		}
		if cb.Debug {
			snap.AssemblerSkips = assemblerSkips
		}
		return snap
	}

	emit := func(status gen5types.Status, cur time.Time) {
		if cb.OnProgress != nil {
			cb.OnProgress(snapshot(status, cur))
		}
	}

	emit(gen5types.StatusRunning, chunk.Start)

	var staticVCounts []uint8
	if !fixture.UseAutoConfiguration {
		staticVCounts = make([]uint8, 0, vcountCount)
		for v := chunk.VCountMin; ; v++ {
			staticVCounts = append(staticVCounts, v)
			if v == chunk.VCountMax {
				break
			}
		}
	}

	// batchSize governs how many ticks travel through one sha1core.CompressBatch
	// call; tuned by seedcalc.BatchSize() (AVX2-aware) rather than fixed at one
	// VCount-width's worth of ticks, so wider CPUs get wider batches.
	batchSize := seedcalc.BatchSize()
	pend := make([]seedcalc.Tick, 0, batchSize)

	// flush hashes the pending batch, applies its results, and reports whether
	// the worker should stop. Checkpointing and progress reporting happen at
	// flush boundaries rather than per tick.
	flush := func(cur time.Time) (shouldStop bool) {
		if len(pend) > 0 {
			results := seedcalc.SeedBatch(fixture, pend)
			for i, res := range results {
				t := pend[i]
				if res.Err != nil {
					assemblerSkips++
					currentStep++
					continue
				}
				if targets.Contains(res.Seed) {
					matchesFound++
					full, err := seedcalc.SeedWithMessage(fixture, t)
					if err == nil && cb.OnResult != nil {
						cb.OnResult(gen5types.InitialSeedResult{
							Seed:     full.Seed,
							DateTime: t.When,
							Timer0:   t.Timer0,
							VCount:   t.VCount,
							Conditions: gen5types.MatchConditions{
								Profile:  cond.Profile,
								Hardware: cond.Hardware,
								MAC:      cond.MAC,
								KeyInput: cond.KeyInput,
							},
							Message:  full.Message,
							SHA1Hash: seedcalc.DigestHex(full.Message),
							IsMatch:  true,
						})
					}
				}
				currentStep++
			}
			pend = pend[:0]
		}

		if control.checkpoint() {
			return true
		}
		if time.Since(lastReport) >= progressInterval {
			emit(gen5types.StatusRunning, cur)
			lastReport = time.Now()
		}
		return false
	}

	for dt := chunk.Start; !dt.After(chunk.End); dt = dt.Add(time.Second) {
		for timer0 := chunk.Timer0Min; ; timer0++ {
			vcounts := staticVCounts
			if fixture.UseAutoConfiguration {
				vcounts = []uint8{fixture.Profile.ResolveVCount(timer0)}
			}
			for _, v := range vcounts {
				pend = append(pend, seedcalc.Tick{Timer0: timer0, VCount: v, When: dt})
				if len(pend) >= batchSize {
					if flush(dt) {
						return snapshot(gen5types.StatusStopped, dt)
					}
				}
			}

			if timer0 == chunk.Timer0Max {
				break
			}
		}
		if flush(dt) {
			return snapshot(gen5types.StatusStopped, dt)
		}
	}

	final := snapshot(gen5types.StatusCompleted, chunk.End)
	if cb.OnProgress != nil {
		cb.OnProgress(final)
	}
	return final
}
