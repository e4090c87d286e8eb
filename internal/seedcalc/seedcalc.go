// Package seedcalc combines message assembly and SHA-1 compression into the
// seed-calculator call shapes the search driver and its tests use: a
// single-tick call and a batched call over N ticks.
package seedcalc

import (
	"time"

	"github.com/nazocore/gen5seed/internal/assembler"
	"github.com/nazocore/gen5seed/internal/sha1core"
)

// Tick names one (Timer0, VCount, datetime) combination to seed.
type Tick struct {
	Timer0 uint16
	VCount uint8
	When   time.Time
}

// Result is one computed seed, with the full message and digest retained
// for audit (only materialized for matches by the caller; see
// internal/searchworker).
type Result struct {
	Seed    uint32
	Message [16]uint32
}

// Seed assembles and hashes a single tick, returning just the seed. It is
// the single-tick call shape; the search driver's hot loop uses SeedBatch
// and only builds a full Result (and a digest) for matches.
func Seed(f assembler.Fixture, t Tick) (uint32, error) {
	msg, err := assembler.Assemble(f, t.Timer0, t.VCount, t.When)
	if err != nil {
		return 0, err
	}
	return sha1core.Seed(msg), nil
}

// SeedWithMessage assembles, hashes, and returns both the seed and the
// 16-word message a match needs for its audit record.
func SeedWithMessage(f assembler.Fixture, t Tick) (Result, error) {
	msg, err := assembler.Assemble(f, t.Timer0, t.VCount, t.When)
	if err != nil {
		return Result{}, err
	}
	return Result{Seed: sha1core.Seed(msg), Message: msg}, nil
}

// DigestHex computes the full 40-hex-digit digest for an already-assembled
// message, retained only for auditing of emitted matches.
func DigestHex(msg [16]uint32) string {
	return sha1core.DigestHex(sha1core.Compress(msg))
}

// BatchResult pairs a Tick's seed with any assembly error, preserving input
// order so batch and single-call results line up.
type BatchResult struct {
	Seed uint32
	Err  error
}

// SeedBatch pre-assembles every tick into a contiguous message buffer and
// dispatches them through sha1core.CompressBatch, returning results in
// input order. A tick whose assembly fails contributes a zero seed and a
// non-nil Err; it does not abort the rest of the batch. A per-tick assembler
// failure skips the tick, not the search.
func SeedBatch(f assembler.Fixture, ticks []Tick) []BatchResult {
	out := make([]BatchResult, len(ticks))
	blocks := make([]([16]uint32), 0, len(ticks))
	blockIdx := make([]int, 0, len(ticks))

	for i, t := range ticks {
		msg, err := assembler.Assemble(f, t.Timer0, t.VCount, t.When)
		if err != nil {
			out[i] = BatchResult{Err: err}
			continue
		}
		blocks = append(blocks, msg)
		blockIdx = append(blockIdx, i)
	}

	digests := sha1core.CompressBatch(blocks)
	for j, h := range digests {
		out[blockIdx[j]] = BatchResult{Seed: h[0]}
	}
	return out
}

// BatchSize returns the default tuning value for how many ticks a caller
// should group into one SeedBatch call.
func BatchSize() int {
	return sha1core.DefaultBatchSize()
}
