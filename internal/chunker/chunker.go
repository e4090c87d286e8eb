// Package chunker splits a search's full datetime range into disjoint,
// near-equal-size slices for W workers.
package chunker

import (
	"time"

	"github.com/nazocore/gen5seed/internal/gen5types"
)

// Result is the chunker's output: the disjoint chunks and a load-balance
// score.
type Result struct {
	Chunks         []gen5types.WorkerChunk
	LoadBalanceScore int // 0..100, informational only
}

// Split divides cond's datetime range into at most workerCount contiguous,
// second-granular slices, each keeping the full Timer0/VCount range. Ties in
// uneven division go to the earlier chunks. If the range has fewer seconds
// than workerCount, fewer chunks are produced.
func Split(cond gen5types.SearchConditions, workerCount int) Result {
	totalSeconds := int64(cond.DateTimeEnd.Sub(cond.DateTimeStart)/time.Second) + 1
	if totalSeconds <= 0 || workerCount <= 0 {
		return Result{}
	}

	n := int64(workerCount)
	if n > totalSeconds {
		n = totalSeconds
	}

	base := totalSeconds / n
	extra := totalSeconds % n // the first `extra` chunks get one more second

	timer0Count := int64(cond.Timer0Max) - int64(cond.Timer0Min) + 1
	vcountCount := int64(cond.VCountMax) - int64(cond.VCountMin) + 1
	if cond.UseAutoConfiguration {
		vcountCount = 1 // auto-configuration resolves exactly one VCount per Timer0
	}

	chunks := make([]gen5types.WorkerChunk, 0, n)
	cursor := cond.DateTimeStart
	minSize, maxSize := base, base
	if extra > 0 {
		maxSize = base + 1
	}

	var i int64
	for i = 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		start := cursor
		end := start.Add(time.Duration(size-1) * time.Second)

		chunks = append(chunks, gen5types.WorkerChunk{
			WorkerID:            int(i),
			Start:                start,
			End:                  end,
			Timer0Min:            cond.Timer0Min,
			Timer0Max:            cond.Timer0Max,
			VCountMin:            cond.VCountMin,
			VCountMax:            cond.VCountMax,
			EstimatedOperations:  uint64(size) * uint64(timer0Count) * uint64(vcountCount),
		})

		cursor = end.Add(time.Second)
	}

	score := 100
	if maxSize > 0 {
		score = int(100 * minSize / maxSize)
	}

	return Result{Chunks: chunks, LoadBalanceScore: score}
}
