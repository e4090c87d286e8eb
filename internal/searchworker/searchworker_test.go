package searchworker

import (
	"sync"
	"testing"
	"time"

	"github.com/nazocore/gen5seed/internal/assembler"
	"github.com/nazocore/gen5seed/internal/gen5types"
	"github.com/nazocore/gen5seed/internal/romtable"
	"github.com/nazocore/gen5seed/internal/seedcalc"
	"github.com/nazocore/gen5seed/internal/targetset"
)

func testFixture() assembler.Fixture {
	return assembler.Fixture{
		Nazo:     [5]uint32{0x02215f10, 0x0221600c, 0x022160d0, 0x02216198, 0x0221626c},
		MAC:      gen5types.MacAddress{0x00, 0x09, 0xBF, 0x12, 0x34, 0x56},
		KeyInput: gen5types.NoKeysHeld,
		Hardware: gen5types.DS,
	}
}

func testChunk(start, end time.Time) gen5types.WorkerChunk {
	return gen5types.WorkerChunk{
		WorkerID:  0,
		Start:     start,
		End:       end,
		Timer0Min: 0xC79,
		Timer0Max: 0xC7A,
		VCountMin: 0x60,
		VCountMax: 0x60,
	}
}

// TestProgressMonotonic pins that successive currentStep and currentDateTime
// values a worker reports are both non-decreasing.
func TestProgressMonotonic(t *testing.T) {
	start := time.Date(2011, time.March, 6, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	chunk := testChunk(start, end)
	targets := targetset.New([]uint32{0xDEADBEEF}) // deliberately unreachable

	var mu sync.Mutex
	var steps []uint64
	var datetimes []time.Time

	cb := Callbacks{
		OnProgress: func(p gen5types.ProgressSnapshot) {
			mu.Lock()
			steps = append(steps, p.CurrentStep)
			datetimes = append(datetimes, p.CurrentDateTime)
			mu.Unlock()
		},
	}

	final := Run(testFixture(), gen5types.SearchConditions{}, chunk, targets, NewControl(), cb)
	if final.Status != gen5types.StatusCompleted {
		t.Fatalf("status = %v, want Completed", final.Status)
	}

	for i := 1; i < len(steps); i++ {
		if steps[i] < steps[i-1] {
			t.Errorf("currentStep decreased at index %d: %d < %d", i, steps[i], steps[i-1])
		}
		if datetimes[i].Before(datetimes[i-1]) {
			t.Errorf("currentDateTime decreased at index %d: %v < %v", i, datetimes[i], datetimes[i-1])
		}
	}
}

// TestMatchEmittedExactlyOnce checks that every tick whose seed is a target
// produces exactly one result, and the result's fields line up with the
// tick that produced it.
func TestMatchEmittedExactlyOnce(t *testing.T) {
	fixture := testFixture()
	start := time.Date(2011, time.March, 6, 14, 0, 0, 0, time.UTC)
	end := start.Add(1 * time.Second)
	chunk := testChunk(start, end)

	want, err := seedcalc.Seed(fixture, seedcalc.Tick{Timer0: 0xC79, VCount: 0x60, When: start})
	if err != nil {
		t.Fatalf("seedcalc.Seed: %v", err)
	}
	targets := targetset.New([]uint32{want})

	var results []gen5types.InitialSeedResult
	cb := Callbacks{
		OnResult: func(r gen5types.InitialSeedResult) {
			results = append(results, r)
		},
	}

	final := Run(fixture, gen5types.SearchConditions{}, chunk, targets, NewControl(), cb)
	if final.MatchesFound != 1 {
		t.Fatalf("MatchesFound = %d, want 1", final.MatchesFound)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Seed != want {
		t.Errorf("result seed = %#x, want %#x", r.Seed, want)
	}
	if !r.IsMatch {
		t.Error("IsMatch = false, want true")
	}
	if len(r.SHA1Hash) != 40 {
		t.Errorf("SHA1Hash length = %d, want 40", len(r.SHA1Hash))
	}
}

// TestStopReturnsPromptly pins that Stop causes Run to return a Stopped
// snapshot without finishing the chunk.
func TestStopReturnsPromptly(t *testing.T) {
	start := time.Date(2011, time.March, 6, 0, 0, 0, 0, time.UTC)
	end := start.Add(59 * time.Second) // big enough that a mid-run stop is observable
	chunk := testChunk(start, end)
	chunk.Timer0Min, chunk.Timer0Max = 0x0000, 0xFFFF // wide Timer0 range so stop lands mid-chunk
	targets := targetset.New([]uint32{0xDEADBEEF})

	control := NewControl()
	stopped := make(chan struct{})
	var progressCount int
	var mu sync.Mutex

	cb := Callbacks{
		OnProgress: func(p gen5types.ProgressSnapshot) {
			mu.Lock()
			progressCount++
			n := progressCount
			mu.Unlock()
			if n == 2 {
				control.Stop()
			}
		},
	}

	go func() {
		final := Run(testFixture(), gen5types.SearchConditions{}, chunk, targets, control, cb)
		if final.Status != gen5types.StatusStopped {
			t.Errorf("status = %v, want Stopped", final.Status)
		}
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

// TestPauseResumeContinues pins that a paused worker blocks and, once
// resumed, proceeds to completion rather than terminating.
func TestPauseResumeContinues(t *testing.T) {
	start := time.Date(2011, time.March, 6, 0, 0, 0, 0, time.UTC)
	end := start.Add(1 * time.Second)
	chunk := testChunk(start, end)
	targets := targetset.New([]uint32{0xDEADBEEF})

	control := NewControl()
	control.Pause()

	done := make(chan gen5types.ProgressSnapshot, 1)
	go func() {
		done <- Run(testFixture(), gen5types.SearchConditions{}, chunk, targets, control, Callbacks{})
	}()

	select {
	case <-done:
		t.Fatal("Run returned while paused before Resume was ever called")
	case <-time.After(200 * time.Millisecond):
	}

	control.Resume()

	select {
	case final := <-done:
		if final.Status != gen5types.StatusCompleted {
			t.Errorf("status = %v, want Completed", final.Status)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not complete after Resume")
	}
}

// TestAutoConfigurationUsesSingleVCount checks that with auto-configuration
// on, totalSteps reflects exactly one VCount per Timer0 regardless of the
// chunk's static VCount range.
func TestAutoConfigurationUsesSingleVCount(t *testing.T) {
	fixture := testFixture()
	fixture.Profile = romtable.Profile{
		DefaultVCount: 0x60,
		Timer0Min:     0x0000,
		Timer0Max:     0xFFFF,
	}
	fixture.UseAutoConfiguration = true

	start := time.Date(2011, time.March, 6, 0, 0, 0, 0, time.UTC)
	chunk := testChunk(start, start)
	chunk.VCountMin, chunk.VCountMax = 0x00, 0xFF // wide static range, should be ignored
	targets := targetset.New([]uint32{0xDEADBEEF})

	final := Run(fixture, gen5types.SearchConditions{UseAutoConfiguration: true}, chunk, targets, NewControl(), Callbacks{})
	wantSteps := uint64(chunk.Timer0Max-chunk.Timer0Min) + 1
	if final.TotalSteps != wantSteps {
		t.Errorf("TotalSteps = %d, want %d (one VCount per Timer0)", final.TotalSteps, wantSteps)
	}
	if final.CurrentStep != final.TotalSteps {
		t.Errorf("CurrentStep = %d, want %d at completion", final.CurrentStep, final.TotalSteps)
	}
}

// TestDebugSurfacesAssemblerSkips pins that AssemblerSkips is only populated
// when Callbacks.Debug is set.
func TestDebugSurfacesAssemblerSkips(t *testing.T) {
	fixture := testFixture()
	// A one-second, single-tick chunk dated before year 2000 forces every
	// tick to fail assembly (outside the assembler's supported year range),
	// so every step is a skip.
	start := time.Date(1999, time.March, 6, 0, 0, 0, 0, time.UTC)
	end := start
	chunk := testChunk(start, end)
	chunk.Timer0Min, chunk.Timer0Max = 0xC79, 0xC79
	targets := targetset.New([]uint32{0xDEADBEEF})

	withoutDebug := Run(fixture, gen5types.SearchConditions{}, chunk, targets, NewControl(), Callbacks{})
	if withoutDebug.AssemblerSkips != 0 {
		t.Errorf("AssemblerSkips = %d without Debug, want 0", withoutDebug.AssemblerSkips)
	}

	withDebug := Run(fixture, gen5types.SearchConditions{}, chunk, targets, NewControl(), Callbacks{Debug: true})
	if withDebug.AssemblerSkips == 0 {
		t.Error("AssemblerSkips = 0 with Debug set, want > 0")
	}
}
