package seedcalc

import (
	"testing"
	"time"

	"github.com/nazocore/gen5seed/internal/assembler"
	"github.com/nazocore/gen5seed/internal/gen5types"
	"github.com/nazocore/gen5seed/internal/romtable"
)

func testFixture(t *testing.T) assembler.Fixture {
	t.Helper()
	cond := gen5types.SearchConditions{
		Profile:  romtable.ProfileID{Version: romtable.B, Region: romtable.JPN},
		Hardware: gen5types.DS,
		MAC:      gen5types.MacAddress{0x00, 0x09, 0xBF, 0x12, 0x34, 0x56},
		KeyInput: gen5types.NoKeysHeld,
	}
	f, err := assembler.NewFixture(cond)
	if err != nil {
		t.Fatalf("NewFixture: %v", err)
	}
	return f
}

func TestSeedDeterministic(t *testing.T) {
	f := testFixture(t)
	tick := Tick{Timer0: 0xC79, VCount: 0x60, When: time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)}

	s1, err := Seed(f, tick)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	s2, err := Seed(f, tick)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if s1 != s2 {
		t.Errorf("Seed is not deterministic: %#x != %#x", s1, s2)
	}
}

func TestSeedWithMessageMatchesSeed(t *testing.T) {
	f := testFixture(t)
	tick := Tick{Timer0: 0xC79, VCount: 0x60, When: time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)}

	want, err := Seed(f, tick)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	res, err := SeedWithMessage(f, tick)
	if err != nil {
		t.Fatalf("SeedWithMessage: %v", err)
	}
	if res.Seed != want {
		t.Errorf("SeedWithMessage seed = %#x, want %#x", res.Seed, want)
	}
}

func TestSeedBatchEquivalence(t *testing.T) {
	f := testFixture(t)
	base := time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)

	var ticks []Tick
	for i := 0; i < 40; i++ {
		ticks = append(ticks, Tick{
			Timer0: uint16(0xC70 + i%8),
			VCount: 0x60,
			When:   base.Add(time.Duration(i) * time.Second),
		})
	}

	batch := SeedBatch(f, ticks)
	if len(batch) != len(ticks) {
		t.Fatalf("SeedBatch returned %d results, want %d", len(batch), len(ticks))
	}
	for i, tick := range ticks {
		single, err := Seed(f, tick)
		if err != nil {
			t.Fatalf("Seed(%d): %v", i, err)
		}
		if batch[i].Err != nil {
			t.Fatalf("batch[%d] unexpected error: %v", i, batch[i].Err)
		}
		if batch[i].Seed != single {
			t.Errorf("batch[%d] seed %#x != single seed %#x", i, batch[i].Seed, single)
		}
	}
}

func TestSeedBatchSkipsFailingTickWithoutAbortingRest(t *testing.T) {
	f := testFixture(t)
	good := Tick{Timer0: 0xC79, VCount: 0x60, When: time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)}
	bad := Tick{Timer0: 0xC79, VCount: 0x60, When: time.Date(1999, time.March, 6, 12, 0, 0, 0, time.UTC)}

	out := SeedBatch(f, []Tick{good, bad, good})
	if out[1].Err == nil {
		t.Error("expected an error for the out-of-range year tick")
	}
	if out[0].Err != nil || out[2].Err != nil {
		t.Error("good ticks should not report an error")
	}
	if out[0].Seed != out[2].Seed {
		t.Error("identical good ticks should produce identical seeds")
	}
}

func TestDigestHexLength(t *testing.T) {
	f := testFixture(t)
	tick := Tick{Timer0: 0xC79, VCount: 0x60, When: time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)}
	res, err := SeedWithMessage(f, tick)
	if err != nil {
		t.Fatalf("SeedWithMessage: %v", err)
	}
	digest := DigestHex(res.Message)
	if len(digest) != 40 {
		t.Errorf("digest length = %d, want 40", len(digest))
	}
}

func TestBatchSizePositive(t *testing.T) {
	if BatchSize() <= 0 {
		t.Error("BatchSize() should be positive")
	}
}
