package bench

import (
	"testing"
	"time"

	"github.com/nazocore/gen5seed/internal/assembler"
	"github.com/nazocore/gen5seed/internal/gen5types"
	"github.com/nazocore/gen5seed/internal/seedcalc"
	"github.com/nazocore/gen5seed/internal/sha1core"
)

func benchFixture() assembler.Fixture {
	return assembler.Fixture{
		Nazo:     [5]uint32{0x02215f10, 0x0221600c, 0x022160d0, 0x02216198, 0x0221626c},
		MAC:      gen5types.MacAddress{0x00, 0x09, 0xBF, 0x12, 0x34, 0x56},
		KeyInput: gen5types.NoKeysHeld,
		Hardware: gen5types.DS,
	}
}

// BenchmarkSHA1Compress benchmarks a single 16-word SHA-1 block compression,
// the innermost hot-path operation every search tick pays for.
func BenchmarkSHA1Compress(b *testing.B) {
	block := [16]uint32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x80000000, 0, 0, 0x000001A0}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = sha1core.Compress(block)
	}
}

// BenchmarkAssemble benchmarks the message assembler's per-tick cost.
func BenchmarkAssemble(b *testing.B) {
	f := benchFixture()
	dt := time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := assembler.Assemble(f, 0xC79, 0x60, dt); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSeedSingle benchmarks the single-tick assemble-and-hash path.
func BenchmarkSeedSingle(b *testing.B) {
	f := benchFixture()
	tick := seedcalc.Tick{Timer0: 0xC79, VCount: 0x60, When: time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := seedcalc.Seed(f, tick); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSeedBatch benchmarks the batched assemble-and-hash path at the
// default batch size, the shape the search driver actually exercises.
func BenchmarkSeedBatch(b *testing.B) {
	f := benchFixture()
	n := seedcalc.BatchSize()
	ticks := make([]seedcalc.Tick, n)
	dt := time.Date(2011, time.March, 6, 12, 0, 0, 0, time.UTC)
	for i := range ticks {
		ticks[i] = seedcalc.Tick{Timer0: uint16(0xC79 + i), VCount: 0x60, When: dt}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = seedcalc.SeedBatch(f, ticks)
	}
}
