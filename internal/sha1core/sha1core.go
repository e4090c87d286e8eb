// Package sha1core implements the single-block FIPS-180 SHA-1 compression
// used to turn an assembled 16-word message into an initial seed.
//
// It is not built on crypto/sha1: the search engine feeds in messages that
// are already padded to exactly one 64-byte block (the assembler embeds the
// padding bit and the 416-bit length word itself, see internal/assembler),
// and the hot path only needs the first two output words (h0, h1); the
// five-word digest is only rendered as hex for matches that need an
// auditable string. crypto/sha1's streaming Write/Sum interface does not
// expose that shape.
package sha1core

import (
	"encoding/hex"

	"github.com/klauspost/cpuid/v2"
)

// Initial SHA-1 hash values (FIPS 180-4 §5.3.1).
const (
	h0init uint32 = 0x67452301
	h1init uint32 = 0xEFCDAB89
	h2init uint32 = 0x98BADCFE
	h3init uint32 = 0x10325476
	h4init uint32 = 0xC3D2E1F0
)

func rotl(v uint32, n uint) uint32 {
	return (v << n) | (v >> (32 - n))
}

// Compress runs the full 80-round SHA-1 compression function over a single
// 16-word (64-byte) block and returns all five output words. The block must
// already be in the word-level big-endian form SHA-1 ingests; callers
// (internal/assembler) are responsible for any byte swapping.
func Compress(block [16]uint32) [5]uint32 {
	var w [80]uint32
	copy(w[:16], block[:])
	for t := 16; t < 80; t++ {
		w[t] = rotl(w[t-3]^w[t-8]^w[t-14]^w[t-16], 1)
	}

	a, b, c, d, e := h0init, h1init, h2init, h3init, h4init

	for t := 0; t < 80; t++ {
		var f, k uint32
		switch {
		case t < 20:
			f = (b & c) | ((^b) & d)
			k = 0x5A827999
		case t < 40:
			f = b ^ c ^ d
			k = 0x6ED9EBA1
		case t < 60:
			f = (b & c) | (b & d) | (c & d)
			k = 0x8F1BBCDC
		default:
			f = b ^ c ^ d
			k = 0xCA62C1D6
		}

		temp := rotl(a, 5) + f + e + k + w[t]
		e = d
		d = c
		c = rotl(b, 30)
		b = a
		a = temp
	}

	return [5]uint32{
		h0init + a,
		h1init + b,
		h2init + c,
		h3init + d,
		h4init + e,
	}
}

// Seed returns just h0, the 32-bit initial seed value the game derives
// from the hashed message.
func Seed(block [16]uint32) uint32 {
	h := Compress(block)
	return h[0]
}

// SeedPair returns (h0, h1), the two words the hot loop consumes. It exists
// as a distinct entry point so batched callers can express intent even
// though, mechanically, SHA-1's rounds mix every register and nothing short
// of a full Compress produces h1.
func SeedPair(block [16]uint32) (uint32, uint32) {
	h := Compress(block)
	return h[0], h[1]
}

// DigestHex renders the full 5-word digest as the 40 lowercase hex
// characters the reference implementation would produce, for match
// auditing.
func DigestHex(h [5]uint32) string {
	var b [20]byte
	for i, w := range h {
		b[i*4+0] = byte(w >> 24)
		b[i*4+1] = byte(w >> 16)
		b[i*4+2] = byte(w >> 8)
		b[i*4+3] = byte(w)
	}
	return hex.EncodeToString(b[:])
}

// CompressBatch runs Compress over N independent blocks and returns all N
// digests in input order. It is a convenience for the seed calculator's
// batched call shape: laying blocks out contiguously and iterating them
// back-to-back keeps the hot loop branch-predictable and amortizes call
// overhead, the same role a SIMD batch API would play. Exact arithmetic is
// unaffected by batch size.
func CompressBatch(blocks [][16]uint32) [][5]uint32 {
	out := make([][5]uint32, len(blocks))
	for i, blk := range blocks {
		out[i] = Compress(blk)
	}
	return out
}

// DefaultBatchSize picks a seed-calculator batch size informed by available
// SIMD width: wider vector units amortize per-call overhead better, so an
// AVX2-capable core gets a larger batch than a baseline core. This mirrors
// the batch-size tuning knob that SIMD-accelerated hashers (e.g.
// minio/sha256-simd, this module's teacher's original dependency) expose,
// even though the compression loop itself here is scalar.
func DefaultBatchSize() int {
	switch {
	case cpuid.CPU.Has(cpuid.AVX2):
		return 64
	case cpuid.CPU.Has(cpuid.AVX):
		return 32
	default:
		return 16
	}
}
