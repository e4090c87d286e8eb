// Package assembler builds the 16-word SHA-1 message the game hashes to
// derive its initial seed, from a ROM profile, hardware/MAC/key-input
// fixtures, and a single (Timer0, VCount, datetime) tick.
package assembler

import (
	"time"

	"github.com/nazocore/gen5seed/internal/bcdswap"
	"github.com/nazocore/gen5seed/internal/gen5types"
	"github.com/nazocore/gen5seed/internal/romtable"
)

// pmHourTweak is the additive BCD adjustment DS/DS_LITE apply to PM hours.
const pmHourTweak = 0x40

// Fixture bundles the per-search constants the assembler needs on every
// tick, so the hot loop in internal/searchworker only has to vary
// Timer0/VCount/datetime.
type Fixture struct {
	Nazo        [5]uint32
	MAC         gen5types.MacAddress
	KeyInput    gen5types.KeyInput
	Hardware    gen5types.Hardware
	FrameOffset uint8

	// Profile and UseAutoConfiguration let the search driver resolve the
	// single VCount Timer0 implies, instead of scanning a caller-supplied
	// VCount range, whenever auto-configuration is on.
	Profile              romtable.Profile
	UseAutoConfiguration bool
}

// NewFixture resolves a SearchConditions' ROM profile and packages the
// per-search constants into a Fixture.
func NewFixture(cond gen5types.SearchConditions) (Fixture, error) {
	profile, err := romtable.Lookup(cond.Profile)
	if err != nil {
		return Fixture{}, &gen5types.ErrUnknownRomProfile{Profile: cond.Profile}
	}
	return Fixture{
		Nazo:                 profile.Nazo,
		MAC:                  cond.MAC,
		KeyInput:             cond.KeyInput,
		Hardware:             cond.Hardware,
		FrameOffset:          cond.FrameOffset,
		Profile:              profile,
		UseAutoConfiguration: cond.UseAutoConfiguration,
	}, nil
}

// Assemble produces the 16-word message for one (Timer0, VCount, datetime)
// tick. Every multi-byte field the game treats as little-endian is
// byte-swapped here before placement; the two padding words are left as
// SHA-1 expects them. Returns an error (never a panic) for any malformed
// input; the caller skips the tick.
func Assemble(f Fixture, timer0 uint16, vcount uint8, dt time.Time) ([16]uint32, error) {
	var w [16]uint32

	year := dt.Year()
	if year < 2000 || year > 2099 {
		return w, &gen5types.AssemblerSkip{Reason: "year out of [2000,2099]", Timer0: timer0, VCount: vcount, When: dt}
	}
	hour, min, sec := dt.Hour(), dt.Minute(), dt.Second()
	if hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 59 {
		return w, &gen5types.AssemblerSkip{Reason: "time field out of range", Timer0: timer0, VCount: vcount, When: dt}
	}

	w[0] = f.Nazo[0]
	w[1] = f.Nazo[1]
	w[2] = f.Nazo[2]
	w[3] = f.Nazo[3]
	w[4] = f.Nazo[4]

	// w[5]: VCount in bits 16..23, byte-swapped Timer0 in the low 16 bits.
	timer0Swapped := bcdswap.Swap16(timer0)
	w[5] = (uint32(vcount) << 16) | uint32(timer0Swapped)

	mac := f.MAC
	// w[6]: MAC bytes 0,1 in the low 16 bits; high 16 bits reserved (zero
	// here; the frame offset is mixed into w[7] below, never into this
	// word).
	w[6] = uint32(mac[1])<<8 | uint32(mac[0])

	// w[7]: MAC bytes 2..5, little-endian packed. A nonzero frame offset
	// replaces bits 24..31 (MAC byte 5). The word is stored as packed; no
	// byte swap is applied to it.
	macWord := uint32(mac[5])<<24 | uint32(mac[4])<<16 | uint32(mac[3])<<8 | uint32(mac[2])
	if f.FrameOffset != 0 {
		macWord = (macWord & 0x00FFFFFF) | (uint32(f.FrameOffset) << 24)
	}
	w[7] = macWord

	yy, err := bcdswap.EncodeBCD(year % 100)
	if err != nil {
		return w, &gen5types.AssemblerSkip{Reason: err.Error(), Timer0: timer0, VCount: vcount, When: dt}
	}
	mm, err := bcdswap.EncodeBCD(int(dt.Month()))
	if err != nil {
		return w, &gen5types.AssemblerSkip{Reason: err.Error(), Timer0: timer0, VCount: vcount, When: dt}
	}
	dd, err := bcdswap.EncodeBCD(dt.Day())
	if err != nil {
		return w, &gen5types.AssemblerSkip{Reason: err.Error(), Timer0: timer0, VCount: vcount, When: dt}
	}
	dow := byte(dt.Weekday()) // time.Sunday == 0, the encoding this format expects

	// w[8]: (YY, MM, DD, DOW) BCD-packed little-endian, low byte first.
	w[8] = uint32(yy) | uint32(mm)<<8 | uint32(dd)<<16 | uint32(dow)<<24

	hh, err := bcdswap.EncodeBCD(hour)
	if err != nil {
		return w, &gen5types.AssemblerSkip{Reason: err.Error(), Timer0: timer0, VCount: vcount, When: dt}
	}
	if hour >= 12 && f.Hardware.AppliesPMHourTweak() {
		hh += pmHourTweak
	}
	mi, err := bcdswap.EncodeBCD(min)
	if err != nil {
		return w, &gen5types.AssemblerSkip{Reason: err.Error(), Timer0: timer0, VCount: vcount, When: dt}
	}
	ss, err := bcdswap.EncodeBCD(sec)
	if err != nil {
		return w, &gen5types.AssemblerSkip{Reason: err.Error(), Timer0: timer0, VCount: vcount, When: dt}
	}

	// w[9]: (hh, mm, ss, 0) BCD-packed little-endian, low byte first.
	w[9] = uint32(hh) | uint32(mi)<<8 | uint32(ss)<<16

	w[10] = 0
	w[11] = 0

	// w[12]: complemented key-input in the low 16 bits, then the whole
	// word byte-swapped to little-endian 32-bit form.
	keyWord := uint32(f.KeyInput.Word())
	w[12] = bcdswap.Swap32(keyWord)

	w[13] = 0x80000000
	w[14] = 0
	w[15] = 0x000001A0

	return w, nil
}
