// Package gen5types holds the domain types shared across the search
// engine's internal packages (assembler, seedcalc, chunker, searchworker)
// and re-exported by the root gen5seed package. Keeping them in their own
// leaf package avoids an import cycle between the root package and the
// internal packages it composes.
package gen5types

import (
	"fmt"
	"time"

	"github.com/nazocore/gen5seed/internal/romtable"
)

// Hardware identifies the booting device, which changes the hour-field BCD
// adjustment the message assembler applies.
type Hardware int

const (
	DS Hardware = iota
	DSLite
	ThreeDS
)

func (h Hardware) String() string {
	switch h {
	case DS:
		return "DS"
	case DSLite:
		return "DS_LITE"
	case ThreeDS:
		return "3DS"
	default:
		return fmt.Sprintf("Hardware(%d)", int(h))
	}
}

// AppliesPMHourTweak reports whether this hardware kind applies the +0x40
// BCD tweak to PM hours: true for DS and DS_LITE, false for 3DS.
func (h Hardware) AppliesPMHourTweak() bool {
	return h == DS || h == DSLite
}

// keyInputMask is the fixed complement mask every held-button bitmap is
// XORed against before hashing.
const keyInputMask = 0x2FFF

// KeyInput is the raw 12-bit held-button bitmap. The sentinel zero value
// means "no buttons held".
type KeyInput uint16

// NoKeysHeld is the default KeyInput value (no buttons held).
const NoKeysHeld KeyInput = 0

// Word returns the complemented 16-bit value the message assembler packs
// into w[12]: (~held) & 0x2FFF. With no keys held this is 0x2FFF.
func (k KeyInput) Word() uint16 {
	return uint16(^k) & keyInputMask
}

// MacAddress is a six-byte hardware MAC address, index 0 holding the
// low-order byte.
type MacAddress [6]byte

// RomProfileID names a (version, region) entry in the ROM profile table.
type RomProfileID = romtable.ProfileID

// SearchConditions is the full set of fixed and ranged inputs to one
// search.
type SearchConditions struct {
	Profile              RomProfileID
	Hardware             Hardware
	Timer0Min            uint16
	Timer0Max            uint16
	VCountMin            uint8
	VCountMax            uint8
	UseAutoConfiguration bool
	DateTimeStart        time.Time
	DateTimeEnd          time.Time
	KeyInput             KeyInput
	MAC                  MacAddress
	FrameOffset          uint8
}

// WorkerChunk is one worker's disjoint slice of the full datetime range,
// covering the whole Timer0/VCount range.
type WorkerChunk struct {
	WorkerID            int
	Start               time.Time
	End                 time.Time
	Timer0Min           uint16
	Timer0Max           uint16
	VCountMin           uint8
	VCountMax           uint8
	EstimatedOperations uint64
}

// MatchConditions is the subset of SearchConditions that identifies what
// produced a given match, embedded in InitialSeedResult's wire shape.
type MatchConditions struct {
	Profile  RomProfileID `json:"profile"`
	Hardware Hardware     `json:"hardware"`
	MAC      MacAddress   `json:"mac"`
	KeyInput KeyInput     `json:"keyInput"`
}

// InitialSeedResult is one match record, including its wire-serializable
// shape.
type InitialSeedResult struct {
	Seed       uint32          `json:"seed"`
	DateTime   time.Time       `json:"datetime"`
	Timer0     uint16          `json:"timer0"`
	VCount     uint8           `json:"vcount"`
	Conditions MatchConditions `json:"conditions"`
	Message    [16]uint32      `json:"message"`
	SHA1Hash   string          `json:"sha1Hash"`
	IsMatch    bool            `json:"isMatch"`
}

// Status is a worker or search's lifecycle state.
type Status int

const (
	StatusInit Status = iota
	StatusRunning
	StatusPaused
	StatusCompleted
	StatusError
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	case StatusError:
		return "error"
	case StatusStopped:
		return "stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ProgressSnapshot is one worker's point-in-time progress.
type ProgressSnapshot struct {
	WorkerID                 int
	CurrentStep              uint64
	TotalSteps               uint64
	ElapsedMillis            int64
	EstimatedRemainingMillis int64
	MatchesFound             uint64
	CurrentDateTime          time.Time
	Status                   Status
	// AssemblerSkips is only populated when the caller enables the debug
	// channel; zero otherwise.
	AssemblerSkips uint64
}

// AggregatedProgress is the coordinator's sum of every worker's progress.
type AggregatedProgress struct {
	CurrentStep      uint64
	TotalSteps       uint64
	ElapsedMillis    int64
	ActiveWorkers    int
	CompletedWorkers int
	Workers          map[int]ProgressSnapshot
}

// --- error kinds ---

// ErrUnknownRomProfile reports a (version, region) absent from the table.
type ErrUnknownRomProfile struct {
	Profile RomProfileID
}

func (e *ErrUnknownRomProfile) Error() string {
	return fmt.Sprintf("gen5seed: unknown rom profile %s", e.Profile)
}

// ErrInvalidSearchConditions reports a structurally invalid SearchConditions
// value (empty datetime range, min > max, out-of-range fields, etc).
type ErrInvalidSearchConditions struct {
	Reason string
}

func (e *ErrInvalidSearchConditions) Error() string {
	return fmt.Sprintf("gen5seed: invalid search conditions: %s", e.Reason)
}

// ErrTargetSetTooLarge reports a target-seed list exceeding the 10000-entry
// cap.
type ErrTargetSetTooLarge struct {
	Count int
	Max   int
}

func (e *ErrTargetSetTooLarge) Error() string {
	return fmt.Sprintf("gen5seed: target set has %d seeds, exceeds max %d", e.Count, e.Max)
}

// ErrTargetSetEmpty reports a target-seed list with zero entries.
type ErrTargetSetEmpty struct{}

func (e *ErrTargetSetEmpty) Error() string {
	return "gen5seed: target set is empty"
}

// ErrWorkerInitFailure reports a worker that failed to initialize.
type ErrWorkerInitFailure struct {
	WorkerID int
	Reason   string
}

func (e *ErrWorkerInitFailure) Error() string {
	return fmt.Sprintf("gen5seed: worker %d failed to initialize: %s", e.WorkerID, e.Reason)
}

// ErrSearchAlreadyRunning reports a control call that conflicts with an
// in-progress search. Reserved for API completeness with the external error
// set: this Go API fixes parallelism at StartSearch time rather than
// exposing a separate pre-start reconfiguration surface, so no current
// method call path returns it.
type ErrSearchAlreadyRunning struct{}

func (e *ErrSearchAlreadyRunning) Error() string {
	return "gen5seed: search already running"
}

// ErrNotRunning reports a control call issued while no search is running.
type ErrNotRunning struct{}

func (e *ErrNotRunning) Error() string {
	return "gen5seed: no search is running"
}

// AssemblerSkip is a non-fatal per-tick assembly failure. It is recorded
// in per-worker counters and only surfaced when a debug channel is enabled.
type AssemblerSkip struct {
	Reason string
	Timer0 uint16
	VCount uint8
	When   time.Time
}

func (e *AssemblerSkip) Error() string {
	return fmt.Sprintf("gen5seed: assembler skip at %s (timer0=%#x vcount=%#x): %s", e.When, e.Timer0, e.VCount, e.Reason)
}
