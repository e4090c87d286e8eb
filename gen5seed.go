// Package gen5seed recovers Generation V Pokemon boot-time initial seeds:
// given a target list of 32-bit seeds and a search space of ROM profile,
// hardware, calibration range, and datetime range, it brute-forces the
// (datetime, Timer0, VCount) triples that hash to one of the targets.
//
// The search runs across a caller-chosen number of parallel workers behind
// a single SearchHandle, reporting progress and matches through callbacks
// or through Poll.
package gen5seed

import (
	"github.com/nazocore/gen5seed/internal/gen5types"
	"github.com/nazocore/gen5seed/internal/romtable"
)

// ROM profile identity.
type (
	Version      = romtable.Version
	Region       = romtable.Region
	RomProfileID = romtable.ProfileID
	Profile      = romtable.Profile
)

const (
	VersionB  = romtable.B
	VersionW  = romtable.W
	VersionB2 = romtable.B2
	VersionW2 = romtable.W2
)

const (
	RegionJPN = romtable.JPN
	RegionKOR = romtable.KOR
	RegionUSA = romtable.USA
	RegionGER = romtable.GER
	RegionFRA = romtable.FRA
	RegionSPA = romtable.SPA
	RegionITA = romtable.ITA
)

// LookupProfile resolves a (version, region) pair to its ROM profile.
func LookupProfile(id RomProfileID) (Profile, error) {
	return romtable.Lookup(id)
}

// Domain types, shared with the internal packages.
type (
	Hardware           = gen5types.Hardware
	KeyInput           = gen5types.KeyInput
	MacAddress         = gen5types.MacAddress
	SearchConditions   = gen5types.SearchConditions
	WorkerChunk        = gen5types.WorkerChunk
	MatchConditions    = gen5types.MatchConditions
	InitialSeedResult  = gen5types.InitialSeedResult
	Status             = gen5types.Status
	ProgressSnapshot   = gen5types.ProgressSnapshot
	AggregatedProgress = gen5types.AggregatedProgress
)

const (
	DS      = gen5types.DS
	DSLite  = gen5types.DSLite
	ThreeDS = gen5types.ThreeDS
)

const NoKeysHeld = gen5types.NoKeysHeld

const (
	StatusInit      = gen5types.StatusInit
	StatusRunning   = gen5types.StatusRunning
	StatusPaused    = gen5types.StatusPaused
	StatusCompleted = gen5types.StatusCompleted
	StatusError     = gen5types.StatusError
	StatusStopped   = gen5types.StatusStopped
)

// Error kinds. Each is a concrete type implementing error, so callers can
// errors.As against it.
type (
	ErrUnknownRomProfile       = gen5types.ErrUnknownRomProfile
	ErrInvalidSearchConditions = gen5types.ErrInvalidSearchConditions
	ErrTargetSetTooLarge       = gen5types.ErrTargetSetTooLarge
	ErrTargetSetEmpty          = gen5types.ErrTargetSetEmpty
	ErrWorkerInitFailure       = gen5types.ErrWorkerInitFailure
	ErrSearchAlreadyRunning    = gen5types.ErrSearchAlreadyRunning
	ErrNotRunning              = gen5types.ErrNotRunning
	AssemblerSkip              = gen5types.AssemblerSkip
)
