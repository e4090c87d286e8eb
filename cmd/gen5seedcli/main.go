/*
gen5seedcli - Gen-V Initial Seed Search CLI

Description:

	A minimal command-line front door over the gen5seed library: parses a
	search's fixed conditions and a target-seed list from flags, runs the
	search to completion, and prints matches as they're found.

Usage:

	gen5seedcli -version B -region JPN -hardware DS -mac 00:09:BF:12:34:56 \
	  -timer0 0xC70-0xC7F -vcount 0x60-0x60 \
	  -start "2011-03-06T00:00:00Z" -end "2011-03-06T01:00:00Z" \
	  -targets 0x12345678,0x9ABCDEF0 -workers 4

Output Format:

	Each match is printed as: seed=<hex> datetime=<rfc3339> timer0=<hex> vcount=<hex>

Author: gen5seed contributors
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nazocore/gen5seed"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("gen5seedcli: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gen5seedcli", flag.ContinueOnError)
	version := fs.String("version", "B", "cartridge version: B, W, B2, or W2")
	region := fs.String("region", "JPN", "region: JPN, KOR, USA, GER, FRA, SPA, or ITA")
	hardware := fs.String("hardware", "DS", "booting hardware: DS, DS_LITE, or 3DS")
	mac := fs.String("mac", "00:00:00:00:00:00", "boot MAC address, colon-separated hex octets")
	keyInput := fs.Uint("keyinput", 0, "held-button bitmap at boot (0 = no keys held)")
	timer0Range := fs.String("timer0", "0x0000-0xFFFF", "Timer0 range, hexMin-hexMax")
	vcountRange := fs.String("vcount", "0x00-0xFF", "VCount range, hexMin-hexMax")
	autoConfig := fs.Bool("auto-vcount", false, "resolve VCount from the ROM profile's override table instead of -vcount")
	frameOffset := fs.Uint("frame", 0, "frame offset (button-hold frame advance)")
	start := fs.String("start", "", "search range start, RFC3339")
	end := fs.String("end", "", "search range end, RFC3339")
	targets := fs.String("targets", "", "comma-separated hex target seeds")
	workers := fs.Int("workers", 1, "number of parallel workers")
	debug := fs.Bool("debug", false, "surface per-worker assembler-skip counters")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cond, err := parseConditions(*version, *region, *hardware, *mac, *keyInput, *timer0Range, *vcountRange, *autoConfig, uint8(*frameOffset), *start, *end)
	if err != nil {
		return fmt.Errorf("parsing conditions: %w", err)
	}

	seeds, err := parseTargets(*targets)
	if err != nil {
		return fmt.Errorf("parsing targets: %w", err)
	}

	done := make(chan struct{})
	var searchErr error

	cb := gen5seed.Callbacks{
		Debug: *debug,
		OnResult: func(r gen5seed.InitialSeedResult) {
			fmt.Printf("seed=%#08x datetime=%s timer0=%#04x vcount=%#02x\n", r.Seed, r.DateTime.Format(time.RFC3339), r.Timer0, r.VCount)
		},
		OnComplete: func() { close(done) },
		OnError: func(err error) {
			searchErr = err
			close(done)
		},
	}

	handle, err := gen5seed.StartSearch(cond, seeds, *workers, cb)
	if err != nil {
		return err
	}

	<-done
	handle.Wait()
	return searchErr
}

func parseConditions(version, region, hardware, mac string, keyInput uint, timer0Range, vcountRange string, autoConfig bool, frameOffset uint8, start, end string) (gen5seed.SearchConditions, error) {
	v, err := parseVersion(version)
	if err != nil {
		return gen5seed.SearchConditions{}, err
	}
	r, err := parseRegion(region)
	if err != nil {
		return gen5seed.SearchConditions{}, err
	}
	hw, err := parseHardware(hardware)
	if err != nil {
		return gen5seed.SearchConditions{}, err
	}
	macAddr, err := parseMAC(mac)
	if err != nil {
		return gen5seed.SearchConditions{}, err
	}
	timer0Min, timer0Max, err := parseHexRange(timer0Range)
	if err != nil {
		return gen5seed.SearchConditions{}, fmt.Errorf("timer0 range: %w", err)
	}
	vcountMin, vcountMax, err := parseHexRange(vcountRange)
	if err != nil {
		return gen5seed.SearchConditions{}, fmt.Errorf("vcount range: %w", err)
	}
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return gen5seed.SearchConditions{}, fmt.Errorf("start: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return gen5seed.SearchConditions{}, fmt.Errorf("end: %w", err)
	}

	return gen5seed.SearchConditions{
		Profile:              gen5seed.RomProfileID{Version: v, Region: r},
		Hardware:             hw,
		Timer0Min:            uint16(timer0Min),
		Timer0Max:            uint16(timer0Max),
		VCountMin:            uint8(vcountMin),
		VCountMax:            uint8(vcountMax),
		UseAutoConfiguration: autoConfig,
		DateTimeStart:        startTime,
		DateTimeEnd:          endTime,
		KeyInput:             gen5seed.KeyInput(keyInput),
		MAC:                  macAddr,
		FrameOffset:          frameOffset,
	}, nil
}

func parseVersion(s string) (gen5seed.Version, error) {
	switch strings.ToUpper(s) {
	case "B":
		return gen5seed.VersionB, nil
	case "W":
		return gen5seed.VersionW, nil
	case "B2":
		return gen5seed.VersionB2, nil
	case "W2":
		return gen5seed.VersionW2, nil
	default:
		return 0, fmt.Errorf("unknown version %q", s)
	}
}

func parseRegion(s string) (gen5seed.Region, error) {
	switch strings.ToUpper(s) {
	case "JPN":
		return gen5seed.RegionJPN, nil
	case "KOR":
		return gen5seed.RegionKOR, nil
	case "USA":
		return gen5seed.RegionUSA, nil
	case "GER":
		return gen5seed.RegionGER, nil
	case "FRA":
		return gen5seed.RegionFRA, nil
	case "SPA":
		return gen5seed.RegionSPA, nil
	case "ITA":
		return gen5seed.RegionITA, nil
	default:
		return 0, fmt.Errorf("unknown region %q", s)
	}
}

func parseHardware(s string) (gen5seed.Hardware, error) {
	switch strings.ToUpper(s) {
	case "DS":
		return gen5seed.DS, nil
	case "DS_LITE", "DSLITE":
		return gen5seed.DSLite, nil
	case "3DS":
		return gen5seed.ThreeDS, nil
	default:
		return 0, fmt.Errorf("unknown hardware %q", s)
	}
}

func parseMAC(s string) (gen5seed.MacAddress, error) {
	var mac gen5seed.MacAddress
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return mac, fmt.Errorf("MAC %q must have 6 colon-separated octets", s)
	}
	for i, p := range parts {
		b, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return mac, fmt.Errorf("MAC octet %q: %w", p, err)
		}
		mac[i] = byte(b)
	}
	return mac, nil
}

func parseHexRange(s string) (uint64, uint64, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("range %q must be min-max", s)
	}
	lo, err := strconv.ParseUint(strings.TrimPrefix(parts[0], "0x"), 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("min %q: %w", parts[0], err)
	}
	hi, err := strconv.ParseUint(strings.TrimPrefix(parts[1], "0x"), 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("max %q: %w", parts[1], err)
	}
	return lo, hi, nil
}

func parseTargets(s string) ([]uint32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("at least one -targets seed is required")
	}
	parts := strings.Split(s, ",")
	seeds := make([]uint32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseUint(strings.TrimPrefix(p, "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", p, err)
		}
		seeds = append(seeds, uint32(v))
	}
	return seeds, nil
}
