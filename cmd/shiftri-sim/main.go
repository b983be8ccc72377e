package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/shiftri/sim"
)

func main() {
	configPath := flag.String("config", "", "Optional .env file with SHIFTRI_* settings.")
	seed := flag.Uint64("seed", 0, "Seed for the bag and the random policy (0 keeps the configured seed).")
	pieces := flag.Int("pieces", -1, "Stop after this many locked pieces (0 runs until top-out).")
	matches := flag.Int("matches", 1, "Number of matches to play with consecutive seeds.")
	policy := flag.String("policy", "", "Placement policy: random, first or lowest.")
	extremeGravity := flag.Bool("extreme-gravity", false, "Pieces fall to rest after every action.")
	gravityEvery := flag.Int("gravity-every", -1, "Ticks between one-row gravity falls (0 disables).")
	lockDelay := flag.Int("lock-delay", -1, "Ticks without a new lowest row before gravity forces a lock (0 disables).")
	realtime := flag.Bool("realtime", false, "Pace ticks with the configured tick interval.")
	showBoard := flag.Bool("board", true, "Print the final board of every match.")
	flag.Parse()

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	cfg, err := sim.LoadConfig(paths...)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *pieces >= 0 {
		cfg.PieceLimit = *pieces
	}
	if *policy != "" {
		cfg.Policy = *policy
	}
	if *extremeGravity {
		cfg.ExtremeGravity = true
	}
	if *gravityEvery >= 0 {
		cfg.GravityEvery = *gravityEvery
	}
	if *lockDelay >= 0 {
		cfg.LockDelay = *lockDelay
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	report := &Report{
		Config:    cfg,
		ShowBoard: *showBoard,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	for i := 0; i < *matches; i++ {
		matchCfg := cfg
		matchCfg.Seed = cfg.Seed + uint64(i)

		log.Printf("Playing match %d (seed %d, policy %s)...\n", i+1, matchCfg.Seed, matchCfg.Policy)
		result, err := play(matchCfg, *realtime)
		if err != nil {
			log.Fatalf("Match %d failed: %v", i+1, err)
		}
		log.Printf("Match %d finished: %d pieces in %d ticks\n", i+1, result.Stats.Pieces, result.Scheduler.Ticks)
		report.Matches = append(report.Matches, result)
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Shiftri Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func play(cfg sim.Config, realtime bool) (MatchResult, error) {
	match, err := sim.NewMatch(cfg)
	if err != nil {
		return MatchResult{}, err
	}
	scheduler := sim.NewDefaultScheduler(match)

	start := time.Now()
	if realtime {
		scheduler.Run(context.Background(), cfg.TickInterval)
	} else {
		scheduler.RunFor(0)
	}

	result := MatchResult{
		Seed:      cfg.Seed,
		Stats:     match.Stats,
		Scheduler: scheduler.GetStats(),
		Elapsed:   time.Since(start),
		Board:     match.Matrix.String(),
	}
	if match.Cache != nil {
		result.Cache = match.Cache.Stats()
	}
	return result, nil
}
