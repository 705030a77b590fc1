// ABOUTME: Entry point for songlist application
// ABOUTME: Handles command-line parsing, profiling, config overrides and routing to CLI or TUI modes

// Package main provides the entry point for songlist, a track list browser, sorter and filter.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"songlist/config"
	"songlist/playlist"
	"songlist/prefs"
	"songlist/songlist"
	"songlist/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	roleName := flag.String("role", "playlist", "list role: playlist, queue or library")
	columns := flag.String("columns", "", "columns to show, e.g. \"num artist title length\" (default from config)")
	sortKeys := flag.String("sort", "", "sort keys applied in turn, last key most significant (default from config)")
	search := flag.String("search", "", "keep only tracks matching this text")
	searchFields := flag.String("search-fields", "", "fields searched by -search (default from config)")
	regex := flag.Bool("regex", false, "treat -search as a regular expression")
	width := flag.Int("width", 0, "table width in cells (default: terminal width)")
	limit := flag.Int("limit", -1, "CLI only: keep at most this many tracks, 0 for all (default from config)")
	output := flag.String("output", "", "write the resulting playlist to this file (default: overwrite input; required with -search or -limit)")
	dryRun := flag.Bool("dry-run", false, "preview without writing changes")
	visual := flag.Bool("visual", false, "run in visual/interactive mode")
	watch := flag.Bool("watch", true, "in visual mode, reload the playlist when it changes on disk")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogFile)
	configPath := flag.String("config", "", "config file (default: ./songlist.toml or ~/.config/songlist/config.toml)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println("Usage: songlist [flags] <playlist.m3u8> [more.m3u8 ...]")
		fmt.Println("Example: songlist -sort \"track album artist\" -search bowie ~/Music/mix.m3u8")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	role, ok := songlist.ParseRole(*roleName)
	if !ok {
		log.Printf("Unknown role %q, want playlist, queue or library", *roleName)

		return 1
	}

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	if *configPath == "" {
		*configPath = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
	}

	cfg = applyFlagOverrides(cfg, flagOverrides{
		Columns:      *columns,
		Sort:         *sortKeys,
		SearchFields: *searchFields,
		Regex:        *regex,
		Limit:        *limit,
	})

	if *visual {
		return runVisual(args[0], role, cfg, *configPath, *output, *dryRun, *watch, *debug)
	}

	if err := RunCLI(RunOptions{
		PlaylistPaths: args,
		Role:          role,
		Columns:       cfg.Columns,
		Sort:          *sortKeys,
		IgnoreCase:    cfg.IgnoreCase,
		Search:        *search,
		SearchFields:  cfg.SearchFields,
		Regex:         cfg.RegexSearch,
		Width:         *width,
		Limit:         cfg.Limit,
		OutputPath:    *output,
		DryRun:        *dryRun,
		DebugLog:      *debug,
	}); err != nil {
		log.Printf("CLI error: %v", err)

		return 1
	}

	return 0
}

// runVisual starts the TUI on a single playlist
func runVisual(path string, role songlist.Role, cfg config.Options, configPath, output string, dryRun, watch, debug bool) int {
	if debug {
		if err := SetupDebugLog(debugLogFile); err != nil {
			log.Printf("Failed to setup debug log: %v", err)

			return 1
		}
	}

	opts := tui.Options{
		PlaylistPath: path,
		OutputPath:   output,
		Role:         role,
		DryRun:       dryRun,
		Watch:        watch,
		ConfigPath:   configPath,
		PrefsPath:    prefs.DefaultPath(),
	}

	deps := tui.Dependencies{
		Config:        config.NewSharedConfig(cfg),
		LoadPlaylist:  LoadPlaylistForMode,
		WritePlaylist: playlist.WritePlaylist,
		Debugf:        debugf,
	}

	if err := tui.Run(opts, deps); err != nil {
		log.Printf("TUI error: %v", err)

		return 1
	}

	return 0
}

// flagOverrides holds flag values that replace config options when set
type flagOverrides struct {
	Columns      string
	Sort         string
	SearchFields string
	Regex        bool
	Limit        int // negative leaves the config value
}

// applyFlagOverrides returns cfg with every set flag applied
func applyFlagOverrides(cfg config.Options, f flagOverrides) config.Options {
	if f.Columns != "" {
		cfg.Columns = f.Columns
	}

	if f.Sort != "" {
		cfg.Sort = f.Sort
	}

	if f.SearchFields != "" {
		cfg.SearchFields = f.SearchFields
	}

	if f.Regex {
		cfg.RegexSearch = true
	}

	if f.Limit >= 0 {
		cfg.Limit = f.Limit
	}

	return cfg
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
