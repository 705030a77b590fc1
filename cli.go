// ABOUTME: CLI mode implementation for non-interactive list processing
// ABOUTME: Loads, sorts and filters playlists, prints the column table and writes the result

package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"songlist/playlist"
	"songlist/songlist"
)

const defaultTableWidth = 100

// RunCLI executes CLI mode
func RunCLI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog(debugLogFile); err != nil {
			return err
		}
	}

	outputPath, err := resolveOutputPath(opts)
	if err != nil {
		return err
	}

	list, err := LoadSonglist(PlaylistOptions{
		Paths:   opts.PlaylistPaths,
		Role:    opts.Role,
		Limit:   opts.Limit,
		Verbose: true,
	})
	if err != nil {
		return err
	}

	if opts.Sort != "" {
		list.Sort(opts.Sort, opts.IgnoreCase)
		debugf("[CLI] Sorted %d tracks by %q", list.Len(), opts.Sort)
	}

	if opts.Search != "" {
		list = filterList(list, opts)
		debugf("[CLI] %d tracks match %q", list.Len(), opts.Search)
	}

	list.SetColumnSize(opts.Columns, tableWidth(opts.Width))

	fmt.Println()

	for _, line := range renderTable(list) {
		fmt.Println(line)
	}

	fmt.Printf("\n%s\n", formatSummary(list.Len(), list.Duration()))

	if opts.DryRun {
		fmt.Println("\n--dry-run mode: playlist not modified")

		return nil
	}

	fmt.Printf("\nWriting playlist to: %s\n", outputPath)

	if err := playlist.WritePlaylist(outputPath, list.Tracks()); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}

	fmt.Println("Done!")

	return nil
}

// resolveOutputPath picks where the result is written. Overwriting the input
// is only allowed when the result holds exactly the input's tracks.
func resolveOutputPath(opts RunOptions) (string, error) {
	switch {
	case opts.OutputPath != "":
		return opts.OutputPath, nil
	case opts.DryRun:
		return opts.PlaylistPaths[0], nil
	case len(opts.PlaylistPaths) > 1:
		return "", errors.New("-output is required when combining several playlists")
	case opts.Search != "":
		return "", errors.New("-output is required with -search, which drops non-matching tracks")
	case opts.Limit > 0:
		return "", errors.New("-output is required with -limit, which drops tracks past the limit")
	}

	return opts.PlaylistPaths[0], nil
}

// filterList keeps only the tracks matching the search options, in list order
func filterList(list *songlist.Songlist, opts RunOptions) *songlist.Songlist {
	fields := playlist.ParseFieldList(opts.SearchFields)
	if len(fields) == 0 {
		fields = nil // every field
	}

	q := songlist.NewQuery(opts.Search, songlist.SearchMode(opts.Regex), fields...)

	matched := songlist.New(list.Role(), list.Filename())
	for _, pos := range list.SearchAll(q) {
		matched.Append(list.Get(pos).Clone())
	}

	return matched
}

// tableWidth picks the -width flag, then the terminal width, then a fixed default
func tableWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}

	return defaultTableWidth
}
