package main

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"orbit/internal/driver"
)

const watchDebounce = 150 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [files or dirs...]",
		Short: "Rebuild whenever a source file changes",
		RunE:  runWatch,
	}
	addBuildFlags(cmd)
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	bf, err := readBuildFlags(cmd, e)
	if err != nil {
		return err
	}
	// the progress UI would fight with the rebuild output
	bf.ui = modeOff

	files, err := resolveInputs(e, args)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(files) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	rebuild := func() error {
		current, err := resolveInputs(e, args)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "orbit:", err)
			return nil
		}
		_, err = buildOnce(cmd, e, bf, current)
		return err
	}
	if err := rebuild(); err != nil {
		return err
	}

	ctx := compileContext(cmd)
	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			trigger = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", err)
		case <-trigger:
			trigger = nil
			if !e.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "-- rebuild %s --\n", time.Now().Format(time.TimeOnly))
			}
			if err := rebuild(); err != nil {
				return err
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, driver.SourceExt) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

// watchDirs returns the sorted unique parent directories of files.
func watchDirs(files []string) []string {
	dirs := make([]string, 0, len(files))
	for _, f := range files {
		dir := filepath.Dir(f)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}
