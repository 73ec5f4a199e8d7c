package main

import (
	"context"
	"os"

	"orbit/internal/buildpipeline"
	"orbit/internal/driver"
	"orbit/internal/ui"
)

var pipelinePhases = []string{driver.PhaseRead, driver.PhaseScan, driver.PhaseImport, driver.PhaseExport}

func runCompileWithUI(ctx context.Context, title string, files []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan buildpipeline.Event, 256)
	outcome := make(chan []driver.Result, 1)

	go func() {
		opts.Progress = buildpipeline.ChannelSink{Ch: events}
		res := driver.CompileAll(ctx, files, opts)
		close(events)
		outcome <- res
	}()

	uiErr := ui.Run(os.Stdout, title, files, pipelinePhases, events)
	if uiErr != nil {
		// keep the producer from blocking on a full channel
		go func() {
			for range events {
			}
		}()
	}
	results := <-outcome
	return results, uiErr
}
