// Package main implements the orbit CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"orbit/internal/version"
)

// errFailed signals a run whose diagnostics were already printed.
var errFailed = errors.New("failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "orbit",
		Short:         "Orbit compiler front-end driver",
		Long:          `Orbit runs source files through a chain of front-end phases and reports diagnostics`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.StringP("dir", "C", ".", "directory to look for orbit.toml from")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Bool("metrics", false, "print Prometheus metrics after the run")
	pf.Int("jobs", 0, "max parallel files (0=auto)")
	pf.StringArrayP("module-path", "I", nil, "add a module search path (repeatable)")
	pf.String("convention", "", "calling convention used for mangling (c|orbit)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring|both")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(
		newBuildCmd(),
		newWatchCmd(),
		newModuleCmd(),
		newMangleCmd(),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "orbit:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func stdoutIsTerminal() bool { return isTerminal(os.Stdout) }
