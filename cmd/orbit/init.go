package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"orbit/internal/project"
)

const sampleSource = `#pragma export main
This file is scanned for pragma lines; everything else is ignored.
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new orbit project",
		Long: `Initialize a new orbit project by creating orbit.toml, a src/ directory
with a sample source file and an empty mods/ module directory. If [path|name]
is omitted, initializes the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "orbit-project"
	}

	manifestPath := filepath.Join(target, project.TomlName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	var buf bytes.Buffer
	if err := project.WriteTOML(&buf, project.Default(name)); err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	for _, dir := range []string{"src", "mods"} {
		if err := os.MkdirAll(filepath.Join(target, dir), 0o755); err != nil {
			return err
		}
	}
	mainPath := filepath.Join(target, "src", "main.orb")
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(sampleSource), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s\n", manifestPath)
	fmt.Fprintf(out, "created %s\n", mainPath)
	return nil
}
