package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"orbit/internal/diagfmt"
	"orbit/internal/project"
	"orbit/internal/session"
)

// env is the effective configuration: orbit.toml overlaid with flags.
type env struct {
	manifest    *project.Manifest
	convention  session.Convention
	modulePaths []string
	jobs        int
	color       bool
	quiet       bool
	timings     bool
	metrics     bool
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	flags := cmd.Root().PersistentFlags()
	dir, err := flags.GetString("dir")
	if err != nil {
		return nil, err
	}
	m, found, err := project.LoadFrom(dir)
	if err != nil {
		return nil, err
	}

	e := &env{convention: session.PlainConvention{}}
	if found {
		e.manifest = m
		e.convention = m.Convention()
		e.modulePaths = m.ModulePaths()
		e.jobs = m.Config.Build.Jobs
	}

	extra, err := flags.GetStringArray("module-path")
	if err != nil {
		return nil, err
	}
	for _, p := range extra {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("module path %q: %w", p, err)
		}
		e.modulePaths = append(e.modulePaths, abs)
	}

	if name, _ := flags.GetString("convention"); name != "" {
		c, ok := session.LookupConvention(name)
		if !ok {
			return nil, fmt.Errorf("unknown calling convention %q (known: %s)", name, strings.Join(session.ConventionNames(), ", "))
		}
		e.convention = c
	}
	if flags.Changed("jobs") {
		if e.jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
	}

	colorFlag, _ := flags.GetString("color")
	if e.color, err = resolveColor(colorFlag); err != nil {
		return nil, err
	}
	e.quiet, _ = flags.GetBool("quiet")
	e.timings, _ = flags.GetBool("timings")
	e.metrics, _ = flags.GetBool("metrics")
	return e, nil
}

func resolveColor(value string) (bool, error) {
	mode, err := parseAutoMode("color", value)
	if err != nil {
		return false, err
	}
	return mode.enabled(func() bool {
		return os.Getenv("NO_COLOR") == "" && isTerminal(os.Stderr)
	}), nil
}

// newSession creates a session for one compilation run.
func (e *env) newSession() *session.Session {
	sess := session.New(e.convention, e.modulePaths...)
	if e.manifest != nil {
		sess.SetWorkDir(e.manifest.Root)
	}
	return sess
}

func (e *env) baseDir() string {
	if e.manifest != nil {
		return e.manifest.Root
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (e *env) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{Color: e.color, BaseDir: e.baseDir()}
}
