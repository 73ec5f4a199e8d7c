package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"orbit/internal/diag"
	"orbit/internal/diagfmt"
)

func newModuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "module",
		Short: "Inspect module resolution",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "find <name>",
		Short: "Print the directory a module name resolves to",
		Args:  cobra.ExactArgs(1),
		RunE:  runModuleFind,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: "List the directories searched for modules, in order",
		Args:  cobra.NoArgs,
		RunE:  runModulePaths,
	})
	return cmd
}

func runModuleFind(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	name := args[0]
	dir, ok := e.newSession().FindModule(name)
	if !ok {
		d := diag.Problem(diag.ModNotFound, fmt.Sprintf("could not find module %q", name),
			"add the directory that contains it with -I/--module-path",
			"list the searched directories with `orbit module paths`")
		if err := diagfmt.PrettyOne(cmd.ErrOrStderr(), d, e.prettyOpts()); err != nil {
			return err
		}
		return errFailed
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
	return err
}

func runModulePaths(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	sess := e.newSession()
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, sess.WorkDir()); err != nil {
		return err
	}
	for _, p := range sess.ModulePaths() {
		if _, err := fmt.Fprintln(out, p); err != nil {
			return err
		}
	}
	return nil
}
