package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMangleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mangle <ident>...",
		Short: "Print the symbol names identifiers mangle to",
		Long: `Print the symbol each identifier mangles to under the active calling
convention (--convention, or [session].calling_convention of orbit.toml).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			sess := e.newSession()
			for _, ident := range args {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), sess.Mangle(ident)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
