package commands

import (
	"errors"
	"fmt"

	"github.com/simonhull/firebird-suite/wren"
	"github.com/spf13/cobra"
)

// ExitError carries a process exit status without a message of its own;
// whatever went wrong has already been reported.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// RootCmd creates and returns the root command for the wren CLI
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wren",
		Short: "Makefile builds and Visual Studio projects for C and C++ trees",
		Long: `Wren bridges Makefile-based C and C++ projects and Visual Studio.

• Run make against a Makefile and get a clear exit report
• Generate a .vcxproj and .vcxproj.filters from the source tree,
  with one filter per directory
• Open the generated project in the IDE

Configuration lives in wren.yml (see 'wren init').`,
		Version:       wren.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: ./wren.yml)")

	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Wren v%s\n", wren.Version)
		},
	}
}
