package main

import (
	"errors"
	"os"

	"github.com/simonhull/firebird-suite/wren/internal/commands"
	"github.com/simonhull/firebird-suite/wren/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.BuildCmd())
	rootCmd.AddCommand(commands.GenerateCmd())
	rootCmd.AddCommand(commands.InitCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *commands.ExitError
		if !errors.As(err, &exitErr) {
			output.New(os.Stderr, false).Error(err.Error())
		}
		os.Exit(commands.ExitCode(err))
	}
}
