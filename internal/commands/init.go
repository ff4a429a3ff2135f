package commands

import (
	"github.com/simonhull/firebird-suite/wren/internal/config"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/spf13/cobra"
)

// InitCmd creates and returns the 'init' command
func InitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default wren.yml",
		Long: `Write a wren.yml with the default settings to the current directory.

Edit it to change the make command, the project configurations, the
directories skipped by discovery and the IDE used by 'wren generate --open'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			console := output.New(cmd.OutOrStdout(), verbose)

			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.FileName
			}

			if err := config.Save(path, config.DefaultConfig(), force); err != nil {
				console.Error(err.Error())
				if !force {
					console.Info("Use --force to overwrite it")
				}
				return &ExitError{Code: 1}
			}

			console.Success("Created " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
