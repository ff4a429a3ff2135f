package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/simonhull/firebird-suite/wren/internal/config"
	"github.com/simonhull/firebird-suite/wren/internal/exec"
	"github.com/simonhull/firebird-suite/wren/internal/host"
	"github.com/simonhull/firebird-suite/wren/internal/input"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/spf13/cobra"
)

// session is what every command works with.
type session struct {
	cfg     *config.Config
	console *output.Console
	host    host.Host
	log     logger.Logger
	close   func()
}

// newSession loads the config and wires the terminal host for document.
// Config errors are reported on the console before being returned.
func newSession(cmd *cobra.Command, document string) (*session, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	configPath, _ := cmd.Flags().GetString("config")

	console := output.New(cmd.OutOrStdout(), verbose)

	cfg, err := config.Load(configPath)
	if err != nil {
		console.Error(err.Error())
		return nil, &ExitError{Code: 1}
	}
	if cfg.File() != "" {
		console.Verbose("Using config: " + cfg.File())
	}

	log := logger.NewSilentLogger()
	closeLog := func() {}
	if cfg.Log.File != "" {
		fileLog, closer, err := logger.OpenFile(cfg.Log.File, cfg.LogLevel())
		if err != nil {
			console.Warn("Build log disabled: " + err.Error())
		} else {
			log = fileLog.WithFields(logger.F("command", cmd.Name()))
			closeLog = func() { _ = closer.Close() }
		}
	}

	h := host.NewConsole(host.Options{
		Console:    console,
		Prompter:   input.New(cmd.InOrStdin(), cmd.OutOrStdout()),
		Logger:     log,
		Launcher:   exec.NewExecutor(&exec.Options{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}),
		Document:   document,
		IDECommand: cfg.IDE.Command,
	})

	return &session{cfg: cfg, console: console, host: h, log: log, close: closeLog}, nil
}

// signalContext is cancelled on Ctrl+C.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

// splitAtDash separates positional args from those after "--".
func splitAtDash(cmd *cobra.Command, args []string) (before, after []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}
