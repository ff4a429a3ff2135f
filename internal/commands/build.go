package commands

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/wren/internal/discovery"
	"github.com/simonhull/firebird-suite/wren/internal/exec"
	"github.com/simonhull/firebird-suite/wren/internal/host"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/spf13/cobra"
)

// BuildCmd creates and returns the 'build' command
func BuildCmd() *cobra.Command {
	var stream bool

	cmd := &cobra.Command{
		Use:   "build [makefile|dir] [-- make-args...]",
		Short: "Run make against a Makefile and report the result",
		Long: `Run make against a Makefile and report how it went.

The target is a Makefile or a directory to search (default: the current
directory). When a directory is given the shallowest Makefile below it is
used. make runs in the Makefile's directory with -f <Makefile>; anything
after -- is passed through to make.

The exit code of wren build is the exit code of make.

Examples:
  wren build
  wren build src/Makefile
  wren build . -- -j8 all
  wren build --stream`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			positional, makeArgs := splitAtDash(cmd, args)
			if len(positional) > 1 {
				return errors.New("build accepts at most one makefile or directory")
			}
			document := ""
			if len(positional) == 1 {
				document = positional[0]
			}
			return runBuild(cmd, document, makeArgs, stream)
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "Show make output live while it runs")

	return cmd
}

func runBuild(cmd *cobra.Command, document string, makeArgs []string, stream bool) error {
	s, err := newSession(cmd, document)
	if err != nil {
		return err
	}
	defer s.close()

	active, err := s.host.ActiveDocument()
	if err != nil {
		s.host.Notify(host.Error, "No active document found.")
		return &ExitError{Code: 1}
	}

	makefile, err := resolveMakefile(active, s.cfg.DiscoveryOptions().WalkOptions)
	if err != nil {
		s.host.Notify(host.Error, "No Makefile found.")
		s.host.Log("makefile lookup failed", logger.F("path", active), logger.F("error", err))
		return &ExitError{Code: 1}
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	executor := exec.NewExecutor(&exec.Options{
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Spinner: !stream,
	})
	runner := exec.NewMakeRunner(executor, s.cfg.Make.Command, s.cfg.Make.Args...)

	s.console.Step("Building " + makefile)

	var report *exec.BuildReport
	if stream {
		report, err = runner.Stream(ctx, makefile, cmd.OutOrStdout(), makeArgs...)
	} else {
		report, err = runner.Build(ctx, makefile, makeArgs...)
	}
	if err != nil {
		s.host.Notify(host.Error, "Error executing make command: "+err.Error())
		return &ExitError{Code: 1}
	}

	s.host.Log("make finished",
		logger.F("command", report.CommandLine()),
		logger.F("exit_code", report.ExitCode),
	)

	for i, msg := range report.Messages(!stream) {
		s.host.Notify(buildLevel(report, i), msg)
	}

	if !report.Success() {
		return &ExitError{Code: report.ExitCode}
	}
	return nil
}

// buildLevel picks how the i-th report message is shown. The first message
// is the exit code line.
func buildLevel(report *exec.BuildReport, i int) host.Level {
	switch {
	case !report.Success():
		return host.Error
	case i == 0:
		return host.Info
	case i == 1:
		return host.Success
	default:
		return host.Info
	}
}

// resolveMakefile accepts a Makefile path or searches a directory for one.
func resolveMakefile(path string, opts discovery.WalkOptions) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return filepath.Abs(path)
	}
	return discovery.FindMakefile(path, opts)
}
