// Package host is everything wren needs from the environment it runs in:
// which document is active, where messages go, how to ask the user
// something and how to open a generated project.
//
// Commands only talk to the Host interface; Console is the terminal
// implementation.
package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/wren/internal/input"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/output"
)

// ErrNoActiveDocument is returned when there is nothing to work on.
var ErrNoActiveDocument = errors.New("no active document found")

// Level classifies a notification.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

// Host services used by the commands.
type Host interface {
	// ActiveDocument is the file or directory the user is working on.
	ActiveDocument() (string, error)
	// Notify shows msg to the user and records it in the log.
	Notify(level Level, msg string)
	// Log records msg without showing it.
	Log(msg string, fields ...logger.Field)
	Prompt(message, defaultValue string) string
	Confirm(message string, defaultYes bool) bool
	// Open opens a generated project in the IDE.
	Open(ctx context.Context, path string) error
}

// Launcher starts a program without waiting for it.
type Launcher interface {
	Start(ctx context.Context, name string, args ...string) error
}

// Options configures a Console host. Nil fields get terminal defaults.
type Options struct {
	Console    *output.Console
	Prompter   *input.Prompter
	Logger     logger.Logger
	Launcher   Launcher
	Document   string // from the command line; the working directory when empty
	IDECommand string
}

// Console is the terminal host.
type Console struct {
	console  *output.Console
	prompter *input.Prompter
	log      logger.Logger
	launcher Launcher
	document string
	ide      string
}

var _ Host = (*Console)(nil)

// NewConsole builds a terminal host.
func NewConsole(opts Options) *Console {
	c := &Console{
		console:  opts.Console,
		prompter: opts.Prompter,
		log:      opts.Logger,
		launcher: opts.Launcher,
		document: opts.Document,
		ide:      opts.IDECommand,
	}
	if c.console == nil {
		c.console = output.New(os.Stdout, false)
	}
	if c.prompter == nil {
		c.prompter = input.New(os.Stdin, c.console.Writer())
	}
	if c.log == nil {
		c.log = logger.NewSilentLogger()
	}
	return c
}

func (c *Console) ActiveDocument() (string, error) {
	if c.document == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoActiveDocument, err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(c.document)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoActiveDocument, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoActiveDocument, c.document)
	}
	return abs, nil
}

func (c *Console) Notify(level Level, msg string) {
	switch level {
	case Success:
		c.console.Success(msg)
		c.log.Info(msg)
	case Warning:
		c.console.Warn(msg)
		c.log.Warn(msg)
	case Error:
		c.console.Error(msg)
		c.log.Error(msg)
	default:
		c.console.Info(msg)
		c.log.Info(msg)
	}
}

func (c *Console) Log(msg string, fields ...logger.Field) {
	c.log.Info(msg, fields...)
	c.console.Verbose(msg)
}

func (c *Console) Prompt(message, defaultValue string) string {
	return c.prompter.Prompt(message, defaultValue)
}

func (c *Console) Confirm(message string, defaultYes bool) bool {
	return c.prompter.Confirm(message, defaultYes)
}

func (c *Console) Open(ctx context.Context, path string) error {
	if c.ide == "" {
		return errors.New("no IDE command configured (ide.command)")
	}
	if c.launcher == nil {
		return errors.New("no launcher configured")
	}
	c.log.Info("opening project", logger.F("ide", c.ide), logger.F("path", path))
	if err := c.launcher.Start(ctx, c.ide, path); err != nil {
		return fmt.Errorf("opening %s with %s: %w", path, c.ide, err)
	}
	return nil
}
