package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/wren/internal/discovery"
	"github.com/simonhull/firebird-suite/wren/internal/generator"
	"github.com/simonhull/firebird-suite/wren/internal/host"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/manifest"
	"github.com/simonhull/firebird-suite/wren/internal/output"
	"github.com/spf13/cobra"
)

const namePrompt = "Enter a name for the project file generated from Makefile:"

type generateFlags struct {
	name   string
	force  bool
	skip   bool
	diff   bool
	dryRun bool
	tree   bool
	open   bool
}

// GenerateCmd creates and returns the 'generate' command
func GenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate a Visual Studio project from a Makefile tree",
		Long: `Generate a .vcxproj and .vcxproj.filters for a Makefile-based tree.

The shallowest Makefile below dir (default: the current directory) marks
the project root. Every .c and .cpp file becomes a compile item, every .h
file a header item and every Makefile a build script. Each directory
becomes a filter so the IDE shows the tree as it is on disk.

Both files are written next to the Makefile, together or not at all.

Examples:
  wren generate
  wren generate ./engine --name Engine
  wren generate --tree --dry-run
  wren generate --force --open`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document := ""
			if len(args) == 1 {
				document = args[0]
			}
			return runGenerate(cmd, document, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "Project name (skips the prompt)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing files without prompting")
	cmd.Flags().BoolVar(&flags.skip, "skip", false, "Keep existing files")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "Show a diff before asking about existing files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be written without writing")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "Print the filter tree")
	cmd.Flags().BoolVar(&flags.open, "open", false, "Open the project in the IDE without asking")

	return cmd
}

func runGenerate(cmd *cobra.Command, document string, flags generateFlags) error {
	resolver, err := generator.NewResolver(flags.force, flags.skip, flags.diff, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

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

	opts := s.cfg.DiscoveryOptions()
	makefile, err := discovery.FindMakefile(projectDir(active), opts.WalkOptions)
	if err != nil {
		s.host.Notify(host.Error, "No Makefile found.")
		s.host.Log("makefile lookup failed", logger.F("path", active), logger.F("error", err))
		return &ExitError{Code: 1}
	}
	root := filepath.Dir(makefile)
	s.host.Log("project root", logger.F("makefile", makefile))

	name := flags.name
	if !cmd.Flags().Changed("name") {
		name = s.host.Prompt(namePrompt, s.cfg.Project.Name)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		s.host.Notify(host.Warning, "Project generation cancelled.")
		return nil
	}
	if err := checkProjectName(name); err != nil {
		s.host.Notify(host.Error, err.Error())
		return &ExitError{Code: 1}
	}

	raw, err := discovery.Discover(root, opts)
	if err != nil {
		s.host.Notify(host.Error, "Error scanning project files: "+err.Error())
		return &ExitError{Code: 1}
	}

	result, err := manifest.Generate(raw, s.cfg.Settings(name))
	if err != nil {
		s.host.Notify(host.Error, generateFailure(err))
		return &ExitError{Code: 1}
	}
	s.host.Log("project generated",
		logger.F("files", result.Files()),
		logger.F("groups", len(result.Groups)),
	)

	if flags.tree {
		s.console.Plain(output.GroupTree(name, result.Entries, result.Groups))
	}

	projectPath := filepath.Join(root, name+".vcxproj")
	filtersPath := projectPath + ".filters"

	plan, err := resolver.Prepare([]*generator.WriteFileOp{
		{Path: projectPath, Content: result.Manifest, Mode: 0644},
		{Path: filtersPath, Content: result.Filters, Mode: 0644},
	})
	if errors.Is(err, generator.ErrCancelled) {
		s.host.Notify(host.Warning, "Project generation cancelled.")
		return nil
	}
	if err != nil {
		s.host.Notify(host.Error, err.Error())
		return &ExitError{Code: 1}
	}
	for _, path := range plan.Unchanged {
		s.console.Verbose("Unchanged: " + path)
	}
	for _, path := range plan.Skipped {
		s.host.Notify(host.Warning, "Kept existing file: "+path)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	ops := make([]generator.Operation, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		ops = append(ops, op)
	}
	execOpts := generator.ExecuteOptions{DryRun: flags.dryRun, Writer: cmd.OutOrStdout()}
	if err := generator.Execute(ctx, ops, execOpts); err != nil {
		s.host.Notify(host.Error, "Error writing project files: "+err.Error())
		return &ExitError{Code: 1}
	}
	if flags.dryRun {
		return nil
	}

	s.host.Notify(host.Success, "Generated project file: "+projectPath)
	s.host.Notify(host.Success, "Generated filters file: "+filtersPath)

	if flags.open || s.host.Confirm("Open the generated project in the IDE?", false) {
		if err := s.host.Open(ctx, projectPath); err != nil {
			s.host.Notify(host.Error, err.Error())
			return &ExitError{Code: 1}
		}
	}
	return nil
}

// projectDir is where the Makefile search starts for a document.
func projectDir(document string) string {
	if info, err := os.Stat(document); err == nil && !info.IsDir() {
		return filepath.Dir(document)
	}
	return document
}

func checkProjectName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\:*?"<>|`) {
		return fmt.Errorf("invalid project name %q", name)
	}
	return nil
}

func generateFailure(err error) string {
	var dup *manifest.DuplicateEntryError
	if errors.As(err, &dup) {
		return fmt.Sprintf("Duplicate file in project: %s", dup.Path)
	}
	var grouping *manifest.InconsistentGroupingError
	if errors.As(err, &grouping) {
		return "Inconsistent filters: " + grouping.Error()
	}
	return "Error generating project: " + err.Error()
}
