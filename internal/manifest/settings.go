package manifest

import (
	"errors"
	"fmt"
)

// Default command templates. They are text/template strings rendered with
// CommandData.
const (
	DefaultBuildCommand   = `make -f "$(ProjectDir){{.Makefile}}"`
	DefaultCleanCommand   = `make -f "$(ProjectDir){{.Makefile}}" clean`
	DefaultRebuildCommand = DefaultCleanCommand + ` && ` + DefaultBuildCommand
)

// Configuration is one entry of the configuration matrix.
type Configuration struct {
	Name   string
	OutDir string
	Debug  bool
}

// Settings hold everything in the project that is not derived from files.
type Settings struct {
	Name           string
	GUID           string // defaults to ProjectIdentifier(Name)
	RootNamespace  string // defaults to Name
	Toolset        string
	Platform       string
	TargetName     string
	IntDir         string
	Configurations []Configuration
	BuildCommand   string
	CleanCommand   string
	RebuildCommand string
}

// CommandData is passed to the command templates.
type CommandData struct {
	ProjectName   string
	Makefile      string
	Configuration string
	Platform      string
}

// DefaultSettings returns the Debug/Release x64 makefile project.
func DefaultSettings(name string) Settings {
	return Settings{
		Name:       name,
		Toolset:    "v143",
		Platform:   "x64",
		TargetName: "hello",
		IntDir:     `$(ProjectDir)obj\`,
		Configurations: []Configuration{
			{Name: "Debug", OutDir: `$(ProjectDir)Debug\`, Debug: true},
			{Name: "Release", OutDir: `$(ProjectDir)bin\`, Debug: false},
		},
		BuildCommand:   DefaultBuildCommand,
		CleanCommand:   DefaultCleanCommand,
		RebuildCommand: DefaultRebuildCommand,
	}
}

// Validate checks the settings and fills derived defaults.
func (s *Settings) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("project name is required"))
	} else if !validXML(s.Name) {
		errs = append(errs, fmt.Errorf("project name %q contains characters XML cannot hold", s.Name))
	}
	if s.Platform == "" {
		errs = append(errs, errors.New("platform is required"))
	}
	if len(s.Configurations) == 0 {
		errs = append(errs, errors.New("at least one configuration is required"))
	}
	seen := make(map[string]bool)
	for i, c := range s.Configurations {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("configuration %d has no name", i))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("configuration %q is listed twice", c.Name))
		}
		seen[c.Name] = true
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid project settings: %w", err)
	}

	if s.GUID == "" {
		s.GUID = ProjectIdentifier(s.Name)
	}
	if s.RootNamespace == "" {
		s.RootNamespace = s.Name
	}
	if s.BuildCommand == "" {
		s.BuildCommand = DefaultBuildCommand
	}
	if s.CleanCommand == "" {
		s.CleanCommand = DefaultCleanCommand
	}
	if s.RebuildCommand == "" {
		s.RebuildCommand = DefaultRebuildCommand
	}
	return nil
}
