// Package config loads wren.yml.
//
// Values come from, in order of precedence: WREN_* environment variables
// (WREN_PROJECT_TOOLSET overrides project.toolset), the config file, and
// the defaults in DefaultConfig. A missing wren.yml is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/wren/internal/discovery"
	"github.com/simonhull/firebird-suite/wren/internal/logger"
	"github.com/simonhull/firebird-suite/wren/internal/manifest"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "wren.yml"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "WREN"

// Config represents wren.yml
type Config struct {
	Make      MakeConfig      `yaml:"make" mapstructure:"make"`
	Project   ProjectConfig   `yaml:"project" mapstructure:"project"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	IDE       IDEConfig       `yaml:"ide" mapstructure:"ide"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`

	file string
}

// MakeConfig says how make is invoked.
type MakeConfig struct {
	Command string   `yaml:"command" mapstructure:"command"`
	Args    []string `yaml:"args" mapstructure:"args"`
}

// ProjectConfig holds the non-derived parts of a generated project.
type ProjectConfig struct {
	Name           string                `yaml:"name" mapstructure:"name"`
	Toolset        string                `yaml:"toolset" mapstructure:"toolset"`
	Platform       string                `yaml:"platform" mapstructure:"platform"`
	TargetName     string                `yaml:"target_name" mapstructure:"target_name"`
	PathStyle      string                `yaml:"path_style" mapstructure:"path_style"`
	Configurations []ConfigurationConfig `yaml:"configurations" mapstructure:"configurations"`
	IntDir         string                `yaml:"int_dir" mapstructure:"int_dir"`
	BuildCommand   string                `yaml:"build_command" mapstructure:"build_command"`
	CleanCommand   string                `yaml:"clean_command" mapstructure:"clean_command"`
	RebuildCommand string                `yaml:"rebuild_command" mapstructure:"rebuild_command"`
}

// ConfigurationConfig is one build configuration.
type ConfigurationConfig struct {
	Name   string `yaml:"name" mapstructure:"name"`
	OutDir string `yaml:"out_dir" mapstructure:"out_dir"`
	Debug  bool   `yaml:"debug" mapstructure:"debug"`
}

// DiscoveryConfig controls which files are scanned.
type DiscoveryConfig struct {
	IgnoreDirs     []string `yaml:"ignore_dirs" mapstructure:"ignore_dirs"`
	IgnorePatterns []string `yaml:"ignore_patterns" mapstructure:"ignore_patterns"`
	IncludeHidden  bool     `yaml:"include_hidden" mapstructure:"include_hidden"`
}

// IDEConfig names the program that opens generated projects.
type IDEConfig struct {
	Command string `yaml:"command" mapstructure:"command"`
}

// LogConfig configures the build log. An empty file disables it.
type LogConfig struct {
	File  string `yaml:"file" mapstructure:"file"`
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	defaults := manifest.DefaultSettings("GeneratedProject")

	configs := make([]ConfigurationConfig, 0, len(defaults.Configurations))
	for _, c := range defaults.Configurations {
		configs = append(configs, ConfigurationConfig{Name: c.Name, OutDir: c.OutDir, Debug: c.Debug})
	}

	return &Config{
		Make: MakeConfig{Command: "make", Args: []string{}},
		Project: ProjectConfig{
			Name:           defaults.Name,
			Toolset:        defaults.Toolset,
			Platform:       defaults.Platform,
			TargetName:     defaults.TargetName,
			PathStyle:      string(discovery.WindowsStyle),
			Configurations: configs,
			IntDir:         defaults.IntDir,
			BuildCommand:   defaults.BuildCommand,
			CleanCommand:   defaults.CleanCommand,
			RebuildCommand: defaults.RebuildCommand,
		},
		Discovery: DiscoveryConfig{
			IgnoreDirs:     append([]string(nil), discovery.DefaultIgnoreDirs...),
			IgnorePatterns: []string{},
		},
		IDE: IDEConfig{Command: "devenv"},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the config. With an empty path wren.yml in the working
// directory is used when present; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.file = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key, which also lets AutomaticEnv override
// keys the file does not mention.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("make.command", d.Make.Command)
	v.SetDefault("make.args", d.Make.Args)

	v.SetDefault("project.name", d.Project.Name)
	v.SetDefault("project.toolset", d.Project.Toolset)
	v.SetDefault("project.platform", d.Project.Platform)
	v.SetDefault("project.target_name", d.Project.TargetName)
	v.SetDefault("project.path_style", d.Project.PathStyle)
	v.SetDefault("project.int_dir", d.Project.IntDir)
	v.SetDefault("project.build_command", d.Project.BuildCommand)
	v.SetDefault("project.clean_command", d.Project.CleanCommand)
	v.SetDefault("project.rebuild_command", d.Project.RebuildCommand)

	configs := make([]map[string]any, 0, len(d.Project.Configurations))
	for _, c := range d.Project.Configurations {
		configs = append(configs, map[string]any{"name": c.Name, "out_dir": c.OutDir, "debug": c.Debug})
	}
	v.SetDefault("project.configurations", configs)

	v.SetDefault("discovery.ignore_dirs", d.Discovery.IgnoreDirs)
	v.SetDefault("discovery.ignore_patterns", d.Discovery.IgnorePatterns)
	v.SetDefault("discovery.include_hidden", d.Discovery.IncludeHidden)

	v.SetDefault("ide.command", d.IDE.Command)

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
}

// File is the config file that was read, empty when defaults were used.
func (c *Config) File() string {
	return c.file
}

// Validate checks values that would only fail later.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Make.Command) == "" {
		errs = append(errs, errors.New("make.command must not be empty"))
	}
	if _, err := discovery.ParsePathStyle(c.Project.PathStyle); err != nil {
		errs = append(errs, fmt.Errorf("project.path_style: %w", err))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	for _, p := range c.Discovery.IgnorePatterns {
		if _, err := filepath.Match(p, ""); err != nil {
			errs = append(errs, fmt.Errorf("discovery.ignore_patterns: bad pattern %q", p))
		}
	}
	settings := c.Settings(c.Project.Name)
	if err := settings.Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Settings converts the project section for a project called name.
func (c *Config) Settings(name string) manifest.Settings {
	configs := make([]manifest.Configuration, 0, len(c.Project.Configurations))
	for _, pc := range c.Project.Configurations {
		configs = append(configs, manifest.Configuration{Name: pc.Name, OutDir: pc.OutDir, Debug: pc.Debug})
	}

	return manifest.Settings{
		Name:           name,
		Toolset:        c.Project.Toolset,
		Platform:       c.Project.Platform,
		TargetName:     c.Project.TargetName,
		IntDir:         c.Project.IntDir,
		Configurations: configs,
		BuildCommand:   c.Project.BuildCommand,
		CleanCommand:   c.Project.CleanCommand,
		RebuildCommand: c.Project.RebuildCommand,
	}
}

// DiscoveryOptions converts the discovery section.
func (c *Config) DiscoveryOptions() discovery.Options {
	style, err := discovery.ParsePathStyle(c.Project.PathStyle)
	if err != nil {
		style = discovery.WindowsStyle
	}
	return discovery.Options{
		WalkOptions: discovery.WalkOptions{
			IgnoreDirs:     c.Discovery.IgnoreDirs,
			IgnorePatterns: c.Discovery.IgnorePatterns,
			IncludeHidden:  c.Discovery.IncludeHidden,
		},
		Style: style,
	}
}

// LogLevel is the parsed log.level.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}

const header = "# wren configuration\n# Environment variables prefixed with WREN_ override these values.\n\n"

// Save writes cfg as YAML. An existing file is only replaced when
// overwrite is set.
func Save(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
