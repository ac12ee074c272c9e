package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Project holds kestrel.yml project-generation settings.
type Project struct {
	// IDE is the default IDE when --ide is not given.
	IDE string

	// ExcludedPaths are package path prefixes whose config targets are
	// skipped during Xcode root discovery unless explicitly requested.
	ExcludedPaths []string

	// Ignore are doublestar globs of directories the BUILD file walker
	// skips entirely.
	Ignore []string

	// OutDir is where generated project files are placed.
	OutDir string

	// IDEPrompt controls whether to prompt before killing a running IDE.
	IDEPrompt bool

	// ReadOnly marks generated project files read-only.
	ReadOnly bool
}

// Load reads project settings from kestrel.yml in dir. A missing config file
// is not an error; defaults apply.
func Load(dir string) (*Project, error) {
	cfg := &Project{
		IDE:       "intellij",
		Ignore:    []string{"vendor/**", "**/node_modules"},
		OutDir:    "_gen",
		IDEPrompt: true,
	}

	if _, err := os.Stat(filepath.Join(dir, "kestrel.yml")); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigName("kestrel")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("KESTREL_PROJECT")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read kestrel.yml: %w", err)
	}

	if v.IsSet("project.ide") {
		cfg.IDE = v.GetString("project.ide")
	}
	if v.IsSet("project.excluded_paths") {
		cfg.ExcludedPaths = v.GetStringSlice("project.excluded_paths")
	}
	if v.IsSet("project.ignore") {
		cfg.Ignore = v.GetStringSlice("project.ignore")
	}
	if v.IsSet("project.out_dir") {
		cfg.OutDir = v.GetString("project.out_dir")
	}
	if v.IsSet("project.ide_prompt") {
		cfg.IDEPrompt = v.GetBool("project.ide_prompt")
	}
	if v.IsSet("project.read_only") {
		cfg.ReadOnly = v.GetBool("project.read_only")
	}

	return cfg, nil
}
