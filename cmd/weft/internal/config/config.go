package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/weft-ui/weft/pkg/errors"
)

// FileName is the optional project configuration file.
const FileName = "weft.yaml"

// DefaultDispatchLimit bounds binding applications per notification drain.
const DefaultDispatchLimit = 10000

// Config represents the optional weft.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Render RenderConfig `yaml:"render"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name  string `yaml:"name,omitempty"`
	Title string `yaml:"title,omitempty"`
}

// RenderConfig contains render settings.
type RenderConfig struct {
	Root          string `yaml:"root,omitempty"`
	DispatchLimit int    `yaml:"dispatch_limit,omitempty"`
	VerboseErrors bool   `yaml:"verbose_errors,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	ModulePath    string
	AppName       string
	Title         string
	RootMarker    string
	DispatchLimit int
	VerboseErrors bool
}

// LoadOptional reads weft.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads weft.yaml (if present) and resolves defaults. Failures are
// returned as *errors.WeftError with Kind errors.KindConfig.
func Resolve(dir string) (*Resolved, error) {
	r, err := resolve(dir)
	if err != nil {
		return nil, &errors.WeftError{Op: "config.Resolve", Kind: errors.KindConfig, Err: err}
	}
	return r, nil
}

func resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	title := strings.TrimSpace(cfg.App.Title)
	if title == "" {
		title = appName
	}

	root := strings.TrimSpace(cfg.Render.Root)
	if root == "" {
		root = "root"
	}

	limit := cfg.Render.DispatchLimit
	if limit < 0 {
		return nil, fmt.Errorf("render.dispatch_limit must not be negative (got %d)", limit)
	}
	if limit == 0 {
		limit = DefaultDispatchLimit
	}

	return &Resolved{
		Root:          dir,
		ModulePath:    modulePath,
		AppName:       appName,
		Title:         title,
		RootMarker:    root,
		DispatchLimit: limit,
		VerboseErrors: cfg.Render.VerboseErrors,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "" when
// dir has no go.mod.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			if len(parts) > 0 {
				base = parts[len(parts)-1]
			}
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "weft_app"
	}
	return base
}
