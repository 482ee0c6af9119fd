package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"craft/interpreter-go/pkg/lexer"
)

// ConfigFileName is the project configuration looked up by FindConfig.
const ConfigFileName = "craft.yml"

// DefaultPrompt is the REPL prompt used when the config does not set one.
const DefaultPrompt = ">"

var (
	ErrConfigNotFound = errors.New("config not found")
	ErrUnknownTarget  = errors.New("unknown target")
)

// Config models craft.yml.
type Config struct {
	Path    string
	Verbose bool
	Prompt  string
	Strict  StrictConfig
	Preload map[string]int64
	Targets map[string]*TargetSpec
	// TargetOrder preserves the declaration order of Targets.
	TargetOrder []string
}

// StrictConfig toggles the strict lexing and identifier modes.
type StrictConfig struct {
	Lexing      bool `yaml:"lexing"`
	Identifiers bool `yaml:"identifiers"`
}

// TargetSpec names a script runnable with `craft run <name>`. A target is
// either a local Path or a Git repository plus the File inside it.
type TargetSpec struct {
	Name   string
	Path   string
	Git    string
	Branch string
	Tag    string
	Rev    string
	File   string
}

// IsGit reports whether the target is fetched from a repository.
func (t *TargetSpec) IsGit() bool {
	return t != nil && t.Git != ""
}

var targetKeys = map[string]bool{
	"path":   true,
	"git":    true,
	"branch": true,
	"tag":    true,
	"rev":    true,
	"file":   true,
}

// UnmarshalYAML accepts a bare string as shorthand for a local path.
func (t *TargetSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var path string
		if err := node.Decode(&path); err != nil {
			return err
		}
		t.Path = strings.TrimSpace(path)
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if !targetKeys[key] {
				return fmt.Errorf("line %d: field %s not found in target", node.Content[i].Line, key)
			}
		}
		var raw struct {
			Path   string `yaml:"path"`
			Git    string `yaml:"git"`
			Branch string `yaml:"branch"`
			Tag    string `yaml:"tag"`
			Rev    string `yaml:"rev"`
			File   string `yaml:"file"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		t.Path = strings.TrimSpace(raw.Path)
		t.Git = strings.TrimSpace(raw.Git)
		t.Branch = strings.TrimSpace(raw.Branch)
		t.Tag = strings.TrimSpace(raw.Tag)
		t.Rev = strings.TrimSpace(raw.Rev)
		t.File = strings.TrimSpace(raw.File)
		return nil
	default:
		return fmt.Errorf("line %d: target must be a path or a mapping", node.Line)
	}
}

type configDisk struct {
	Verbose bool             `yaml:"verbose"`
	Prompt  *string          `yaml:"prompt"`
	Strict  StrictConfig     `yaml:"strict"`
	Preload map[string]int64 `yaml:"preload"`
	Targets yaml.Node        `yaml:"targets"`
}

// ValidationError aggregates every problem found in a config file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "config: invalid"
	}
	name := e.Path
	if name == "" {
		name = ConfigFileName
	}
	return fmt.Sprintf("%s: %s", name, strings.Join(e.Issues, "; "))
}

// LoadConfig parses and validates a craft.yml file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var raw configDisk
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return defaultConfig(abs), nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	cfg := defaultConfig(abs)
	cfg.Verbose = raw.Verbose
	cfg.Strict = raw.Strict
	if raw.Prompt != nil {
		cfg.Prompt = *raw.Prompt
	}
	for name, value := range raw.Preload {
		cfg.Preload[name] = value
	}
	if err := cfg.decodeTargets(&raw.Targets); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig(path string) *Config {
	return &Config{
		Path:    path,
		Prompt:  DefaultPrompt,
		Preload: map[string]int64{},
		Targets: map[string]*TargetSpec{},
	}
}

func (c *Config) decodeTargets(node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: targets must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := strings.TrimSpace(node.Content[i].Value)
		spec := &TargetSpec{}
		if err := node.Content[i+1].Decode(spec); err != nil {
			return fmt.Errorf("target %q: %w", name, err)
		}
		spec.Name = name
		if _, exists := c.Targets[name]; !exists {
			c.TargetOrder = append(c.TargetOrder, name)
		}
		c.Targets[name] = spec
	}
	return nil
}

// Validate checks the config and reports every issue at once.
func (c *Config) Validate() error {
	var issues []string
	for _, name := range c.TargetOrder {
		spec := c.Targets[name]
		if name == "" {
			issues = append(issues, "targets: name must be provided")
			continue
		}
		issues = append(issues, validateTarget(name, spec)...)
	}
	for _, name := range c.PreloadNames() {
		if !lexer.IsIdentifier(name) {
			issues = append(issues, fmt.Sprintf("preload.%s: not a valid identifier", name))
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Path: c.Path, Issues: issues}
	}
	return nil
}

func validateTarget(name string, spec *TargetSpec) []string {
	var issues []string
	switch {
	case spec.Path == "" && spec.Git == "":
		issues = append(issues, fmt.Sprintf("targets.%s: must specify path or git", name))
	case spec.Path != "" && spec.Git != "":
		issues = append(issues, fmt.Sprintf("targets.%s: path and git are mutually exclusive", name))
	}
	if spec.Git != "" {
		if spec.File == "" {
			issues = append(issues, fmt.Sprintf("targets.%s: git targets require file", name))
		}
		refs := 0
		for _, ref := range []string{spec.Rev, spec.Tag, spec.Branch} {
			if ref != "" {
				refs++
			}
		}
		if refs > 1 {
			issues = append(issues, fmt.Sprintf("targets.%s: specify at most one of rev, tag, or branch", name))
		}
	} else if spec.File != "" || spec.Rev != "" || spec.Tag != "" || spec.Branch != "" {
		issues = append(issues, fmt.Sprintf("targets.%s: file, rev, tag and branch require git", name))
	}
	return issues
}

// PreloadNames returns the preload variable names in sorted order.
func (c *Config) PreloadNames() []string {
	names := make([]string, 0, len(c.Preload))
	for name := range c.Preload {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindTarget looks a target up by name.
func (c *Config) FindTarget(name string) (*TargetSpec, error) {
	if c != nil {
		if spec, ok := c.Targets[strings.TrimSpace(name)]; ok {
			return spec, nil
		}
	}
	return nil, fmt.Errorf("target %q: %w", name, ErrUnknownTarget)
}

// Dir returns the directory that relative target paths resolve against.
func (c *Config) Dir() string {
	if c == nil || c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// FindConfig walks from start up to the filesystem root looking for
// craft.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}
