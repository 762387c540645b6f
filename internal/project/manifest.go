package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"reflectc/internal/diag"
)

// Config mirrors reflect.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Reflect ReflectConfig `toml:"reflect"`
	Output  OutputConfig  `toml:"output"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type ReflectConfig struct {
	Sources         []string `toml:"sources"`
	Extensions      []string `toml:"extensions"`
	DefaultRegister int32    `toml:"default_register"`
	MaxDepth        int      `toml:"max_depth"`
	PointerSize     uint32   `toml:"pointer_size"`
}

type OutputConfig struct {
	Format string `toml:"format"`
}

// Manifest is a loaded reflect.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// ManifestError is a validation failure; Code is one of the PRJ diagnostics.
type ManifestError struct {
	Code diag.Code
	Path string
	Msg  string
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// Load discovers reflect.toml from startDir upwards and loads it.
// ok is false when no manifest exists.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(manifestPath)
	return m, true, err
}

// LoadFile decodes and validates the manifest at path. Missing optional keys
// are filled with defaults.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ManifestError{Code: diag.ProjInvalidManifest, Path: path, Msg: "failed to parse TOML: " + err.Error()}
	}
	if !meta.IsDefined("package") {
		return nil, &ManifestError{Code: diag.ProjMissingName, Path: path, Msg: "missing [package]"}
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, &ManifestError{Code: diag.ProjMissingName, Path: path, Msg: "missing [package].name"}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ManifestError{Code: diag.ProjInvalidManifest, Path: path, Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}
	if err := cfg.validate(); err != nil {
		return nil, &ManifestError{Code: diag.ProjInvalidManifest, Path: path, Msg: err.Error()}
	}
	cfg.applyDefaults()
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Reflect.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("[reflect].max_depth must not be negative"))
	}
	switch c.Reflect.PointerSize {
	case 0, 4, 8:
	default:
		errs = append(errs, fmt.Errorf("[reflect].pointer_size must be 4 or 8, got %d", c.Reflect.PointerSize))
	}
	if c.Reflect.DefaultRegister < 0 {
		errs = append(errs, fmt.Errorf("[reflect].default_register must not be negative"))
	}
	for _, ext := range c.Reflect.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("[reflect].extensions entry %q must start with '.'", ext))
		}
	}
	for _, src := range c.Reflect.Sources {
		if filepath.IsAbs(src) {
			errs = append(errs, fmt.Errorf("[reflect].sources entry %q must be relative to the project root", src))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) applyDefaults() {
	if len(c.Reflect.Sources) == 0 {
		c.Reflect.Sources = []string{"."}
	}
	if c.Reflect.PointerSize == 0 {
		c.Reflect.PointerSize = 8
	}
	if c.Output.Format == "" {
		c.Output.Format = "pretty"
	}
}

// SourcePaths returns the configured sources as absolute paths.
func (m *Manifest) SourcePaths() []string {
	out := make([]string, 0, len(m.Config.Reflect.Sources))
	for _, src := range m.Config.Reflect.Sources {
		p := filepath.Join(m.Root, filepath.FromSlash(src))
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// DefaultConfig is what `reflectc init` writes.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Reflect: ReflectConfig{
			Sources:     []string{"."},
			Extensions:  []string{".h", ".hpp", ".hlsli"},
			MaxDepth:    256,
			PointerSize: 8,
		},
		Output: OutputConfig{Format: "pretty"},
	}
}

// Init writes a default reflect.toml into dir. An existing manifest is an error.
func Init(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", path)
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "reflect-project"
	}

	// #nosec G304 -- path is built from the caller's directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	if _, err := f.WriteString("# reflectc project manifest\n"); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := toml.NewEncoder(f).Encode(DefaultConfig(name)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode manifest: %w", err)
	}
	return path, f.Close()
}
