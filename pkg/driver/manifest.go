package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"imp/interpreter-go/pkg/snapshot"
)

// DefaultEntry is used when a manifest does not name its AST file.
const DefaultEntry = "program.json"

// Manifest represents the parsed contents of program.yml.
type Manifest struct {
	Path        string
	Name        string
	Description string
	Entry       string
	Environment snapshot.Snapshot
	Limits      Limits
}

// Limits bounds evaluation of the program.
type Limits struct {
	MaxIterations uint64
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Dir returns the directory holding the manifest; entry paths resolve against it.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// EntryPath returns the entry file path resolved against the manifest directory.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(m.Dir(), m.Entry)
}

// LoadManifest parses program.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	manifest, err := decodeManifest(file, absPath)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

// ParseManifest parses manifest content; path is recorded for entry resolution.
func ParseManifest(data []byte, path string) (*Manifest, error) {
	return decodeManifest(bytes.NewReader(data), path)
}

func decodeManifest(r io.Reader, path string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := raw.toManifest(path)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)

var entryExtensions = map[string]struct{}{
	".json": {},
	".yml":  {},
	".yaml": {},
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	} else if !namePattern.MatchString(m.Name) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("name %q must be lowercase letters, digits, '-' or '_'", m.Name))
	}
	if _, ok := entryExtensions[strings.ToLower(filepath.Ext(m.Entry))]; !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be a .json, .yml or .yaml file", m.Entry))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type manifestFile struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Entry       string            `yaml:"entry"`
	Environment snapshot.Snapshot `yaml:"environment"`
	Limits      limitsYAML        `yaml:"limits"`
}

type limitsYAML struct {
	MaxIterations uint64 `yaml:"max_iterations"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	entry := strings.TrimSpace(mf.Entry)
	if entry == "" {
		entry = DefaultEntry
	}
	return &Manifest{
		Path:        path,
		Name:        strings.TrimSpace(mf.Name),
		Description: strings.TrimSpace(mf.Description),
		Entry:       entry,
		Environment: mf.Environment,
		Limits:      Limits{MaxIterations: mf.Limits.MaxIterations},
	}
}
