package driver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/checker"
	"imp/interpreter-go/pkg/interpreter"
	"imp/interpreter-go/pkg/runtime"
)

// Program is a manifest together with its decoded command and initial environment.
type Program struct {
	Manifest    *Manifest
	Command     ast.Commd
	Environment *runtime.Environment
}

// LoadProgram reads the manifest at path and decodes its entry file.
func LoadProgram(path string) (*Program, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return LoadProgramFromManifest(manifest)
}

// LoadProgramFromManifest decodes the entry file named by manifest.
func LoadProgramFromManifest(manifest *Manifest) (*Program, error) {
	if manifest == nil {
		return nil, fmt.Errorf("program: nil manifest")
	}
	entryPath := manifest.EntryPath()
	cmd, err := LoadCommand(entryPath)
	if err != nil {
		return nil, err
	}
	env, err := manifest.Environment.Environment()
	if err != nil {
		return nil, fmt.Errorf("program %s: environment: %w", manifest.Name, err)
	}
	slog.Info("loaded program", "name", manifest.Name, "entry", entryPath, "bindings", env.Len())
	return &Program{Manifest: manifest, Command: cmd, Environment: env}, nil
}

// LoadCommand decodes a command tree from a .json, .yml or .yaml file.
func LoadCommand(path string) (ast.Commd, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	var node ast.Node
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		node, err = ast.DecodeJSON(data)
	case ".yml", ".yaml":
		node, err = ast.DecodeYAML(data)
	default:
		return nil, fmt.Errorf("program: unsupported entry format %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("program: decode %s: %w", path, err)
	}
	cmd, ok := node.(ast.Commd)
	if !ok {
		return nil, fmt.Errorf("program: %s holds a %s, not a command", path, node.NodeType())
	}
	return cmd, nil
}

// Run executes the program on a copy of its initial environment, applying
// the manifest limits. Extra options are applied after the limits.
func (p *Program) Run(ctx context.Context, opts ...interpreter.Option) (*runtime.Environment, error) {
	all := make([]interpreter.Option, 0, len(opts)+1)
	if p.Manifest != nil && p.Manifest.Limits.MaxIterations > 0 {
		all = append(all, interpreter.WithMaxIterations(p.Manifest.Limits.MaxIterations))
	}
	all = append(all, opts...)
	env := runtime.NewEnvironment()
	if p.Environment != nil {
		env = p.Environment.Clone()
	}
	return interpreter.New(all...).ExecuteContext(ctx, p.Command, env)
}

// Check reports reads of variables that neither the initial environment nor
// an earlier assignment is guaranteed to bind.
func (p *Program) Check() ([]checker.Diagnostic, error) {
	var initial []string
	if p.Environment != nil {
		initial = p.Environment.Keys()
	}
	diags, _, err := checker.New().CheckCommand(p.Command, initial)
	return diags, err
}
