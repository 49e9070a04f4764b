// Package theme implements token-based color and icon resolution,
// generalizing the teacher's fixed Theme struct (pkg/components/theme.go)
// from one hardcoded palette into a named, swappable token table plus a
// file-backed persistence layer (SPEC_FULL.md §4.10/§6 EXPANSION:
// "persisted theme choice").
package theme

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vapor-ui/vapor/internal/style"
)

// Definition names a theme and maps style tokens (e.g. "primary",
// "danger") to concrete color strings, mirroring the teacher's Theme
// struct fields but as an open token map instead of fixed fields, so
// collaborator packages (vapor/form, vapor/markdown) can introduce new
// tokens without a struct change here.
type Definition struct {
	Name   string            `yaml:"name"`
	Tokens map[string]string `yaml:"tokens"`
}

// Registry holds every registered Definition and tracks which one is
// active. It implements style.Theme so internal/style.ToLipgloss can
// resolve tokens through whichever theme is currently selected.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Definition
	active string
}

// NewRegistry builds a Registry from defs, activating the first entry (if
// any) by default.
func NewRegistry(defs []Definition) *Registry {
	r := &Registry{byName: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		r.byName[d.Name] = d
	}
	if len(defs) > 0 {
		r.active = defs[0].Name
	}
	return r
}

// Register adds or replaces a named Definition.
func (r *Registry) Register(d Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[d.Name] = d
}

// Activate switches the active theme by name. It returns an error if name
// was never registered.
func (r *Registry) Activate(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("theme: unknown theme %q", name)
	}
	r.active = name
	return nil
}

// Active returns the name of the currently active theme.
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Color implements style.Theme, resolving token against the active
// definition.
func (r *Registry) Color(token string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byName[r.active]
	if !ok {
		return "", false
	}
	v, ok := def.Tokens[token]
	return v, ok
}

var _ style.Theme = (*Registry)(nil)

// LoadFile reads a YAML-encoded Definition from path and registers it,
// fulfilling the host-pluggable "persisted theme choice" hook spec.md
// leaves open: a concrete default implementation backed by a plain file,
// rather than requiring every host to write its own loader.
func (r *Registry) LoadFile(path string) (Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return Definition{}, fmt.Errorf("theme: parse %s: %w", path, err)
	}
	r.Register(def)
	return def, nil
}

// SaveFile writes def as YAML to path, the companion half of the
// persisted-theme-choice hook.
func SaveFile(path string, def Definition) error {
	raw, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("theme: marshal: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}
