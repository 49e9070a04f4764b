package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryResolvesActiveThemeTokens(t *testing.T) {
	r := NewRegistry([]Definition{
		{Name: "dark", Tokens: map[string]string{"primary": "#00ff00"}},
		{Name: "light", Tokens: map[string]string{"primary": "#0000ff"}},
	})

	v, ok := r.Color("primary")
	if !ok || v != "#00ff00" {
		t.Fatalf("expected first registered theme active by default, got %q (ok=%v)", v, ok)
	}

	if err := r.Activate("light"); err != nil {
		t.Fatalf("unexpected error activating known theme: %v", err)
	}
	v, ok = r.Color("primary")
	if !ok || v != "#0000ff" {
		t.Fatalf("expected light theme color after activation, got %q", v)
	}
}

func TestActivateUnknownThemeFails(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Activate("nope"); err == nil {
		t.Fatalf("expected error activating an unregistered theme")
	}
}

func TestSaveAndLoadFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")

	def := Definition{Name: "custom", Tokens: map[string]string{"danger": "#ff0000"}}
	if err := SaveFile(path, def); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	r := NewRegistry(nil)
	loaded, err := r.LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if loaded.Name != "custom" || loaded.Tokens["danger"] != "#ff0000" {
		t.Fatalf("unexpected loaded definition: %+v", loaded)
	}

	r.Activate("custom")
	v, ok := r.Color("danger")
	if !ok || v != "#ff0000" {
		t.Fatalf("expected loaded theme color resolvable, got %q", v)
	}
}

func TestLoadFileMissingPathFails(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.LoadFile(filepath.Join(os.TempDir(), "does-not-exist-vapor-theme.yaml")); err == nil {
		t.Fatalf("expected error loading a missing file")
	}
}

func TestIconRegistryResolvesDefaults(t *testing.T) {
	r := NewIconRegistry(DefaultIcons())
	g, ok := r.Resolve("check")
	if !ok || g != "✓" {
		t.Fatalf("expected default check icon, got %q", g)
	}

	r.Register("custom", "★")
	g, ok = r.Resolve("custom")
	if !ok || g != "★" {
		t.Fatalf("expected custom icon registered, got %q", g)
	}

	if _, ok := r.Resolve("nonexistent"); ok {
		t.Fatalf("expected unknown icon to resolve false")
	}
}
