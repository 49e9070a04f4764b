package theme

import "sync"

// IconRegistry resolves named icon tokens ("check", "warning", "spinner")
// to the glyph a host renders for them, generalizing the teacher's Icon
// component's free-form Symbol field (pkg/components/icon.go) into a
// registry so builder calls can reference an icon by stable name instead
// of embedding a literal glyph at every call site.
type IconRegistry struct {
	mu    sync.RWMutex
	icons map[string]string
}

// NewIconRegistry returns a registry pre-populated with seed, which may be
// nil for an empty registry.
func NewIconRegistry(seed map[string]string) *IconRegistry {
	r := &IconRegistry{icons: make(map[string]string, len(seed))}
	for k, v := range seed {
		r.icons[k] = v
	}
	return r
}

// Register binds name to glyph, overwriting any previous binding.
func (r *IconRegistry) Register(name, glyph string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.icons[name] = glyph
}

// Resolve returns the glyph bound to name, or false if name is unknown.
func (r *IconRegistry) Resolve(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.icons[name]
	return g, ok
}

// DefaultIcons returns a small built-in set covering the common
// status/affordance glyphs the teacher's components reach for (checkmark,
// warning, spinner frames), so a fresh IconRegistry is useful without a
// host first registering anything.
func DefaultIcons() map[string]string {
	return map[string]string{
		"check":   "✓",
		"cross":   "✗",
		"warning": "⚠",
		"info":    "ℹ",
		"spinner": "⠋",
		"arrow":   "→",
	}
}
