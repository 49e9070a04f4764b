package router

import (
	"sort"
	"sync"
)

// NavigationGuard runs before a navigation commits. Calling next(false, …)
// blocks the navigation; next(true, "") allows it, mirroring the
// teacher's NavigationGuard func(to, from *Route, next NextFunc) shape
// generalized from Route values to plain path strings (vapor's router has
// no component-tree Route type to pass).
type NavigationGuard func(to, from string, next func(allow bool, reason string))

// HistoryEntry records one committed navigation.
type HistoryEntry struct {
	Path string
}

// LayoutOptions configures how a registered layout wraps the pages under
// its prefix. The zero value (prefix matching) is always valid.
type LayoutOptions struct {
	// Exact, if true, only wraps a page whose pattern exactly equals the
	// layout's prefix rather than every pattern nested under it.
	Exact bool
}

// Router matches paths to registered pages, wraps them in the nearest
// enclosing registered layout, and maintains navigation history and
// guards, generalizing the teacher's Router (pkg/bubbly/router/router.go)
// from a Bubbletea-component registry to a vapor RenderRoot registry.
type Router struct {
	mu       sync.RWMutex
	pages    []*routeRecord
	layouts  []*routeRecord
	before   []NavigationGuard
	history  []HistoryEntry
	current  string
	pattern  string
	params   Params
}

// New returns an empty Router with no registered pages.
func New() *Router {
	return &Router{}
}

// RegisterPage binds pattern (e.g. "/users/:id") to render, which the
// router invokes (wrapped in the nearest layout, if any) whenever pattern
// matches the navigated path.
func (r *Router) RegisterPage(pattern string, render func()) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, &routeRecord{pattern: pattern, segments: compile(pattern), render: render})
	return nil
}

// RegisterLayout binds prefix to layout, which wraps every page pattern
// nested under prefix (or exactly matching it, if opts.Exact).
func (r *Router) RegisterLayout(prefix string, layout func(renderPage func()), opts LayoutOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := &routeRecord{pattern: prefix, isLayout: true, layout: layout}
	if opts.Exact {
		rec.segments = compile(prefix)
	}
	r.layouts = append(r.layouts, rec)
	// Longest prefix first, so nested layouts resolve to their most
	// specific enclosing layout rather than the first one registered.
	sort.SliceStable(r.layouts, func(i, j int) bool {
		return len(r.layouts[i].pattern) > len(r.layouts[j].pattern)
	})
	return nil
}

// BeforeEach registers a guard run before every navigation, in
// registration order; the first guard to reject aborts the navigation.
func (r *Router) BeforeEach(guard NavigationGuard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.before = append(r.before, guard)
}

// Navigate matches path against registered pages, runs guards, and on
// success updates the current route and history. It does not itself
// invoke the render root; call RenderCurrent (or let the engine's pass
// loop do so) to actually build the new page's tree.
func (r *Router) Navigate(path string) error {
	r.mu.RLock()
	page, params, ok := r.findPageLocked(path)
	from := r.current
	guards := append([]NavigationGuard(nil), r.before...)
	r.mu.RUnlock()

	if !ok {
		return ErrNoMatch{Path: path}
	}

	for _, g := range guards {
		allowed, reason := true, ""
		done := make(chan struct{})
		g(path, from, func(a bool, rsn string) {
			allowed, reason = a, rsn
			close(done)
		})
		<-done
		if !allowed {
			return ErrGuardRejected{Path: path, Reason: reason}
		}
	}

	r.mu.Lock()
	r.current = path
	r.pattern = page.pattern
	r.params = params
	r.history = append(r.history, HistoryEntry{Path: path})
	r.mu.Unlock()

	return nil
}

func (r *Router) findPageLocked(path string) (*routeRecord, Params, bool) {
	for _, p := range r.pages {
		if params, ok := match(p.segments, path); ok {
			return p, Params(params), true
		}
	}
	return nil, nil, false
}

// CurrentPattern returns the registered pattern (e.g. "/users/:id") of the
// page last successfully navigated to.
func (r *Router) CurrentPattern() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pattern
}

// CurrentParams returns the named path parameters bound by the current
// route.
func (r *Router) CurrentParams() Params {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.params
}

// History returns the navigation history in chronological order.
func (r *Router) History() []HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]HistoryEntry(nil), r.history...)
}

// RenderCurrent invokes the render root for the currently active route,
// wrapped in the nearest enclosing layout (if any). It is a no-op if no
// navigation has happened yet.
func (r *Router) RenderCurrent() {
	r.mu.RLock()
	path := r.current
	page, _, ok := r.findPageLocked(path)
	layout := r.nearestLayoutLocked(path)
	r.mu.RUnlock()

	if !ok || page == nil {
		return
	}
	if layout != nil {
		layout.layout(page.render)
		return
	}
	page.render()
}

func (r *Router) nearestLayoutLocked(path string) *routeRecord {
	for _, l := range r.layouts {
		if l.segments != nil {
			if _, ok := match(l.segments, path); ok {
				return l
			}
			continue
		}
		if l.pattern == "/" || l.pattern == "" {
			return l
		}
		if hasPrefixSegments(path, l.pattern) {
			return l
		}
	}
	return nil
}

func hasPrefixSegments(path, prefix string) bool {
	p := trimSlashes(path)
	pre := trimSlashes(prefix)
	if pre == "" {
		return true
	}
	return p == pre || (len(p) > len(pre) && p[:len(pre)+1] == pre+"/")
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
