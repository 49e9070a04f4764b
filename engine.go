// Package vapor is the top-level fluent builder and engine surface: it
// treats the host display surface as a thin graphics driver, compiling a
// tree of Builder calls into reconciled commands applied through an
// Applier, generalizing the teacher's NewComponent(...).Setup(...).
// Template(...).Build() chain from "assemble one component" to "assemble
// one frame's whole tree".
package vapor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vapor-ui/vapor/internal/arena"
	"github.com/vapor-ui/vapor/internal/lifecycle"
	"github.com/vapor-ui/vapor/internal/reactivity"
	"github.com/vapor-ui/vapor/internal/reconcile"
	"github.com/vapor-ui/vapor/internal/style"
	"github.com/vapor-ui/vapor/internal/verrors"
	"github.com/vapor-ui/vapor/internal/vlog"
	"github.com/vapor-ui/vapor/internal/vtree"
	"github.com/vapor-ui/vapor/vapor/monitoring"
	"github.com/vapor-ui/vapor/vapor/observability"
	"github.com/vapor-ui/vapor/vapor/router"
	"github.com/vapor-ui/vapor/vapor/theme"
)

// Config configures a new Engine at Init time.
type Config struct {
	// Mode selects the reactivity driver's scheduling strategy.
	Mode reactivity.Mode
	// Themes registers named theme definitions available to style
	// resolution; the first entry is active by default. Ignored if
	// ThemeRegistry is set.
	Themes []theme.Definition
	// ThemeRegistry, if set, is used directly instead of building one from
	// Themes. Pass the same *theme.Registry constructed for a host Applier
	// (e.g. internal/hostterm.New) here so both sides resolve tokens
	// identically.
	ThemeRegistry *theme.Registry
	// Interner, if set, is used directly instead of Init constructing a
	// fresh style.Interner. Pass the same *style.Interner constructed for
	// a host Applier here so both sides resolve style handles identically.
	Interner *style.Interner
	// IconRegistry resolves icon tokens referenced by builder calls.
	IconRegistry *theme.IconRegistry
	// Applier receives reconciled command sets. It is required: Init
	// returns ErrNoApplier when it is nil, since an engine with nowhere to
	// paint cannot usefully run a pass.
	Applier Applier
	// Logger receives structured phase-boundary records. A nil Logger
	// falls back to vlog's discard logger.
	Logger vlog.Logger
	// Metrics, if non-nil, receives pass-duration and command-count
	// observations after every pass whose command set the Applier accepted.
	// Passes with no commands, passes that panicked, and rejected command
	// sets are not recorded.
	Metrics *monitoring.Metrics
}

// Engine owns the arenas, style interner, lifecycle stack, retained tree,
// router, and reactivity driver for one running Vapor program. Only one
// Engine is active at a time (Init replaces any previous active engine),
// matching spec.md §5's single-threaded cooperative model: the package-
// level builder functions (Container, Text, Button, ...) always operate
// against the currently active Engine.
type Engine struct {
	mu sync.Mutex

	arenas   *arena.Set
	interner *style.Interner
	stack    *lifecycle.Stack
	retained *vtree.Tree
	building *vtree.Tree

	applier Applier
	driver  *reactivity.Driver
	router  *router.Router
	themes  *theme.Registry
	icons   *theme.IconRegistry
	logger  vlog.Logger
	metrics *monitoring.Metrics

	nextSalt     uint64
	pageDestr    map[string]func()
	openChildren map[vtree.ID]*arena.Slice[vtree.ID]
	handlers     map[vtree.ID]map[EventKind]func(Event)
	listeners    map[GlobalEventKind][]func(Event)

	// forceReplace is set when a pass's Apply call fails, per spec.md §7
	// item 5 ("host apply failure... retained tree is marked inconsistent;
	// next pass is a full replace"): the host may have partially applied a
	// rejected command set, so retained no longer provably matches what is
	// on screen. The next pass diffs against an empty tree instead of
	// retained, forcing every node to be re-added, and the flag clears once
	// that full replace is itself applied successfully.
	forceReplace bool
}

var (
	activeMu sync.Mutex
	active   *Engine
)

// ErrNoApplier is returned by Init when cfg.Applier is nil.
var ErrNoApplier = errors.New("vapor: Config.Applier must not be nil")

// Init constructs a new Engine, makes it the active engine, and returns
// it. A previously active engine (if any) is replaced; its arenas are not
// explicitly torn down, matching spec.md's "host owns process lifetime"
// stance (Persist-arena data is simply garbage once unreferenced).
func Init(cfg Config) (*Engine, error) {
	if cfg.Applier == nil {
		return nil, ErrNoApplier
	}

	logger := cfg.Logger
	if logger == nil {
		logger = vlog.Discard()
	}

	themes := cfg.ThemeRegistry
	if themes == nil {
		themes = theme.NewRegistry(cfg.Themes)
	}
	interner := cfg.Interner
	if interner == nil {
		interner = style.New()
	}

	e := &Engine{
		arenas:    arena.NewSet(),
		interner:  interner,
		stack:     lifecycle.New(),
		retained:  vtree.New(256),
		building:  vtree.New(256),
		applier:   cfg.Applier,
		router:    router.New(),
		themes:       themes,
		icons:        cfg.IconRegistry,
		logger:       logger,
		metrics:      cfg.Metrics,
		pageDestr:    make(map[string]func()),
		openChildren: make(map[vtree.ID]*arena.Slice[vtree.ID]),
		handlers:     make(map[vtree.ID]map[EventKind]func(Event)),
		listeners:    make(map[GlobalEventKind][]func(Event)),
	}
	e.driver = reactivity.New(cfg.Mode, e.runPass)

	activeMu.Lock()
	active = e
	activeMu.Unlock()

	logger.Info("engine initialized", vlog.Field("mode", fmt.Sprint(cfg.Mode)))
	return e, nil
}

func currentEngine() *Engine {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == nil {
		panic("vapor: no active engine; call vapor.Init before using builder functions")
	}
	return active
}

// Arena exposes one of the four named arenas for host or collaborator code
// (vapor/form, vapor/markdown) that needs arena-scoped scratch storage.
func (e *Engine) Arena(kind arena.Kind) *arena.Arena {
	return e.arenas.Get(kind)
}

// Interner exposes the style interner a host Applier needs to resolve a
// node's style.Handle into its effective style.Value.
func (e *Engine) Interner() *style.Interner { return e.interner }

// Themes exposes the active theme registry, which implements style.Theme,
// so a host Applier can resolve token colors the same way the engine's
// own components do.
func (e *Engine) Themes() *theme.Registry { return e.themes }

// BindProgram attaches the bubbletea program driving the host so ModeImmediate
// and ModeRetained can schedule a redraw after a dispatched event, forwarding
// to the underlying reactivity.Driver.
func (e *Engine) BindProgram(p *tea.Program) {
	e.driver.BindProgram(p)
}

// Driver exposes the reactivity driver so collaborator code (vapor/form,
// host programs) can create Signal/Computed values scheduled against this
// engine's passes.
func (e *Engine) Driver() *reactivity.Driver {
	return e.driver
}

// Array returns a fresh arena-scoped Slice[T] bound to a.
func Array[T any](a *arena.Arena) *arena.Slice[T] {
	return arena.NewSlice[T](a)
}

// appendOpenChildLocked records id as a child committed under parent during
// the pass in progress. The backing Slice is Frame-arena scoped: every
// entry is appended within one pass and drained by takeChildrenLocked
// before the pass ends, so binding it to Frame (rather than leaving it
// heap-backed like the retained tree) is safe — nothing here is expected
// to outlive the pass that created it. Must be called with e.mu held.
func (e *Engine) appendOpenChildLocked(parent, id vtree.ID) {
	s, ok := e.openChildren[parent]
	if !ok {
		s = Array[vtree.ID](e.arenas.Get(arena.Frame))
		e.openChildren[parent] = s
	}
	s.Append(id)
}

// resolveStyle merges b's accumulated per-field style writes (if any) onto
// its base handle and interns the result, returning the handle to store on
// the committed node. A Builder that never called a per-field style method
// (Foreground, Bold, Padding, ...) keeps its explicit Style handle
// (style.Zero if Style was never called either) unchanged, so the common
// unstyled case never touches the interner at commit time.
func (e *Engine) resolveStyle(b Builder) style.Handle {
	if !b.styleSet {
		return b.style
	}
	base := e.interner.Resolve(b.style)
	merged := base.Merge(b.pendingStyle)
	h, err := e.interner.Intern(merged)
	if err != nil {
		panic(verrors.New(verrors.KindResource, "style interner exhausted").WithCause(err))
	}
	return h
}

// RegisterPage binds pattern to a RenderRoot that the router invokes on
// navigation; destroy, if non-nil, runs when the route is left (the
// engine resets arena.View immediately afterwards, per spec.md §4.9).
func (e *Engine) RegisterPage(pattern string, root RenderRoot, destroy func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if destroy != nil {
		e.pageDestr[pattern] = destroy
	}
	return e.router.RegisterPage(pattern, root)
}

// RegisterLayout binds prefix to a LayoutRoot wrapping every page whose
// pattern falls under it.
func (e *Engine) RegisterLayout(prefix string, layout LayoutRoot, opts router.LayoutOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.router.RegisterLayout(prefix, func(renderPage func()) {
		layout(renderPage)
	}, opts)
}

// Navigate drives the router to path, tearing down the previous page (if a
// destroy callback was registered) and resetting arena.View before
// building the new one.
func (e *Engine) Navigate(path string) error {
	e.mu.Lock()
	prevPattern := e.router.CurrentPattern()
	e.mu.Unlock()

	if err := e.router.Navigate(path); err != nil {
		return err
	}

	e.mu.Lock()
	if prevPattern != e.router.CurrentPattern() {
		if d, ok := e.pageDestr[prevPattern]; ok {
			d()
		}
		e.arenas.ResetView()
	}
	e.mu.Unlock()

	e.logger.Info("route changed", vlog.Field("path", path))
	e.driver.RequestPass()
	return nil
}

// Dispatch delivers ev to the handler bound to ev.Target for ev.Kind, if
// any, then requests a pass so any signal writes the handler made are
// reflected. It is the entry point a host Applier (internal/hostterm, or
// a custom one) calls when it observes a node-scoped interaction.
func (e *Engine) Dispatch(ev Event) {
	e.mu.Lock()
	fn, ok := e.handlers[ev.Target][ev.Kind]
	e.mu.Unlock()
	if !ok {
		return
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("handler panicked", vlog.Field("recover", fmt.Sprint(r)))
				diag := verrors.New(verrors.KindHandler, "event handler panicked").
					WithDiagnostic(verrors.Diagnostic{NodeID: ev.Target.String(), Operation: fmt.Sprint(ev.Kind)}).
					WithCause(fmt.Errorf("%v", r))
				observability.Report(diag, observability.Context{})
			}
		}()
		fn(ev)
	}()

	e.driver.RequestPass()
}

// EmitGlobal delivers ev to every listener registered for kind via
// EventListener, then requests a pass.
func (e *Engine) EmitGlobal(kind GlobalEventKind, ev Event) {
	e.mu.Lock()
	fns := append([]func(Event){}, e.listeners[kind]...)
	e.mu.Unlock()

	for _, fn := range fns {
		if fn == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("global listener panicked", vlog.Field("recover", fmt.Sprint(r)))
				}
			}()
			fn(ev)
		}()
	}
	e.driver.RequestPass()
}

// EventListener registers fn to run whenever kind occurs, returning an
// unsubscribe function. Global listeners live outside the node tree, so
// they survive across passes without needing to be rebuilt every render.
func EventListener(kind GlobalEventKind, fn func(Event)) func() {
	e := currentEngine()
	e.mu.Lock()
	e.listeners[kind] = append(e.listeners[kind], fn)
	idx := len(e.listeners[kind]) - 1
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		l := e.listeners[kind]
		if idx < 0 || idx >= len(l) {
			return
		}
		l[idx] = nil
	}
}

// Cycle forces exactly one pass right now, bypassing the driver's mode
// policy. It is the package-level entry point the teacher's test harnesses
// and host event loops call to force a synchronous render for assertions.
func Cycle() {
	currentEngine().driver.RunPass()
}

// runPass executes one build+reconcile+apply cycle against the active
// engine: reset the building tree, replay the current route's RenderRoot
// (wrapped by its layout, if any) through the builder surface, diff
// against the retained tree, and apply the resulting commands. The frame
// arena is reset when the pass ends, however it ends.
func (e *Engine) runPass() {
	started := time.Now()
	defer func() {
		e.mu.Lock()
		e.arenas.ResetFrame()
		e.mu.Unlock()
	}()

	e.mu.Lock()
	e.building.Reset()
	e.stack.Reset()
	e.nextSalt = 0
	e.openChildren = make(map[vtree.ID]*arena.Slice[vtree.ID])
	e.mu.Unlock()

	panicked := func() (panicked bool) {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
				e.logger.Error("pass panicked", vlog.Field("recover", fmt.Sprint(r)))
				diag := verrors.New(verrors.KindProtocol, "render pass panicked").WithCause(fmt.Errorf("%v", r))
				observability.Report(diag, observability.Context{})
			}
		}()
		e.router.RenderCurrent()
		return false
	}()
	if panicked {
		// The partially-built tree from the interrupted pass is discarded
		// outright: diffing it against retained would produce spurious
		// commands for a tree the host never saw and never should.
		return
	}

	e.mu.Lock()
	baseline := e.retained
	if e.forceReplace {
		// A prior pass's Apply failed and may have left the host in an
		// unknown state; diff against an empty tree so every node is
		// re-added rather than trusting retained's shape (spec.md §7 item 5).
		baseline = vtree.New(e.building.Len())
	}
	cmds := reconcile.Diff(e.building, baseline)
	e.mu.Unlock()

	if cmds.Empty() {
		return
	}

	if err := e.applier.Apply(cmds); err != nil {
		e.logger.Error("apply failed", vlog.Field("error", err.Error()))
		diag := verrors.New(verrors.KindReconcile, "applier rejected command set, forcing full replace next pass").WithCause(err)
		observability.Report(diag, observability.Context{})
		e.mu.Lock()
		e.forceReplace = true
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	promoteInto(e.retained, e.building)
	e.forceReplace = false
	e.mu.Unlock()

	if e.metrics != nil {
		e.metrics.RecordPass(time.Since(started), commandCountsByOp(cmds))
	}

	e.logger.Debug("pass committed", vlog.Field("commands", fmt.Sprint(cmds.Len())))
}

// commandCountsByOp tallies cmds by Op.String() for monitoring.Metrics.
func commandCountsByOp(cmds reconcile.Commands) map[string]int {
	counts := make(map[string]int, 4)
	for _, c := range cmds.Removes {
		counts[c.Op.String()]++
	}
	for _, c := range cmds.Updates {
		counts[c.Op.String()]++
	}
	for _, c := range cmds.Adds {
		counts[c.Op.String()]++
	}
	return counts
}

// promoteInto replaces dst's contents with src's, used after a successful
// Apply to make the just-built tree the new retained baseline.
func promoteInto(dst, src *vtree.Tree) {
	dst.Reset()
	src.Walk(func(n vtree.Node) { dst.Insert(n) })
}

// newAllocationDiagnostic builds a KindResource diagnostic for an
// allocation failure in the arena of the given kind, with err as its cause.
func newAllocationDiagnostic(kind arena.Kind, err error) verrors.Error {
	return verrors.New(verrors.KindResource, fmt.Sprintf("%s arena allocation failed", kind)).WithCause(err)
}
