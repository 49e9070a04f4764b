package reactivity

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode selects how a Driver schedules passes in response to signal
// writes, per spec.md §7.
type Mode int

const (
	// ModeAtomic coalesces every write made while a pass is running into
	// exactly one follow-up pass. A write made while no pass is running
	// schedules a pass of its own; several writes from one event handler
	// are not batched into a single pass. This is the default.
	ModeAtomic Mode = iota
	// ModeImmediate schedules a pass on every write: synchronously when no
	// bubbletea program is bound, otherwise through a message sent to the
	// bound program so the host's event loop still owns delivery
	// (grounded on the teacher's asyncWrapperModel/tea.Tick pattern).
	ModeImmediate
	// ModeRetained only runs a pass when explicitly requested via
	// Driver.RequestPass, for host-driven polling loops that want full
	// control over cadence.
	ModeRetained
)

type depender interface {
	signalVersion() uint64
}

// Driver coordinates signal writes with builder passes. It guarantees at
// most one pass is in flight at a time (spec.md §7: "a single in-flight
// pass; writes during a pass coalesce into the next one, they never
// nest"), generalizing the teacher's CallbackScheduler/FlushWatchers
// coalescing queue from per-watcher callbacks to whole-tree passes.
type Driver struct {
	mu       sync.Mutex
	mode     Mode
	running  bool
	pending  bool
	trackers []*trackSet
	onPass   func()
	program  *tea.Program
}

// trackSet accumulates the signals read during one tracked section (one
// builder pass, or one Computed evaluation). Computed uses its set to
// learn its dependencies; the set a builder pass collects is dropped when
// the pass ends.
type trackSet struct {
	seen map[depender]bool
}

// New returns a Driver in the given mode. onPass is invoked to actually
// run a builder+reconcile+apply pass; the driver only decides when to
// call it.
func New(mode Mode, onPass func()) *Driver {
	return &Driver{mode: mode, onPass: onPass}
}

// BindProgram attaches the bubbletea program used by ModeImmediate to
// deliver its synchronous-feeling tick, since a Driver has no
// goroutine of its own to call onPass from outside the host's loop.
func (d *Driver) BindProgram(p *tea.Program) {
	d.mu.Lock()
	d.program = p
	d.mu.Unlock()
}

// passTickMsg is the internal message ModeImmediate sends through the
// bubbletea program to trigger a pass from the main loop.
type passTickMsg struct{}

// track records that the current pass read sig. Only meaningful while a
// pass is running; calls outside a pass (from host setup code) are no-ops.
func (d *Driver) track(sig depender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.trackers) == 0 {
		return
	}
	top := d.trackers[len(d.trackers)-1]
	top.seen[sig] = true
}

// dirty is called by a Signal after a write. It schedules a pass according
// to the driver's mode.
func (d *Driver) dirty(sig depender) {
	d.mu.Lock()
	mode := d.mode
	running := d.running
	d.mu.Unlock()

	switch mode {
	case ModeRetained:
		return // caller must call RequestPass explicitly
	case ModeImmediate:
		d.schedule()
		return
	case ModeAtomic:
		if running {
			d.mu.Lock()
			d.pending = true
			d.mu.Unlock()
			return
		}
		d.schedule()
	}
}

// schedule runs a pass now when no bubbletea program is bound. If one is
// bound, it sends a passTickMsg to the program from a new goroutine (so a
// write made inside the program's own Update cannot block on it), and the
// pass runs when the host forwards that message to HandleMessage.
func (d *Driver) schedule() {
	d.mu.Lock()
	p := d.program
	d.mu.Unlock()

	if p != nil {
		go p.Send(passTickMsg{})
		return
	}
	d.RunPass()
}

// HandleMessage lets a host's tea.Update loop forward messages to the
// driver; a passTickMsg triggers RunPass, anything else is ignored.
func (d *Driver) HandleMessage(msg tea.Msg) {
	if _, ok := msg.(passTickMsg); ok {
		d.RunPass()
	}
}

// RequestPass runs a pass unconditionally, for ModeRetained hosts that
// poll on their own schedule (a timer, a file watch) rather than reacting
// to signal writes.
func (d *Driver) RequestPass() {
	d.schedule()
}

// RunPass executes exactly one builder+reconcile+apply pass, tracking the
// signals it reads, then re-runs once, immediately, if any write arrived
// while it was running (the coalescing guarantee). Writes made before it
// started are reflected by the pass itself and cause no re-run.
func (d *Driver) RunPass() {
	d.mu.Lock()
	if d.running {
		d.pending = true
		d.mu.Unlock()
		return
	}
	d.running = true
	d.pending = false
	ts := &trackSet{seen: make(map[depender]bool)}
	d.trackers = append(d.trackers, ts)
	d.mu.Unlock()

	if d.onPass != nil {
		d.onPass()
	}

	d.mu.Lock()
	d.trackers = d.trackers[:len(d.trackers)-1]
	d.running = false
	again := d.pending
	d.pending = false
	d.mu.Unlock()

	if again {
		d.RunPass()
	}
}
