package vapor_test

import (
	"strconv"
	"testing"

	"github.com/vapor-ui/vapor"
	"github.com/vapor-ui/vapor/internal/reactivity"
	"github.com/vapor-ui/vapor/internal/reconcile"
	"github.com/vapor-ui/vapor/internal/style"
	"github.com/vapor-ui/vapor/internal/vtree"
	"github.com/vapor-ui/vapor/testing/vtesting"
)

// Scenario 1 — counter increment: one state write drives exactly one
// targeted text update, with no structural change.
func TestScenarioCounterIncrementProducesOneTargetedUpdate(t *testing.T) {
	applier := vtesting.NewRecordingApplier()
	engine, err := vapor.Init(vapor.Config{Mode: reactivity.ModeRetained, Applier: applier})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	count := reactivity.NewSignal(engine.Driver(), 0)

	if err := engine.RegisterPage("/", func() {
		vapor.Container(
			vapor.Text(strconv.Itoa(count.Get())).Key("counter"),
		).Key("root").End()
	}, nil); err != nil {
		t.Fatalf("RegisterPage: %v", err)
	}
	if err := engine.Navigate("/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	vapor.Cycle()

	if got := applier.PassCount(); got != 1 {
		t.Fatalf("expected one initial pass, got %d", got)
	}

	count.Set(1)
	vapor.Cycle()

	last := applier.LastCommands()
	if len(last.Adds) != 0 || len(last.Removes) != 0 {
		t.Fatalf("expected only an update, got %+v", last)
	}
	if len(last.Updates) != 1 {
		t.Fatalf("expected exactly one update, got %d: %+v", len(last.Updates), last.Updates)
	}
	if !last.Updates[0].Attrs.Text {
		t.Fatalf("expected the update to flag a text delta, got %+v", last.Updates[0])
	}
}

// Scenario 2 — list insertion at head: adding a new item in front of an
// existing keyed list produces one add and no spurious updates/removes on
// the untouched siblings.
func TestScenarioListInsertionAtHeadProducesSingleAdd(t *testing.T) {
	applier := vtesting.NewRecordingApplier()
	engine, err := vapor.Init(vapor.Config{Mode: reactivity.ModeRetained, Applier: applier})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	items := reactivity.NewSignal(engine.Driver(), []string{"b", "c", "d"})

	render := func() {
		cur := items.Get()
		children := make([]vapor.Builder, len(cur))
		for i, v := range cur {
			children[i] = vapor.Text(v).Key(v)
		}
		vapor.List(children...).Key("list").End()
	}
	if err := engine.RegisterPage("/", render, nil); err != nil {
		t.Fatalf("RegisterPage: %v", err)
	}
	if err := engine.Navigate("/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	vapor.Cycle()

	items.Set(append([]string{"a"}, items.Peek()...))
	vapor.Cycle()

	last := applier.LastCommands()
	if len(last.Removes) != 0 {
		t.Fatalf("expected no removes, got %+v", last.Removes)
	}
	if len(last.Adds) != 1 {
		t.Fatalf("expected exactly one add, got %d: %+v", len(last.Adds), last.Adds)
	}
	for _, u := range last.Updates {
		if u.Op == reconcile.OpUpdate {
			t.Fatalf("expected no content updates on untouched siblings, got %+v", u)
		}
	}
}

// Scenario 5 — route change with layout: navigating away from a page
// invokes its registered destroy hook exactly once and produces a
// structural replace rather than a patch.
func TestScenarioRouteChangeInvokesDestroyAndReplacesTree(t *testing.T) {
	applier := vtesting.NewRecordingApplier()
	engine, err := vapor.Init(vapor.Config{Mode: reactivity.ModeRetained, Applier: applier})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	destroyed := 0
	if err := engine.RegisterPage("/a", func() {
		vapor.Text("page a").Key("page-a").End()
	}, func() { destroyed++ }); err != nil {
		t.Fatalf("RegisterPage /a: %v", err)
	}
	if err := engine.RegisterPage("/b", func() {
		vapor.Text("page b").Key("page-b").End()
	}, nil); err != nil {
		t.Fatalf("RegisterPage /b: %v", err)
	}

	if err := engine.Navigate("/a"); err != nil {
		t.Fatalf("Navigate /a: %v", err)
	}
	vapor.Cycle()

	if err := engine.Navigate("/b"); err != nil {
		t.Fatalf("Navigate /b: %v", err)
	}
	vapor.Cycle()

	if destroyed != 1 {
		t.Fatalf("expected destroy hook to run exactly once, got %d", destroyed)
	}

	last := applier.LastCommands()
	if len(last.Adds) == 0 {
		t.Fatalf("expected the new page's root to be added, got %+v", last)
	}
	if len(last.Removes) == 0 {
		t.Fatalf("expected the old page's root to be removed, got %+v", last)
	}
}

// TestDispatchInvokesBoundHandlerAndReflectsStateChange exercises the
// node-scoped event path end to end: a handler bound through Button is
// found and invoked by Dispatch, and the resulting signal write is
// reflected on the next pass.
func TestDispatchInvokesBoundHandlerAndReflectsStateChange(t *testing.T) {
	applier := vtesting.NewRecordingApplier()
	engine, err := vapor.Init(vapor.Config{Mode: reactivity.ModeRetained, Applier: applier})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	count := reactivity.NewSignal(engine.Driver(), 0)
	var buttonID vtree.ID

	if err := engine.RegisterPage("/", func() {
		vapor.Container().Key("root").Children(func() {
			btn := vapor.Button("inc", func() { count.Set(count.Peek() + 1) }).Key("btn").End()
			buttonID = btn.ID()
		})
	}, nil); err != nil {
		t.Fatalf("RegisterPage: %v", err)
	}
	if err := engine.Navigate("/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	vapor.Cycle()

	engine.Dispatch(vapor.Event{Target: buttonID, Kind: vapor.EventClick})

	if count.Peek() != 1 {
		t.Fatalf("expected dispatch to invoke the bound handler, got count=%d", count.Peek())
	}
}

// TestFluentStyleMethodsInternAPerFieldComposedValue exercises the
// per-field Builder style methods end to end: a node built with
// Foreground/Bold/Padding gets a non-zero interned handle whose resolved
// Value reflects every field written, and a later pass that changes only
// the style produces an update flagged StyleDirty.
func TestFluentStyleMethodsInternAPerFieldComposedValue(t *testing.T) {
	applier := vtesting.NewRecordingApplier()
	engine, err := vapor.Init(vapor.Config{Mode: reactivity.ModeRetained, Applier: applier})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	bold := reactivity.NewSignal(engine.Driver(), true)

	if err := engine.RegisterPage("/", func() {
		vapor.Container(
			vapor.Text("styled").
				Key("styled").
				Foreground(style.ColorValue("#ff0000")).
				Bold(bold.Get()).
				Padding(1, 1, 1, 1),
		).Key("root").End()
	}, nil); err != nil {
		t.Fatalf("RegisterPage: %v", err)
	}
	if err := engine.Navigate("/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	vapor.Cycle()

	var styled vtree.Node
	found := false
	for _, c := range applier.LastCommands().Adds {
		if c.Node.Key == "styled" {
			styled, found = c.Node, true
		}
	}
	if !found {
		t.Fatalf("expected an add command for the styled node")
	}
	if styled.Style == style.Zero {
		t.Fatalf("expected a non-zero interned style handle, got Zero")
	}

	resolved := engine.Interner().Resolve(styled.Style)
	if !resolved.Foreground.IsSet() || resolved.Foreground.Value() != "#ff0000" {
		t.Fatalf("expected Foreground to be interned, got %+v", resolved.Foreground)
	}
	if resolved.PaddingTop != resolved.PaddingBottom {
		t.Fatalf("expected uniform padding, got %+v", resolved)
	}

	bold.Set(false)
	vapor.Cycle()

	last := applier.LastCommands()
	if len(last.Updates) != 1 || !last.Updates[0].StyleDirty {
		t.Fatalf("expected exactly one style-dirty update after flipping Bold, got %+v", last.Updates)
	}
}
