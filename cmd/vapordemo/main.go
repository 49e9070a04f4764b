// Command vapordemo is a small terminal program exercising the compiled
// builder surface end to end: a counter bound through the reactivity
// driver, a todo list reconciled on every keypress, and a login form
// rendered through vapor/form, all painted by internal/hostterm.
//
//	cd cmd/vapordemo
//	go run .
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vapor-ui/vapor"
	"github.com/vapor-ui/vapor/internal/hostterm"
	"github.com/vapor-ui/vapor/internal/reactivity"
	"github.com/vapor-ui/vapor/internal/style"
	"github.com/vapor-ui/vapor/vapor/form"
	"github.com/vapor-ui/vapor/vapor/monitoring"
	"github.com/vapor-ui/vapor/vapor/observability"
	"github.com/vapor-ui/vapor/vapor/theme"
)

type credentials struct {
	Username string
	Remember bool
}

func main() {
	observability.SetReporter(observability.NewConsoleReporter(false))

	themes := theme.NewRegistry([]theme.Definition{{
		Name: "default",
		Tokens: map[string]string{
			"primary": "99",
			"danger":  "196",
			"muted":   "241",
		},
	}})
	interner := style.New()
	icons := theme.NewIconRegistry(theme.DefaultIcons())
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	host := hostterm.New(interner, themes)

	engine, err := vapor.Init(vapor.Config{
		Mode:          reactivity.ModeImmediate,
		ThemeRegistry: themes,
		Interner:      interner,
		IconRegistry:  icons,
		Applier:       host,
		Metrics:       metrics,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "vapordemo:", err)
		os.Exit(1)
	}

	count := reactivity.NewSignal(engine.Driver(), 0)
	todos := reactivity.NewSignal(engine.Driver(), []string{"write spec", "wire reconciler"})
	loginForm := form.New(engine.Driver(), credentials{}, func(c credentials) map[string]string {
		errs := map[string]string{}
		if c.Username == "" {
			errs["Username"] = "required"
		}
		return errs
	})

	if err := engine.RegisterPage("/", func() {
		vapor.Container(
			vapor.Text(fmt.Sprintf("count: %d", count.Get())).
				Key("counter-label").
				Foreground(style.ColorToken("primary")).
				Bold(true),
			vapor.Button("increment", func() { count.Set(count.Peek() + 1) }).
				Key("counter-button").
				Padding(0, 1, 0, 1).
				BorderStyle(style.BorderRounded),
			renderTodos(todos),
			loginForm.Render().Key("login"),
		).Key("root").
			Padding(1, 2, 1, 2).
			End()
	}, nil); err != nil {
		fmt.Fprintln(os.Stderr, "vapordemo: register page:", err)
		os.Exit(1)
	}

	if err := engine.Navigate("/"); err != nil {
		fmt.Fprintln(os.Stderr, "vapordemo: navigate:", err)
		os.Exit(1)
	}

	m := rootModel{host: host, engine: engine, todos: todos}
	p := tea.NewProgram(m)
	engine.BindProgram(p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "vapordemo:", err)
		os.Exit(1)
	}
}

func renderTodos(todos *reactivity.Signal[[]string]) vapor.Builder {
	items := todos.Get()
	children := make([]vapor.Builder, len(items))
	for i, t := range items {
		children[i] = vapor.Text(t).Key(t).Foreground(style.ColorToken("muted"))
	}
	return vapor.List(children...).Key("todos").Height(6).Width(40)
}

// rootModel wraps hostterm.Host with the key bindings driving the demo's
// signals, the same "outer model holds the component" shape the teacher's
// examples use.
type rootModel struct {
	host   *hostterm.Host
	engine *vapor.Engine
	todos  *reactivity.Signal[[]string]
}

func (m rootModel) Init() tea.Cmd {
	return m.host.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.engine.Driver().HandleMessage(msg)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a":
			m.todos.Set(append(append([]string{}, m.todos.Peek()...), "new item"))
		}
	case tea.WindowSizeMsg:
		m.engine.EmitGlobal(vapor.GlobalEventResize, vapor.Event{Data: msg})
	}

	updated, cmd := m.host.Update(msg)
	m.host = updated.(*hostterm.Host)
	return m, cmd
}

func (m rootModel) View() string {
	return m.host.View() + "\n\na: add todo • q: quit\n"
}
