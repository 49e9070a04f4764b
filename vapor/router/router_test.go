package router

import "testing"

func TestNavigateMatchesRegisteredPage(t *testing.T) {
	r := New()
	rendered := false
	r.RegisterPage("/home", func() { rendered = true })

	if err := r.Navigate("/home"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.RenderCurrent()

	if !rendered {
		t.Fatalf("expected page render root to have been invoked")
	}
}

func TestNavigateUnknownPathFails(t *testing.T) {
	r := New()
	r.RegisterPage("/home", func() {})

	err := r.Navigate("/nope")
	if _, ok := err.(ErrNoMatch); !ok {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestPathParamsAreBound(t *testing.T) {
	r := New()
	r.RegisterPage("/users/:id", func() {})

	if err := r.Navigate("/users/42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.CurrentParams()["id"]; got != "42" {
		t.Fatalf("expected id param 42, got %q", got)
	}
}

func TestGuardCanRejectNavigation(t *testing.T) {
	r := New()
	r.RegisterPage("/admin", func() {})
	r.BeforeEach(func(to, from string, next func(bool, string)) {
		next(false, "not authorized")
	})

	err := r.Navigate("/admin")
	rej, ok := err.(ErrGuardRejected)
	if !ok || rej.Reason != "not authorized" {
		t.Fatalf("expected guard rejection, got %v", err)
	}
	if r.CurrentPattern() == "/admin" {
		t.Fatalf("expected rejected navigation to leave current route unchanged")
	}
}

func TestLayoutWrapsNestedPage(t *testing.T) {
	r := New()
	var order []string
	r.RegisterLayout("/app", func(renderPage func()) {
		order = append(order, "layout-before")
		renderPage()
		order = append(order, "layout-after")
	}, LayoutOptions{})
	r.RegisterPage("/app/dashboard", func() { order = append(order, "page") })

	r.Navigate("/app/dashboard")
	r.RenderCurrent()

	want := []string{"layout-before", "page", "layout-after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestHistoryRecordsEachNavigation(t *testing.T) {
	r := New()
	r.RegisterPage("/a", func() {})
	r.RegisterPage("/b", func() {})

	r.Navigate("/a")
	r.Navigate("/b")

	hist := r.History()
	if len(hist) != 2 || hist[0].Path != "/a" || hist[1].Path != "/b" {
		t.Fatalf("unexpected history: %+v", hist)
	}
}

func TestNestedLayoutPrefersMoreSpecificLayout(t *testing.T) {
	r := New()
	var which string
	r.RegisterLayout("/app", func(renderPage func()) { which = "app"; renderPage() }, LayoutOptions{})
	r.RegisterLayout("/app/settings", func(renderPage func()) { which = "settings"; renderPage() }, LayoutOptions{})
	r.RegisterPage("/app/settings/profile", func() {})

	r.Navigate("/app/settings/profile")
	r.RenderCurrent()

	if which != "settings" {
		t.Fatalf("expected the more specific layout to win, got %q", which)
	}
}
