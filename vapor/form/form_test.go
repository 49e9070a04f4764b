package form

import (
	"testing"

	"github.com/vapor-ui/vapor/internal/reactivity"
)

type loginForm struct {
	Email    string
	Password string
	Remember bool
}

func validateLogin(f loginForm) map[string]string {
	errs := map[string]string{}
	if f.Email == "" {
		errs["Email"] = "required"
	}
	if len(f.Password) < 8 {
		errs["Password"] = "too short"
	}
	return errs
}

func TestSetFieldUpdatesValuesAndMarksTouched(t *testing.T) {
	d := reactivity.New(reactivity.ModeRetained, nil)
	f := New(d, loginForm{}, validateLogin)

	if err := f.SetField("Email", "a@b.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Values().Email != "a@b.com" {
		t.Fatalf("expected email set, got %+v", f.Values())
	}
	if !f.Touched()["Email"] {
		t.Fatalf("expected Email marked touched")
	}
}

func TestValidationTracksIsValid(t *testing.T) {
	d := reactivity.New(reactivity.ModeRetained, nil)
	f := New(d, loginForm{}, validateLogin)

	if f.IsValid() {
		t.Fatalf("expected form invalid before any fields set")
	}
	f.SetField("Email", "a@b.com")
	f.SetField("Password", "longenough")
	if !f.IsValid() {
		t.Fatalf("expected form valid after fields set, errors=%+v", f.Errors())
	}
}

func TestSetFieldUnknownFieldReturnsError(t *testing.T) {
	d := reactivity.New(reactivity.ModeRetained, nil)
	f := New(d, loginForm{}, validateLogin)

	err := f.SetField("Nonexistent", "x")
	if _, ok := err.(ErrUnknownField); !ok {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSetFieldTypeMismatchReturnsError(t *testing.T) {
	d := reactivity.New(reactivity.ModeRetained, nil)
	f := New(d, loginForm{}, validateLogin)

	err := f.SetField("Email", 42)
	if _, ok := err.(ErrFieldTypeMismatch); !ok {
		t.Fatalf("expected ErrFieldTypeMismatch, got %v", err)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	d := reactivity.New(reactivity.ModeRetained, nil)
	f := New(d, loginForm{Email: "seed@x.com"}, validateLogin)

	f.SetField("Email", "changed@x.com")
	f.Reset()

	if f.Values().Email != "seed@x.com" {
		t.Fatalf("expected reset to restore initial email, got %q", f.Values().Email)
	}
	if f.IsDirty() {
		t.Fatalf("expected reset to clear touched state")
	}
}

func TestIsDirtyTracksTouchedFields(t *testing.T) {
	d := reactivity.New(reactivity.ModeRetained, nil)
	f := New(d, loginForm{}, validateLogin)

	if f.IsDirty() {
		t.Fatalf("expected not dirty before any SetField")
	}
	f.SetField("Email", "a@b.com")
	if !f.IsDirty() {
		t.Fatalf("expected dirty after SetField")
	}
}
