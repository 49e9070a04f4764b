// Package form compiles a typed Go struct into a bound Vapor render
// fragment: one builder element per exported field, wired to a
// reactivity.Signal holding the struct value, with validation, dirty
// tracking, and touched-field state. It generalizes the teacher's
// UseForm composable (pkg/bubbly/composables/use_form.go) from "a
// Setup-scoped composable returning reactive refs a template reads" to
// "a standalone compiler the builder surface can render directly",
// since vapor has no Setup/Context scoping construct of its own.
package form

import (
	"fmt"
	"reflect"

	"github.com/vapor-ui/vapor/internal/reactivity"
	"github.com/vapor-ui/vapor/internal/verrors"
	"github.com/vapor-ui/vapor/vapor/observability"
)

// Form holds reactive form state for a struct type T and the operations
// (Submit, Reset, SetField) the teacher's UseFormReturn exposes,
// generalized to a type that also knows how to render itself.
type Form[T any] struct {
	driver   *reactivity.Driver
	values   *reactivity.Signal[T]
	errors   *reactivity.Signal[map[string]string]
	touched  *reactivity.Signal[map[string]bool]
	isValid  *reactivity.Computed[bool]
	isDirty  *reactivity.Computed[bool]
	initial  T
	validate func(T) map[string]string
}

// New compiles a Form for T, wiring its reactive state to driver. validate
// runs once against initial, then after every SetField and on Submit,
// mirroring the teacher's validate-on-every-mutation policy.
func New[T any](driver *reactivity.Driver, initial T, validate func(T) map[string]string) *Form[T] {
	if validate == nil {
		validate = func(T) map[string]string { return nil }
	}
	f := &Form[T]{
		driver:   driver,
		values:   reactivity.NewSignal(driver, initial),
		errors:   reactivity.NewSignal(driver, validate(initial)),
		touched:  reactivity.NewSignal(driver, map[string]bool{}),
		initial:  initial,
		validate: validate,
	}
	f.isValid = reactivity.NewComputed(driver, func() bool { return len(f.errors.Get()) == 0 })
	f.isDirty = reactivity.NewComputed(driver, func() bool { return len(f.touched.Get()) > 0 })
	return f
}

// Values returns the current form value struct.
func (f *Form[T]) Values() T { return f.values.Get() }

// Errors returns the current field-name -> message validation errors.
func (f *Form[T]) Errors() map[string]string { return f.errors.Get() }

// Touched returns which fields have been modified since the last Reset.
func (f *Form[T]) Touched() map[string]bool { return f.touched.Get() }

// IsValid reports whether the form currently has no validation errors.
func (f *Form[T]) IsValid() bool { return f.isValid.Get() }

// IsDirty reports whether any field has been touched since the last Reset.
func (f *Form[T]) IsDirty() bool { return f.isDirty.Get() }

// Submit re-runs validation against the current values, updating Errors.
func (f *Form[T]) Submit() { f.runValidation() }

// Reset restores Values, Errors, and Touched to their initial state.
func (f *Form[T]) Reset() {
	f.values.Set(f.initial)
	f.errors.Set(f.validate(f.initial))
	f.touched.Set(map[string]bool{})
}

// ErrUnknownField is returned by SetField when field does not name an
// exported field of T.
type ErrUnknownField struct {
	Type, Field string
}

func (e ErrUnknownField) Error() string {
	return fmt.Sprintf("form: field %q does not exist on %s", e.Field, e.Type)
}

// ErrFieldTypeMismatch is returned by SetField when value's type is not
// assignable to the named field.
type ErrFieldTypeMismatch struct {
	Type, Field, Want, Got string
}

func (e ErrFieldTypeMismatch) Error() string {
	return fmt.Sprintf("form: field %q on %s wants %s, got %s", e.Field, e.Type, e.Want, e.Got)
}

// SetField updates the named field of the form's value struct by
// reflection, marks it touched, and re-runs validation. A failure (unknown
// field, unexported field, type mismatch) is both returned to the caller
// and reported through vapor/observability as a collaborator-class
// diagnostic, matching the engine's own failure-reporting convention.
func (f *Form[T]) SetField(field string, value any) error {
	current := f.values.Get()
	rv := reflect.ValueOf(&current).Elem()
	fv := rv.FieldByName(field)

	typeName := rv.Type().String()
	if !fv.IsValid() || !fv.CanSet() {
		err := ErrUnknownField{Type: typeName, Field: field}
		f.reportFieldError(err, field)
		return err
	}

	nv := reflect.ValueOf(value)
	if !nv.Type().AssignableTo(fv.Type()) {
		err := ErrFieldTypeMismatch{Type: typeName, Field: field, Want: fv.Type().String(), Got: nv.Type().String()}
		f.reportFieldError(err, field)
		return err
	}

	fv.Set(nv)
	f.values.Set(current)

	t := f.touched.Get()
	t[field] = true
	f.touched.Set(t)

	f.runValidation()
	return nil
}

func (f *Form[T]) reportFieldError(err error, field string) {
	diag := verrors.New(verrors.KindCollaborator, err.Error()).
		WithDiagnostic(verrors.Diagnostic{Component: "form", Operation: "SetField"}).
		WithCause(err)
	observability.Report(diag, observability.Context{Tags: map[string]string{"field": field}})
}

func (f *Form[T]) runValidation() {
	f.errors.Set(f.validate(f.values.Get()))
}
