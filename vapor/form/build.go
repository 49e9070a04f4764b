package form

import (
	"reflect"

	"github.com/vapor-ui/vapor"
)

// Render builds a Container holding one bound element per exported field
// of T: an Input for string fields and a Checkbox for bool fields, each
// wired to call SetField on its change event. Fields of other types are
// rendered read-only as Text, since vapor has no generic numeric/date
// input kind to bind them to.
func (f *Form[T]) Render() vapor.Builder {
	v := reflect.ValueOf(f.Values())
	t := v.Type()

	children := make([]vapor.Builder, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		children = append(children, f.fieldElement(sf.Name, v.Field(i)))
	}
	return vapor.Container(children...).Key("form")
}

func (f *Form[T]) fieldElement(name string, fv reflect.Value) vapor.Builder {
	switch fv.Kind() {
	case reflect.Bool:
		return vapor.Checkbox(fv.Bool()).OnEvent(vapor.EventChange, func(ev vapor.Event) {
			if b, ok := ev.Data.(bool); ok {
				_ = f.SetField(name, b)
			}
		}).Key(name)
	case reflect.String:
		return vapor.Input(fv.String()).OnEvent(vapor.EventChange, func(ev vapor.Event) {
			if s, ok := ev.Data.(string); ok {
				_ = f.SetField(name, s)
			}
		}).Key(name)
	default:
		return vapor.Text(name).Key(name)
	}
}
