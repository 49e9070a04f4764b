// Package style implements Vapor's content-addressed style interning: style
// values are hashed and deduplicated into stable integer handles, and field
// merges are resolved before a value is ever interned.
package style

// Align names a horizontal text/content alignment.
type Align int

const (
	AlignUnset Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Border names one of the supported border renderings.
type Border int

const (
	BorderUnset Border = iota
	BorderNone
	BorderNormal
	BorderRounded
	BorderThick
	BorderDouble
)

// Color is a value-typed color: either a concrete hex/ANSI string, or a
// theme token to be resolved against the active theme at paint time. The
// zero Color is unset.
type Color struct {
	set   bool
	token string // theme token name, e.g. "primary"; empty if Value is concrete
	value string // concrete color spec (hex, ANSI name); empty if Token is set
}

// ColorValue constructs a concrete color.
func ColorValue(v string) Color { return Color{set: true, value: v} }

// ColorToken constructs a theme-token color, resolved later by the active
// theme (spec.md §4.10).
func ColorToken(name string) Color { return Color{set: true, token: name} }

// IsSet reports whether this field was explicitly written.
func (c Color) IsSet() bool { return c.set }

// IsToken reports whether this color names a theme token rather than a
// concrete value.
func (c Color) IsToken() bool { return c.set && c.token != "" }

// Token returns the theme token name (only meaningful if IsToken).
func (c Color) Token() string { return c.token }

// Value returns the concrete color spec (only meaningful if not IsToken).
func (c Color) Value() string { return c.value }

// tri is a tri-state bool: unset, false, or true. Needed because "unset"
// must be distinguishable from "explicitly false" for field-wise merge.
type tri int8

const (
	triUnset tri = iota
	triFalse
	triTrue
)

func triFrom(b bool) tri {
	if b {
		return triTrue
	}
	return triFalse
}

func (t tri) isSet() bool { return t != triUnset }
func (t tri) bool() bool  { return t == triTrue }

// intField is an optional int: unset vs. explicitly set to any value
// including zero.
type intField struct {
	set   bool
	value int
}

func intSet(v int) intField { return intField{set: true, value: v} }

// Value is the value-typed style record described in spec.md §3. Every
// field defaults to "unset"; Merge is field-wise, last-writer-wins.
// Two Values compare equal (via Equal) iff every field compares equal.
type Value struct {
	Foreground Color
	Background Color

	Bold          tri
	Italic        tri
	Underline     tri
	Strikethrough tri

	Width  intField
	Height intField

	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft intField
	MarginTop, MarginRight, MarginBottom, MarginLeft     intField

	BorderStyle Border
	BorderColor Color

	Align Align

	// Transition names an animation-binding token; the core carries it
	// opaquely and never interprets it (spec.md Non-goals: no style
	// language parsing, no animation engine in the core).
	Transition string

	// Hover and Focus are nested partial overrides a host applies when an
	// interactive node reports that visual state. nil means "no override".
	Hover *Value
	Focus *Value
}

// Merge returns a new Value whose every field is ext's field if ext set
// it, else v's field. Merge is not commutative: v.Merge(ext) generally
// differs from ext.Merge(v).
func (v Value) Merge(ext Value) Value {
	out := v

	if ext.Foreground.IsSet() {
		out.Foreground = ext.Foreground
	}
	if ext.Background.IsSet() {
		out.Background = ext.Background
	}
	if ext.Bold.isSet() {
		out.Bold = ext.Bold
	}
	if ext.Italic.isSet() {
		out.Italic = ext.Italic
	}
	if ext.Underline.isSet() {
		out.Underline = ext.Underline
	}
	if ext.Strikethrough.isSet() {
		out.Strikethrough = ext.Strikethrough
	}
	if ext.Width.set {
		out.Width = ext.Width
	}
	if ext.Height.set {
		out.Height = ext.Height
	}
	if ext.PaddingTop.set {
		out.PaddingTop = ext.PaddingTop
	}
	if ext.PaddingRight.set {
		out.PaddingRight = ext.PaddingRight
	}
	if ext.PaddingBottom.set {
		out.PaddingBottom = ext.PaddingBottom
	}
	if ext.PaddingLeft.set {
		out.PaddingLeft = ext.PaddingLeft
	}
	if ext.MarginTop.set {
		out.MarginTop = ext.MarginTop
	}
	if ext.MarginRight.set {
		out.MarginRight = ext.MarginRight
	}
	if ext.MarginBottom.set {
		out.MarginBottom = ext.MarginBottom
	}
	if ext.MarginLeft.set {
		out.MarginLeft = ext.MarginLeft
	}
	if ext.BorderStyle != BorderUnset {
		out.BorderStyle = ext.BorderStyle
	}
	if ext.BorderColor.IsSet() {
		out.BorderColor = ext.BorderColor
	}
	if ext.Align != AlignUnset {
		out.Align = ext.Align
	}
	if ext.Transition != "" {
		out.Transition = ext.Transition
	}
	if ext.Hover != nil {
		out.Hover = ext.Hover
	}
	if ext.Focus != nil {
		out.Focus = ext.Focus
	}

	return out
}

// Equal reports field-wise equality. Two Values are Equal iff every field
// compares equal, including nested Hover/Focus overrides.
func (v Value) Equal(other Value) bool {
	if v.Foreground != other.Foreground || v.Background != other.Background {
		return false
	}
	if v.Bold != other.Bold || v.Italic != other.Italic ||
		v.Underline != other.Underline || v.Strikethrough != other.Strikethrough {
		return false
	}
	if v.Width != other.Width || v.Height != other.Height {
		return false
	}
	if v.PaddingTop != other.PaddingTop || v.PaddingRight != other.PaddingRight ||
		v.PaddingBottom != other.PaddingBottom || v.PaddingLeft != other.PaddingLeft {
		return false
	}
	if v.MarginTop != other.MarginTop || v.MarginRight != other.MarginRight ||
		v.MarginBottom != other.MarginBottom || v.MarginLeft != other.MarginLeft {
		return false
	}
	if v.BorderStyle != other.BorderStyle || v.BorderColor != other.BorderColor {
		return false
	}
	if v.Align != other.Align || v.Transition != other.Transition {
		return false
	}
	if !equalPtr(v.Hover, other.Hover) || !equalPtr(v.Focus, other.Focus) {
		return false
	}
	return true
}

func equalPtr(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Builder-facing setters, used by vapor's fluent style methods. Each
// returns a new Value (callers compose via Merge, not in-place mutation).

func (v Value) WithForeground(c Color) Value   { v.Foreground = c; return v }
func (v Value) WithBackground(c Color) Value   { v.Background = c; return v }
func (v Value) WithBold(b bool) Value          { v.Bold = triFrom(b); return v }
func (v Value) WithItalic(b bool) Value        { v.Italic = triFrom(b); return v }
func (v Value) WithUnderline(b bool) Value     { v.Underline = triFrom(b); return v }
func (v Value) WithStrikethrough(b bool) Value { v.Strikethrough = triFrom(b); return v }
func (v Value) WithWidth(w int) Value          { v.Width = intSet(w); return v }
func (v Value) WithHeight(h int) Value         { v.Height = intSet(h); return v }
func (v Value) WithAlign(a Align) Value        { v.Align = a; return v }
func (v Value) WithBorderStyle(b Border) Value { v.BorderStyle = b; return v }
func (v Value) WithBorderColor(c Color) Value  { v.BorderColor = c; return v }
func (v Value) WithTransition(name string) Value { v.Transition = name; return v }
func (v Value) WithHover(h Value) Value        { v.Hover = &h; return v }
func (v Value) WithFocus(f Value) Value        { v.Focus = &f; return v }

func (v Value) WithPadding(top, right, bottom, left int) Value {
	v.PaddingTop, v.PaddingRight, v.PaddingBottom, v.PaddingLeft =
		intSet(top), intSet(right), intSet(bottom), intSet(left)
	return v
}

func (v Value) WithMargin(top, right, bottom, left int) Value {
	v.MarginTop, v.MarginRight, v.MarginBottom, v.MarginLeft =
		intSet(top), intSet(right), intSet(bottom), intSet(left)
	return v
}
