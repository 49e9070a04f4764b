package style

import "github.com/charmbracelet/lipgloss"

// Theme resolves a theme token name to a concrete color string. vapor/theme
// implements this against its registry; tests and headless use can pass a
// trivial identity-ish implementation.
type Theme interface {
	Color(token string) (string, bool)
}

// ToLipgloss compiles a Value into a lipgloss.Style for the terminal host
// applier (internal/hostterm). Theme tokens are resolved through th; a nil
// theme leaves token colors unset rather than panicking, so styles remain
// paintable before a theme is registered.
func ToLipgloss(v Value, th Theme) lipgloss.Style {
	s := lipgloss.NewStyle()

	if c := resolveColor(v.Foreground, th); c != "" {
		s = s.Foreground(lipgloss.Color(c))
	}
	if c := resolveColor(v.Background, th); c != "" {
		s = s.Background(lipgloss.Color(c))
	}
	if v.Bold.isSet() {
		s = s.Bold(v.Bold.bool())
	}
	if v.Italic.isSet() {
		s = s.Italic(v.Italic.bool())
	}
	if v.Underline.isSet() {
		s = s.Underline(v.Underline.bool())
	}
	if v.Strikethrough.isSet() {
		s = s.Strikethrough(v.Strikethrough.bool())
	}
	if v.Width.set {
		s = s.Width(v.Width.value)
	}
	if v.Height.set {
		s = s.Height(v.Height.value)
	}
	s = s.Padding(fieldOr(v.PaddingTop), fieldOr(v.PaddingRight), fieldOr(v.PaddingBottom), fieldOr(v.PaddingLeft))
	s = s.Margin(fieldOr(v.MarginTop), fieldOr(v.MarginRight), fieldOr(v.MarginBottom), fieldOr(v.MarginLeft))

	if border, ok := lipglossBorder(v.BorderStyle); ok {
		s = s.Border(border)
		if c := resolveColor(v.BorderColor, th); c != "" {
			s = s.BorderForeground(lipgloss.Color(c))
		}
	}

	switch v.Align {
	case AlignLeft:
		s = s.Align(lipgloss.Left)
	case AlignCenter:
		s = s.Align(lipgloss.Center)
	case AlignRight:
		s = s.Align(lipgloss.Right)
	}

	return s
}

func resolveColor(c Color, th Theme) string {
	if !c.IsSet() {
		return ""
	}
	if !c.IsToken() {
		return c.Value()
	}
	if th == nil {
		return ""
	}
	if v, ok := th.Color(c.Token()); ok {
		return v
	}
	return ""
}

func fieldOr(f intField) int {
	if !f.set {
		return 0
	}
	return f.value
}

func lipglossBorder(b Border) (lipgloss.Border, bool) {
	switch b {
	case BorderNormal:
		return lipgloss.NormalBorder(), true
	case BorderRounded:
		return lipgloss.RoundedBorder(), true
	case BorderThick:
		return lipgloss.ThickBorder(), true
	case BorderDouble:
		return lipgloss.DoubleBorder(), true
	case BorderNone:
		return lipgloss.HiddenBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}
