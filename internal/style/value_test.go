package style

import "testing"

func TestMergeLastWriterWins(t *testing.T) {
	base := Value{}.WithBold(true).WithForeground(ColorValue("red"))
	ext := Value{}.WithForeground(ColorValue("blue"))

	merged := base.Merge(ext)

	if !merged.Bold.bool() {
		t.Fatalf("expected bold preserved from base")
	}
	if merged.Foreground.Value() != "blue" {
		t.Fatalf("expected foreground overridden by extension, got %q", merged.Foreground.Value())
	}
}

func TestMergeIsNotCommutative(t *testing.T) {
	a := Value{}.WithForeground(ColorValue("red"))
	b := Value{}.WithForeground(ColorValue("blue"))

	ab := a.Merge(b)
	ba := b.Merge(a)

	if ab.Equal(ba) {
		t.Fatalf("merge must not be commutative when both sides set the same field")
	}
	if ab.Foreground.Value() != "blue" || ba.Foreground.Value() != "red" {
		t.Fatalf("unexpected merge results: ab=%v ba=%v", ab.Foreground, ba.Foreground)
	}
}

func TestMergeWithEmptyIsIdentity(t *testing.T) {
	a := Value{}.WithBold(true).WithWidth(10)

	if !a.Merge(Value{}).Equal(a) {
		t.Fatalf("a.Merge(empty) must equal a")
	}
	if !Value{}.Merge(a).Equal(a) {
		t.Fatalf("empty.Merge(a) must equal a")
	}
}

func TestEqualityIsFieldWise(t *testing.T) {
	a := Value{}.WithBold(true).WithPadding(1, 2, 3, 4)
	b := Value{}.WithPadding(1, 2, 3, 4).WithBold(true)

	if !a.Equal(b) {
		t.Fatalf("values built via different accessor orders must compare equal")
	}

	c := b.WithPadding(1, 2, 3, 5)
	if a.Equal(c) {
		t.Fatalf("values differing in one field must not compare equal")
	}
}

func TestUnsetIsDistinctFromFalse(t *testing.T) {
	unset := Value{}
	explicitFalse := Value{}.WithBold(false)

	if unset.Equal(explicitFalse) {
		t.Fatalf("unset bold must differ from explicitly-false bold")
	}
	if unset.Bold.isSet() {
		t.Fatalf("zero value must report bold as unset")
	}
	if !explicitFalse.Bold.isSet() {
		t.Fatalf("WithBold(false) must mark the field set")
	}
}
