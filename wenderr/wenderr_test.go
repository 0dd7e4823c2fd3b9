package wenderr

import "testing"

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Message: "unterminated string", Offset: 12}
	want := "unterminated string (at offset 12)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewf(t *testing.T) {
	err := Newf("cannot assign %s to %s", "String", "Integer")
	want := "cannot assign String to Integer"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
