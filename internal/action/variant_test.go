package action

import "testing"

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"", None},
		{"true", Bool(true)},
		{" false ", Bool(false)},
		{"'eraser'", Str("eraser")},
		{`"resvg"`, Str("resvg")},
		{"line", Str("line")},
		{"'x", Str("'x")},
	}
	for _, tt := range tests {
		if got := ParseLiteral(tt.in); got != tt.want {
			t.Errorf("ParseLiteral(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFor(t *testing.T) {
	if v, err := ParseFor(TypeString, "true"); err != nil || v != Str("true") {
		t.Fatalf("string param: %v, %v", v, err)
	}
	if v, err := ParseFor(TypeBool, "1"); err != nil || v != Bool(true) {
		t.Fatalf("bool param: %v, %v", v, err)
	}
	if _, err := ParseFor(TypeBool, "eraser"); err == nil {
		t.Fatalf("expected error for bad boolean")
	}
	if _, err := ParseFor(TypeNone, "x"); err == nil {
		t.Fatalf("expected error for unexpected parameter")
	}
	if v, err := ParseFor(TypeBool, ""); err != nil || v != None {
		t.Fatalf("empty bool: %v, %v", v, err)
	}
}

func TestVariantString(t *testing.T) {
	if got := Str("eraser").String(); got != "'eraser'" {
		t.Fatalf("got %s", got)
	}
	if got := Bool(true).String(); got != "true" {
		t.Fatalf("got %s", got)
	}
	if got := None.String(); got != "" {
		t.Fatalf("got %s", got)
	}
}
