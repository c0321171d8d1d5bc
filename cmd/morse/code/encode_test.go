package code

import (
	"reflect"
	"testing"
	"time"
)

func patternLen(p string) int {
	n := 0
	for _, sym := range p {
		switch sym {
		case Dot:
			n += 2
		case Dash:
			n += 4
		default:
			n += 2
		}
	}
	return n
}

func TestEncode_Empty(t *testing.T) {
	if got := Encode(""); len(got) != 0 {
		t.Errorf("Encode(\"\") = %v, want empty", got)
	}
}

func TestEncode_SingleLetter(t *testing.T) {
	want := Bits{0, 1, 0, 1, 1, 1, 0, 0}
	got := Encode("a")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode(\"a\") = %v, want %v", got, want)
	}
}

func TestEncode_Examples(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"e", "0100"},
		{"t", "011100"},
		{"et", "0100011100"},
		{"sos", "01010100" + "01110111011100" + "01010100"},
		{" ", "0000"},
		{"e e", "0100" + "0000" + "0100"},
	}

	for _, tt := range tests {
		result := Encode(tt.input).String()
		if result != tt.expected {
			t.Errorf("Encode(%q) = %s, want %s", tt.input, result, tt.expected)
		}
	}
}

func TestEncode_LengthMatchesPatterns(t *testing.T) {
	for _, sym := range Symbols() {
		text := string(sym.Char)
		want := patternLen(sym.Pattern) + 2
		if got := len(Encode(text)); got != want {
			t.Errorf("len(Encode(%q)) = %d, want %d", text, got, want)
		}
		if got := EncodedLen(text); got != want {
			t.Errorf("EncodedLen(%q) = %d, want %d", text, got, want)
		}
	}

	word := "thequickbrownfoxjumpsoverthelazydog"
	want := 0
	for _, r := range word {
		p, _ := Pattern(r)
		want += patternLen(p) + 2
	}
	if got := len(Encode(word)); got != want {
		t.Errorf("len(Encode(%q)) = %d, want %d", word, got, want)
	}
}

// Unsupported characters are skipped rather than rejected; only their
// trailing letter gap remains.
func TestEncode_UnsupportedCharacter(t *testing.T) {
	got := Encode("e5e").String()
	want := "0100" + "00" + "0100"
	if got != want {
		t.Errorf("Encode(\"e5e\") = %s, want %s", got, want)
	}

	for _, input := range []string{"5", "E", "?", "é"} {
		if got := Encode(input).String(); got != "00" {
			t.Errorf("Encode(%q) = %s, want 00", input, got)
		}
	}
}

func TestEncode_OnlyZerosAndOnes(t *testing.T) {
	for _, v := range Encode("hello world") {
		if v != 0 && v != 1 {
			t.Fatalf("unexpected bit value %d", v)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a := Encode("morse")
	b := Encode("morse")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Encode not deterministic: %v vs %v", a, b)
	}
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sos", "... ___ ..."},
		{"a b", "._ / _..."},
		{"a1b", "._ _..."},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Patterns(tt.input); got != tt.expected {
			t.Errorf("Patterns(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBits_Duration(t *testing.T) {
	bits := Encode("a") // 8 units
	if got := bits.Duration(4); got != 2*time.Second {
		t.Errorf("Duration(4) = %v, want 2s", got)
	}
	if got := bits.Duration(0); got != 0 {
		t.Errorf("Duration(0) = %v, want 0", got)
	}
}

func TestBits_OnUnits(t *testing.T) {
	if got := Encode("a").OnUnits(); got != 4 {
		t.Errorf("OnUnits() = %d, want 4", got)
	}
}

func TestSymbols(t *testing.T) {
	syms := Symbols()
	if len(syms) != 27 {
		t.Fatalf("len(Symbols()) = %d, want 27", len(syms))
	}
	if syms[0].Char != ' ' {
		t.Errorf("first symbol = %q, want space", syms[0].Char)
	}
	if syms[len(syms)-1].Char != 'z' || syms[len(syms)-1].Pattern != "__.." {
		t.Errorf("last symbol = %+v", syms[len(syms)-1])
	}
	if Supported('A') {
		t.Error("uppercase letters should not be in the table")
	}
}
