package shared

import "testing"

func TestEqualFold(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Sapiens", "SAPIENS", true},
		{" Sapiens ", "sapiens", true},
		{"Straße", "STRASSE", true}, // ß folds to ss
		{"サピエンス全史", "サピエンス全史", true},
		{"Sapiens", "Sapiens 2", false},
	}
	for _, tt := range tests {
		if got := EqualFold(tt.a, tt.b); got != tt.want {
			t.Errorf("EqualFold(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("The Intelligent Investor", "INVESTOR") {
		t.Error("substring match should ignore case")
	}
	if ContainsFold("Dune", "sapiens") {
		t.Error("unrelated strings must not match")
	}
}

func TestDedupKey(t *testing.T) {
	if DedupKey("Sapiens", "Bill Gates") != DedupKey(" SAPIENS ", "bill gates") {
		t.Error("dedup key must fold case and whitespace")
	}
	// The separator keeps "ab"+"c" distinct from "a"+"bc".
	if DedupKey("ab", "c") == DedupKey("a", "bc") {
		t.Error("key collision across field boundary")
	}
}
