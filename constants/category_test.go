package constants

import "testing"

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
		ok    bool
	}{
		{name: "exact match", input: "Groceries", want: Groceries, ok: true},
		{name: "case insensitive", input: "dining", want: Dining, ok: true},
		{name: "surrounding whitespace", input: "  Travel  ", want: Travel, ok: true},
		{name: "outside the set", input: "Rocket Fuel", want: Other, ok: false},
		{name: "empty", input: "", want: Other, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Canonicalize(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Canonicalize(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAsStringSlice(t *testing.T) {
	got := AsStringSlice()
	if len(got) != len(allCategories) {
		t.Fatalf("AsStringSlice returned %d labels, want %d", len(got), len(allCategories))
	}
	if got[len(got)-1] != string(Other) {
		t.Errorf("last label = %q, want %q", got[len(got)-1], Other)
	}
}
