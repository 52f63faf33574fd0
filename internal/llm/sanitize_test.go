package llm

import (
	"testing"
)

func TestParseFieldSet(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    FieldSet
		wantErr bool
	}{
		{
			name: "full response",
			raw:  `{"date":"2024-03-01","merchant":"Acme","amount":"20.00","category":"Groceries"}`,
			want: FieldSet{Date: "2024-03-01", Merchant: "Acme", Amount: "20.00", Category: "Groceries"},
		},
		{
			name: "nulls dropped",
			raw:  `{"date":null,"merchant":"Beta Mart","amount":null,"category":"Dining"}`,
			want: FieldSet{Merchant: "Beta Mart", Category: "Dining"},
		},
		{
			name: "code fences stripped",
			raw:  "```json\n{\"merchant\":\"Acme\"}\n```",
			want: FieldSet{Merchant: "Acme"},
		},
		{
			name: "numeric amount coerced to two decimals",
			raw:  `{"amount": 12.5}`,
			want: FieldSet{Amount: "12.50"},
		},
		{
			name: "dollar sign trimmed from amount",
			raw:  `{"amount":"$45.00"}`,
			want: FieldSet{Amount: "45.00"},
		},
		{
			name: "unknown keys removed",
			raw:  `{"merchant":"Acme","confidence":0.9,"notes":"hi"}`,
			want: FieldSet{Merchant: "Acme"},
		},
		{
			name: "whitespace trimmed",
			raw:  `{"merchant":"  Acme  "}`,
			want: FieldSet{Merchant: "Acme"},
		},
		{
			name:    "not json",
			raw:     "sorry, I cannot help with that",
			wantErr: true,
		},
		{
			name:    "malformed date rejected by schema",
			raw:     `{"date":"03/01/2024"}`,
			wantErr: true,
		},
		{
			name:    "unparsable amount dropped",
			raw:     `{"amount":"twelve"}`,
			want:    FieldSet{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFieldSet([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFieldSet(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseFieldSet(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
