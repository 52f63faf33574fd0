package extract

import (
	"testing"
	"time"
)

func ymd(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{name: "slash MDY", text: "WALMART\n03/15/2024\nTotal: $10.00", want: ymd(2024, time.March, 15), ok: true},
		{name: "dash MDY", text: "visited 3-5-2023 at noon", want: ymd(2023, time.March, 5), ok: true},
		{name: "two digit year below pivot", text: "12/31/24", want: ymd(2024, time.December, 31), ok: true},
		{name: "two digit year at pivot", text: "06/01/50", want: ymd(1950, time.June, 1), ok: true},
		{name: "month name day year", text: "Opened Mar 5, 2024", want: ymd(2024, time.March, 5), ok: true},
		{name: "full month name", text: "March 5 2024", want: ymd(2024, time.March, 5), ok: true},
		{name: "day month name year", text: "on 5 Mar 2024 we", want: ymd(2024, time.March, 5), ok: true},
		{name: "iso style", text: "date 2024/03/05 here", want: ymd(2024, time.March, 5), ok: true},
		{name: "first match of first pattern wins", text: "2024/03/05 and 01/02/2023", want: ymd(2023, time.January, 2), ok: true},
		{name: "invalid month does not fall through", text: "13/40/2024", ok: false},
		{name: "invalid day stays invalid", text: "02/30/2024", ok: false},
		{name: "no date", text: "nothing here", ok: false},
		{name: "empty", text: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.text)
			if ok != tt.ok {
				t.Fatalf("Date(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("Date(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMerchant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "first clean line",
			text: "ACME SUPERMARKET\n123 Main St\n03/15/2024",
			want: "ACME SUPERMARKET",
			ok:   true,
		},
		{
			name: "skips date line",
			text: "03/15/2024\nACME SUPERMARKET\nTotal $4.00",
			want: "ACME SUPERMARKET",
			ok:   true,
		},
		{
			name: "skips receipt header",
			text: "RECEIPT\nACME SUPERMARKET\nthanks",
			want: "ACME SUPERMARKET",
			ok:   true,
		},
		{
			name: "skips transaction number",
			text: "Trans #12345\nACME SUPERMARKET",
			want: "ACME SUPERMARKET",
			ok:   true,
		},
		{
			name: "price line disqualified",
			text: "Milk $3.99\nACME SUPERMARKET",
			want: "ACME SUPERMARKET",
			ok:   true,
		},
		{
			name: "falls back to first line verbatim",
			text: "RECEIPT\nInvoice 44\nOrder 12",
			want: "RECEIPT",
			ok:   true,
		},
		{
			name: "too short lines fall back",
			text: "AB\nCD\nEF",
			want: "AB",
			ok:   true,
		},
		{
			name: "multibyte name measured in characters",
			text: "商店イオンマーケット北千住駅前店スーパー\n123 Main St",
			want: "商店イオンマーケット北千住駅前店スーパー",
			ok:   true,
		},
		{name: "empty", text: "", ok: false},
		{name: "whitespace only", text: "  \n \n", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Merchant(tt.text)
			if ok != tt.ok {
				t.Fatalf("Merchant(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Merchant(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "total keyword",
			text: "Milk 3.99\nTotal: $12.50",
			want: "12.50",
			ok:   true,
		},
		{
			name: "max across subtotal and total lines",
			text: "Subtotal $9.00\nTax $1.00\nTotal $10.00",
			want: "10.00",
			ok:   true,
		},
		{
			name: "amount keyword",
			text: "Amount: 33.10",
			want: "33.10",
			ok:   true,
		},
		{
			name: "bare dollar fallback",
			text: "Milk $3.99\nBread $4.25",
			want: "4.25",
			ok:   true,
		},
		{
			name: "bare decimal fallback",
			text: "paid 18.75 cash",
			want: "18.75",
			ok:   true,
		},
		{
			name: "stronger pattern suppresses weaker ones",
			text: "Total 5.00\n$99.99",
			want: "5.00",
			ok:   true,
		},
		{name: "one decimal digit is not an amount", text: "paid 18.7 cash", ok: false},
		{name: "no amount", text: "thanks for shopping", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.text)
			if ok != tt.ok {
				t.Fatalf("Amount(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Amount(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
