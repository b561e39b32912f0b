package signal

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeStripsPipNoise(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "pips with count and remark",
			in:   "GBP/USD Buy Now\nSL 1.2400 30 pips (tight)\nTP 1.2600",
			want: []string{"GBP/USD Buy Now", "SL 1.2400", "TP 1.2600"},
		},
		{
			name: "style annotation",
			in:   "EUR/USD Sell Limit scalper (fast)\nSL 1.1480\nTP 1.1400",
			want: []string{"EUR/USD Sell Limit", "SL 1.1480", "TP 1.1400"},
		},
		{
			name: "spaced number becomes decimal",
			in:   "EUR/USD Sell Limit\nEntry 1 14480\nSL 1.14800\nTP 1.14000",
			want: []string{"EUR/USD Sell Limit", "Entry 1.14480", "SL 1.14800", "TP 1.14000"},
		},
		{
			name: "crlf and trailing spaces",
			in:   "GBP/USD Buy Now  \r\nSL 1.2400\t\r\nTP 1.2600",
			want: []string{"GBP/USD Buy Now", "SL 1.2400", "TP 1.2600"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("lines = %q, want %q", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raws := []string{
		"GBP/USD Buy Now\nSL 1.2400 30 pips (tight)\nTP 1.2600",
		"EUR/USD Sell Limit\nEntry 1 14480\nSL 1.14800\nTP 1.14000",
		"BUY GBPUSD\nEntry NOW\nSL 1.14336\nTP 1.28930\nTP 1.29845",
	}

	for _, raw := range raws {
		first, err := Normalize(raw)
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		second, err := Normalize(strings.Join(first, "\n"))
		if err != nil {
			t.Fatalf("повторный Normalize: %v", err)
		}
		if len(second) != len(first) {
			t.Fatalf("повтор изменил число строк: %q -> %q", first, second)
		}
		for i := range first {
			if second[i] != first[i] {
				t.Errorf("повтор изменил строку %d: %q -> %q", i, first[i], second[i])
			}
		}
	}
}

func TestNormalizeTooFewLines(t *testing.T) {
	for _, in := range []string{"", "GBPUSD Buy Now", "GBPUSD Buy Now\nSL 1.2400"} {
		if _, err := Normalize(in); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Normalize(%q) err = %v, want ErrEmptyInput", in, err)
		}
	}
}
