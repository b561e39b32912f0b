package risk

import "testing"

func TestPipMultiplier(t *testing.T) {
	cases := []struct {
		symbol string
		entry  float64
		want   float64
	}{
		{"XAUUSD", 1940.0, 0.1},
		{"XAGUSD", 24.5, 0.001},
		{"USDJPY", 145.50, 0.01},  // трёхзначная котировка
		{"GBPJPY", 188.123, 0.01},
		{"GBPUSD", 1.25, 0.0001},  // обычная четырёхзначная
		{"EURUSD", 1.1448, 0.0001},
		{"NZDUSD", 0.61, 0.0001},
	}

	for _, tc := range cases {
		if got := PipMultiplier(tc.symbol, tc.entry); got != tc.want {
			t.Errorf("PipMultiplier(%s, %v) = %v, want %v", tc.symbol, tc.entry, got, tc.want)
		}
	}
}
