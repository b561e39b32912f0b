package signal

import "testing"

func TestLooksLikeSignal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"market order", "GBP/USD Buy Now\nSL 1.2500\nTP 1.2650", true},
		{"limit order concat symbol", "EURUSD Sell Limit 1.1448\nSL 1.1480\nTP 1.1400", true},
		{"gold alias", "GOLD Buy\nEntry 1940\nSL 1935\nTP 1950", true},
		{"plain chatter", "доброе утро, рынок сегодня тихий", false},
		{"symbol without order phrase", "GBPUSD ушёл в боковик, ждём", false},
		{"order phrase without symbol", "Buy the dip!\nSL tight\nTP moon", false},
		{"symbol not in first line", "сигнал ниже\nGBPUSD Buy Now\nSL 1.2500", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LooksLikeSignal(tc.raw); got != tc.want {
				t.Errorf("LooksLikeSignal(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}
