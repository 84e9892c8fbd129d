package alert

import "testing"

func TestDecomposeSymbol(t *testing.T) {
	cases := []struct {
		name   string
		symbol string
		want   InstrumentDescriptor
	}{
		{
			name:   "well-formed put",
			symbol: "NIFTY250930P25800",
			want:   InstrumentDescriptor{Underlying: "NIFTY", Expiry: "250930", OptionType: OptionPut, Strike: "25800"},
		},
		{
			name:   "well-formed call",
			symbol: "SENSEX251009C81000",
			want:   InstrumentDescriptor{Underlying: "SENSEX", Expiry: "251009", OptionType: OptionCall, Strike: "81000"},
		},
		{
			name:   "no marker",
			symbol: "RELIANCE",
			want:   InstrumentDescriptor{OptionType: OptionUnknown},
		},
		{
			name:   "empty symbol",
			symbol: "",
			want:   InstrumentDescriptor{OptionType: OptionUnknown},
		},
		{
			name:   "marker appears twice",
			symbol: "PP25800",
			want:   InstrumentDescriptor{OptionType: OptionUnknown},
		},
		{
			name:   "double P never falls back to call",
			symbol: "TOPP250930C25800",
			want:   InstrumentDescriptor{OptionType: OptionUnknown},
		},
		{
			name:   "P wins over C",
			symbol: "NIFTYC250930P25800",
			want:   InstrumentDescriptor{Underlying: "NIFTYC", Expiry: "250930", OptionType: OptionPut, Strike: "25800"},
		},
		{
			name:   "prefix too short for expiry",
			symbol: "NIP25800",
			want:   InstrumentDescriptor{OptionType: OptionPut, Strike: "25800"},
		},
		{
			name:   "marker only",
			symbol: "C",
			want:   InstrumentDescriptor{OptionType: OptionCall},
		},
		{
			name:   "empty underlying",
			symbol: "250930C19500",
			want:   InstrumentDescriptor{Expiry: "250930", OptionType: OptionCall, Strike: "19500"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecomposeSymbol(tc.symbol); got != tc.want {
				t.Errorf("DecomposeSymbol(%q) = %+v, want %+v", tc.symbol, got, tc.want)
			}
		})
	}
}

func TestDecomposeSymbolRoundTrip(t *testing.T) {
	underlyings := []string{"NIFTY", "SENSEX", "FINIFTY", ""}
	markers := map[string]OptionType{"P": OptionPut, "C": OptionCall}
	const expiry, strike = "260115", "21750"

	for _, u := range underlyings {
		for marker, optType := range markers {
			symbol := u + expiry + marker + strike
			got := DecomposeSymbol(symbol)
			want := InstrumentDescriptor{Underlying: u, Expiry: expiry, OptionType: optType, Strike: strike}
			if got != want {
				t.Errorf("DecomposeSymbol(%q) = %+v, want %+v", symbol, got, want)
			}
		}
	}
}
