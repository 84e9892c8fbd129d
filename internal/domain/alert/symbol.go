package alert

import "strings"

// DecomposeSymbol splits an Indian option symbol such as NIFTY250930P25800
// into underlying, expiry, option type and strike. P is checked before C, so
// a symbol containing both markers is treated as a put. Decomposition never
// fails; anything that does not fit the layout degrades to OptionUnknown
// with empty fields.
func DecomposeSymbol(symbol string) InstrumentDescriptor {
	desc := InstrumentDescriptor{OptionType: OptionUnknown}

	var marker string
	switch {
	case strings.Contains(symbol, "P"):
		marker = "P"
		desc.OptionType = OptionPut
	case strings.Contains(symbol, "C"):
		marker = "C"
		desc.OptionType = OptionCall
	default:
		return desc
	}

	parts := strings.Split(symbol, marker)
	if len(parts) != 2 {
		// marker appears more than once, the split is ambiguous
		return InstrumentDescriptor{OptionType: OptionUnknown}
	}
	desc.Strike = parts[1]

	prefix := parts[0]
	if len(prefix) >= 6 {
		desc.Underlying = prefix[:len(prefix)-6]
		desc.Expiry = prefix[len(prefix)-6:]
	}
	return desc
}
