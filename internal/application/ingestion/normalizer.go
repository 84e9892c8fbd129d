// Package ingestion turns raw webhook payloads into normalized alert records
// and coordinates their storage.
package ingestion

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"tv-alert-webhook/internal/domain/alert"
)

// Normalize maps a raw payload onto an AlertRecord. Missing fields get
// defaults, present fields are coerced to strings, and the raw payload is
// retained verbatim. Normalization never rejects a payload.
func Normalize(raw alert.RawAlert, now time.Time) alert.AlertRecord {
	rec := alert.AlertRecord{
		ReceivedAt:        now,
		AlertName:         fieldString(raw, "ALERTNAME", "UNKNOWN"),
		Symbol:            fieldString(raw, "symbol", ""),
		LimitPrice:        fieldString(raw, "limit_price", "0"),
		CapitalPercent:    fieldString(raw, "capital_percent", "0"),
		LotSize:           fieldString(raw, "lot_size", "0"),
		OrderSlicingValue: fieldString(raw, "order_slicing_value", "0"),
		TotalQuantity:     fieldString(raw, "total_quantity", "0"),
		Processed:         false,
		Instrument:        alert.InstrumentDescriptor{OptionType: alert.OptionUnknown},
		Raw:               raw,
	}
	if rec.Symbol != "" {
		rec.Instrument = alert.DecomposeSymbol(rec.Symbol)
	}
	return rec
}

// fieldString returns the coerced value for key, or def when the key is
// absent. A present key always wins, even when its value coerces to "".
func fieldString(raw alert.RawAlert, key, def string) string {
	v, ok := raw[key]
	if !ok {
		return def
	}
	return coerceString(v)
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
