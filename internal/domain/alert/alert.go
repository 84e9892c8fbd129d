// Package alert holds the core alert model: the raw TradingView payload, the
// normalized record derived from it, and the option-symbol decomposition.
package alert

import "time"

// RawAlert is the webhook payload exactly as TradingView sent it. Keys and
// value types are unconstrained; normalization deals with whatever shows up.
type RawAlert map[string]interface{}

// OptionType classifies the instrument leg encoded in the symbol.
type OptionType string

const (
	OptionPut     OptionType = "PUT"
	OptionCall    OptionType = "CALL"
	OptionUnknown OptionType = "UNKNOWN"
)

// InstrumentDescriptor is the decomposed option symbol. Fields other than
// OptionType stay empty when the symbol cannot be decomposed.
type InstrumentDescriptor struct {
	Underlying string     `json:"underlying"`
	Expiry     string     `json:"expiry"`
	OptionType OptionType `json:"option_type"`
	Strike     string     `json:"strike"`
}

// AlertRecord is the normalized form every alert takes before storage. The
// numeric trade parameters are kept as strings: TradingView sends them in
// whatever type the alert template used, and downstream consumers treat them
// as opaque until order placement.
type AlertRecord struct {
	ID                string               `json:"alert_id"`
	ReceivedAt        time.Time            `json:"received_at"`
	AlertName         string               `json:"alert_name"`
	Symbol            string               `json:"symbol"`
	LimitPrice        string               `json:"limit_price"`
	CapitalPercent    string               `json:"capital_percent"`
	LotSize           string               `json:"lot_size"`
	OrderSlicingValue string               `json:"order_slicing_value"`
	TotalQuantity     string               `json:"total_quantity"`
	Processed         bool                 `json:"processed"`
	Instrument        InstrumentDescriptor `json:"instrument"`
	Raw               RawAlert             `json:"raw"`
}
