package ingestion

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"tv-alert-webhook/internal/domain/alert"
)

// AlertStore is the persistence surface the service needs. The listener
// backs it with an in-memory log, the Lambda variant with DynamoDB.
type AlertStore interface {
	Append(ctx context.Context, rec alert.AlertRecord) (string, error)
	Recent(ctx context.Context, count int) ([]alert.AlertRecord, error)
	Count(ctx context.Context) (int, error)
}

// Service normalizes incoming alerts and persists them.
type Service struct {
	store   AlertStore
	log     zerolog.Logger
	summary io.Writer

	now func() time.Time
}

// NewService wires the ingestion pipeline. summary is an optional plain-text
// sink that receives one line per ingested alert; nil disables it.
func NewService(store AlertStore, logger zerolog.Logger, summary io.Writer) *Service {
	if summary == nil {
		summary = io.Discard
	}
	return &Service{
		store:   store,
		log:     logger,
		summary: summary,
		now:     time.Now,
	}
}

// Ingest normalizes the raw payload, appends it to the store and returns the
// stored record with its assigned id.
func (s *Service) Ingest(ctx context.Context, raw alert.RawAlert) (alert.AlertRecord, error) {
	rec := Normalize(raw, s.now().UTC())

	id, err := s.store.Append(ctx, rec)
	if err != nil {
		return alert.AlertRecord{}, fmt.Errorf("append alert: %w", err)
	}
	rec.ID = id

	s.log.Info().
		Str("alert_id", rec.ID).
		Str("alert_name", rec.AlertName).
		Str("symbol", rec.Symbol).
		Str("option_type", string(rec.Instrument.OptionType)).
		Msg("alert ingested")
	s.writeSummary(rec)
	return rec, nil
}

// Recent returns up to count most recent alerts.
func (s *Service) Recent(ctx context.Context, count int) ([]alert.AlertRecord, error) {
	return s.store.Recent(ctx, count)
}

// Count reports the number of stored alerts.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *Service) writeSummary(rec alert.AlertRecord) {
	line := fmt.Sprintf("%s alert=%q symbol=%s limit_price=%s capital_percent=%s lot_size=%s order_slicing_value=%s total_quantity=%s",
		rec.ReceivedAt.Format(time.RFC3339), rec.AlertName, rec.Symbol,
		rec.LimitPrice, rec.CapitalPercent, rec.LotSize, rec.OrderSlicingValue, rec.TotalQuantity)
	if rec.Instrument.OptionType != alert.OptionUnknown {
		line += fmt.Sprintf(" underlying=%s expiry=%s option_type=%s strike=%s",
			rec.Instrument.Underlying, rec.Instrument.Expiry, rec.Instrument.OptionType, rec.Instrument.Strike)
	}
	fmt.Fprintln(s.summary, line)
}

// SyntheticAlert is the fixed payload the test operation ingests. It runs the
// full pipeline, so a stored test alert is indistinguishable from a real one
// apart from the test_mode flag.
func SyntheticAlert() alert.RawAlert {
	return alert.RawAlert{
		"ALERTNAME":           "TEST ALERT",
		"symbol":              "NIFTY250930P25800",
		"limit_price":         "25800",
		"capital_percent":     "50",
		"lot_size":            "75",
		"order_slicing_value": "1800",
		"total_quantity":      "3750",
		"test_mode":           true,
	}
}
