package ingestion

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tv-alert-webhook/internal/domain/alert"
)

type stubStore struct {
	appended []alert.AlertRecord
	err      error
}

func (s *stubStore) Append(_ context.Context, rec alert.AlertRecord) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.appended = append(s.appended, rec)
	return "stub-" + strconv.Itoa(len(s.appended)), nil
}

func (s *stubStore) Recent(_ context.Context, count int) ([]alert.AlertRecord, error) {
	if count > len(s.appended) {
		count = len(s.appended)
	}
	return s.appended[len(s.appended)-count:], nil
}

func (s *stubStore) Count(context.Context) (int, error) {
	return len(s.appended), nil
}

func TestServiceIngest(t *testing.T) {
	store := &stubStore{}
	var summary bytes.Buffer
	svc := NewService(store, zerolog.Nop(), &summary)
	svc.now = func() time.Time { return time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC) }

	rec, err := svc.Ingest(context.Background(), alert.RawAlert{
		"ALERTNAME": "NEW BUY ORDER",
		"symbol":    "NIFTY250930P25800",
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if rec.ID != "stub-1" {
		t.Errorf("ID = %q, want stub-1", rec.ID)
	}
	if len(store.appended) != 1 {
		t.Fatalf("store got %d records, want 1", len(store.appended))
	}

	line := summary.String()
	if !strings.Contains(line, `alert="NEW BUY ORDER"`) {
		t.Errorf("summary line missing alert name: %q", line)
	}
	if !strings.Contains(line, "underlying=NIFTY") {
		t.Errorf("summary line missing instrument: %q", line)
	}
}

func TestServiceIngestStoreFailure(t *testing.T) {
	boom := errors.New("table unavailable")
	svc := NewService(&stubStore{err: boom}, zerolog.Nop(), nil)

	_, err := svc.Ingest(context.Background(), alert.RawAlert{"ALERTNAME": "X"})
	if !errors.Is(err, boom) {
		t.Fatalf("Ingest error = %v, want wrapped %v", err, boom)
	}
}

func TestSyntheticAlert(t *testing.T) {
	svc := NewService(&stubStore{}, zerolog.Nop(), nil)

	rec, err := svc.Ingest(context.Background(), SyntheticAlert())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if rec.AlertName != "TEST ALERT" {
		t.Errorf("AlertName = %q", rec.AlertName)
	}
	if rec.Instrument.OptionType != alert.OptionPut || rec.Instrument.Strike != "25800" {
		t.Errorf("Instrument = %+v", rec.Instrument)
	}
	if rec.Raw["test_mode"] != true {
		t.Errorf("test_mode flag missing: %v", rec.Raw)
	}
}
