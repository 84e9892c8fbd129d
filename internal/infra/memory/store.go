package memory

import (
	"context"
	"strconv"
	"sync"

	"tv-alert-webhook/internal/domain/alert"
)

// AlertLog is the listener's in-memory ordered alert history. The gin server
// handles requests concurrently, so every access goes through the mutex. The
// log lives and dies with the process; there is no persistence across
// restarts.
type AlertLog struct {
	mu     sync.RWMutex
	alerts []alert.AlertRecord
}

// NewAlertLog builds an empty log.
func NewAlertLog() *AlertLog {
	return &AlertLog{alerts: make([]alert.AlertRecord, 0, 64)}
}

// Append stores the record and assigns a 1-based monotonically increasing
// sequence number as id.
func (l *AlertLog) Append(_ context.Context, rec alert.AlertRecord) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec.ID = strconv.Itoa(len(l.alerts) + 1)
	l.alerts = append(l.alerts, rec)
	return rec.ID, nil
}

// Recent returns up to count most recent records in arrival order. The
// result is a copy, so callers never observe later appends.
func (l *AlertLog) Recent(_ context.Context, count int) ([]alert.AlertRecord, error) {
	if count < 0 {
		count = 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if count > len(l.alerts) {
		count = len(l.alerts)
	}
	out := make([]alert.AlertRecord, count)
	copy(out, l.alerts[len(l.alerts)-count:])
	return out, nil
}

// Count reports the total number of alerts appended since startup.
func (l *AlertLog) Count(context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.alerts), nil
}
