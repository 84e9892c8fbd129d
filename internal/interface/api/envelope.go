// Package api holds the response envelopes shared by the HTTP listener and
// the Lambda adapter, so both deployment variants answer with identical
// shapes.
package api

import (
	"fmt"
	"time"

	"tv-alert-webhook/internal/domain/alert"
)

// Endpoints advertised by the status operation.
var Endpoints = []string{"/webhook", "/status", "/alerts", "/test"}

// Error codes carried in error envelopes. The HTTP status code remains the
// primary machine signal; these are for humans reading logs.
const (
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)

// IngestResult is the success body for the webhook and test operations.
func IngestResult(status, message string, rec alert.AlertRecord) map[string]interface{} {
	return map[string]interface{}{
		"status":     status,
		"message":    message,
		"alert_id":   rec.ID,
		"timestamp":  rec.ReceivedAt.UTC().Format(time.RFC3339),
		"alert_name": rec.AlertName,
		"symbol":     rec.Symbol,
	}
}

// StatusResult is the body for the status operation.
func StatusResult(message string, total int, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"status":              "running",
		"message":             message,
		"total_alerts":        total,
		"server_time":         now.UTC().Format(time.RFC3339),
		"endpoints_available": Endpoints,
	}
}

// AlertsResult is the body for the recent-alerts operation.
func AlertsResult(alerts []alert.AlertRecord, total int) map[string]interface{} {
	return map[string]interface{}{
		"alerts":          alerts,
		"alerts_returned": len(alerts),
		"total_count":     total,
		"message":         fmt.Sprintf("Returning %d most recent alerts", len(alerts)),
	}
}

// ErrorResult is the uniform failure envelope.
func ErrorResult(code, message string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"error":      true,
		"error_code": code,
		"message":    message,
		"timestamp":  now.UTC().Format(time.RFC3339),
	}
}
