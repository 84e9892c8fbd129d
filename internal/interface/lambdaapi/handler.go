// Package lambdaapi adapts API Gateway proxy events to the shared ingestion
// service. Each invocation is stateless; the DynamoDB store carries all
// state between invocations.
package lambdaapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"tv-alert-webhook/internal/application/ingestion"
	"tv-alert-webhook/internal/domain/alert"
	"tv-alert-webhook/internal/interface/api"
)

// Handler routes API Gateway requests to the ingestion service.
type Handler struct {
	svc           *ingestion.Service
	log           zerolog.Logger
	defaultRecent int
}

// New builds the Lambda-facing handler.
func New(svc *ingestion.Service, logger zerolog.Logger, defaultRecent int) *Handler {
	if defaultRecent <= 0 {
		defaultRecent = 10
	}
	return &Handler{svc: svc, log: logger, defaultRecent: defaultRecent}
}

// Handle is the Lambda entrypoint. Every fault is converted to a JSON error
// envelope; the returned error is always nil so API Gateway sees a proper
// HTTP response instead of a 502.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch {
	case req.Path == "/webhook" && req.HTTPMethod == http.MethodPost:
		return h.handleWebhook(ctx, req), nil
	case req.Path == "/status" && req.HTTPMethod == http.MethodGet:
		return h.handleStatus(ctx), nil
	case req.Path == "/alerts" && req.HTTPMethod == http.MethodGet:
		return h.handleAlerts(ctx, req), nil
	case req.Path == "/test" && req.HTTPMethod == http.MethodPost:
		return h.handleTest(ctx), nil
	default:
		return errorResponse(http.StatusNotFound, api.CodeNotFound, "Endpoint not found"), nil
	}
}

func (h *Handler) handleWebhook(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return errorResponse(http.StatusBadRequest, api.CodeBadRequest, "No data received")
	}

	var raw alert.RawAlert
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return errorResponse(http.StatusBadRequest, api.CodeBadRequest, "Invalid JSON format")
	}
	if raw == nil {
		return errorResponse(http.StatusBadRequest, api.CodeBadRequest, "No data received")
	}

	rec, err := h.svc.Ingest(ctx, raw)
	if err != nil {
		h.log.Error().Err(err).Msg("webhook processing failed")
		return errorResponse(http.StatusInternalServerError, api.CodeInternal, "Processing error")
	}
	return jsonResponse(http.StatusOK, api.IngestResult("success", "TradingView alert received and processed", rec))
}

func (h *Handler) handleStatus(ctx context.Context) events.APIGatewayProxyResponse {
	total, err := h.svc.Count(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("status check failed")
		return errorResponse(http.StatusInternalServerError, api.CodeInternal, "Status check failed")
	}
	return jsonResponse(http.StatusOK, api.StatusResult("TradingView webhook handler is operational", total, time.Now()))
}

func (h *Handler) handleAlerts(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	count := h.defaultRecent
	if v, ok := req.QueryStringParameters["count"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			count = n
		}
	}

	alerts, err := h.svc.Recent(ctx, count)
	if err != nil {
		h.log.Error().Err(err).Msg("recent alerts query failed")
		return errorResponse(http.StatusInternalServerError, api.CodeInternal, "Alert query failed")
	}
	total, err := h.svc.Count(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("alert count failed")
		return errorResponse(http.StatusInternalServerError, api.CodeInternal, "Alert query failed")
	}
	return jsonResponse(http.StatusOK, api.AlertsResult(alerts, total))
}

func (h *Handler) handleTest(ctx context.Context) events.APIGatewayProxyResponse {
	rec, err := h.svc.Ingest(ctx, ingestion.SyntheticAlert())
	if err != nil {
		h.log.Error().Err(err).Msg("test alert failed")
		return errorResponse(http.StatusInternalServerError, api.CodeInternal, "Test failed")
	}
	return jsonResponse(http.StatusOK, api.IngestResult("test_success", "Test alert generated and processed", rec))
}

func jsonResponse(status int, body interface{}) events.APIGatewayProxyResponse {
	buf, err := json.Marshal(body)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, api.CodeInternal, "Encoding error")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders(),
		Body:       string(buf),
	}
}

func errorResponse(status int, code, msg string) events.APIGatewayProxyResponse {
	buf, _ := json.Marshal(api.ErrorResult(code, msg, time.Now()))
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders(),
		Body:       string(buf),
	}
}

func responseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}
