package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tv-alert-webhook/internal/application/ingestion"
	"tv-alert-webhook/internal/domain/alert"
	"tv-alert-webhook/internal/interface/api"
)

func (s *Server) handleWebhook(c *gin.Context) {
	raw, ok := s.bindRawAlert(c)
	if !ok {
		return
	}

	rec, err := s.svc.Ingest(c.Request.Context(), raw)
	if err != nil {
		s.log.Error().Err(err).Msg("webhook processing failed")
		writeError(c, http.StatusInternalServerError, api.CodeInternal, "Processing error")
		return
	}
	c.JSON(http.StatusOK, api.IngestResult("success", "Alert received and processed", rec))
}

func (s *Server) handleStatus(c *gin.Context) {
	total, err := s.svc.Count(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("status check failed")
		writeError(c, http.StatusInternalServerError, api.CodeInternal, "Status check failed")
		return
	}
	c.JSON(http.StatusOK, api.StatusResult("TradingView webhook listener is operational", total, time.Now()))
}

func (s *Server) handleAlerts(c *gin.Context) {
	count := parseIntDefault(c.Query("count"), s.defaultRecent)

	alerts, err := s.svc.Recent(c.Request.Context(), count)
	if err != nil {
		s.log.Error().Err(err).Msg("recent alerts query failed")
		writeError(c, http.StatusInternalServerError, api.CodeInternal, "Alert query failed")
		return
	}
	total, err := s.svc.Count(c.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("alert count failed")
		writeError(c, http.StatusInternalServerError, api.CodeInternal, "Alert query failed")
		return
	}
	c.JSON(http.StatusOK, api.AlertsResult(alerts, total))
}

func (s *Server) handleTest(c *gin.Context) {
	rec, err := s.svc.Ingest(c.Request.Context(), ingestion.SyntheticAlert())
	if err != nil {
		s.log.Error().Err(err).Msg("test alert failed")
		writeError(c, http.StatusInternalServerError, api.CodeInternal, "Test failed")
		return
	}
	c.JSON(http.StatusOK, api.IngestResult("test_success", "Test alert generated and processed", rec))
}

func (s *Server) handleNotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, api.CodeNotFound, "Endpoint not found")
}

// bindRawAlert reads and parses the webhook body. An empty body, unparseable
// JSON or a JSON null are all rejected; an empty object is a valid alert.
func (s *Server) bindRawAlert(c *gin.Context) (alert.RawAlert, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		writeError(c, http.StatusBadRequest, api.CodeBadRequest, "No data received")
		return nil, false
	}

	var raw alert.RawAlert
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(c, http.StatusBadRequest, api.CodeBadRequest, "Invalid JSON format")
		return nil, false
	}
	if raw == nil {
		writeError(c, http.StatusBadRequest, api.CodeBadRequest, "No data received")
		return nil, false
	}
	return raw, true
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, api.ErrorResult(code, msg, time.Now()))
}

func parseIntDefault(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
