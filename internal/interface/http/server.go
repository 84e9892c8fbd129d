package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tv-alert-webhook/internal/application/ingestion"
)

// Server wires the shared ingestion service into the listener's HTTP routes.
type Server struct {
	engine        *gin.Engine
	svc           *ingestion.Service
	log           zerolog.Logger
	defaultRecent int
}

// NewServer builds the gin router. defaultRecent is the /alerts count used
// when the query parameter is omitted.
func NewServer(svc *ingestion.Service, logger zerolog.Logger, defaultRecent int) *Server {
	if defaultRecent <= 0 {
		defaultRecent = 10
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:        engine,
		svc:           svc,
		log:           logger,
		defaultRecent: defaultRecent,
	}
	s.registerRoutes()
	return s
}

// Handler returns the router for the HTTP server to mount.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.POST("/webhook", s.handleWebhook)
	s.engine.GET("/status", s.handleStatus)
	s.engine.GET("/alerts", s.handleAlerts)
	s.engine.POST("/test", s.handleTest)
	s.engine.NoRoute(s.handleNotFound)
}
