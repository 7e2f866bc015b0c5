package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"board/internal/board"
	"board/internal/gateway"
)

// Server exposes the board store to the website's presentation components.
type Server struct {
	engine    *gin.Engine
	store     *board.Store
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *board.Store, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine:    router,
		store:     store,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		b := api.Group("/board")
		{
			b.GET("", s.handleGetBoard)
			b.POST("/refresh", s.handleRefreshBoard)
			b.POST("/projects", s.handleCreateProject)
			b.PATCH("/projects/:id", s.handleUpdateProject)
			b.DELETE("/projects/:id", s.handleDeleteProject)
			b.PUT("/columns/:id/order", s.handleReorderColumn)
			b.PUT("/columns", s.handleSetColumns)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondGatewayError maps gateway error kinds onto HTTP statuses.
func (s *Server) respondGatewayError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch gateway.KindOf(err) {
	case gateway.KindValidation:
		status = http.StatusBadRequest
	case gateway.KindNotFound:
		status = http.StatusNotFound
	}
	s.respondError(c, status, err)
}
