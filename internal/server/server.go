package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/agenthands/carelens/internal/core"
	"github.com/agenthands/carelens/internal/core/model"
	"github.com/agenthands/carelens/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	Clients   *core.Clients
	Notes     *core.Notes
	Analytics *core.Analytics
	Logger    *zap.Logger
}

func NewServer(clients *core.Clients, notes *core.Notes, analytics *core.Analytics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Clients:   clients,
		Notes:     notes,
		Analytics: analytics,
		Logger:    logger,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/clients")

	api.GET("/careclients", s.ListClients)
	api.POST("/careclients", s.CreateClient)
	api.GET("/careclients/:id", s.GetClient)
	api.PATCH("/careclients/:id", s.UpdateClient)
	api.DELETE("/careclients/:id", s.DeleteClient)
	api.GET("/careclients/:id/notes", s.ListClientNotes)

	api.POST("/client-notes", s.CreateNote)
	api.GET("/client-notes/:id", s.GetNote)
	api.PATCH("/client-notes/:id", s.UpdateNote)
	api.DELETE("/client-notes/:id", s.DeleteNote)
	// Listing under the notes resource, keyed by client id.
	api.GET("/client-notes/:id/notes", s.ListClientNotes)

	api.GET("/analytics/client/:id/note-distribution", s.NoteDistribution)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// fail maps service errors to HTTP statuses. Unexpected errors are logged
// and reported without detail.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Modified concurrently, retry the request"})
	case errors.Is(err, core.ErrTextRequired),
		errors.Is(err, core.ErrClientRequired),
		errors.Is(err, model.ErrNameRequired),
		errors.Is(err, model.ErrBirthInFuture),
		errors.Is(err, model.ErrInvalidGender),
		errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, errInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.Logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (s *Server) NoteDistribution(c *gin.Context) {
	report, err := s.Analytics.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
