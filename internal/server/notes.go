package server

import (
	"net/http"

	"github.com/agenthands/carelens/internal/core"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateNote(c *gin.Context) {
	var req core.NewNote
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	note, err := s.Notes.Create(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (s *Server) GetNote(c *gin.Context) {
	note, err := s.Notes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// UpdateNote accepts care_client and/or note_text. Only new text triggers
// re-analysis.
func (s *Server) UpdateNote(c *gin.Context) {
	var req core.NoteUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	note, err := s.Notes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (s *Server) DeleteNote(c *gin.Context) {
	if err := s.Notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
