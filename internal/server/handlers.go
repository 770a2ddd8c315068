package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// updateTasksRequest is the body of POST /api/tasks. Tasks stays raw so a
// missing or non-array value can fall back to an empty list.
type updateTasksRequest struct {
	Tasks json.RawMessage `json:"tasks"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetTasks(c *gin.Context) {
	day, err := s.tracker.TasksForToday()
	if err != nil {
		s.logger.Error("loading today's tasks", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare today's tasks"})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (s *Server) handleUpdateTasks(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)

	var req updateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn("rejecting oversized tasks payload", "limit", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		// A bad payload still replaces today's tasks with an empty list.
		s.logger.Debug("ignoring invalid tasks payload", "err", err)
		req.Tasks = nil
	}

	if _, err := s.tracker.UpdateTasksForToday(req.Tasks); err != nil {
		s.logger.Error("saving today's tasks", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleHeatmap(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Heatmap())
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.tracker.Stats())
}
