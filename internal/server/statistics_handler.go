package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetStatistics(c *gin.Context) {
	report, err := s.stats.ComputeStatistics(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
