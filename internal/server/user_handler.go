package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateTempUser(c *gin.Context) {
	u, err := s.users.CreateTempUser(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header(TempIDHeader, u.TempID)
	c.JSON(http.StatusOK, gin.H{"tempId": u.TempID, "message": "temporary user created"})
}

func (s *Server) handleValidateTempID(c *gin.Context) {
	tempID := c.Param("tempId")
	valid, err := s.users.ValidateTempID(c.Request.Context(), tempID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "temp id is valid"
	if !valid {
		message = "temp id is not valid"
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid, "tempId": tempID, "message": message})
}
