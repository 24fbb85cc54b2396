package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleUploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		respondError(c, fmt.Errorf("open multipart file: %w", err))
		return
	}
	defer func() { _ = f.Close() }()

	filename, err := s.files.Save(header.Filename, header.Size, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": filename, "message": "file uploaded"})
}

func (s *Server) handleGetFile(c *gin.Context) {
	filename := c.Param("filename")
	path, contentType, err := s.files.Open(filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.File(path)
}
