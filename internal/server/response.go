package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/at-ishikawa/diary/internal/diary"
	"github.com/at-ishikawa/diary/internal/upload"
)

type diaryRequest struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	DiaryDate string  `json:"diaryDate"`
	ImagePath *string `json:"imagePath"`
}

type diaryResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	DiaryDate string    `json:"diaryDate"`
	ImagePath *string   `json:"imagePath"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type pageResponse struct {
	Content       []diaryResponse `json:"content"`
	Number        int             `json:"number"`
	Size          int             `json:"size"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
}

func toDiaryResponse(d *diary.Diary) diaryResponse {
	return diaryResponse{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		DiaryDate: d.DiaryDate.Format(diary.DateLayout),
		ImagePath: d.ImagePath,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toPageResponse(p diary.Page) pageResponse {
	content := make([]diaryResponse, 0, len(p.Diaries))
	for i := range p.Diaries {
		content = append(content, toDiaryResponse(&p.Diaries[i]))
	}
	return pageResponse{
		Content:       content,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages(),
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var validationErr *diary.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validationErr.Messages})
	case errors.Is(err, diary.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "diary not found"})
	case errors.Is(err, upload.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
	case errors.Is(err, upload.ErrInvalidFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
