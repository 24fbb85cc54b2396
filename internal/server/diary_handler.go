package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/at-ishikawa/diary/internal/diary"
)

func (s *Server) handleListDiaries(c *gin.Context) {
	req, err := pageRequest(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	page, err := s.diaries.List(c.Request.Context(), currentUser(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page))
}

func (s *Server) handleSearchDiaries(c *gin.Context) {
	req, err := pageRequest(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	startDate, err := dateQuery(c, "startDate")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	endDate, err := dateQuery(c, "endDate")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	criteria := diary.Criteria{
		Title:     c.Query("title"),
		Content:   c.Query("content"),
		StartDate: startDate,
		EndDate:   endDate,
	}
	page, err := s.diaries.Search(c.Request.Context(), currentUser(c).ID, criteria, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPageResponse(page))
}

func (s *Server) handleGetDiary(c *gin.Context) {
	id, ok := diaryID(c)
	if !ok {
		return
	}
	d, err := s.diaries.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDiaryResponse(d))
}

func (s *Server) handleCreateDiary(c *gin.Context) {
	in, ok := diaryInput(c)
	if !ok {
		return
	}
	d, err := s.diaries.Create(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDiaryResponse(d))
}

func (s *Server) handleUpdateDiary(c *gin.Context) {
	id, ok := diaryID(c)
	if !ok {
		return
	}
	in, ok := diaryInput(c)
	if !ok {
		return
	}
	d, err := s.diaries.Update(c.Request.Context(), currentUser(c).ID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDiaryResponse(d))
}

func (s *Server) handleDeleteDiary(c *gin.Context) {
	id, ok := diaryID(c)
	if !ok {
		return
	}
	if err := s.diaries.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "diary deleted"})
}

func diaryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, fmt.Sprintf("invalid diary id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

func diaryInput(c *gin.Context) (diary.Input, bool) {
	var req diaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return diary.Input{}, false
	}

	in := diary.Input{
		Title:     req.Title,
		Content:   req.Content,
		ImagePath: req.ImagePath,
	}
	if date := strings.TrimSpace(req.DiaryDate); date != "" {
		t, err := time.Parse(diary.DateLayout, date)
		if err != nil {
			badRequest(c, fmt.Sprintf("invalid diaryDate %q, want YYYY-MM-DD", req.DiaryDate))
			return diary.Input{}, false
		}
		in.DiaryDate = &t
	}
	return in, true
}

func pageRequest(c *gin.Context) (diary.PageRequest, error) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return diary.PageRequest{}, err
	}
	size, err := intQuery(c, "size", diary.DefaultPageSize)
	if err != nil {
		return diary.PageRequest{}, err
	}
	return diary.PageRequest{Page: page, Size: size}, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

func dateQuery(c *gin.Context, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(diary.DateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q, want YYYY-MM-DD", key, v)
	}
	return &t, nil
}
