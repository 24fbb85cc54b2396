// Package server exposes the diary REST API over gin.
package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/diary/internal/diary"
	"github.com/at-ishikawa/diary/internal/statistics"
	"github.com/at-ishikawa/diary/internal/user"
)

// TempIDHeader carries the temp ID of the caller in both directions.
const TempIDHeader = "X-Temp-Id"

// UserService resolves and creates temporary users.
type UserService interface {
	CreateTempUser(ctx context.Context) (*user.User, error)
	ValidateTempID(ctx context.Context, tempID string) (bool, error)
	GetOrCreate(ctx context.Context, tempID string) (*user.User, error)
}

// DiaryService manages the diaries of a user.
type DiaryService interface {
	List(ctx context.Context, userID int64, req diary.PageRequest) (diary.Page, error)
	Search(ctx context.Context, userID int64, criteria diary.Criteria, req diary.PageRequest) (diary.Page, error)
	Get(ctx context.Context, userID, id int64) (*diary.Diary, error)
	Create(ctx context.Context, userID int64, in diary.Input) (*diary.Diary, error)
	Update(ctx context.Context, userID, id int64, in diary.Input) (*diary.Diary, error)
	Delete(ctx context.Context, userID, id int64) error
}

// StatisticsService computes the statistics report of a user.
type StatisticsService interface {
	ComputeStatistics(ctx context.Context, userID int64) (statistics.Report, error)
}

// FileStore stores uploaded images.
type FileStore interface {
	Save(originalName string, size int64, r io.Reader) (string, error)
	Open(filename string) (string, string, error)
}

// Server routes HTTP requests to the services.
type Server struct {
	users   UserService
	diaries DiaryService
	stats   StatisticsService
	files   FileStore

	router *gin.Engine
}

// New creates a Server. allowedOrigins are the CORS origins browsers may call from.
func New(users UserService, diaries DiaryService, stats StatisticsService, files FileStore, allowedOrigins []string) *Server {
	router := gin.New()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Err(err).Msg("failed to set trusted proxies")
	}
	router.Use(
		recovery(),
		requestLogger("/health"),
		corsMiddleware(allowedOrigins),
	)

	s := &Server{
		users:   users,
		diaries: diaries,
		stats:   stats,
		files:   files,
		router:  router,
	}
	s.initRouter()
	return s
}

func (s *Server) initRouter() {
	s.router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	api := s.router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/temp", s.handleCreateTempUser)
		users.GET("/validate/:tempId", s.handleValidateTempID)
	}

	diaries := api.Group("/diaries", s.identify())
	{
		diaries.GET("", s.handleListDiaries)
		diaries.GET("/search", s.handleSearchDiaries)
		diaries.GET("/:id", s.handleGetDiary)
		diaries.POST("", s.handleCreateDiary)
		diaries.PUT("/:id", s.handleUpdateDiary)
		diaries.DELETE("/:id", s.handleDeleteDiary)
	}

	files := api.Group("/files")
	{
		files.POST("/upload", s.handleUploadFile)
		files.GET("/:filename", s.handleGetFile)
	}

	api.GET("/statistics", s.identify(), s.handleGetStatistics)
}

// Router returns the gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Handler returns the router wrapped to also accept HTTP/2 without TLS.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.router, &http2.Server{})
}
