package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sai2211201144/learn-ai-2/internal/constants"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
	"github.com/Sai2211201144/learn-ai-2/internal/state"
)

const shutdownTimeout = 5 * time.Second

// Server exposes an App over a JSON HTTP API.
type Server struct {
	app     *state.App
	router  *gin.Engine
	metrics *Metrics
}

func NewServer(app *state.App) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		app:     app,
		router:  gin.New(),
		metrics: NewMetrics(),
	}
	s.router.Use(gin.Recovery(), s.metrics.Middleware(), requestLogger())
	s.registerRoutes()
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", s.metrics.Handler())

	api := s.router.Group("/api")
	api.GET("/profile", s.profile)
	api.GET("/stats", s.stats)
	api.GET("/up-next", s.upNext)

	tasks := api.Group("/tasks")
	tasks.GET("", s.listTasks)
	tasks.DELETE("", s.clearTasks)
	tasks.DELETE("/:id", s.cancelTask)

	courses := api.Group("/courses")
	courses.GET("", s.listCourses)
	courses.POST("", s.generateCourse)
	courses.GET("/:id", s.getCourse)
	courses.DELETE("/:id", requireConfirm(), s.deleteCourse)
	courses.POST("/:id/select", s.selectCourse)
	courses.PUT("/:id/folder", s.moveCourse)
	courses.POST("/:id/items/:itemId/toggle", s.toggleItem)
	courses.PUT("/:id/items/:itemId/note", s.saveNote)

	folders := api.Group("/folders")
	folders.GET("", s.listFolders)
	folders.POST("", s.createFolder)
	folders.PUT("/:id", s.renameFolder)
	folders.DELETE("/:id", requireConfirm(), s.deleteFolder)

	articles := api.Group("/articles")
	articles.GET("", s.listArticles)
	articles.POST("", s.generateArticle)
	articles.GET("/:id", s.getArticle)
	articles.DELETE("/:id", requireConfirm(), s.deleteArticle)
	articles.PUT("/:id/folder", s.moveArticle)

	projects := api.Group("/projects")
	projects.GET("", s.listProjects)
	projects.POST("", s.generateProject)
	projects.GET("/:id", s.getProject)
	projects.DELETE("/:id", requireConfirm(), s.deleteProject)
	projects.POST("/:id/steps/:stepId/toggle", s.toggleStep)

	habits := api.Group("/habits")
	habits.GET("", s.listHabits)
	habits.POST("", s.addHabit)
	habits.POST("/:id/toggle", s.toggleHabit)
	habits.DELETE("/:id", requireConfirm(), s.deleteHabit)

	plans := api.Group("/plans")
	plans.GET("", s.listPlans)
	plans.POST("", s.createPlan)
	plans.GET("/active", s.activePlan)
	plans.GET("/today", s.todayTasks)
	plans.GET("/outline", s.getOutline)
	plans.POST("/outline", s.generateOutline)
	plans.POST("/outline/refine", s.refineOutline)
	plans.DELETE("/outline", s.clearOutline)
	plans.PUT("/:id/status", s.setPlanStatus)
	plans.DELETE("/:id", requireConfirm(), s.deletePlan)
	plans.PUT("/:id/tasks/:taskId", s.editTask)
	plans.POST("/:id/tasks/:taskId/toggle", s.toggleTask)
	plans.DELETE("/:id/tasks/:taskId", s.deleteTask)

	api.GET("/export", s.exportData)
	api.POST("/import", requireConfirm(), s.importData)
	api.POST("/reset", requireConfirm(), s.reset)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = constants.DefaultServerAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	success(c, gin.H{"status": "ok", "version": constants.Version})
}

func (s *Server) profile(c *gin.Context) {
	success(c, s.app.Profile())
}

func (s *Server) stats(c *gin.Context) {
	success(c, s.app.Stats())
}

func (s *Server) upNext(c *gin.Context) {
	success(c, s.app.UpNext())
}

func (s *Server) listTasks(c *gin.Context) {
	success(c, s.app.BackgroundTasks())
}

func (s *Server) clearTasks(c *gin.Context) {
	s.app.ClearFinishedTasks()
	success(c, s.app.BackgroundTasks())
}

func (s *Server) cancelTask(c *gin.Context) {
	if !s.app.CancelTask(c.Param("id")) {
		errorJSON(c, http.StatusNotFound, "task not found")
		return
	}
	success(c, nil)
}
