// Package web serves the task hierarchy over an HTTP JSON API.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/teamtasks/internal/app"
)

// Server is the HTTP API server.
type Server struct {
	container *app.Container
	router    *gin.Engine
	logger    *slog.Logger
}

// NewServer creates a server whose handlers run the container's use cases.
func NewServer(c *app.Container) *Server {
	if mode := c.AppConfig.Server.Mode; mode != "" {
		gin.SetMode(mode)
	}
	router := gin.New()

	s := &Server{
		container: c,
		router:    router,
		logger:    c.Logger,
	}

	router.Use(gin.Recovery(), s.logRequests)

	api := router.Group("/api")
	{
		api.GET("/projects", s.handleListProjects)
		api.POST("/projects", s.handleCreateProject)
		api.GET("/projects/:id", s.handleShowProject)
		api.GET("/projects/:id/tree", s.handleProjectTree)
		api.POST("/projects/:id/members", s.handleAddMember)
		api.DELETE("/projects/:id", s.handleDeleteProject)

		api.GET("/people", s.handleListPeople)
		api.POST("/people", s.handleCreatePerson)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/indented", s.handleIndentedTasks)
		api.GET("/tasks/:id", s.handleShowTask)
		api.PATCH("/tasks/:id", s.handleEditTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.GET("/tasks/:id/parent-choices", s.handleParentChoices)

		api.GET("/picker", s.handlePicker)
	}

	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("serving API", "addr", addr, "store", s.container.Config.StorePath)
	return s.router.Run(addr)
}

// logRequests logs every request once it has been handled.
func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	status := c.Writer.Status()
	attrs := []any{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"duration", time.Since(start),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", append(attrs, "errors", c.Errors.String())...)
		return
	}
	s.logger.Debug("request", attrs...)
}
