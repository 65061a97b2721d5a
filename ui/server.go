package ui

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"

	"gosurvey/app"
	"gosurvey/internal/logging"

	"github.com/gin-gonic/gin"
)

// Refresher triggers an on-demand snapshot refresh
type Refresher interface {
	Refresh(ctx context.Context) (*app.State, error)
}

// Server represents the web server for the survey dashboard
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	refresher Refresher
	templates *template.Template
	logger    *logging.Logger
}

// NewServer creates the web server. ginMode is one of gin's debug, release or test.
func NewServer(dashboard *app.DashboardService, refresher Refresher, ginMode string) (*Server, error) {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.UseRawPath = true
	router.UnescapePathValues = true

	s := &Server{
		router:    router,
		dashboard: dashboard,
		refresher: refresher,
		templates: templates,
		logger:    logging.Default,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(requestMetrics(s.logger))

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("[Server] static filesystem unavailable: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	// Pages
	s.router.GET("/", s.handleDashboard)
	s.router.GET("/organizations", s.handleOrganizations)
	s.router.GET("/organizations/:name", s.handleOrganization)
	s.router.GET("/activity", s.handleActivity)
	s.router.GET("/export/organizations.xlsx", s.handleExportOrganizations)

	// JSON API
	api := s.router.Group("/api")
	api.GET("/metrics", s.handleAPIMetrics)
	api.GET("/organizations", s.handleAPIOrganizations)
	api.GET("/organizations/:name", s.handleAPIOrganization)
	api.GET("/activity", s.handleAPIActivity)
	api.GET("/insights", s.handleAPIInsights)
	api.GET("/status", s.handleAPIStatus)
	api.POST("/refresh", s.handleAPIRefresh)

	s.router.NoRoute(func(c *gin.Context) {
		s.renderTemplate(c, http.StatusNotFound, "error.html", s.page("Not found", pageData{
			Status:  http.StatusNotFound,
			Message: "There is nothing at " + c.Request.URL.Path + ".",
		}))
	})
}
