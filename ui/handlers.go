package ui

import (
	"bytes"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gosurvey/adapters/excel"
	"gosurvey/app"
	"gosurvey/domain/core"
	"gosurvey/internal/analysis"
	"gosurvey/internal/errors"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// pageData is the common template payload
type pageData struct {
	Title         string
	Freshness     app.Freshness
	View          interface{}
	Organizations []analysis.OrganizationStatus
	Activity      []analysis.ActivityEntry
	Next          int
	Status        int
	Message       string
}

func (s *Server) page(title string, data pageData) pageData {
	data.Title = title
	if data.Freshness.SnapshotID == "" {
		data.Freshness = s.dashboard.Freshness()
	}
	return data
}

func (s *Server) handleDashboard(c *gin.Context) {
	view := s.dashboard.Dashboard(c.Request.Context())
	s.renderTemplate(c, http.StatusOK, "dashboard.html", pageData{Title: "Dashboard", Freshness: view.Freshness, View: view})
}

func (s *Server) handleOrganizations(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "organizations.html", s.page("Organizations", pageData{
		Organizations: s.dashboard.Organizations(),
	}))
}

func (s *Server) handleOrganization(c *gin.Context) {
	view, err := s.dashboard.Organization(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.renderTemplate(c, http.StatusOK, "organization.html", pageData{
		Title:     view.Report.Organization,
		Freshness: view.Freshness,
		View:      view,
	})
}

func (s *Server) handleActivity(c *gin.Context) {
	limit, err := activityLimit(c)
	if err != nil {
		s.renderError(c, err)
		return
	}
	entries := s.dashboard.Activity(limit)
	s.renderTemplate(c, http.StatusOK, "activity.html", s.page("Activity", pageData{
		Activity: entries,
		Next:     min(len(entries)+app.DefaultActivityLimit, app.MaxActivityLimit),
	}))
}

func (s *Server) handleExportOrganizations(c *gin.Context) {
	var buf bytes.Buffer
	if err := excel.WriteStatusWorkbook(&buf, s.dashboard.Organizations()); err != nil {
		s.renderError(c, errors.Wrap(err, "failed to build workbook"))
		return
	}
	filename := "organizations-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleAPIMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Metrics())
}

func (s *Server) handleAPIOrganizations(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Organizations())
}

func (s *Server) handleAPIOrganization(c *gin.Context) {
	view, err := s.dashboard.Organization(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleAPIActivity(c *gin.Context) {
	limit, err := activityLimit(c)
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.dashboard.Activity(limit))
}

func (s *Server) handleAPIInsights(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Insights(c.Request.Context()))
}

func (s *Server) handleAPIStatus(c *gin.Context) {
	status, err := s.dashboard.Status(c.Request.Context())
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleAPIRefresh(c *gin.Context) {
	st, err := s.refresher.Refresh(c.Request.Context())
	switch {
	case stderrors.Is(err, core.ErrRefreshInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil && !st.Ready():
		s.jsonError(c, err)
	case err != nil:
		// the previous or the new snapshot is still being served
		c.JSON(errors.HTTPStatus(err), gin.H{"error": err.Error(), "code": errors.GetCode(err), "stale": st.Stale})
	default:
		c.JSON(http.StatusOK, gin.H{
			"snapshot_id": st.Snapshot.ID,
			"rows":        st.Snapshot.RowCount(),
			"hash":        st.Snapshot.Hash,
			"fetched_at":  st.Snapshot.FetchedAt,
		})
	}
}

// activityLimit parses ?limit=; absent means the default
func activityLimit(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return app.DefaultActivityLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.InvalidInput("limit must be a positive integer")
	}
	return n, nil
}

func (s *Server) jsonError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("[Server] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	message := "Something went wrong."
	switch {
	case status == http.StatusNotFound:
		message = "No organization by that name has submitted an intake form."
	case status < 500:
		message = err.Error()
	default:
		s.logger.Error("[Server] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	s.renderTemplate(c, status, "error.html", s.page(http.StatusText(status), pageData{Status: status, Message: message}))
	c.Abort()
}
