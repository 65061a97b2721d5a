package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"statusLabel": func(s string) string {
			return strings.ReplaceAll(s, "_", " ")
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return "never"
			}
			return t.Local().Format("2006-01-02 15:04")
		},
		"markdown":   renderMarkdown,
		"pathEscape": url.PathEscape,
	}
}

func parseTemplates() (*template.Template, error) {
	t, err := template.New("").Funcs(templateFuncs()).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return t, nil
}

// renderMarkdown converts narrative markdown to HTML. Input may carry
// spreadsheet text: raw HTML is dropped and only http, https, mailto and
// relative links are rendered as links.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.Safelink | mdhtml.NofollowLinks})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// renderTemplate executes a template into a buffer first so a failure never
// leaves a half-written page
func (s *Server) renderTemplate(c *gin.Context, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("[Server] template error for %s: %v", name, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "template rendering failed"})
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
