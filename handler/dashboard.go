package handler

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// Dashboard serves the admin page. The page is a plain consumer of the
// /records contract: it fetches one batch and filters entirely in the
// browser, with the same semantics as pkg/filter.
func (h *Handler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"BaseURL": baseURL(c),
	})
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
