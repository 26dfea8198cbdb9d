package handlers

import (
	"net/http"

	"github.com/alimgiray/gitossum/internal/middleware"
	"github.com/alimgiray/gitossum/pkg/logger"
	"github.com/gin-gonic/gin"
)

// render executes a page template with the session user and any pending flash message
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.GetSession(c)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = middleware.PopFlash(c)
	}
	c.HTML(status, name, data)
}

// renderMessage shows a single literal message
func renderMessage(c *gin.Context, title, message string) {
	render(c, http.StatusOK, "message", gin.H{
		"Title":   title,
		"Message": message,
	})
}

// renderError logs err and shows the generic error page
func renderError(c *gin.Context, err error) {
	_ = c.Error(err)
	logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	render(c, http.StatusInternalServerError, "error", gin.H{
		"Title": "Error",
		"Error": "An unexpected error occurred. Please try again later.",
	})
}
