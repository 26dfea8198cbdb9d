package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotFoundHandler struct{}

func NewNotFoundHandler() *NotFoundHandler {
	return &NotFoundHandler{}
}

// NotFound handles 404 errors for non-existent routes
func (h *NotFoundHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404", gin.H{
		"Title":         "404 - Page Not Found",
		"RequestedPath": c.Request.URL.Path,
	})
}
