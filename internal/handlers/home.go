package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index handles the home page
func (h *HomeHandler) Index(c *gin.Context) {
	render(c, http.StatusOK, "index", gin.H{
		"Title": "Home",
	})
}

// About handles the about page
func (h *HomeHandler) About(c *gin.Context) {
	render(c, http.StatusOK, "about", gin.H{
		"Title": "About",
	})
}
