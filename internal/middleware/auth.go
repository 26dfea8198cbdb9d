package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthRequired sends anonymous visitors to the login page
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

// LoginForbidden keeps signed in users away from the signup and login pages
func LoginForbidden() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetSession(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Next()
	}
}
