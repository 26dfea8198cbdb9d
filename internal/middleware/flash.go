package middleware

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// SetFlash stores a one-shot message for the next page view
func SetFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, base64.URLEncoding.EncodeToString([]byte(message)), 0, "/", "", false, true)
}

// PopFlash returns the pending flash message and clears it
func PopFlash(c *gin.Context) string {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	message, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return ""
	}
	return string(message)
}
