package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "session"
	sessionKey    = "session"
	sessionTTL    = 24 * time.Hour
)

type SessionData struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Sessions signs and verifies the session cookie
type Sessions struct {
	secret []byte
	now    func() time.Time
}

func NewSessions(secret string) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Middleware loads the session cookie into the request context
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionData := s.fromCookie(c); sessionData != nil {
			c.Set(sessionKey, sessionData)
		}
		c.Next()
	}
}

// fromCookie extracts and validates session data from cookie
func (s *Sessions) fromCookie(c *gin.Context) *SessionData {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	return s.decode(cookie)
}

func (s *Sessions) decode(value string) *SessionData {
	// signature.data
	signature, data, found := strings.Cut(value, ".")
	if !found || !s.verify(data, signature) {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var sessionData SessionData
	if err := json.Unmarshal(decodedData, &sessionData); err != nil {
		return nil
	}

	if s.now().After(sessionData.ExpiresAt) {
		return nil
	}
	return &sessionData
}

func (s *Sessions) encode(sessionData *SessionData) (string, error) {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return "", err
	}
	encodedData := base64.URLEncoding.EncodeToString(data)
	return s.sign(encodedData) + "." + encodedData, nil
}

// Set issues a session cookie for the user and exposes it to the rest of the request
func (s *Sessions) Set(c *gin.Context, userID, username, email string) error {
	sessionData := &SessionData{
		UserID:    userID,
		Username:  username,
		Email:     email,
		ExpiresAt: s.now().Add(sessionTTL),
	}

	value, err := s.encode(sessionData)
	if err != nil {
		return err
	}

	c.SetCookie(sessionCookie, value, int(sessionTTL.Seconds()), "/", "", false, true)
	c.Set(sessionKey, sessionData)
	return nil
}

// Clear removes the session cookie
func (s *Sessions) Clear(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Set(sessionKey, nil)
}

func (s *Sessions) sign(data string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

func (s *Sessions) verify(data, signature string) bool {
	return hmac.Equal([]byte(signature), []byte(s.sign(data)))
}

// GetSession retrieves session data from context
func GetSession(c *gin.Context) *SessionData {
	session, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}

	if sessionData, ok := session.(*SessionData); ok {
		return sessionData
	}

	return nil
}
