package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type activationClaims struct {
	// State fingerprints the account so the token dies once the account changes
	State string `json:"st"`
	jwt.RegisteredClaims
}

// ActivationTokenService issues and checks signed, time-bound account activation tokens
type ActivationTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewActivationTokenService(secret string, ttl time.Duration) *ActivationTokenService {
	return &ActivationTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// MakeToken issues a token for a pending user
func (s *ActivationTokenService) MakeToken(user *models.User) (string, error) {
	now := s.now()
	claims := activationClaims{
		State: s.fingerprint(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// CheckToken reports whether token was issued for user in its current state and has not expired
func (s *ActivationTokenService) CheckToken(user *models.User, token string) bool {
	claims := &activationClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return false
	}

	if claims.Subject != user.ID {
		return false
	}
	return hmac.Equal([]byte(claims.State), []byte(s.fingerprint(user)))
}

func (s *ActivationTokenService) fingerprint(user *models.User) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(user.ID))
	h.Write([]byte(strconv.FormatBool(user.IsActive)))
	h.Write([]byte(user.PasswordHash))
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeUID encodes a user id for an activation link
func EncodeUID(userID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(userID))
}

// DecodeUID reverses EncodeUID, rejecting anything that is not a user id
func DecodeUID(uidb64 string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(uidb64)
	if err != nil {
		return "", err
	}
	id, err := uuid.Parse(string(raw))
	if err != nil {
		return "", errors.New("uid is not a user id")
	}
	return id.String(), nil
}
