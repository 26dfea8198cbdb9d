package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/alimgiray/gitossum/internal/repositories"
	"github.com/alimgiray/gitossum/pkg/logger"
	"github.com/alimgiray/gitossum/pkg/mailer"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"golang.org/x/crypto/bcrypt"
)

const activationSubject = "Activate your Git-OSS-um account."

type UserService struct {
	userRepo  *repositories.UserRepository
	trManager *manager.Manager
	tokens    *ActivationTokenService
	mail      mailer.Sender
	baseURL   string
}

func NewUserService(userRepo *repositories.UserRepository, trManager *manager.Manager, tokens *ActivationTokenService, mail mailer.Sender, baseURL string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		trManager: trManager,
		tokens:    tokens,
		mail:      mail,
		baseURL:   baseURL,
	}
}

// SignUp stores a pending account and emails its activation link
func (s *UserService) SignUp(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.NewUser(username, email, string(hash))

	// The activation email is sent inside the transaction so a failed send rolls the
	// account back and the username stays free.
	err = s.trManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return s.sendActivationEmail(user)
	})
	if err != nil {
		return nil, err
	}

	logger.WithField("user_id", user.ID).Info("Activation email sent")
	return user, nil
}

func (s *UserService) sendActivationEmail(user *models.User) error {
	link, err := s.ActivationLink(user)
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Hi %s,\n\nPlease click on the link to confirm your registration:\n\n%s\n", user.Username, link)
	return s.mail.Send(&mailer.Message{
		To:      []string{user.Email},
		Subject: activationSubject,
		Body:    body,
	})
}

// ActivationLink builds the absolute activation URL of a pending user
func (s *UserService) ActivationLink(user *models.User) (string, error) {
	token, err := s.tokens.MakeToken(user)
	if err != nil {
		return "", fmt.Errorf("failed to issue activation token: %w", err)
	}
	return strings.Join([]string{s.baseURL, "activate", EncodeUID(user.ID), token}, "/"), nil
}

// Activate moves a pending account to active. Any problem with the link yields
// ErrInvalidActivation and leaves the account untouched.
func (s *UserService) Activate(ctx context.Context, uidb64, token string) (*models.User, error) {
	userID, err := DecodeUID(uidb64)
	if err != nil {
		return nil, ErrInvalidActivation
	}

	var user *models.User
	err = s.trManager.Do(ctx, func(ctx context.Context) error {
		found, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrInvalidActivation
			}
			return err
		}

		if !s.tokens.CheckToken(found, token) {
			return ErrInvalidActivation
		}
		user = found
		return s.userRepo.Activate(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	user.IsActive = true

	logger.WithField("user_id", user.ID).Info("Account activated")
	return user, nil
}

// Authenticate checks a username and password; pending accounts cannot log in
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return user, nil
}
