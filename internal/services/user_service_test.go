package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alimgiray/gitossum/internal/repositories"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *repositories.UserRepository, *recordingSender) {
	t.Helper()
	sender := &recordingSender{}
	db := openTestDB(t)
	repo := repositories.NewUserRepository(db, trmsqlx.DefaultCtxGetter)
	service := NewUserService(
		repo,
		manager.Must(trmsqlx.NewDefaultFactory(db)),
		NewActivationTokenService("test-secret", time.Hour),
		sender,
		"http://localhost:8080",
	)
	return service, repo, sender
}

// activationParts pulls the uid and token out of the emailed link
func activationParts(t *testing.T, body string) (string, string) {
	t.Helper()
	idx := strings.Index(body, "/activate/")
	require.NotEqual(t, -1, idx)
	parts := strings.Split(strings.TrimSpace(body[idx+len("/activate/"):]), "/")
	require.Len(t, parts, 2)
	return parts[0], parts[1]
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	service, _, sender := newTestUserService(t)

	user, err := service.SignUp(ctx, "octocat", "octocat@example.com", "s3cret-pass")
	require.NoError(t, err)

	assert.False(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, []string{"octocat@example.com"}, msg.To)
	assert.Equal(t, "Activate your Git-OSS-um account.", msg.Subject)
	assert.Contains(t, msg.Body, "http://localhost:8080/activate/"+EncodeUID(user.ID)+"/")

	t.Run("Username taken", func(t *testing.T) {
		_, err := service.SignUp(ctx, "octocat", "other@example.com", "s3cret-pass")
		assert.ErrorIs(t, err, ErrUsernameTaken)
		assert.Len(t, sender.messages, 1)
	})

	t.Run("Pending account cannot log in", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "octocat", "s3cret-pass")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})
}

func TestSignUpEmailFailure(t *testing.T) {
	ctx := context.Background()
	service, repo, sender := newTestUserService(t)
	sender.err = errUnavailable

	user, err := service.SignUp(ctx, "octocat", "octocat@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, errUnavailable)
	assert.Nil(t, user)

	_, err = repo.GetByUsername(ctx, "octocat")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	t.Run("Username is free for a retry", func(t *testing.T) {
		sender.err = nil

		user, err := service.SignUp(ctx, "octocat", "octocat@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Len(t, sender.messages, 2)

		stored, err := repo.GetByUsername(ctx, "octocat")
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.ID)
	})
}

func TestActivate(t *testing.T) {
	ctx := context.Background()
	service, repo, sender := newTestUserService(t)

	user, err := service.SignUp(ctx, "octocat", "octocat@example.com", "s3cret-pass")
	require.NoError(t, err)
	uid, token := activationParts(t, sender.messages[0].Body)

	t.Run("Tampered token", func(t *testing.T) {
		_, err := service.Activate(ctx, uid, token+"x")
		assert.ErrorIs(t, err, ErrInvalidActivation)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)
	})

	t.Run("Unknown uid", func(t *testing.T) {
		_, err := service.Activate(ctx, "bm90LWEtdWlk", token)
		assert.ErrorIs(t, err, ErrInvalidActivation)
	})

	t.Run("Valid link", func(t *testing.T) {
		activated, err := service.Activate(ctx, uid, token)
		require.NoError(t, err)
		assert.True(t, activated.IsActive)
		assert.Equal(t, user.ID, activated.ID)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsActive)
	})

	t.Run("Link is single use", func(t *testing.T) {
		_, err := service.Activate(ctx, uid, token)
		assert.ErrorIs(t, err, ErrInvalidActivation)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	service, _, sender := newTestUserService(t)

	_, err := service.SignUp(ctx, "octocat", "octocat@example.com", "s3cret-pass")
	require.NoError(t, err)
	uid, token := activationParts(t, sender.messages[0].Body)
	_, err = service.Activate(ctx, uid, token)
	require.NoError(t, err)

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{name: "Valid credentials", username: "octocat", password: "s3cret-pass"},
		{name: "Wrong password", username: "octocat", password: "wrong", expectedErr: ErrInvalidCredentials},
		{name: "Unknown user", username: "hubot", password: "s3cret-pass", expectedErr: ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := service.Authenticate(ctx, tc.username, tc.password)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "octocat", user.Username)
		})
	}
}
