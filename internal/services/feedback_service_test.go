package services

import (
	"testing"

	"github.com/alimgiray/gitossum/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	testCases := []struct {
		name    string
		mailErr error
	}{
		{name: "Forwarded"},
		{name: "Mail relay down", mailErr: errUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := openTestDB(t)
			sender := &recordingSender{err: tc.mailErr}
			service := NewFeedbackService(repositories.NewFeedbackRepository(db), sender, "team@example.com")

			feedback, err := service.SubmitFeedback("Great site", "Please add more repos", "octocat@example.com", "octocat")
			require.NoError(t, err)
			assert.NotEmpty(t, feedback.ID)

			var count int
			require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM feedback WHERE requested_by = ?`, "octocat"))
			assert.Equal(t, 1, count)

			require.Len(t, sender.messages, 1)
			msg := sender.messages[0]
			assert.Equal(t, []string{"team@example.com"}, msg.To)
			assert.Equal(t, "octocat@example.com", msg.ReplyTo)
			assert.Equal(t, "Great site", msg.Subject)
			assert.Equal(t, "Please add more repos", msg.Body)
		})
	}
}
