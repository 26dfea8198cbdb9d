package services

import (
	"github.com/alimgiray/gitossum/internal/models"
	"github.com/alimgiray/gitossum/internal/repositories"
	"github.com/alimgiray/gitossum/pkg/logger"
	"github.com/alimgiray/gitossum/pkg/mailer"
)

type FeedbackService struct {
	feedbackRepo *repositories.FeedbackRepository
	mail         mailer.Sender
	recipient    string
}

func NewFeedbackService(feedbackRepo *repositories.FeedbackRepository, mail mailer.Sender, recipient string) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		mail:         mail,
		recipient:    recipient,
	}
}

// SubmitFeedback stores the submission and forwards it to the team inbox
func (s *FeedbackService) SubmitFeedback(subject, message, senderEmail, username string) (*models.Feedback, error) {
	feedback := models.NewFeedback(subject, message, senderEmail, username)
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}

	err := s.mail.Send(&mailer.Message{
		To:      []string{s.recipient},
		ReplyTo: senderEmail,
		Subject: feedback.Subject,
		Body:    feedback.Message,
	})
	if err != nil {
		logger.WithError(err).WithField("feedback_id", feedback.ID).Error("Failed to forward feedback")
	}

	return feedback, nil
}
