package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a contact form submission
type Feedback struct {
	ID          string    `db:"id"`
	Subject     string    `db:"subject"`
	Message     string    `db:"message"`
	SenderEmail string    `db:"sender_email"`
	RequestedBy string    `db:"requested_by"`
	CreatedAt   time.Time `db:"created_at"`
}

func NewFeedback(subject, message, senderEmail, requestedBy string) *Feedback {
	return &Feedback{
		ID:          uuid.New().String(),
		Subject:     subject,
		Message:     message,
		SenderEmail: senderEmail,
		RequestedBy: requestedBy,
		CreatedAt:   time.Now().UTC(),
	}
}
