package repositories

import (
	"fmt"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/jmoiron/sqlx"
)

type FeedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (id, subject, message, sender_email, requested_by, created_at)
		VALUES (:id, :subject, :message, :sender_email, :requested_by, :created_at)
	`

	if _, err := r.db.NamedExec(query, feedback); err != nil {
		return fmt.Errorf("db: create feedback: %w", err)
	}
	return nil
}
