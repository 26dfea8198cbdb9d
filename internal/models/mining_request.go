package models

import (
	"time"

	"github.com/google/uuid"
)

// MiningRequest is a user's request to have a repository mined
type MiningRequest struct {
	ID          string    `db:"id" json:"id"`
	RepoName    string    `db:"repo_name" json:"repo_name"`
	Email       string    `db:"email" json:"email"`
	SendEmail   *string   `db:"send_email" json:"send_email"`
	RequestedBy string    `db:"requested_by" json:"requested_by"`
	CreatedAt   time.Time `db:"created_at" json:"requested_at"`
}

// NewMiningRequest creates a new MiningRequest with a generated UUID.
// An empty notification email is stored as NULL.
func NewMiningRequest(repoName, email, sendEmail, requestedBy string) *MiningRequest {
	request := &MiningRequest{
		ID:          uuid.New().String(),
		RepoName:    repoName,
		Email:       email,
		RequestedBy: requestedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if sendEmail != "" {
		request.SendEmail = &sendEmail
	}
	return request
}
