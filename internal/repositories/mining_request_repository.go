package repositories

import (
	"fmt"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/jmoiron/sqlx"
)

type MiningRequestRepository struct {
	db *sqlx.DB
}

func NewMiningRequestRepository(db *sqlx.DB) *MiningRequestRepository {
	return &MiningRequestRepository{db: db}
}

// Create creates a new mining request
func (r *MiningRequestRepository) Create(request *models.MiningRequest) error {
	query := `
		INSERT INTO mining_requests (id, repo_name, email, send_email, requested_by, created_at)
		VALUES (:id, :repo_name, :email, :send_email, :requested_by, :created_at)
	`

	if _, err := r.db.NamedExec(query, request); err != nil {
		return fmt.Errorf("db: create mining request: %w", err)
	}
	return nil
}

// GetByRequester lists a user's requests, newest first
func (r *MiningRequestRepository) GetByRequester(username string) ([]*models.MiningRequest, error) {
	query := `
		SELECT id, repo_name, email, send_email, requested_by, created_at
		FROM mining_requests
		WHERE requested_by = ?
		ORDER BY created_at DESC
	`

	var requests []*models.MiningRequest
	if err := r.db.Select(&requests, query, username); err != nil {
		return nil, fmt.Errorf("db: select mining requests: %w", err)
	}
	return requests, nil
}
