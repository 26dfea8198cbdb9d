package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/alimgiray/gitossum/internal/models"
	"github.com/jmoiron/sqlx"
)

// MinedRepoRepository reads the rows written by the mining worker
type MinedRepoRepository struct {
	db *sqlx.DB
}

func NewMinedRepoRepository(db *sqlx.DB) *MinedRepoRepository {
	return &MinedRepoRepository{db: db}
}

// Create inserts a mined repository; the web tier never calls it, the mining worker and tests do
func (r *MinedRepoRepository) Create(repo *models.MinedRepo) error {
	query := `
		INSERT INTO mined_repos (
			id, repo_name, num_pulls, num_closed_merged_pulls, num_closed_unmerged_pulls,
			num_open_pulls, created_at_list, closed_at_list, merged_at_list, mined_at
		) VALUES (
			:id, :repo_name, :num_pulls, :num_closed_merged_pulls, :num_closed_unmerged_pulls,
			:num_open_pulls, :created_at_list, :closed_at_list, :merged_at_list, :mined_at
		)
	`

	if _, err := r.db.NamedExec(query, repo); err != nil {
		return fmt.Errorf("db: create mined repo: %w", err)
	}
	return nil
}

// GetAllNames returns the full names of every mined repository
func (r *MinedRepoRepository) GetAllNames() ([]string, error) {
	var names []string
	if err := r.db.Select(&names, `SELECT repo_name FROM mined_repos ORDER BY repo_name`); err != nil {
		return nil, fmt.Errorf("db: select mined repo names: %w", err)
	}
	return names, nil
}

// GetByName retrieves a mined repository by its lowercase full name
func (r *MinedRepoRepository) GetByName(repoName string) (*models.MinedRepo, error) {
	query := `
		SELECT id, repo_name, num_pulls, num_closed_merged_pulls, num_closed_unmerged_pulls,
		       num_open_pulls, created_at_list, closed_at_list, merged_at_list, mined_at
		FROM mined_repos WHERE repo_name = ?
	`

	var repo models.MinedRepo
	if err := r.db.Get(&repo, query, repoName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db: get mined repo: %w", err)
	}
	return &repo, nil
}
