package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alimgiray/gitossum/internal/models"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// UserRepository runs inside the transaction carried by ctx when there is one
type UserRepository struct {
	db     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewUserRepository(db *sqlx.DB, getter *trmsqlx.CtxGetter) *UserRepository {
	return &UserRepository{
		db:     db,
		getter: getter,
	}
}

const userColumns = `id, username, email, password_hash, is_active, created_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.IsActive, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("db: create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// Activate flips a pending user to active
func (r *UserRepository) Activate(ctx context.Context, id string) error {
	res, err := r.getter.DefaultTrOrDB(ctx, r.db).ExecContext(ctx, `UPDATE users SET is_active = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db: activate user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db: rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := r.getter.DefaultTrOrDB(ctx, r.db).GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db: get user: %w", err)
	}
	return &user, nil
}
