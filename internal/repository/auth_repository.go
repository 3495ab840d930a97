package repository

import (
	"database/sql"
	"time"

	"github.com/clubops/annonce-backend/internal/model"
)

// AuthRepositoryInterface covers the operator login records
type AuthRepositoryInterface interface {
	FindByEmail(email string) (*model.Operator, error)
	Create(op *model.Operator) error
}

// AuthRepository is the concrete implementation
type AuthRepository struct {
	DB *sql.DB
}

// FindByEmail fetches an operator by email
func (r *AuthRepository) FindByEmail(email string) (*model.Operator, error) {
	query := `
        SELECT id, email, password_hash, created_at
        FROM operators
        WHERE email = $1
    `
	var op model.Operator
	err := r.DB.QueryRow(query, email).Scan(&op.ID, &op.Email, &op.PasswordHash, &op.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Create inserts a new operator and fills in its ID
func (r *AuthRepository) Create(op *model.Operator) error {
	op.CreatedAt = time.Now()
	query := `
        INSERT INTO operators (email, password_hash, created_at)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	return r.DB.QueryRow(query, op.Email, op.PasswordHash, op.CreatedAt).Scan(&op.ID)
}
