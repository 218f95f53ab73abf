package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"CRIART_GO/models"
)

// UserRepository acessa core.user
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail busca um usuário ativo ou inativo pelo email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, active, date_create, date_update
		FROM core.user
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Active, &u.DateCreate, &u.DateUpdate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}
	return &u, nil
}

// Create insere o usuário; a senha já deve vir com hash
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO core.user (id, name, email, password, active, date_create, date_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Name, u.Email, u.Password, u.Active, u.DateCreate, u.DateUpdate)
	if err != nil {
		return fmt.Errorf("erro ao criar o usuário: %w", err)
	}
	return nil
}
