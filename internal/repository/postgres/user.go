package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, code, name, password_hash, is_admin, active, created_on`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (code, name, password_hash, is_admin, active)
	          VALUES ($1, $2, $3, $4, true) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, u.Code, u.Name, u.PasswordHash, u.IsAdmin).Scan(&u.ID, &u.CreatedOn)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user code or name already exists", domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	u.Active = true
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Code, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.Active, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE code = $1`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&u.ID, &u.Code, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.Active, &u.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, code)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Code, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.Active, &u.CreatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Errorf("%w: user %d", domain.ErrNotFound, id))
}

func (r *userRepository) SetAdmin(ctx context.Context, id int32, isAdmin bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET is_admin = $1 WHERE id = $2`, isAdmin, id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Errorf("%w: user %d", domain.ErrNotFound, id))
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Errorf("%w: user %d", domain.ErrNotFound, id))
}

// requireRow converts a zero-row UPDATE/DELETE into notFoundErr.
func requireRow(result sql.Result, notFoundErr error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFoundErr
	}
	return nil
}
