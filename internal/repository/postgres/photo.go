package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/repository"
)

type photoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) repository.PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, p *domain.Photo) error {
	query := `INSERT INTO photos (checkout_id, stage, path, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.CheckoutID, p.Stage, p.Path, p.CreatedOn).Scan(&p.ID)
}

func (r *photoRepository) CountByCheckout(ctx context.Context, checkoutID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos WHERE checkout_id = $1`, checkoutID).Scan(&count)
	return count, err
}

func (r *photoRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Photo, error) {
	query := `SELECT p.id, p.checkout_id, p.stage, p.path, p.created_on
	          FROM photos p
	          JOIN checkouts c ON c.id = p.checkout_id
	          WHERE c.user_id = $1
	          ORDER BY p.created_on DESC`
	return r.list(ctx, query, userID)
}

func (r *photoRepository) ListOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Photo, error) {
	query := `SELECT id, checkout_id, stage, path, created_on FROM photos WHERE created_on < $1 ORDER BY created_on`
	return r.list(ctx, query, cutoff)
}

func (r *photoRepository) Delete(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, fmt.Errorf("%w: photo %d", domain.ErrNotFound, id))
}

func (r *photoRepository) list(ctx context.Context, query string, args ...any) ([]domain.Photo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.CheckoutID, &p.Stage, &p.Path, &p.CreatedOn); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
