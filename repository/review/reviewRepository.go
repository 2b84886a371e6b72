package reviewrepo

import (
	"context"

	"vehiclerental/model"
	"vehiclerental/util/database"
)

type Repo interface {
	Create(ctx context.Context, rv *model.Review) error
	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Review, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rv *model.Review) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews(user_id, vehicle_id, rating, comment)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		rv.UserID, rv.VehicleID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
}

func (r *repo) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Review, error) {
	return r.queryMany(ctx, `
		SELECT r.id, r.user_id, r.vehicle_id, r.rating, r.comment, r.created_at, u.username, v.model
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.vehicle_id = $1
		ORDER BY r.id DESC`, vehicleID)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Review, error) {
	return r.queryMany(ctx, `
		SELECT r.id, r.user_id, r.vehicle_id, r.rating, r.comment, r.created_at, u.username, v.model
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.user_id = $1
		ORDER BY r.id DESC`, userID)
}

func (r *repo) queryMany(ctx context.Context, q string, args ...any) ([]model.Review, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.VehicleID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.Username, &rv.VehicleModel); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
