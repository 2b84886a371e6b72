package bookingrepo

import (
	"context"

	"vehiclerental/model"
	"vehiclerental/util/database"
)

type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id int64) error
	MarkCompleted(ctx context.Context, id int64) (*model.Booking, error)

	InsertHistory(ctx context.Context, h *model.RentalHistory) error
	ListHistory(ctx context.Context) ([]model.RentalHistory, error)
	ListHistoryByUser(ctx context.Context, userID int64) ([]model.RentalHistory, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

// joined presentation fields come from users and vehicles, not booking columns
const bookingSelect = `
	SELECT b.id, b.user_id, b.vehicle_id, b.start_date, b.end_date,
	       b.total_amount, b.status, b.created_at,
	       u.username, u.email, v.model
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	JOIN vehicles v ON v.id = b.vehicle_id`

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO bookings(user_id, vehicle_id, start_date, end_date, total_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		b.UserID, b.VehicleID, b.StartDate, b.EndDate, b.TotalAmount, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) scan(row interface{ Scan(...any) error }) (*model.Booking, error) {
	b := &model.Booking{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.VehicleID, &b.StartDate, &b.EndDate,
		&b.TotalAmount, &b.Status, &b.CreatedAt,
		&b.Username, &b.Email, &b.VehicleModel,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	return r.scan(r.db.Pool.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
}

func (r *repo) List(ctx context.Context) ([]model.Booking, error) {
	return r.queryMany(ctx, bookingSelect+` ORDER BY b.id DESC`)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	return r.queryMany(ctx, bookingSelect+` WHERE b.user_id = $1 ORDER BY b.start_date DESC`, userID)
}

func (r *repo) Update(ctx context.Context, b *model.Booking) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE bookings
		SET start_date=$2, end_date=$3, total_amount=$4, status=$5
		WHERE id = $1`,
		b.ID, b.StartDate, b.EndDate, b.TotalAmount, b.Status,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	return err
}

func (r *repo) MarkCompleted(ctx context.Context, id int64) (*model.Booking, error) {
	_, err := r.db.Pool.Exec(ctx, `UPDATE bookings SET status = 'completed' WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

func (r *repo) queryMany(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.VehicleID, &b.StartDate, &b.EndDate,
			&b.TotalAmount, &b.Status, &b.CreatedAt,
			&b.Username, &b.Email, &b.VehicleModel,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) InsertHistory(ctx context.Context, h *model.RentalHistory) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO rental_history(user_id, vehicle_id, start_date, end_date, total_amount)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		h.UserID, h.VehicleID, h.StartDate, h.EndDate, h.TotalAmount,
	).Scan(&h.ID, &h.CreatedAt)
}

const historySelect = `
	SELECT h.id, h.user_id, h.vehicle_id, h.start_date, h.end_date,
	       h.total_amount, h.created_at, v.model
	FROM rental_history h
	JOIN vehicles v ON v.id = h.vehicle_id`

func (r *repo) ListHistory(ctx context.Context) ([]model.RentalHistory, error) {
	return r.queryHistory(ctx, historySelect+` ORDER BY h.id DESC`)
}

func (r *repo) ListHistoryByUser(ctx context.Context, userID int64) ([]model.RentalHistory, error) {
	return r.queryHistory(ctx, historySelect+` WHERE h.user_id = $1 ORDER BY h.id DESC`, userID)
}

func (r *repo) queryHistory(ctx context.Context, q string, args ...any) ([]model.RentalHistory, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RentalHistory
	for rows.Next() {
		var h model.RentalHistory
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.VehicleID, &h.StartDate, &h.EndDate,
			&h.TotalAmount, &h.CreatedAt, &h.VehicleModel,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
