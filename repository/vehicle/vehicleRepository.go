package vehiclerepo

import (
	"context"
	"fmt"
	"strings"

	"vehiclerental/model"
	"vehiclerental/util/database"
)

type Repo interface {
	Create(ctx context.Context, v *model.Vehicle) error
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error)
	BookedRanges(ctx context.Context, vehicleID int64) ([]model.DateRange, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const vehicleCols = `id, make, model, year, type, price_per_day, availability, location, description, status, created_at`

func (r *repo) Create(ctx context.Context, v *model.Vehicle) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO vehicles(make, model, year, type, price_per_day, availability, location, description, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at`,
		v.Make, v.Model, v.Year, v.Type, v.PricePerDay, v.Available, v.Location, v.Description, v.Status,
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := r.db.Pool.QueryRow(ctx, `SELECT `+vehicleCols+` FROM vehicles WHERE id = $1`, id).Scan(
		&v.ID, &v.Make, &v.Model, &v.Year, &v.Type, &v.PricePerDay,
		&v.Available, &v.Location, &v.Description, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repo) List(ctx context.Context) ([]model.Vehicle, error) {
	return r.query(ctx, `SELECT `+vehicleCols+` FROM vehicles ORDER BY id DESC`)
}

func (r *repo) Update(ctx context.Context, v *model.Vehicle) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE vehicles
		SET make=$2, model=$3, year=$4, type=$5, price_per_day=$6,
		    availability=$7, location=$8, description=$9, status=$10
		WHERE id = $1`,
		v.ID, v.Make, v.Model, v.Year, v.Type, v.PricePerDay,
		v.Available, v.Location, v.Description, v.Status,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	return err
}

// Search builds a WHERE clause from the optional filters, AND-combined.
func (r *repo) Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != nil {
		add("type = $%d", *f.Type)
	}
	if f.MinPrice != nil {
		add("price_per_day >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price_per_day <= $%d", *f.MaxPrice)
	}
	if f.Available != nil {
		add("availability = $%d", *f.Available)
	}

	q := `SELECT ` + vehicleCols + ` FROM vehicles`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY id DESC`
	return r.query(ctx, q, args...)
}

func (r *repo) BookedRanges(ctx context.Context, vehicleID int64) ([]model.DateRange, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT start_date, end_date FROM bookings WHERE vehicle_id = $1 ORDER BY start_date`,
		vehicleID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DateRange
	for rows.Next() {
		var dr model.DateRange
		if err := rows.Scan(&dr.StartDate, &dr.EndDate); err != nil {
			return nil, err
		}
		out = append(out, dr)
	}
	return out, rows.Err()
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]model.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Make, &v.Model, &v.Year, &v.Type, &v.PricePerDay,
			&v.Available, &v.Location, &v.Description, &v.Status, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
