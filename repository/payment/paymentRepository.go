package paymentrepo

import (
	"context"

	"vehiclerental/model"
	"vehiclerental/util/database"
)

type Repo interface {
	Create(ctx context.Context, p *model.Payment) error
	ByID(ctx context.Context, id int64) (*model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Payment, error)
	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO payments(user_id, amount, transaction_id, status)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		p.UserID, p.Amount, p.TransactionID, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Payment, error) {
	p := &model.Payment{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, amount, transaction_id, status, created_at
		FROM payments WHERE id = $1`, id,
	).Scan(&p.ID, &p.UserID, &p.Amount, &p.TransactionID, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repo) List(ctx context.Context) ([]model.Payment, error) {
	return r.queryMany(ctx, `
		SELECT id, user_id, amount, transaction_id, status, created_at
		FROM payments ORDER BY id DESC`)
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	return r.queryMany(ctx, `
		SELECT id, user_id, amount, transaction_id, status, created_at
		FROM payments WHERE user_id = $1 ORDER BY id DESC`, userID)
}

func (r *repo) Update(ctx context.Context, p *model.Payment) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE payments SET amount = $2, status = $3 WHERE id = $1`,
		p.ID, p.Amount, p.Status,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (r *repo) queryMany(ctx context.Context, q string, args ...any) ([]model.Payment, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Amount, &p.TransactionID, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
