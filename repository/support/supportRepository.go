package supportrepo

import (
	"context"

	"vehiclerental/model"
	"vehiclerental/util/database"
)

type Repo interface {
	Create(ctx context.Context, t *model.SupportTicket) error
	ByID(ctx context.Context, id int64) (*model.SupportTicket, error)
	List(ctx context.Context) ([]model.SupportTicket, error)
	Update(ctx context.Context, t *model.SupportTicket) error
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const ticketSelect = `
	SELECT t.id, t.user_id, t.subject, t.description, t.status, t.created_at, t.updated_at, u.username
	FROM support_tickets t
	JOIN users u ON u.id = t.user_id`

func (r *repo) Create(ctx context.Context, t *model.SupportTicket) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO support_tickets(user_id, subject, description, status)
		VALUES ($1,$2,$3,'open')
		RETURNING id, status, created_at, updated_at`,
		t.UserID, t.Subject, t.Description,
	).Scan(&t.ID, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.SupportTicket, error) {
	t := &model.SupportTicket{}
	err := r.db.Pool.QueryRow(ctx, ticketSelect+` WHERE t.id = $1`, id).Scan(
		&t.ID, &t.UserID, &t.Subject, &t.Description, &t.Status,
		&t.CreatedAt, &t.UpdatedAt, &t.Username,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) List(ctx context.Context) ([]model.SupportTicket, error) {
	rows, err := r.db.Pool.Query(ctx, ticketSelect+` ORDER BY t.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SupportTicket
	for rows.Next() {
		var t model.SupportTicket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Description, &t.Status,
			&t.CreatedAt, &t.UpdatedAt, &t.Username); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, t *model.SupportTicket) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE support_tickets
		SET subject = $2, description = $3, status = $4, updated_at = now()
		WHERE id = $1`,
		t.ID, t.Subject, t.Description, t.Status,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM support_tickets WHERE id = $1`, id)
	return err
}
