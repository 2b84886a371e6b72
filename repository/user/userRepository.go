package userrepo

import (
	"context"
	"time"

	"vehiclerental/model"
	"vehiclerental/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByUsername(ctx context.Context, username string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error

	SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error
	ByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	ResetPassword(ctx context.Context, userID int64, passwordHash string) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const userCols = `id, username, email, password_hash, role, reset_token, reset_expires, created_at`

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users(username, email, password_hash, role)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		u.Username, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) scanOne(ctx context.Context, q string, args ...any) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, q, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.ResetToken, &u.ResetExpires, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return r.scanOne(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
}

func (r *repo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.scanOne(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.scanOne(ctx, `SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.ResetToken, &u.ResetExpires, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, u *model.User) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.PasswordHash,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *repo) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET reset_token = $2, reset_expires = $3 WHERE id = $1`,
		userID, token, expires,
	)
	return err
}

func (r *repo) ByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	return r.scanOne(ctx, `
		SELECT `+userCols+`
		FROM users
		WHERE reset_token = $1 AND reset_expires > $2`,
		token, now,
	)
}

// ResetPassword replaces the credential hash and clears the token fields in one statement.
func (r *repo) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_expires = NULL
		WHERE id = $1`,
		userID, passwordHash,
	)
	return err
}
