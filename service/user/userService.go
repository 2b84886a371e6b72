package usersvc

import (
	"context"
	"errors"

	"vehiclerental/model"
	userrepo "vehiclerental/repository/user"
	"vehiclerental/util/hash"

	"github.com/jackc/pgx/v5"
)

type ErrCode string

const (
	ErrNotFound ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Service backs the admin-side account management handlers.
type Service interface {
	List(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, username, email, password string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r userrepo.Repo }

func New(r userrepo.Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.User, error) { return s.r.List(ctx) }

func (s *service) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, codedError{ErrNotFound}
	}
	return u, err
}

func (s *service) Update(ctx context.Context, id int64, username, email, password string) (*model.User, error) {
	u, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	if password != "" {
		hashed, err := hash.HashPassword(password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hashed
	}
	if err := s.r.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}
