package supportsvc

import (
	"context"
	"errors"

	"vehiclerental/model"
	supportrepo "vehiclerental/repository/support"

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

type Service interface {
	Create(ctx context.Context, t *model.SupportTicket) error
	List(ctx context.Context) ([]model.SupportTicket, error)
	ByID(ctx context.Context, id int64) (*model.SupportTicket, error)
	Update(ctx context.Context, id int64, subject, description, status string) (*model.SupportTicket, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r supportrepo.Repo }

func New(r supportrepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, t *model.SupportTicket) error {
	return s.r.Create(ctx, t)
}

func (s *service) List(ctx context.Context) ([]model.SupportTicket, error) { return s.r.List(ctx) }

func (s *service) ByID(ctx context.Context, id int64) (*model.SupportTicket, error) {
	t, err := s.r.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, codedError{ErrNotFound}
	}
	return t, err
}

func (s *service) Update(ctx context.Context, id int64, subject, description, status string) (*model.SupportTicket, error) {
	t, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject != "" {
		t.Subject = subject
	}
	if description != "" {
		t.Description = description
	}
	if status != "" {
		t.Status = status
	}
	if err := s.r.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}
