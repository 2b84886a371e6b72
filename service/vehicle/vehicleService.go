package vehiclesvc

import (
	"context"
	"errors"

	"vehiclerental/model"
	vehiclerepo "vehiclerental/repository/vehicle"

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
	Create(ctx context.Context, v *model.Vehicle) error
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error)
	Availability(ctx context.Context, vehicleID int64) ([]model.DateRange, error)
}

type service struct{ r vehiclerepo.Repo }

func New(r vehiclerepo.Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, v *model.Vehicle) error {
	if v.Status == "" {
		v.Status = "pending"
	}
	return s.r.Create(ctx, v)
}

func (s *service) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.r.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, codedError{ErrNotFound}
	}
	return v, err
}

func (s *service) List(ctx context.Context) ([]model.Vehicle, error) { return s.r.List(ctx) }

func (s *service) Update(ctx context.Context, v *model.Vehicle) error {
	if _, err := s.ByID(ctx, v.ID); err != nil {
		return err
	}
	return s.r.Update(ctx, v)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}

func (s *service) Search(ctx context.Context, f model.VehicleFilter) ([]model.Vehicle, error) {
	return s.r.Search(ctx, f)
}

func (s *service) Availability(ctx context.Context, vehicleID int64) ([]model.DateRange, error) {
	return s.r.BookedRanges(ctx, vehicleID)
}
