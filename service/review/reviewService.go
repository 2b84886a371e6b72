package reviewsvc

import (
	"context"

	"vehiclerental/model"
	reviewrepo "vehiclerental/repository/review"
)

type Service interface {
	Add(ctx context.Context, rv *model.Review) error
	ByVehicle(ctx context.Context, vehicleID int64) ([]model.Review, error)
	ByUser(ctx context.Context, userID int64) ([]model.Review, error)
}

type service struct{ r reviewrepo.Repo }

func New(r reviewrepo.Repo) Service { return &service{r: r} }

func (s *service) Add(ctx context.Context, rv *model.Review) error { return s.r.Create(ctx, rv) }

func (s *service) ByVehicle(ctx context.Context, vehicleID int64) ([]model.Review, error) {
	return s.r.ListByVehicle(ctx, vehicleID)
}

func (s *service) ByUser(ctx context.Context, userID int64) ([]model.Review, error) {
	return s.r.ListByUser(ctx, userID)
}
