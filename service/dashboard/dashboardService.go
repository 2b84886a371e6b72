package dashboardsvc

import (
	"context"

	"vehiclerental/model"
	bookingrepo "vehiclerental/repository/booking"
	paymentrepo "vehiclerental/repository/payment"
	reviewrepo "vehiclerental/repository/review"
)

// Dashboard is the union of an account's activity, each slice derived by query.
type Dashboard struct {
	Bookings []model.Booking `json:"bookings"`
	Payments []model.Payment `json:"payments"`
	Reviews  []model.Review  `json:"reviews"`
}

type Service interface {
	ForUser(ctx context.Context, userID int64) (*Dashboard, error)
}

type service struct {
	br bookingrepo.Repo
	pr paymentrepo.Repo
	rr reviewrepo.Repo
}

func New(br bookingrepo.Repo, pr paymentrepo.Repo, rr reviewrepo.Repo) Service {
	return &service{br: br, pr: pr, rr: rr}
}

func (s *service) ForUser(ctx context.Context, userID int64) (*Dashboard, error) {
	bookings, err := s.br.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	payments, err := s.pr.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.rr.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Bookings: bookings, Payments: payments, Reviews: reviews}, nil
}
