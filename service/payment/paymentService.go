package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"vehiclerental/model"
	paymentrepo "vehiclerental/repository/payment"
	striperepo "vehiclerental/repository/stripe"
	bookingsvc "vehiclerental/service/booking"

	"github.com/jackc/pgx/v5"
)

type ErrCode string

const (
	ErrBadSignature ErrCode = "BAD_SIGNATURE"
	ErrNotFound     ErrCode = "NOT_FOUND"
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
	// HandleWebhook verifies the gateway signature, then dispatches the event.
	// Unverifiable requests fail before any store access.
	HandleWebhook(ctx context.Context, sigHeader string, raw []byte) error

	CreateCheckoutSession(ctx context.Context, amount float64, metadata map[string]string) (string, error)

	// HandleSuccess re-fetches a checkout session by id and, when paid, marks
	// the referenced booking completed.
	HandleSuccess(ctx context.Context, sessionID string) (*model.Booking, error)

	List(ctx context.Context) ([]model.Payment, error)
	ByID(ctx context.Context, id int64) (*model.Payment, error)
	Update(ctx context.Context, id int64, amount float64, status string) (*model.Payment, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	gw        striperepo.Repo
	pr        paymentrepo.Repo
	bookings  bookingsvc.Service
	clientURL string
	log       *slog.Logger
}

func New(gw striperepo.Repo, pr paymentrepo.Repo, bookings bookingsvc.Service, clientURL string, log *slog.Logger) Service {
	return &service{gw: gw, pr: pr, bookings: bookings, clientURL: clientURL, log: log}
}

func (s *service) HandleWebhook(ctx context.Context, sigHeader string, raw []byte) error {
	ev, err := s.gw.VerifyWebhook(sigHeader, raw)
	if err != nil {
		return codedError{ErrBadSignature}
	}

	switch ev.Type {
	case "payment_intent.succeeded":
		var pi striperepo.PaymentIntent
		if err := json.Unmarshal(ev.Data, &pi); err != nil {
			return err
		}
		out, err := s.bookings.ConfirmIntent(ctx, &pi)
		if err != nil {
			return err
		}
		s.recordPayment(ctx, out.Booking, pi.ID)
		return nil

	case "checkout.session.completed":
		var sess striperepo.CheckoutSession
		if err := json.Unmarshal(ev.Data, &sess); err != nil {
			return err
		}
		_, err := s.bookings.CompleteCheckout(ctx, &sess)
		return err

	default:
		s.log.Info("unhandled webhook event", "type", ev.Type)
		return nil
	}
}

// recordPayment keeps the payments ledger in step with confirmed bookings.
// Best-effort: a failure here does not undo the confirmation.
func (s *service) recordPayment(ctx context.Context, b *model.Booking, transactionID string) {
	p := &model.Payment{
		UserID:        b.UserID,
		Amount:        b.TotalAmount,
		TransactionID: transactionID,
		Status:        "Completed",
	}
	if err := s.pr.Create(ctx, p); err != nil {
		s.log.Error("payment record insert failed", "err", err, "booking_id", b.ID)
	}
}

func (s *service) CreateCheckoutSession(ctx context.Context, amount float64, metadata map[string]string) (string, error) {
	sess, err := s.gw.CreateCheckoutSession(ctx, striperepo.CreateSessionReq{
		ProductName: "Vehicle Rental Payment",
		Amount:      amount,
		Currency:    "usd",
		SuccessURL:  s.clientURL + "/thank-you",
		CancelURL:   s.clientURL + "/checkout-cancelled",
		Metadata:    metadata,
	})
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

func (s *service) HandleSuccess(ctx context.Context, sessionID string) (*model.Booking, error) {
	sess, err := s.gw.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.PaymentStatus != "paid" {
		return nil, errors.New("payment not completed")
	}
	return s.bookings.CompleteCheckout(ctx, sess)
}

func (s *service) List(ctx context.Context) ([]model.Payment, error) { return s.pr.List(ctx) }

func (s *service) ByID(ctx context.Context, id int64) (*model.Payment, error) {
	p, err := s.pr.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, codedError{ErrNotFound}
	}
	return p, err
}

func (s *service) Update(ctx context.Context, id int64, amount float64, status string) (*model.Payment, error) {
	p, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if amount > 0 {
		p.Amount = amount
	}
	if status != "" {
		p.Status = status
	}
	if err := s.pr.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	return s.pr.Delete(ctx, id)
}
