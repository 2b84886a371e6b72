package bookingsvc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"vehiclerental/model"
	bookingrepo "vehiclerental/repository/booking"
	striperepo "vehiclerental/repository/stripe"
	"vehiclerental/util/invoice"
	"vehiclerental/util/mailer"

	"github.com/jackc/pgx/v5"
)

// errors used by controllers

type ErrCode string

const (
	ErrPaymentNotConfirmed ErrCode = "PAYMENT_NOT_CONFIRMED"
	ErrBadMetadata         ErrCode = "BAD_METADATA"
	ErrNotFound            ErrCode = "NOT_FOUND"
	ErrRenderFailed        ErrCode = "RENDER_FAILED"
	ErrNotifyFailed        ErrCode = "NOTIFY_FAILED"
)

type codedError struct {
	code ErrCode
	err  error
}

func (e codedError) Error() string {
	if e.err != nil {
		return string(e.code) + ": " + e.err.Error()
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.err }

func makeErr(c ErrCode) error            { return codedError{code: c} }
func wrapErr(c ErrCode, err error) error { return codedError{code: c, err: err} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Confirmed is the outcome of a successful payment confirmation.
type Confirmed struct {
	Booking     *model.Booking `json:"booking"`
	InvoicePath string         `json:"invoice_path"`
}

type Service interface {
	// Confirm verifies a payment reference with the gateway and runs the
	// booking creation sequence.
	Confirm(ctx context.Context, paymentIntentID string) (*Confirmed, error)

	// ConfirmIntent runs the same sequence for an already-verified intent
	// (the webhook path).
	ConfirmIntent(ctx context.Context, pi *striperepo.PaymentIntent) (*Confirmed, error)

	// CompleteCheckout marks the referenced booking completed and sends a
	// plain confirmation. Independent of the confirmation sequence.
	CompleteCheckout(ctx context.Context, session *striperepo.CheckoutSession) (*model.Booking, error)

	List(ctx context.Context) ([]model.Booking, error)
	ByID(ctx context.Context, id int64) (*model.Booking, error)
	MyBookings(ctx context.Context, userID int64) ([]model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	Delete(ctx context.Context, id int64) error

	History(ctx context.Context) ([]model.RentalHistory, error)
	HistoryByUser(ctx context.Context, userID int64) ([]model.RentalHistory, error)
}

type service struct {
	r          bookingrepo.Repo
	gw         striperepo.Repo
	renderer   invoice.Renderer
	mail       mailer.Mailer
	invoiceDir string
}

func New(r bookingrepo.Repo, gw striperepo.Repo, renderer invoice.Renderer, mail mailer.Mailer, invoiceDir string) Service {
	return &service{r: r, gw: gw, renderer: renderer, mail: mail, invoiceDir: invoiceDir}
}

func (s *service) Confirm(ctx context.Context, paymentIntentID string) (*Confirmed, error) {
	pi, err := s.gw.RetrievePaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	return s.ConfirmIntent(ctx, pi)
}

// ConfirmIntent executes the confirmation sequence. The booking insert is the
// point of no return: render or mail failures surface an error but leave the
// booking and history records in place.
func (s *service) ConfirmIntent(ctx context.Context, pi *striperepo.PaymentIntent) (*Confirmed, error) {
	if pi.Status != "succeeded" {
		return nil, makeErr(ErrPaymentNotConfirmed)
	}

	b, err := bookingFromMetadata(pi.Metadata)
	if err != nil {
		return nil, wrapErr(ErrBadMetadata, err)
	}

	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}

	hist := &model.RentalHistory{
		UserID:      b.UserID,
		VehicleID:   b.VehicleID,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		TotalAmount: b.TotalAmount,
	}
	if err := s.r.InsertHistory(ctx, hist); err != nil {
		return nil, err
	}

	// re-read with username/email/vehicle model populated
	populated, err := s.r.ByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	path := invoice.Path(s.invoiceDir, populated.ID)
	if err := s.renderer.Render(populated, path); err != nil {
		return nil, wrapErr(ErrRenderFailed, err)
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your booking for the vehicle %q has been successfully confirmed!\n\n"+
			"Booking Details:\n"+
			"- Start Date: %s\n"+
			"- End Date: %s\n"+
			"- Total Price: %.2f\n\n"+
			"Please find your invoice attached.\n\n"+
			"Thank you for choosing our service!",
		populated.Username, populated.VehicleModel,
		populated.StartDate.Format(time.DateOnly),
		populated.EndDate.Format(time.DateOnly),
		populated.TotalAmount,
	)
	if err := s.mail.Send(populated.Email, "Booking Confirmation and Invoice", body, path); err != nil {
		return nil, wrapErr(ErrNotifyFailed, err)
	}

	return &Confirmed{Booking: populated, InvoicePath: path}, nil
}

func bookingFromMetadata(md map[string]string) (*model.Booking, error) {
	userID, err := strconv.ParseInt(md["userId"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad userId %q", md["userId"])
	}
	vehicleID, err := strconv.ParseInt(md["vehicle"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad vehicle %q", md["vehicle"])
	}
	start, err := parseDate(md["startDate"])
	if err != nil {
		return nil, fmt.Errorf("bad startDate %q", md["startDate"])
	}
	end, err := parseDate(md["endDate"])
	if err != nil {
		return nil, fmt.Errorf("bad endDate %q", md["endDate"])
	}
	total, err := strconv.ParseFloat(md["totalAmount"], 64)
	if err != nil {
		return nil, fmt.Errorf("bad totalAmount %q", md["totalAmount"])
	}

	return &model.Booking{
		UserID:      userID,
		VehicleID:   vehicleID,
		StartDate:   start,
		EndDate:     end,
		TotalAmount: total,
		Status:      model.BookingPending,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (s *service) CompleteCheckout(ctx context.Context, session *striperepo.CheckoutSession) (*model.Booking, error) {
	id, err := strconv.ParseInt(session.Metadata["bookingId"], 10, 64)
	if err != nil {
		return nil, wrapErr(ErrBadMetadata, fmt.Errorf("bad bookingId %q", session.Metadata["bookingId"]))
	}

	b, err := s.r.MarkCompleted(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	body := fmt.Sprintf("Thank you for your payment. Your booking #%d is now completed.", b.ID)
	if err := s.mail.Send(b.Email, "Payment Confirmation", body); err != nil {
		return nil, wrapErr(ErrNotifyFailed, err)
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]model.Booking, error) { return s.r.List(ctx) }

func (s *service) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	b, err := s.r.ByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, makeErr(ErrNotFound)
	}
	return b, err
}

func (s *service) MyBookings(ctx context.Context, userID int64) ([]model.Booking, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, b *model.Booking) error {
	if _, err := s.ByID(ctx, b.ID); err != nil {
		return err
	}
	return s.r.Update(ctx, b)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	return s.r.Delete(ctx, id)
}

func (s *service) History(ctx context.Context) ([]model.RentalHistory, error) {
	return s.r.ListHistory(ctx)
}

func (s *service) HistoryByUser(ctx context.Context, userID int64) ([]model.RentalHistory, error) {
	return s.r.ListHistoryByUser(ctx, userID)
}
