package paymentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"vehiclerental/model"
	paymentrepo "vehiclerental/repository/payment"
	striperepo "vehiclerental/repository/stripe"
	bookingsvc "vehiclerental/service/booking"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	verifyFn          func(sigHeader string, raw []byte) (*striperepo.Event, error)
	createSessionFn   func(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CheckoutSession, error)
	retrieveSessionFn func(ctx context.Context, id string) (*striperepo.CheckoutSession, error)
}

var _ striperepo.Repo = (*mockGateway)(nil)

func (m *mockGateway) RetrievePaymentIntent(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
	return nil, errors.New("not used")
}

func (m *mockGateway) RetrieveCheckoutSession(ctx context.Context, id string) (*striperepo.CheckoutSession, error) {
	return m.retrieveSessionFn(ctx, id)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CheckoutSession, error) {
	return m.createSessionFn(ctx, req)
}

func (m *mockGateway) VerifyWebhook(sigHeader string, raw []byte) (*striperepo.Event, error) {
	return m.verifyFn(sigHeader, raw)
}

type mockPayments struct {
	paymentrepo.Repo
	byIDFn  func(ctx context.Context, id int64) (*model.Payment, error)
	created []model.Payment
	updated []model.Payment
	deleted []int64
}

func (m *mockPayments) Create(ctx context.Context, p *model.Payment) error {
	m.created = append(m.created, *p)
	return nil
}

func (m *mockPayments) ByID(ctx context.Context, id int64) (*model.Payment, error) {
	if m.byIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockPayments) Update(ctx context.Context, p *model.Payment) error {
	m.updated = append(m.updated, *p)
	return nil
}

func (m *mockPayments) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockBookings struct {
	bookingsvc.Service
	confirmIntentFn    func(ctx context.Context, pi *striperepo.PaymentIntent) (*bookingsvc.Confirmed, error)
	completeCheckoutFn func(ctx context.Context, sess *striperepo.CheckoutSession) (*model.Booking, error)
	confirmed          int
	completed          int
}

func (m *mockBookings) ConfirmIntent(ctx context.Context, pi *striperepo.PaymentIntent) (*bookingsvc.Confirmed, error) {
	m.confirmed++
	return m.confirmIntentFn(ctx, pi)
}

func (m *mockBookings) CompleteCheckout(ctx context.Context, sess *striperepo.CheckoutSession) (*model.Booking, error) {
	m.completed++
	return m.completeCheckoutFn(ctx, sess)
}

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- tests ---

func TestHandleWebhook_BadSignature(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{
		verifyFn: func(sigHeader string, raw []byte) (*striperepo.Event, error) {
			return nil, errors.New("signature mismatch")
		},
	}
	pr := &mockPayments{}
	bk := &mockBookings{}
	svc := New(gw, pr, bk, "http://client", discardLog())

	err := svc.HandleWebhook(ctx, "t=1,v1=bad", []byte(`{}`))
	require.Error(t, err)
	require.Equal(t, ErrBadSignature, Code(err))
	require.Zero(t, bk.confirmed)
	require.Zero(t, bk.completed)
	require.Empty(t, pr.created)
}

func TestHandleWebhook_PaymentIntentSucceeded(t *testing.T) {
	ctx := context.Background()
	payload, _ := json.Marshal(striperepo.PaymentIntent{
		ID:     "pay_1",
		Status: "succeeded",
	})
	gw := &mockGateway{
		verifyFn: func(sigHeader string, raw []byte) (*striperepo.Event, error) {
			return &striperepo.Event{Type: "payment_intent.succeeded", Data: payload}, nil
		},
	}
	pr := &mockPayments{}
	bk := &mockBookings{
		confirmIntentFn: func(ctx context.Context, pi *striperepo.PaymentIntent) (*bookingsvc.Confirmed, error) {
			require.Equal(t, "pay_1", pi.ID)
			return &bookingsvc.Confirmed{
				Booking: &model.Booking{ID: 3, UserID: 7, TotalAmount: 120},
			}, nil
		},
	}
	svc := New(gw, pr, bk, "http://client", discardLog())

	require.NoError(t, svc.HandleWebhook(ctx, "sig", []byte(`{}`)))
	require.Equal(t, 1, bk.confirmed)

	require.Len(t, pr.created, 1)
	require.Equal(t, "pay_1", pr.created[0].TransactionID)
	require.Equal(t, float64(120), pr.created[0].Amount)
	require.Equal(t, "Completed", pr.created[0].Status)
}

func TestHandleWebhook_CheckoutSessionCompleted(t *testing.T) {
	ctx := context.Background()
	payload, _ := json.Marshal(striperepo.CheckoutSession{ID: "cs_1"})
	gw := &mockGateway{
		verifyFn: func(sigHeader string, raw []byte) (*striperepo.Event, error) {
			return &striperepo.Event{Type: "checkout.session.completed", Data: payload}, nil
		},
	}
	bk := &mockBookings{
		completeCheckoutFn: func(ctx context.Context, sess *striperepo.CheckoutSession) (*model.Booking, error) {
			require.Equal(t, "cs_1", sess.ID)
			return &model.Booking{ID: 3}, nil
		},
	}
	svc := New(gw, &mockPayments{}, bk, "http://client", discardLog())

	require.NoError(t, svc.HandleWebhook(ctx, "sig", []byte(`{}`)))
	require.Equal(t, 1, bk.completed)
}

func TestHandleWebhook_UnknownEventIgnored(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{
		verifyFn: func(sigHeader string, raw []byte) (*striperepo.Event, error) {
			return &striperepo.Event{Type: "customer.created"}, nil
		},
	}
	bk := &mockBookings{}
	svc := New(gw, &mockPayments{}, bk, "http://client", discardLog())

	require.NoError(t, svc.HandleWebhook(ctx, "sig", []byte(`{}`)))
	require.Zero(t, bk.confirmed)
	require.Zero(t, bk.completed)
}

func TestCreateCheckoutSession(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{
		createSessionFn: func(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CheckoutSession, error) {
			require.Equal(t, "Vehicle Rental Payment", req.ProductName)
			require.Equal(t, "usd", req.Currency)
			require.Equal(t, "http://client/thank-you", req.SuccessURL)
			require.Equal(t, "http://client/checkout-cancelled", req.CancelURL)
			require.Equal(t, "12", req.Metadata["bookingId"])
			return &striperepo.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"}, nil
		},
	}
	svc := New(gw, &mockPayments{}, &mockBookings{}, "http://client", discardLog())

	url, err := svc.CreateCheckoutSession(ctx, 99.5, map[string]string{"bookingId": "12"})
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/cs_1", url)
}

func TestHandleSuccess_NotPaid(t *testing.T) {
	ctx := context.Background()
	gw := &mockGateway{
		retrieveSessionFn: func(ctx context.Context, id string) (*striperepo.CheckoutSession, error) {
			return &striperepo.CheckoutSession{ID: id, PaymentStatus: "unpaid"}, nil
		},
	}
	bk := &mockBookings{}
	svc := New(gw, &mockPayments{}, bk, "http://client", discardLog())

	_, err := svc.HandleSuccess(ctx, "cs_9")
	require.Error(t, err)
	require.Zero(t, bk.completed)
}

func TestByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockGateway{}, &mockPayments{}, &mockBookings{}, "http://client", discardLog())

	_, err := svc.ByID(ctx, 404)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdate_StatusOnly(t *testing.T) {
	ctx := context.Background()
	pr := &mockPayments{
		byIDFn: func(ctx context.Context, id int64) (*model.Payment, error) {
			return &model.Payment{ID: id, UserID: 3, Amount: 120.50, Status: "Pending"}, nil
		},
	}
	svc := New(&mockGateway{}, pr, &mockBookings{}, "http://client", discardLog())

	p, err := svc.Update(ctx, 5, 0, "Refunded")
	require.NoError(t, err)
	require.Equal(t, "Refunded", p.Status)
	require.Equal(t, 120.50, p.Amount)
	require.Len(t, pr.updated, 1)
	require.Equal(t, "Refunded", pr.updated[0].Status)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	pr := &mockPayments{}
	svc := New(&mockGateway{}, pr, &mockBookings{}, "http://client", discardLog())

	_, err := svc.Update(ctx, 404, 10, "Completed")
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
	require.Empty(t, pr.updated)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	pr := &mockPayments{
		byIDFn: func(ctx context.Context, id int64) (*model.Payment, error) {
			return &model.Payment{ID: id}, nil
		},
	}
	svc := New(&mockGateway{}, pr, &mockBookings{}, "http://client", discardLog())

	require.NoError(t, svc.Delete(ctx, 8))
	require.Equal(t, []int64{8}, pr.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	pr := &mockPayments{}
	svc := New(&mockGateway{}, pr, &mockBookings{}, "http://client", discardLog())

	err := svc.Delete(ctx, 404)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
	require.Empty(t, pr.deleted)
}
