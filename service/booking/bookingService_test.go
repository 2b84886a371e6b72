package bookingsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"vehiclerental/model"
	bookingrepo "vehiclerental/repository/booking"
	striperepo "vehiclerental/repository/stripe"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createFn        func(ctx context.Context, b *model.Booking) error
	byIDFn          func(ctx context.Context, id int64) (*model.Booking, error)
	listFn          func(ctx context.Context) ([]model.Booking, error)
	listByUserFn    func(ctx context.Context, userID int64) ([]model.Booking, error)
	updateFn        func(ctx context.Context, b *model.Booking) error
	deleteFn        func(ctx context.Context, id int64) error
	markCompletedFn func(ctx context.Context, id int64) (*model.Booking, error)
	insertHistoryFn func(ctx context.Context, h *model.RentalHistory) error

	created []model.Booking
	history []model.RentalHistory
}

var _ bookingrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, b *model.Booking) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, b); err != nil {
			return err
		}
	}
	if b.ID == 0 {
		b.ID = int64(len(m.created) + 1)
	}
	m.created = append(m.created, *b)
	return nil
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	for i := range m.created {
		if m.created[i].ID == id {
			b := m.created[i]
			return &b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRepo) List(ctx context.Context) ([]model.Booking, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return m.created, nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockRepo) Update(ctx context.Context, b *model.Booking) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, b)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo) MarkCompleted(ctx context.Context, id int64) (*model.Booking, error) {
	if m.markCompletedFn != nil {
		return m.markCompletedFn(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRepo) InsertHistory(ctx context.Context, h *model.RentalHistory) error {
	if m.insertHistoryFn != nil {
		if err := m.insertHistoryFn(ctx, h); err != nil {
			return err
		}
	}
	m.history = append(m.history, *h)
	return nil
}

func (m *mockRepo) ListHistory(ctx context.Context) ([]model.RentalHistory, error) {
	return m.history, nil
}

func (m *mockRepo) ListHistoryByUser(ctx context.Context, userID int64) ([]model.RentalHistory, error) {
	var out []model.RentalHistory
	for _, h := range m.history {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

type mockGateway struct {
	retrieveIntentFn  func(ctx context.Context, id string) (*striperepo.PaymentIntent, error)
	retrieveSessionFn func(ctx context.Context, id string) (*striperepo.CheckoutSession, error)
	createSessionFn   func(ctx context.Context, req striperepo.CreateSessionReq) (*striperepo.CheckoutSession, error)
	verifyFn          func(sigHeader string, raw []byte) (*striperepo.Event, error)
}

var _ striperepo.Repo = (*mockGateway)(nil)

func (m *mockGateway) RetrievePaymentIntent(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
	return m.retrieveIntentFn(ctx, id)
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

type mockRenderer struct {
	renderFn func(b *model.Booking, path string) error
	paths    []string
}

func (m *mockRenderer) Render(b *model.Booking, path string) error {
	if m.renderFn != nil {
		if err := m.renderFn(b, path); err != nil {
			return err
		}
	}
	m.paths = append(m.paths, path)
	return nil
}

type mockMailer struct {
	sendFn func(to, subject, body string, attachments ...string) error
	sent   []sentMail
}

type sentMail struct {
	to, subject, body string
	attachments       []string
}

func (m *mockMailer) Send(to, subject, body string, attachments ...string) error {
	if m.sendFn != nil {
		if err := m.sendFn(to, subject, body, attachments...); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMail{to, subject, body, attachments})
	return nil
}

func succeededIntent(id string) *striperepo.PaymentIntent {
	return &striperepo.PaymentIntent{
		ID:     id,
		Status: "succeeded",
		Metadata: map[string]string{
			"userId":      "7",
			"vehicle":     "3",
			"startDate":   "2026-09-10",
			"endDate":     "2026-09-14",
			"totalAmount": "320.50",
		},
	}
}

// --- tests ---

func TestConfirm_Success(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{
				ID: id, UserID: 7, VehicleID: 3,
				StartDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
				TotalAmount: 320.50, Status: model.BookingPending,
				Username: "alice", Email: "alice@example.com", VehicleModel: "Civic",
			}, nil
		},
	}
	gw := &mockGateway{
		retrieveIntentFn: func(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
			require.Equal(t, "pay_1", id)
			return succeededIntent(id), nil
		},
	}
	rend := &mockRenderer{}
	mail := &mockMailer{}
	svc := New(r, gw, rend, mail, "invoices")

	out, err := svc.Confirm(ctx, "pay_1")
	require.NoError(t, err)
	require.NotNil(t, out.Booking)
	require.Equal(t, "invoices/invoice_1.pdf", out.InvoicePath)

	require.Len(t, r.created, 1)
	require.Equal(t, int64(7), r.created[0].UserID)
	require.Equal(t, int64(3), r.created[0].VehicleID)
	require.Equal(t, 320.50, r.created[0].TotalAmount)
	require.Equal(t, model.BookingPending, r.created[0].Status)

	require.Len(t, r.history, 1)
	require.Equal(t, int64(7), r.history[0].UserID)

	require.Len(t, rend.paths, 1)
	require.Len(t, mail.sent, 1)
	require.Equal(t, "alice@example.com", mail.sent[0].to)
	require.Equal(t, []string{out.InvoicePath}, mail.sent[0].attachments)
	require.Contains(t, mail.sent[0].body, "Civic")
}

func TestConfirm_NotSucceeded(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{}
	gw := &mockGateway{
		retrieveIntentFn: func(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
			pi := succeededIntent(id)
			pi.Status = "requires_payment_method"
			return pi, nil
		},
	}
	svc := New(r, gw, &mockRenderer{}, &mockMailer{}, "invoices")

	_, err := svc.Confirm(ctx, "pay_2")
	require.Error(t, err)
	require.Equal(t, ErrPaymentNotConfirmed, Code(err))
	require.Empty(t, r.created)
	require.Empty(t, r.history)
}

func TestConfirm_BadMetadata(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{}
	gw := &mockGateway{
		retrieveIntentFn: func(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
			pi := succeededIntent(id)
			pi.Metadata["startDate"] = "not-a-date"
			return pi, nil
		},
	}
	svc := New(r, gw, &mockRenderer{}, &mockMailer{}, "invoices")

	_, err := svc.Confirm(ctx, "pay_3")
	require.Error(t, err)
	require.Equal(t, ErrBadMetadata, Code(err))
	require.Empty(t, r.created)
}

// A render failure surfaces an error but the booking and history rows stay.
func TestConfirm_RenderFailureKeepsBooking(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, UserID: 7, Email: "alice@example.com"}, nil
		},
	}
	gw := &mockGateway{
		retrieveIntentFn: func(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
			return succeededIntent(id), nil
		},
	}
	rend := &mockRenderer{
		renderFn: func(b *model.Booking, path string) error { return errors.New("disk full") },
	}
	mail := &mockMailer{}
	svc := New(r, gw, rend, mail, "invoices")

	_, err := svc.Confirm(ctx, "pay_4")
	require.Error(t, err)
	require.Equal(t, ErrRenderFailed, Code(err))

	require.Len(t, r.created, 1)
	require.Len(t, r.history, 1)
	require.Empty(t, mail.sent)
}

func TestConfirm_MailFailureKeepsBooking(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, UserID: 7, Email: "alice@example.com"}, nil
		},
	}
	gw := &mockGateway{
		retrieveIntentFn: func(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
			return succeededIntent(id), nil
		},
	}
	mail := &mockMailer{
		sendFn: func(to, subject, body string, attachments ...string) error {
			return errors.New("smtp refused")
		},
	}
	svc := New(r, gw, &mockRenderer{}, mail, "invoices")

	_, err := svc.Confirm(ctx, "pay_5")
	require.Error(t, err)
	require.Equal(t, ErrNotifyFailed, Code(err))
	require.Len(t, r.created, 1)
	require.Len(t, r.history, 1)
}

// Confirming the same payment reference twice books twice. There is no
// dedup on the gateway id; callers must not retry a confirmed payment.
func TestConfirm_SamePaymentTwiceBooksTwice(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, UserID: 7, Email: "alice@example.com"}, nil
		},
	}
	gw := &mockGateway{
		retrieveIntentFn: func(ctx context.Context, id string) (*striperepo.PaymentIntent, error) {
			return succeededIntent(id), nil
		},
	}
	svc := New(r, gw, &mockRenderer{}, &mockMailer{}, "invoices")

	_, err := svc.Confirm(ctx, "pay_6")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, "pay_6")
	require.NoError(t, err)

	require.Len(t, r.created, 2)
	require.Len(t, r.history, 2)
}

func TestConfirm_DateOnlyAndRFC3339(t *testing.T) {
	md := map[string]string{
		"userId":      "1",
		"vehicle":     "2",
		"startDate":   "2026-09-10",
		"endDate":     "2026-09-14T00:00:00Z",
		"totalAmount": "10",
	}
	b, err := bookingFromMetadata(md)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), b.StartDate)
	require.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), b.EndDate)
}

func TestCompleteCheckout(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{
		markCompletedFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			require.Equal(t, int64(12), id)
			return &model.Booking{ID: id, Status: model.BookingCompleted, Email: "bob@example.com"}, nil
		},
	}
	mail := &mockMailer{}
	svc := New(r, &mockGateway{}, &mockRenderer{}, mail, "invoices")

	b, err := svc.CompleteCheckout(ctx, &striperepo.CheckoutSession{
		ID:       "cs_1",
		Metadata: map[string]string{"bookingId": "12"},
	})
	require.NoError(t, err)
	require.Equal(t, model.BookingCompleted, b.Status)
	require.Len(t, mail.sent, 1)
	require.Equal(t, "bob@example.com", mail.sent[0].to)
	require.Empty(t, mail.sent[0].attachments)
}

func TestCompleteCheckout_BadBookingID(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, &mockGateway{}, &mockRenderer{}, &mockMailer{}, "invoices")

	_, err := svc.CompleteCheckout(ctx, &striperepo.CheckoutSession{
		ID:       "cs_2",
		Metadata: map[string]string{"bookingId": "nope"},
	})
	require.Error(t, err)
	require.Equal(t, ErrBadMetadata, Code(err))
}

func TestCompleteCheckout_UnknownBooking(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, &mockGateway{}, &mockRenderer{}, &mockMailer{}, "invoices")

	_, err := svc.CompleteCheckout(ctx, &striperepo.CheckoutSession{
		ID:       "cs_3",
		Metadata: map[string]string{"bookingId": "99"},
	})
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{}, &mockGateway{}, &mockRenderer{}, &mockMailer{}, "invoices")

	_, err := svc.ByID(ctx, 404)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}
