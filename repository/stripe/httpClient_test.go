package striperepo

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func signedHeader(t *testing.T, secret string, ts int64, body []byte) string {
	t.Helper()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(secret, ts, body))
}

func TestUnitAmount(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{19.99, 1999},
		{0.29, 29},
		{45.35, 4535},
		{100, 10000},
		{0, 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, unitAmount(tc.amount), "amount %v", tc.amount)
	}
}

func TestVerifyWebhook_Valid(t *testing.T) {
	r := &httpRepo{webhookSecret: testSecret}
	body := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"id":"pay_1","status":"succeeded"}}}`)
	ts := time.Now().Unix()

	ev, err := r.VerifyWebhook(signedHeader(t, testSecret, ts, body), body)
	require.NoError(t, err)
	require.Equal(t, "payment_intent.succeeded", ev.Type)
	require.Contains(t, string(ev.Data), "pay_1")
}

func TestVerifyWebhook_TamperedBody(t *testing.T) {
	r := &httpRepo{webhookSecret: testSecret}
	body := []byte(`{"type":"payment_intent.succeeded","data":{"object":{}}}`)
	ts := time.Now().Unix()
	header := signedHeader(t, testSecret, ts, body)

	tampered := []byte(`{"type":"payment_intent.succeeded","data":{"object":{"amount":1}}}`)
	_, err := r.VerifyWebhook(header, tampered)
	require.Error(t, err)
}

func TestVerifyWebhook_WrongSecret(t *testing.T) {
	r := &httpRepo{webhookSecret: testSecret}
	body := []byte(`{"type":"x","data":{"object":{}}}`)
	ts := time.Now().Unix()

	_, err := r.VerifyWebhook(signedHeader(t, "whsec_other", ts, body), body)
	require.Error(t, err)
}

func TestVerifyWebhook_StaleTimestamp(t *testing.T) {
	r := &httpRepo{webhookSecret: testSecret}
	body := []byte(`{"type":"x","data":{"object":{}}}`)
	ts := time.Now().Add(-10 * time.Minute).Unix()

	_, err := r.VerifyWebhook(signedHeader(t, testSecret, ts, body), body)
	require.Error(t, err)
}

func TestVerifyWebhook_MalformedHeader(t *testing.T) {
	r := &httpRepo{webhookSecret: testSecret}
	body := []byte(`{}`)

	for _, h := range []string{"", "t=abc,v1=00", "v1=00", fmt.Sprintf("t=%d", time.Now().Unix())} {
		_, err := r.VerifyWebhook(h, body)
		require.Error(t, err, "header %q", h)
	}
}

func TestVerifyWebhook_MissingEventType(t *testing.T) {
	r := &httpRepo{webhookSecret: testSecret}
	body := []byte(`{"data":{"object":{}}}`)
	ts := time.Now().Unix()

	_, err := r.VerifyWebhook(signedHeader(t, testSecret, ts, body), body)
	require.Error(t, err)
}

func TestParseSigHeader_MultipleSignatures(t *testing.T) {
	ts, sigs, err := parseSigHeader("t=1700000000,v1=aaaa,v1=bbbb")
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), ts)
	require.Equal(t, []string{"aaaa", "bbbb"}, sigs)
}
