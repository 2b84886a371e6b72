package striperepo

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vehiclerental/util/httpx"
)

const apiBase = "https://api.stripe.com/v1"

// signature timestamps older than this are rejected
const signatureTolerance = 5 * time.Minute

type httpRepo struct {
	apiKey        string
	webhookSecret string
	client        *http.Client
	// session creation is the slowest gateway call, so it gets a
	// longer deadline than the shared client allows
	sessionClient *http.Client
}

func NewHTTP(apiKey, webhookSecret string) Repo {
	return &httpRepo{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		client:        httpx.Client(),
		sessionClient: httpx.WithTimeout(30 * time.Second),
	}
}

func (r *httpRepo) RetrievePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	var out PaymentIntent
	if err := r.get(ctx, "/payment_intents/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("stripe: empty payment intent id")
	}
	return &out, nil
}

func (r *httpRepo) RetrieveCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	var out CheckoutSession
	if err := r.get(ctx, "/checkout/sessions/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("stripe: empty session id")
	}
	return &out, nil
}

// unitAmount converts a decimal amount to the smallest currency unit.
// Rounded, not truncated: 19.99*100 is 1998.99… in float64.
func unitAmount(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (r *httpRepo) CreateCheckoutSession(ctx context.Context, req CreateSessionReq) (*CheckoutSession, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", currency)
	form.Set("line_items[0][price_data][product_data][name]", req.ProductName)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(unitAmount(req.Amount), 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.sessionClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe create session failed: %s", resp.Status)
	}

	var out CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("stripe: empty session id")
	}
	return &out, nil
}

func (r *httpRepo) get(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+path, nil)
	if err != nil {
		return err
	}
	httpReq.SetBasicAuth(r.apiKey, "")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("stripe %s failed: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// VerifyWebhook implements the gateway's signature scheme: the header carries
// `t=<unix>,v1=<hex hmac>` and the signature is HMAC-SHA256 over "<t>.<body>".
func (r *httpRepo) VerifyWebhook(sigHeader string, raw []byte) (*Event, error) {
	ts, sigs, err := parseSigHeader(sigHeader)
	if err != nil {
		return nil, err
	}
	if time.Since(time.Unix(ts, 0)) > signatureTolerance {
		return nil, errors.New("webhook signature timestamp outside tolerance")
	}

	expected := computeSignature(r.webhookSecret, ts, raw)
	ok := false
	for _, s := range sigs {
		if hmac.Equal([]byte(s), []byte(expected)) {
			ok = true
			break
		}
	}
	if !ok {
		return nil, errors.New("webhook signature mismatch")
	}

	var env struct {
		Type string `json:"type"`
		Data struct {
			Object json.RawMessage `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("bad webhook json: %w", err)
	}
	if env.Type == "" {
		return nil, errors.New("missing event type")
	}
	return &Event{Type: env.Type, Data: env.Data.Object}, nil
}

func parseSigHeader(h string) (ts int64, v1 []string, err error) {
	for _, part := range strings.Split(h, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, errors.New("bad signature timestamp")
			}
		case "v1":
			v1 = append(v1, v)
		}
	}
	if ts == 0 || len(v1) == 0 {
		return 0, nil, errors.New("malformed signature header")
	}
	return ts, v1, nil
}

func computeSignature(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
