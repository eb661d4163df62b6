package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"freework/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var ErrMissingCashfreeCredentials = errors.New("missing CASHFREE_CLIENT_ID/CASHFREE_CLIENT_SECRET")

const (
	defaultPGBaseURL     = "https://sandbox.cashfree.com/pg"
	defaultPayoutBaseURL = "https://payout-gamma.cashfree.com/payout/v1"

	apiVersion = "2022-09-01"

	// Gateway calls block the handling request; keep them bounded.
	requestTimeout = 10 * time.Second
)

// GatewayError carries the upstream error payload for a non-success response.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("cashfree gateway error: status=%d body=%s", e.StatusCode, e.Body)
}

// GatewayTimeoutError reports an expired deadline on an outbound gateway call.
type GatewayTimeoutError struct {
	Op  string
	Err error
}

func (e *GatewayTimeoutError) Error() string {
	return fmt.Sprintf("cashfree gateway timeout: op=%s err=%v", e.Op, e.Err)
}

func (e *GatewayTimeoutError) Unwrap() error { return e.Err }

// CashfreeGateway calls Cashfree's hosted payment-link API and payout
// transfer API. Both are authenticated with a shared client id/secret pair
// and a fixed API version header.
type CashfreeGateway struct {
	client        *http.Client
	clientID      string
	clientSecret  string
	pgBaseURL     string
	payoutBaseURL string
	mockMode      bool
}

var _ interfaces.IPaymentGateway = (*CashfreeGateway)(nil)

func NewCashfreeGateway(clientID, clientSecret string) (*CashfreeGateway, error) {
	if isPaymentGatewayMockEnabled() {
		logrus.Infof("[payment][gateway] mock mode enabled")
		return &CashfreeGateway{mockMode: true}, nil
	}

	if clientID == "" || clientSecret == "" {
		logrus.Warnf("[payment][gateway] missing Cashfree credentials")
		return nil, ErrMissingCashfreeCredentials
	}

	g := &CashfreeGateway{
		client:        &http.Client{Timeout: requestTimeout},
		clientID:      clientID,
		clientSecret:  clientSecret,
		pgBaseURL:     getenvDefault("CASHFREE_PG_BASE_URL", defaultPGBaseURL),
		payoutBaseURL: getenvDefault("CASHFREE_PAYOUT_BASE_URL", defaultPayoutBaseURL),
	}
	logrus.Infof("[payment][gateway] Cashfree client initialized pg_base=%s payout_base=%s", g.pgBaseURL, g.payoutBaseURL)
	return g, nil
}

type linkRequest struct {
	CustomerDetails linkCustomer `json:"customer_details"`
	LinkAmount      float64      `json:"link_amount"`
	LinkCurrency    string       `json:"link_currency"`
	LinkPurpose     string       `json:"link_purpose"`
	LinkID          string       `json:"link_id"`
	LinkNotify      linkNotify   `json:"link_notify"`
}

type linkCustomer struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type linkNotify struct {
	SendSMS   bool `json:"send_sms"`
	SendEmail bool `json:"send_email"`
}

type linkResponse struct {
	LinkURL string `json:"link_url"`
}

// CreateLink creates a hosted payment link for the given amount (INR).
// uniqueRef is the caller-supplied link id; reusing the same ref on a retry
// makes the call idempotent on the gateway side.
func (g *CashfreeGateway) CreateLink(ctx context.Context, in interfaces.CreateLinkInput) (string, error) {
	if g != nil && g.mockMode {
		url := fmt.Sprintf("https://payments.cashfree.com/links/%s", in.UniqueRef)
		logrus.Infof("[payment][gateway] mock link created link_id=%s amount=%.2f url=%s", in.UniqueRef, in.Amount, url)
		return url, nil
	}

	body := linkRequest{
		CustomerDetails: linkCustomer{
			CustomerID:    in.CustomerID,
			CustomerName:  in.CustomerName,
			CustomerEmail: in.CustomerEmail,
			CustomerPhone: in.CustomerPhone,
		},
		LinkAmount:   in.Amount,
		LinkCurrency: "INR",
		LinkPurpose:  in.Purpose,
		LinkID:       in.UniqueRef,
		LinkNotify:   linkNotify{SendSMS: true, SendEmail: true},
	}

	logrus.Infof("[payment][gateway] create link start link_id=%s amount=%.2f", in.UniqueRef, in.Amount)
	raw, err := g.post(ctx, "createLink", g.pgBaseURL+"/links", body)
	if err != nil {
		return "", err
	}

	var resp linkResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logrus.Errorf("[payment][gateway] link response unmarshal failed link_id=%s err=%v", in.UniqueRef, err)
		return "", err
	}
	if resp.LinkURL == "" {
		return "", &GatewayError{StatusCode: http.StatusOK, Body: "no link_url in response"}
	}
	logrus.Infof("[payment][gateway] create link success link_id=%s", in.UniqueRef)
	return resp.LinkURL, nil
}

type payoutRequest struct {
	BeneID     string  `json:"beneId"`
	Amount     float64 `json:"amount"`
	TransferID string  `json:"transferId"`
}

type payoutResponse struct {
	Data struct {
		TransferID string `json:"transferId"`
	} `json:"data"`
}

// RequestPayout transfers the amount to the beneficiary. uniqueRef is the
// transfer id; Cashfree rejects a duplicate transfer id, so a retried call
// with the persisted ref can not pay twice.
func (g *CashfreeGateway) RequestPayout(ctx context.Context, in interfaces.PayoutInput) (string, error) {
	if g != nil && g.mockMode {
		logrus.Infof("[payment][gateway] mock payout transfer_id=%s amount=%.2f", in.UniqueRef, in.Amount)
		return in.UniqueRef, nil
	}

	body := payoutRequest{
		BeneID:     in.BeneficiaryRef,
		Amount:     in.Amount,
		TransferID: in.UniqueRef,
	}

	logrus.Infof("[payment][gateway] payout start transfer_id=%s amount=%.2f", in.UniqueRef, in.Amount)
	raw, err := g.post(ctx, "requestPayout", g.payoutBaseURL+"/requestTransfer", body)
	if err != nil {
		return "", err
	}

	var resp payoutResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logrus.Errorf("[payment][gateway] payout response unmarshal failed transfer_id=%s err=%v", in.UniqueRef, err)
		return "", err
	}
	transferID := resp.Data.TransferID
	if transferID == "" {
		transferID = in.UniqueRef
	}
	logrus.Infof("[payment][gateway] payout success transfer_id=%s", transferID)
	return transferID, nil
}

func (g *CashfreeGateway) post(ctx context.Context, op, url string, body any) (json.RawMessage, error) {
	if g == nil || g.client == nil {
		return nil, ErrMissingCashfreeCredentials
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-client-id", g.clientID)
	req.Header.Set("x-client-secret", g.clientSecret)
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			logrus.Errorf("[payment][gateway] %s timed out err=%v", op, err)
			return nil, &GatewayTimeoutError{Op: op, Err: err}
		}
		logrus.Errorf("[payment][gateway] %s request failed err=%v", op, err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.Errorf("[payment][gateway] %s non-success status=%d body=%s", op, resp.StatusCode, string(raw))
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

func isClientTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "CASHFREE_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
