package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"rentmart/internal/pkg/config"
	"rentmart/internal/pkg/errs"
)

// Client talks to the Paystack REST API. Network failures and non-2xx
// responses are marked with errs.ErrGatewayUnavailable so callers can tell
// "could not ask the gateway" apart from a verified payment failure.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.PaystackConfig) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type InitializeRequest struct {
	Email       string
	AmountKobo  int64
	Reference   string
	CallbackURL string
	Metadata    map[string]any
}

type CheckoutSession struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type VerifyResult struct {
	Success    bool
	AmountKobo int64
	Currency   string
	RawStatus  string
}

type initializePayload struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// InitializeTransaction creates a hosted checkout session. Amount is
// already in kobo; Paystack expects minor units on the wire.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeRequest) (*CheckoutSession, error) {
	payload := initializePayload{
		Email:       req.Email,
		Amount:      req.AmountKobo,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}

	var resp initializeResponse
	if err := c.post(ctx, "/transaction/initialize", payload, &resp); err != nil {
		return nil, err
	}

	if !resp.Status {
		return nil, errs.Mark(errs.New("paystack rejected initialize: "+resp.Message), errs.ErrGatewayUnavailable)
	}

	return &CheckoutSession{
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
		Reference:        resp.Data.Reference,
	}, nil
}

// VerifyTransaction re-queries the gateway for the authoritative charge
// status. A "failed" charge is a successful verification with
// Success == false, not an error.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerifyResult, error) {
	var resp verifyResponse
	if err := c.get(ctx, "/transaction/verify/"+reference, &resp); err != nil {
		return nil, err
	}

	if !resp.Status {
		return nil, errs.Mark(errs.New("paystack rejected verify: "+resp.Message), errs.ErrGatewayUnavailable)
	}

	return &VerifyResult{
		Success:    resp.Data.Status == "success",
		AmountKobo: resp.Data.Amount,
		Currency:   resp.Data.Currency,
		RawStatus:  resp.Data.Status,
	}, nil
}

// VerifyWebhookSignature checks Paystack's x-paystack-signature header:
// hex(HMAC-SHA512(secret, body)).
func (c *Client) VerifyWebhookSignature(signature string, body []byte) bool {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode paystack payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build paystack request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build paystack request")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "paystack request failed"), errs.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to read paystack response"), errs.ErrGatewayUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errs.Mark(
			errs.New(fmt.Sprintf("paystack returned %d: %s", resp.StatusCode, truncate(raw, 512))),
			errs.ErrGatewayUnavailable,
		)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return errs.Mark(errs.Wrap(err, "failed to decode paystack response"), errs.ErrGatewayUnavailable)
	}

	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
