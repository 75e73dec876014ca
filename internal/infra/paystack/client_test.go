//go:build unit

package paystack_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentmart/internal/infra/paystack"
	"rentmart/internal/pkg/config"
	"rentmart/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *paystack.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return paystack.NewClient(config.PaystackConfig{
		SecretKey: "sk_test_secret",
		BaseURL:   server.URL,
		Timeout:   2 * time.Second,
	})
}

func TestInitializeTransaction(t *testing.T) {
	t.Run("sends minor units and returns the session", func(t *testing.T) {
		var captured map[string]any
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  true,
				"message": "Authorization URL created",
				"data": map[string]any{
					"authorization_url": "https://checkout.paystack.com/abc123",
					"access_code":       "abc123",
					"reference":         "ref-1",
				},
			})
		}))

		session, err := client.InitializeTransaction(context.Background(), paystack.InitializeRequest{
			Email:       "renter@example.com",
			AmountKobo:  3000000,
			Reference:   "ref-1",
			CallbackURL: "https://rentmart.example/payments/callback",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://checkout.paystack.com/abc123", session.AuthorizationURL)
		assert.Equal(t, "ref-1", session.Reference)
		assert.Equal(t, float64(3000000), captured["amount"])
		assert.Equal(t, "renter@example.com", captured["email"])
	})

	t.Run("api-level rejection is marked gateway unavailable", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  false,
				"message": "Invalid key",
			})
		}))

		_, err := client.InitializeTransaction(context.Background(), paystack.InitializeRequest{
			Email: "renter@example.com", AmountKobo: 100, Reference: "ref-1",
		})
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})

	t.Run("non-2xx is marked gateway unavailable", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		_, err := client.InitializeTransaction(context.Background(), paystack.InitializeRequest{
			Email: "renter@example.com", AmountKobo: 100, Reference: "ref-1",
		})
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})
}

func TestVerifyTransaction(t *testing.T) {
	verifyHandler := func(status string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/transaction/verify/ref-1", r.URL.Path)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  true,
				"message": "Verification successful",
				"data": map[string]any{
					"status":   status,
					"amount":   3000000,
					"currency": "NGN",
				},
			})
		})
	}

	t.Run("successful charge", func(t *testing.T) {
		client := newTestClient(t, verifyHandler("success"))

		result, err := client.VerifyTransaction(context.Background(), "ref-1")
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, int64(3000000), result.AmountKobo)
		assert.Equal(t, "NGN", result.Currency)
	})

	t.Run("failed charge verifies cleanly as unsuccessful", func(t *testing.T) {
		client := newTestClient(t, verifyHandler("failed"))

		result, err := client.VerifyTransaction(context.Background(), "ref-1")
		require.NoError(t, err)

		assert.False(t, result.Success)
		assert.Equal(t, "failed", result.RawStatus)
	})

	t.Run("unreachable gateway", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := paystack.NewClient(config.PaystackConfig{
			SecretKey: "sk_test_secret",
			BaseURL:   server.URL,
			Timeout:   time.Second,
		})

		_, err := client.VerifyTransaction(context.Background(), "ref-1")
		assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	})
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := paystack.NewClient(config.PaystackConfig{SecretKey: "sk_test_secret", Timeout: time.Second})
	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1"}}`)

	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifyWebhookSignature(valid, body))
	assert.False(t, client.VerifyWebhookSignature(valid, []byte(`{"tampered":true}`)))
	assert.False(t, client.VerifyWebhookSignature("deadbeef", body))
	assert.False(t, client.VerifyWebhookSignature("", body))
}
