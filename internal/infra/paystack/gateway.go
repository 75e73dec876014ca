package paystack

import (
	"context"

	"rentmart/internal/pkg/config"
	"rentmart/internal/usecase/commands"
)

// Gateway adapts the raw Paystack client to the payment port used by the
// command layer.
type Gateway struct {
	client      *Client
	callbackURL string
}

func NewGateway(client *Client, cfg config.PaystackConfig) commands.PaymentGateway {
	return &Gateway{
		client:      client,
		callbackURL: cfg.CallbackURL,
	}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req commands.CheckoutRequest) (*commands.CheckoutSession, error) {
	session, err := g.client.InitializeTransaction(ctx, InitializeRequest{
		Email:       req.Email,
		AmountKobo:  req.Amount.Kobo(),
		Reference:   req.Reference,
		CallbackURL: g.callbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return &commands.CheckoutSession{
		AuthorizationURL: session.AuthorizationURL,
		Reference:        session.Reference,
	}, nil
}

func (g *Gateway) VerifyTransaction(ctx context.Context, reference string) (*commands.GatewayVerification, error) {
	result, err := g.client.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	return &commands.GatewayVerification{
		Success:    result.Success,
		AmountKobo: result.AmountKobo,
		Currency:   result.Currency,
		RawStatus:  result.RawStatus,
	}, nil
}

func (g *Gateway) VerifyWebhookSignature(signature string, body []byte) bool {
	return g.client.VerifyWebhookSignature(signature, body)
}
