package bootstrap

import (
	"rentmart/internal/infra/paystack"
	"rentmart/internal/pkg/config"
	"rentmart/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaystackModule = fx.Module("paystack",
	fx.Provide(
		NewPaystackClient,
		NewPaymentGateway,
	),
)

func NewPaystackClient(cfg config.Config) *paystack.Client {
	return paystack.NewClient(cfg.Paystack)
}

func NewPaymentGateway(client *paystack.Client, cfg config.Config) commands.PaymentGateway {
	return paystack.NewGateway(client, cfg.Paystack)
}
