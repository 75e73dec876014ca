package bootstrap

import (
	"rentmart/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	PaystackModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
