package components

import (
	"rentmart/internal/domain/rental"
	"rentmart/internal/pkg/clock"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		rental.NewStandardPriceCalculator,
		fx.As(new(rental.PriceCalculator)),
	),
	rental.NewFactory,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRentalQueries,
		queries.NewTransactionQueries,
		queries.NewItemQueries,
		queries.NewUserQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewListingCommands,
		commands.NewPaymentCommands,
	),
)
