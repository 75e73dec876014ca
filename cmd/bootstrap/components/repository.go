package components

import (
	"rentmart/internal/infra/repository"
	"rentmart/internal/infra/uow"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"
	"rentmart/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresTxRunner,
			fx.As(new(shared.TxRunner)),
		),
		// Write side
		fx.Annotate(
			repository.NewRentalRepository,
			fx.As(new(commands.RentalRepository)),
		),
		fx.Annotate(
			repository.NewTransactionRepository,
			fx.As(new(commands.TransactionRepository)),
		),
		fx.Annotate(
			repository.NewItemRepository,
			fx.As(new(commands.ItemRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(queries.UserReadStore)),
		),
		// Read side
		fx.Annotate(
			repository.NewRentalReadStore,
			fx.As(new(queries.RentalReadStore)),
		),
		fx.Annotate(
			repository.NewTransactionReadStore,
			fx.As(new(queries.TransactionReadStore)),
		),
		fx.Annotate(
			repository.NewItemReadStore,
			fx.As(new(queries.ItemReadStore)),
		),
	),
)
