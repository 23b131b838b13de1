package components

import (
	"bookit/internal/pkg/clock"
	"bookit/internal/pkg/config"
	"bookit/internal/usecase/commands"
	"bookit/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewExperienceQueries,
		queries.NewBookingQueries,
		queries.NewPromoQueries,
	),
)
