package components

import (
	"table-reserve/internal/domain/reservation"
	"table-reserve/internal/pkg/clock"
	"table-reserve/internal/usecase/commands"
	"table-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		reservation.NewFactory,
		commands.NewBookingCommands,
		queries.NewReservationQueries,
	),
)
