package components

import (
	"context"
	"log/slog"

	"table-reserve/internal/infra/snapshot"
	"table-reserve/internal/store"
	"table-reserve/internal/usecase/commands"
	"table-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		fx.Annotate(
			NewReservationStore,
			fx.As(new(commands.ReservationStore)),
			fx.As(new(queries.ReservationReader)),
		),
	),
)

// NewReservationStore loads the persisted collection during construction, so
// the store is ready before any handler can reach it.
func NewReservationStore(snap snapshot.Store, logger *slog.Logger) (*store.Store, error) {
	return store.New(context.Background(), snap, logger)
}
