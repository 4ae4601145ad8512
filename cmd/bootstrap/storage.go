package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"table-reserve/internal/infra/snapshot"
	"table-reserve/internal/pkg/config"

	"go.uber.org/fx"
)

var StorageModule = fx.Module("storage",
	fx.Provide(
		NewSnapshotStore,
	),
)

// NewSnapshotStore builds the snapshot adapter selected by STORAGE_DRIVER and
// ties its Close to the fx lifecycle.
func NewSnapshotStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (snapshot.Store, error) {
	store, err := openSnapshotStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	logger.Info("snapshot storage initialized", "driver", cfg.Storage.Driver)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close snapshot storage", "error", err)
			}
			return nil
		},
	})

	return store, nil
}

func openSnapshotStore(cfg config.StorageConfig) (snapshot.Store, error) {
	switch cfg.Driver {
	case "file":
		return snapshot.NewFileStore(cfg.DataDir)
	case "sqlite":
		return snapshot.NewSQLiteStore(cfg.DBPath)
	case "postgres":
		return snapshot.NewPostgresStore(context.Background(), cfg.BuildDSN())
	case "memory":
		return snapshot.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
