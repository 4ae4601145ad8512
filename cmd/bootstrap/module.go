package bootstrap

import (
	"table-reserve/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StorageModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
