package components

import (
	"equipsched/internal/infra/db"
	"equipsched/internal/infra/readstore"
	"equipsched/internal/infra/repository"
	"equipsched/internal/usecase/commands"
	"equipsched/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write side
		fx.Annotate(
			repository.NewScheduleRepository,
			fx.As(new(commands.ScheduleRepository)),
		),
		fx.Annotate(
			repository.NewEquipmentRepository,
			fx.As(new(commands.EquipmentRepository)),
		),
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleReadStore)),
		),
		fx.Annotate(
			readstore.NewEquipmentReadStore,
			fx.As(new(queries.EquipmentReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
