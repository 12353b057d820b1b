package components

import (
	"courtbook/internal/infra/readstore"
	"courtbook/internal/infra/uow"
	"courtbook/internal/pkg/config"
	"courtbook/internal/usecase/queries"
	"courtbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewUnitOfWork,
		NewBookingReadStore,
		NewCommandReads,
	),
)

func NewUnitOfWork(pool *pgxpool.Pool, cfg config.Config) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, cfg.Booking.MaxConflictRetries)
}

func NewBookingReadStore(pool *pgxpool.Pool) queries.BookingViewRepo {
	return readstore.NewBookingReadStore(pool)
}

func NewCommandReads(u shared.UnitOfWork) shared.CommandReads {
	return u.CommandReads()
}
