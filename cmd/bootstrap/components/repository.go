package components

import (
	"bookit/internal/infra/db"
	"bookit/internal/infra/promoregistry"
	"bookit/internal/infra/readstore"
	"bookit/internal/infra/uow"
	"bookit/internal/pkg/config"
	"bookit/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewExperienceReadStore,
			fx.As(new(queries.ExperienceReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		NewPromoSource,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewPromoSource selects the promo registry backend. The static map is the
// default; PROMO_SOURCE=db reads the promo_codes table instead.
func NewPromoSource(cfg config.Config, dbtx db.DBTX) queries.PromoSource {
	if cfg.Promo.Source == "db" {
		return readstore.NewPromoReadStore(dbtx)
	}
	return promoregistry.NewStaticRegistry()
}
