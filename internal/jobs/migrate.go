package jobs

import (
	"context"
	"fmt"

	"github.com/bartek5186/catalogsync/internal/db"
	"github.com/bartek5186/catalogsync/internal/medusa"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func init() {
	Register("migrate", newMigrate)
}

// migrate: produkty ze starej bazy -> sklep, potem magazyn dla wszystkich wariantów.
// Ceny ustawia reconcile.
func newMigrate(log zerolog.Logger, env *Env) (Job, error) {
	mc := env.Cfg.Migrate
	price, err := decimal.NewFromString(mc.DefaultPrice)
	if err != nil {
		return nil, fmt.Errorf("migrate: zła cena domyślna %q: %w", mc.DefaultPrice, err)
	}
	opt := medusa.MigrateOptions{DefaultVendor: mc.DefaultVendor, DefaultPrice: price}

	return funcJob{name: "migrate", run: func(ctx context.Context) error {
		src, err := env.SourceDB()
		if err != nil {
			return err
		}
		products, err := db.LoadSourceProducts(ctx, src.DB)
		if err != nil {
			return err
		}
		log.Info().Int("products", len(products)).Msg("source products loaded")

		store, err := env.Store()
		if err != nil {
			return err
		}
		sum := store.MigrateProducts(ctx, products, opt)

		inv, err := store.BackfillInventory(ctx, mc.LocationID, mc.StockedQty())
		if err != nil {
			return err
		}
		log.Info().Int("created", sum.Created).Int("updated", sum.Updated).Int("variants", sum.Variants).
			Int("inventory_items", inv.Items).Int("inventory_levels", inv.Levels).Int("inventory_links", inv.Links).
			Msg("migration summary")

		if sum.Failed > 0 {
			return fmt.Errorf("migrate: %d of %d products failed", sum.Failed, len(products))
		}
		return nil
	}}, nil
}
