package jobs

import (
	"context"

	"github.com/rs/zerolog"
)

func init() {
	Register("fetch", newFetch)
}

// fetch: pobiera katalog dostawcy do pamięci; kolejne joby korzystają z tej samej kopii
func newFetch(log zerolog.Logger, env *Env) (Job, error) {
	return funcJob{name: "fetch", run: func(ctx context.Context) error {
		products, err := env.Catalog(ctx)

		variants, stock := 0, 0
		for _, p := range products {
			variants += len(p.Variants)
			stock += p.TotalStock()
		}
		lvl := zerolog.InfoLevel
		if err != nil {
			lvl = zerolog.WarnLevel
		}
		log.WithLevel(lvl).Err(err).Int("products", len(products)).Int("variants", variants).Int("stock", stock).Msg("catalog summary")
		return err
	}}, nil
}
