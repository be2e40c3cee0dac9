package jobs

import (
	"context"

	"github.com/bartek5186/catalogsync/internal/sqlgen"
	"github.com/bartek5186/catalogsync/internal/vendorimport"
	"github.com/rs/zerolog"
)

func init() {
	Register("sqlgen", newSQLGen)
}

func newSQLGen(log zerolog.Logger, env *Env) (Job, error) {
	gc := env.Cfg.SQLGen
	return funcJob{name: "sqlgen", run: func(ctx context.Context) error {
		data, err := vendorimport.Load(gc.InputPath)
		if err != nil {
			return err
		}
		path, st, err := sqlgen.WriteFile(gc.OutputDir, data, sqlgen.Options{
			RegionID:       env.Cfg.Store.RegionID,
			CurrencyCode:   env.Cfg.Store.CurrencyCode,
			SalesChannelID: env.Cfg.Store.SalesChannelID,
			SkipZeroStock:  gc.SkipZeroStock,
			MaxImages:      env.Cfg.Vendor.MaxImages,
			Tags:           gc.Tags,
		})
		if err != nil {
			return err
		}
		for _, s := range st.Skipped {
			log.Warn().Str("product", s).Msg("skipped, no stock")
		}
		log.Info().Str("path", path).Int("products", st.Products).Int("variants", st.Variants).
			Int("images", st.Images).Int("tags", st.Tags).Msg("sql script generated")
		return nil
	}}, nil
}
