package jobs

import (
	"context"

	"github.com/bartek5186/catalogsync/internal/vendorimport"
	"github.com/rs/zerolog"
)

func init() {
	Register("vendor-import", newVendorImport)
}

// vendor-import: wyciąga produkty docelowe i zapisuje plik pośredni dla sqlgen
func newVendorImport(log zerolog.Logger, env *Env) (Job, error) {
	vc := env.Cfg.Vendor
	targets, err := vendorimport.TargetsFromConfig(vc.Targets)
	if err != nil {
		return nil, err
	}
	return funcJob{name: "vendor-import", run: func(ctx context.Context) error {
		products, err := env.usableCatalog(ctx, log)
		if err != nil {
			return err
		}

		found := vendorimport.Extract(products, targets)
		if missing := vendorimport.Missing(targets, found); len(missing) > 0 {
			log.Warn().Strs("missing", missing).Msg("targets not in catalog")
		}
		for _, ex := range found {
			for _, c := range ex.Colors {
				log.Info().Str("base_sku", ex.BaseSKU).Str("color", c.Color).
					Int("sizes", len(c.Variants)).Int("color_images", len(c.Images)).Msg("color found")
			}
		}

		data := vendorimport.Build(found, targets, vendorimport.BuildOptions{
			DefaultVendor: vc.DefaultVendor,
			MaxImages:     vc.MaxImages,
		})
		if err := vendorimport.Save(vc.OutputPath, data); err != nil {
			return err
		}
		nProducts, nVariants := data.Counts()
		log.Info().Str("path", vc.OutputPath).Int("products", nProducts).Int("variants", nVariants).
			Msg("vendor import data saved")
		return nil
	}}, nil
}
