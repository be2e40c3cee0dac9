package jobs

import (
	"context"

	"github.com/bartek5186/catalogsync/internal/analysis"
	"github.com/bartek5186/catalogsync/internal/report"
	"github.com/rs/zerolog"
)

func init() {
	Register("analyze", newAnalyze)
}

func newAnalyze(log zerolog.Logger, env *Env) (Job, error) {
	ac := env.Cfg.Analysis
	return funcJob{name: "analyze", run: func(ctx context.Context) error {
		products, err := env.usableCatalog(ctx, log)
		if err != nil {
			return err
		}

		a := analysis.Analyze(products, ac.PreferredVendors)
		log.Info().Int("products", a.Total).Int("priced", len(a.Priced)).
			Int("high_stock", len(a.HighStock)).Int("zero_stock", len(a.ZeroStock)).
			Int("bad_prices", a.BadPrices).Msg("catalog overview")

		for _, c := range a.CategorySummary() {
			log.Info().Str("type", c.Type).Int("products", c.Products).Int("stock", c.Stock).
				Str("avg_price", c.AvgPrice.StringFixed(2)).Msg("category")
		}
		for _, t := range analysis.Tiers {
			log.Info().Str("tier", string(t)).Int("products", len(a.ByTier[t])).Msg("price tier")
		}
		for i, v := range a.Vendors {
			if i == 10 {
				break
			}
			log.Info().Str("vendor", v.Vendor).Int("products", v.Products).Msg("vendor")
		}
		for i, p := range a.Top(ac.Top) {
			log.Info().Int("rank", i+1).Str("sku_base", p.SKUBase).Str("title", p.Title).Int("score", p.Score).
				Int("stock", p.TotalStock).Str("min_price", p.MinPrice.StringFixed(2)).Str("vendor", p.Vendor).
				Msg("import candidate")
		}

		if ac.ReportPath == "" {
			return nil
		}
		if err := report.WriteAnalysis(ac.ReportPath, a, ac.Top); err != nil {
			return err
		}
		log.Info().Str("path", ac.ReportPath).Msg("analysis report written")
		return nil
	}}, nil
}
