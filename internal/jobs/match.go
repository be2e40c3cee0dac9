package jobs

import (
	"context"
	"errors"
	"strings"

	"github.com/bartek5186/catalogsync/internal/report"
	"github.com/bartek5186/catalogsync/internal/skumatch"
	"github.com/rs/zerolog"
)

func init() {
	Register("match", newMatch)
}

func newMatch(log zerolog.Logger, env *Env) (Job, error) {
	mc := env.Cfg.Match
	if len(mc.TargetSKUs) == 0 {
		return nil, errors.New("match: no target_skus configured")
	}
	return funcJob{name: "match", run: func(ctx context.Context) error {
		products, err := env.usableCatalog(ctx, log)
		if err != nil {
			return err
		}

		rep := skumatch.Classify(mc.TargetSKUs, products)
		exact := 0
		for _, m := range rep.Matches {
			if m.Kind == skumatch.Exact {
				exact++
			}
		}
		log.Info().
			Int("scanned", rep.Scanned).
			Int("exact", exact).
			Int("partial", len(rep.Matches)-exact).
			Int("unrelated", rep.Unrelated).
			Strs("found", rep.Found).
			Strs("missing", rep.Missing).
			Msg("sku match")

		for code, colors := range skumatch.ColorCodes(rep.Matches) {
			name := strings.Join(colors, ", ")
			if name == "" {
				name = "Unknown"
			}
			log.Debug().Str("code", code).Str("colors", name).Msg("color code")
		}
		for _, g := range skumatch.GroupByColor(rep.Matches) {
			log.Info().Str("target", g.Target).Str("color_code", g.ColorCode).Str("price", g.Price).
				Int("sizes", g.Variants).Int("stock", g.Stock).Strs("in_stock", g.InStockSizes).Msg("color group")
		}

		if mc.ReportPath == "" {
			return nil
		}
		if err := report.WriteMatches(mc.ReportPath, rep); err != nil {
			return err
		}
		log.Info().Str("path", mc.ReportPath).Msg("match report written")
		return nil
	}}, nil
}
