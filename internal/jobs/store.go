package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/bartek5186/catalogsync/internal/medusa"
	"github.com/rs/zerolog"
)

func init() {
	Register("metadata", newMetadata)
	Register("reconcile", newReconcile)
}

func newMetadata(log zerolog.Logger, env *Env) (Job, error) {
	mc := env.Cfg.Metadata
	return funcJob{name: "metadata", run: func(ctx context.Context) error {
		store, err := env.Store()
		if err != nil {
			return err
		}

		patches := make([]medusa.Patch, 0, len(mc.Patches))
		titles := make([]string, 0, len(mc.Patches))
		for _, p := range mc.Patches {
			patches = append(patches, medusa.Patch{Title: p.Title, Metadata: p.Metadata})
			titles = append(titles, p.Title)
		}
		sum := store.MergeMetadataBatch(ctx, patches)

		if len(mc.CoverageKeys) > 0 {
			cov, err := store.MetadataCoverage(ctx, mc.CoverageKeys, titles)
			if err != nil {
				return err
			}
			ev := log.Info().Int("products", cov.Total)
			for _, k := range mc.CoverageKeys {
				ev = ev.Int(k, cov.Keys[k])
			}
			ev.Msg("metadata coverage")
		}
		if sum.Failed > 0 {
			return fmt.Errorf("metadata: %d of %d patches failed", sum.Failed, len(patches))
		}
		return nil
	}}, nil
}

func newReconcile(log zerolog.Logger, env *Env) (Job, error) {
	rc := env.Cfg.Reconcile
	return funcJob{name: "reconcile", run: func(ctx context.Context) error {
		store, err := env.Store()
		if err != nil {
			return err
		}

		items := make([]medusa.Item, 0, len(rc.Products))
		for _, p := range rc.Products {
			items = append(items, medusa.Item{Title: p.Title, PriceCents: p.PriceCents})
		}
		log.Info().Str("mode", rc.Mode).Int("products", len(items)).Msg("reconcile start")
		out := store.ReconcileBatch(ctx, items, time.Duration(rc.DelayMillis)*time.Millisecond)

		sizes := len(medusa.SuitSizes())
		for _, r := range out.Items {
			if r.Err != nil {
				continue
			}
			v, err := store.Verify(ctx, r.Title)
			if err != nil {
				log.Error().Err(err).Str("title", r.Title).Msg("verify failed")
				continue
			}
			if !v.OK(sizes) {
				log.Warn().Str("title", r.Title).Int64("variants", v.Variants).Int64("prices", v.Prices).
					Int64("min", v.MinAmount).Int64("max", v.MaxAmount).Msg("verify mismatch")
			}
		}
		if out.Failed > 0 {
			return fmt.Errorf("reconcile: %d of %d products failed", out.Failed, len(items))
		}
		return nil
	}}, nil
}
