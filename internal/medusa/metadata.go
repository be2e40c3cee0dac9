package medusa

import (
	"context"
	"fmt"
	"sort"

	"github.com/bartek5186/catalogsync/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MergeOutcome int

const (
	MergeApplied MergeOutcome = iota
	MergeSkipped
)

func (o MergeOutcome) String() string {
	if o == MergeApplied {
		return "applied"
	}
	return "skipped"
}

type MergeResult struct {
	Title   string
	Outcome MergeOutcome
	Added   []string // klucze dopisane do metadanych
	Reason  string   // dla MergeSkipped
}

type Patch struct {
	Title    string
	Metadata map[string]string
}

// MergeMetadata dopisuje brakujące klucze z patcha do metadanych produktu.
// Niepuste wartości nie są nadpisywane (pusta = brak klucza); niepusty "color" blokuje cały patch.
func (s *Store) MergeMetadata(ctx context.Context, title string, patch map[string]string) (MergeResult, error) {
	res := MergeResult{Title: title, Outcome: MergeSkipped}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProduct(tx, title)
		if err != nil {
			return err
		}

		current := datatypes.JSONMap{}
		for k, v := range p.Metadata {
			current[k] = v
		}
		if hasValue(current["color"]) {
			res.Reason = "color already set"
			return nil
		}

		keys := make([]string, 0, len(patch))
		for k := range patch {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if hasValue(current[k]) {
				continue
			}
			current[k] = patch[k]
			res.Added = append(res.Added, k)
		}
		if len(res.Added) == 0 {
			res.Reason = "nothing new"
			return nil
		}

		err = tx.Model(&db.Product{}).Where("id = ?", p.ID).
			Updates(map[string]any{"metadata": current, "updated_at": s.now()}).Error
		if err != nil {
			return fmt.Errorf("update metadata %q: %w", title, err)
		}
		res.Outcome = MergeApplied
		return nil
	})
	if err != nil {
		return MergeResult{Title: title, Outcome: MergeSkipped}, err
	}
	return res, nil
}

type MergeSummary struct {
	Results []MergeResult
	Applied int
	Skipped int
	Failed  int
}

// MergeMetadataBatch – błąd jednego tytułu nie przerywa reszty.
func (s *Store) MergeMetadataBatch(ctx context.Context, patches []Patch) MergeSummary {
	var sum MergeSummary
	log := s.log.With().Str("op", "metadata").Logger()

	for _, p := range patches {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("metadata batch interrupted")
			break
		}
		res, err := s.MergeMetadata(ctx, p.Title, p.Metadata)
		if err != nil {
			sum.Failed++
			log.Error().Err(err).Str("title", p.Title).Msg("metadata merge failed")
			continue
		}
		sum.Results = append(sum.Results, res)
		switch res.Outcome {
		case MergeApplied:
			sum.Applied++
			log.Info().Str("title", p.Title).Strs("added", res.Added).Msg("metadata merged")
		default:
			sum.Skipped++
			log.Info().Str("title", p.Title).Str("reason", res.Reason).Msg("metadata skipped")
		}
	}

	log.Info().Int("applied", sum.Applied).Int("skipped", sum.Skipped).Int("failed", sum.Failed).
		Msg("metadata batch done")
	return sum
}

type Coverage struct {
	Total int
	Keys  map[string]int // ile produktów ma niepustą wartość klucza
}

// MetadataCoverage liczy pokrycie kluczy metadanych. Pusta lista tytułów = wszystkie produkty.
func (s *Store) MetadataCoverage(ctx context.Context, keys []string, titles []string) (Coverage, error) {
	var rows []db.Product
	q := s.db.WithContext(ctx).Select("id", "title", "metadata")
	if len(titles) > 0 {
		q = q.Where("title IN ?", titles)
	}
	if err := q.Find(&rows).Error; err != nil {
		return Coverage{}, fmt.Errorf("coverage: %w", err)
	}

	cov := Coverage{Total: len(rows), Keys: make(map[string]int, len(keys))}
	for _, k := range keys {
		cov.Keys[k] = 0
	}
	for _, p := range rows {
		for _, k := range keys {
			if hasValue(p.Metadata[k]) {
				cov.Keys[k]++
			}
		}
	}
	return cov, nil
}

func hasValue(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return fmt.Sprint(v) != ""
}
