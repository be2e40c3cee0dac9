package medusa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bartek5186/catalogsync/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidPrice = errors.New("price must be positive")
	ErrSKUCollision = errors.New("sku already used by another product")
)

// VariantsResult – wynik ReplaceVariants / SetVariants dla jednego produktu.
type VariantsResult struct {
	ProductID  string
	Title      string
	SKUBase    string
	PriceCents int64
	Kept       int // wariant i cena bez zmian (tylko SetVariants)
	Repriced   int // wariant zostaje, ceny odtworzone (tylko SetVariants)
	Created    int
	Removed    int
}

func (r VariantsResult) Changed() bool {
	return r.Repriced+r.Created+r.Removed > 0
}

// Reconcile wybiera tryb wg Options.Diff.
func (s *Store) Reconcile(ctx context.Context, title string, priceCents int64) (VariantsResult, error) {
	if s.opt.Diff {
		return s.SetVariants(ctx, title, priceCents)
	}
	return s.ReplaceVariants(ctx, title, priceCents)
}

// SKUBase: handle wielkimi literami, "-" -> "_", przycięty do max znaków.
func SKUBase(handle string, max int) string {
	base := strings.ToUpper(strings.ReplaceAll(handle, "-", "_"))
	if max > 0 && len(base) > max {
		base = base[:max]
	}
	return base
}

// ReplaceVariants kasuje wszystkie warianty produktu (razem z cenami) i zakłada
// pełną rozmiarówkę w jednej cenie. Całość w jednej transakcji.
func (s *Store) ReplaceVariants(ctx context.Context, title string, priceCents int64) (VariantsResult, error) {
	res := VariantsResult{Title: title, PriceCents: priceCents}
	if priceCents <= 0 {
		return res, fmt.Errorf("%q: %w (got %d)", title, ErrInvalidPrice, priceCents)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProduct(tx, title)
		if err != nil {
			return err
		}
		res.ProductID = p.ID

		res.SKUBase = s.skuBaseFor(p)
		if err := s.checkSKUs(tx, p.ID, res.SKUBase); err != nil {
			return err
		}

		if res.Removed, err = deleteVariantTree(tx, p.ID); err != nil {
			return err
		}
		if err := s.insertMatrix(tx, p.ID, res.SKUBase, priceCents); err != nil {
			return err
		}
		res.Created = len(s.opt.Sizes)

		return s.linkSalesChannel(tx, p.ID)
	})
	if err != nil {
		return VariantsResult{Title: title, PriceCents: priceCents}, err
	}
	return res, nil
}

func (s *Store) skuBaseFor(p *db.Product) string {
	handle := p.Handle
	if handle == "" {
		handle = Slugify(p.Title)
	}
	return SKUBase(handle, s.opt.SKUBaseMaxLen)
}

// checkSKUs sprawdza, czy SKU z rozmiarówki nie należą już do innego produktu
// (np. dwa handle z tym samym początkiem po przycięciu bazy).
func (s *Store) checkSKUs(tx *gorm.DB, productID, skuBase string) error {
	skus := make([]string, 0, len(s.opt.Sizes))
	for _, size := range s.opt.Sizes {
		skus = append(skus, skuBase+"-"+size)
	}
	var taken []db.Variant
	err := tx.Select("product_id", "sku").
		Where("sku IN ? AND product_id <> ?", skus, productID).
		Order("sku").Find(&taken).Error
	if err != nil {
		return fmt.Errorf("check skus: %w", err)
	}
	if len(taken) > 0 {
		return fmt.Errorf("%w: %s held by %s (%d of %d sizes, sku base %q)",
			ErrSKUCollision, taken[0].SKU, taken[0].ProductID, len(taken), len(skus), skuBase)
	}
	return nil
}

// kolejność: reguły -> ceny -> łączniki -> price sety -> warianty
func deleteVariantTree(tx *gorm.DB, productID string) (int, error) {
	var variantIDs []string
	if err := tx.Model(&db.Variant{}).Where("product_id = ?", productID).Pluck("id", &variantIDs).Error; err != nil {
		return 0, fmt.Errorf("list variants: %w", err)
	}
	if err := deleteVariants(tx, variantIDs); err != nil {
		return 0, err
	}
	return len(variantIDs), nil
}

func deleteVariants(tx *gorm.DB, variantIDs []string) error {
	if len(variantIDs) == 0 {
		return nil
	}
	if err := deletePricing(tx, variantIDs); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", variantIDs).Delete(&db.Variant{}).Error; err != nil {
		return fmt.Errorf("delete variants: %w", err)
	}
	return nil
}

// deletePricing usuwa całe poddrzewo cen wariantów, same warianty zostają.
func deletePricing(tx *gorm.DB, variantIDs []string) error {
	var setIDs []string
	if err := tx.Model(&db.VariantPriceSet{}).Where("variant_id IN ?", variantIDs).Pluck("price_set_id", &setIDs).Error; err != nil {
		return fmt.Errorf("list price sets: %w", err)
	}

	if len(setIDs) > 0 {
		var priceIDs []string
		if err := tx.Model(&db.Price{}).Where("price_set_id IN ?", setIDs).Pluck("id", &priceIDs).Error; err != nil {
			return fmt.Errorf("list prices: %w", err)
		}
		if len(priceIDs) > 0 {
			if err := tx.Where("price_id IN ?", priceIDs).Delete(&db.PriceRule{}).Error; err != nil {
				return fmt.Errorf("delete price rules: %w", err)
			}
		}
		if err := tx.Where("price_set_id IN ?", setIDs).Delete(&db.Price{}).Error; err != nil {
			return fmt.Errorf("delete prices: %w", err)
		}
	}
	if err := tx.Where("variant_id IN ?", variantIDs).Delete(&db.VariantPriceSet{}).Error; err != nil {
		return fmt.Errorf("delete price links: %w", err)
	}
	if len(setIDs) > 0 {
		if err := tx.Where("id IN ?", setIDs).Delete(&db.PriceSet{}).Error; err != nil {
			return fmt.Errorf("delete price sets: %w", err)
		}
	}
	return nil
}

func (s *Store) insertMatrix(tx *gorm.DB, productID, skuBase string, cents int64) error {
	rows := s.newRows(len(s.opt.Sizes))
	for _, size := range s.opt.Sizes {
		id := rows.addVariant(productID, size, skuBase+"-"+size)
		rows.addPricing(id, cents)
	}
	return rows.insert(tx)
}

// rows – wiersze do wstawienia, w kolejności kluczy obcych
type rows struct {
	s        *Store
	variants []db.Variant
	sets     []db.PriceSet
	links    []db.VariantPriceSet
	prices   []db.Price
	rules    []db.PriceRule
}

func (s *Store) newRows(n int) *rows {
	return &rows{
		s:        s,
		variants: make([]db.Variant, 0, n),
		sets:     make([]db.PriceSet, 0, n),
		links:    make([]db.VariantPriceSet, 0, n),
		prices:   make([]db.Price, 0, n),
		rules:    make([]db.PriceRule, 0, n),
	}
}

func (r *rows) addVariant(productID, size, sku string) string {
	v := db.Variant{
		ID:              r.s.newID("variant_"),
		ProductID:       productID,
		Title:           size,
		SKU:             sku,
		ManageInventory: r.s.opt.ManageInventory,
	}
	r.variants = append(r.variants, v)
	return v.ID
}

// addPricing: price set + łącznik + jedna cena + reguła regionu
func (r *rows) addPricing(variantID string, cents int64) {
	ps := db.PriceSet{ID: r.s.newID("pset_")}
	pr := db.Price{
		ID:           r.s.newID("price_"),
		PriceSetID:   ps.ID,
		CurrencyCode: r.s.opt.CurrencyCode,
		Amount:       cents,
		RawAmount:    RawAmount(cents),
	}
	r.sets = append(r.sets, ps)
	r.links = append(r.links, db.VariantPriceSet{ID: r.s.newID("pvps_"), VariantID: variantID, PriceSetID: ps.ID})
	r.prices = append(r.prices, pr)
	r.rules = append(r.rules, db.PriceRule{
		ID:        r.s.newID("prule_"),
		PriceID:   pr.ID,
		Attribute: "region_id",
		Operator:  "eq",
		Value:     r.s.opt.RegionID,
		Priority:  0,
	})
}

func (r *rows) insert(tx *gorm.DB) error {
	steps := []struct {
		what string
		n    int
		rows any
	}{
		{"variants", len(r.variants), &r.variants},
		{"price sets", len(r.sets), &r.sets},
		{"price links", len(r.links), &r.links},
		{"prices", len(r.prices), &r.prices},
		{"price rules", len(r.rules), &r.rules},
	}
	for _, st := range steps {
		if st.n == 0 {
			continue
		}
		if err := tx.Create(st.rows).Error; err != nil {
			return fmt.Errorf("insert %s: %w", st.what, err)
		}
	}
	return nil
}

// RawAmount – format raw_amount sklepu
func RawAmount(cents int64) datatypes.JSON {
	return datatypes.JSON(fmt.Sprintf(`{"value":"%d","precision":20}`, cents))
}

func (s *Store) linkSalesChannel(tx *gorm.DB, productID string) error {
	if s.opt.SalesChannelID == "" {
		return nil
	}
	link := db.SalesChannelLink{
		ID:             s.newID("prodsc_"),
		ProductID:      productID,
		SalesChannelID: s.opt.SalesChannelID,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "sales_channel_id"}},
		DoNothing: true,
	}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("sales channel link: %w", err)
	}
	return nil
}

type Item struct {
	Title      string
	PriceCents int64
}

type ItemResult struct {
	Item
	Result VariantsResult
	Err    error
}

type BatchResult struct {
	Items     []ItemResult
	Succeeded int
	Failed    int
}

// ReconcileBatch przetwarza produkty po kolei ze stałą przerwą między nimi.
// Błąd produktu jest raportowany, reszta leci dalej.
func (s *Store) ReconcileBatch(ctx context.Context, items []Item, delay time.Duration) BatchResult {
	var out BatchResult
	log := s.log.With().Str("op", "reconcile").Logger()

	for i, it := range items {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
		}
		if err := ctx.Err(); err != nil {
			for _, rest := range items[i:] {
				out.Items = append(out.Items, ItemResult{Item: rest, Err: err})
				out.Failed++
			}
			log.Warn().Err(err).Int("remaining", len(items)-i).Msg("reconcile interrupted")
			break
		}

		res, err := s.Reconcile(ctx, it.Title, it.PriceCents)
		out.Items = append(out.Items, ItemResult{Item: it, Result: res, Err: err})
		if err != nil {
			out.Failed++
			log.Error().Err(err).Str("title", it.Title).Msg("variant replace failed, rolled back")
			continue
		}
		out.Succeeded++
		log.Info().
			Str("title", it.Title).
			Str("sku_base", res.SKUBase).
			Int("removed", res.Removed).
			Int("created", res.Created).
			Int("kept", res.Kept).
			Int("repriced", res.Repriced).
			Int64("price_cents", it.PriceCents).
			Msgf("[%d/%d] variants reconciled", i+1, len(items))
	}

	log.Info().Int("ok", out.Succeeded).Int("failed", out.Failed).Int("total", len(items)).Msg("reconcile done")
	return out
}
