package medusa

import (
	"context"
	"fmt"

	"github.com/bartek5186/catalogsync/internal/db"
)

type Verification struct {
	Title      string
	Variants   int64
	PriceLinks int64
	Prices     int64
	Rules      int64
	MinAmount  int64
	MaxAmount  int64
}

// Verify zlicza warianty i ceny produktu po rekoncyliacji.
func (s *Store) Verify(ctx context.Context, title string) (Verification, error) {
	out := Verification{Title: title}
	tx := s.db.WithContext(ctx)

	p, err := findProduct(tx, title)
	if err != nil {
		return out, err
	}

	var variantIDs []string
	if err := tx.Model(&db.Variant{}).Where("product_id = ?", p.ID).Pluck("id", &variantIDs).Error; err != nil {
		return out, fmt.Errorf("verify variants: %w", err)
	}
	out.Variants = int64(len(variantIDs))
	if len(variantIDs) == 0 {
		return out, nil
	}

	var setIDs []string
	if err := tx.Model(&db.VariantPriceSet{}).Where("variant_id IN ?", variantIDs).Pluck("price_set_id", &setIDs).Error; err != nil {
		return out, fmt.Errorf("verify price links: %w", err)
	}
	out.PriceLinks = int64(len(setIDs))
	if len(setIDs) == 0 {
		return out, nil
	}

	var agg struct {
		N         int64
		MinAmount int64
		MaxAmount int64
	}
	err = tx.Model(&db.Price{}).
		Select("COUNT(*) AS n, COALESCE(MIN(amount), 0) AS min_amount, COALESCE(MAX(amount), 0) AS max_amount").
		Where("price_set_id IN ?", setIDs).
		Scan(&agg).Error
	if err != nil {
		return out, fmt.Errorf("verify prices: %w", err)
	}
	out.Prices, out.MinAmount, out.MaxAmount = agg.N, agg.MinAmount, agg.MaxAmount

	err = tx.Model(&db.PriceRule{}).
		Where("price_id IN (?)", tx.Model(&db.Price{}).Select("id").Where("price_set_id IN ?", setIDs)).
		Count(&out.Rules).Error
	if err != nil {
		return out, fmt.Errorf("verify rules: %w", err)
	}
	return out, nil
}

// OK: pełna rozmiarówka, jedna cena i reguła na wariant, jedna kwota.
func (v Verification) OK(sizes int) bool {
	n := int64(sizes)
	return v.Variants == n && v.PriceLinks == n && v.Prices == n && v.Rules == n && v.MinAmount == v.MaxAmount
}
