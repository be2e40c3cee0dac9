package medusa

import (
	"context"
	"fmt"

	"github.com/bartek5186/catalogsync/internal/db"
	"gorm.io/gorm"
)

// SetVariants doprowadza produkt do pełnej rozmiarówki w jednej cenie, ale
// zamiast kasować wszystko porównuje stan bieżący z docelowym: warianty z
// poprawnym SKU zostają (razem z id), zmienia się tylko to, co odbiega.
func (s *Store) SetVariants(ctx context.Context, title string, priceCents int64) (VariantsResult, error) {
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

		var current []db.Variant
		if err := tx.Where("product_id = ?", p.ID).Find(&current).Error; err != nil {
			return fmt.Errorf("list variants: %w", err)
		}
		bySKU := make(map[string]db.Variant, len(current))
		for _, v := range current {
			bySKU[v.SKU] = v
		}

		desired := make(map[string]bool, len(s.opt.Sizes))
		for _, size := range s.opt.Sizes {
			desired[res.SKUBase+"-"+size] = true
		}

		var stale []string
		for _, v := range current {
			if !desired[v.SKU] {
				stale = append(stale, v.ID)
			}
		}
		if err := deleteVariants(tx, stale); err != nil {
			return err
		}
		res.Removed = len(stale)

		priced, err := s.pricedCorrectly(tx, current, priceCents)
		if err != nil {
			return err
		}

		rows := s.newRows(len(s.opt.Sizes))
		var reprice []string
		for _, size := range s.opt.Sizes {
			sku := res.SKUBase + "-" + size
			v, ok := bySKU[sku]
			switch {
			case !ok:
				id := rows.addVariant(p.ID, size, sku)
				rows.addPricing(id, priceCents)
				res.Created++
			case priced[v.ID]:
				res.Kept++
			default:
				reprice = append(reprice, v.ID)
				rows.addPricing(v.ID, priceCents)
				res.Repriced++
			}
		}
		if len(reprice) > 0 {
			if err := deletePricing(tx, reprice); err != nil {
				return err
			}
		}
		if err := rows.insert(tx); err != nil {
			return err
		}
		return s.linkSalesChannel(tx, p.ID)
	})
	if err != nil {
		return VariantsResult{Title: title, PriceCents: priceCents}, err
	}
	return res, nil
}

// pricedCorrectly: wariant ma dokładnie jeden price set z jedną ceną w walucie
// sklepu, na właściwą kwotę, z jedną regułą regionu.
func (s *Store) pricedCorrectly(tx *gorm.DB, variants []db.Variant, cents int64) (map[string]bool, error) {
	out := make(map[string]bool, len(variants))
	if len(variants) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(variants))
	for _, v := range variants {
		ids = append(ids, v.ID)
	}

	var links []db.VariantPriceSet
	if err := tx.Where("variant_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("load price links: %w", err)
	}
	setsOf := map[string][]string{}
	var setIDs []string
	for _, l := range links {
		setsOf[l.VariantID] = append(setsOf[l.VariantID], l.PriceSetID)
		setIDs = append(setIDs, l.PriceSetID)
	}
	if len(setIDs) == 0 {
		return out, nil
	}

	var prices []db.Price
	if err := tx.Where("price_set_id IN ?", setIDs).Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	pricesOf := map[string][]db.Price{}
	var priceIDs []string
	for _, pr := range prices {
		pricesOf[pr.PriceSetID] = append(pricesOf[pr.PriceSetID], pr)
		priceIDs = append(priceIDs, pr.ID)
	}

	rulesOf := map[string][]db.PriceRule{}
	if len(priceIDs) > 0 {
		var rules []db.PriceRule
		if err := tx.Where("price_id IN ?", priceIDs).Find(&rules).Error; err != nil {
			return nil, fmt.Errorf("load price rules: %w", err)
		}
		for _, r := range rules {
			rulesOf[r.PriceID] = append(rulesOf[r.PriceID], r)
		}
	}

	for _, v := range variants {
		sets := setsOf[v.ID]
		if len(sets) != 1 {
			continue
		}
		ps := pricesOf[sets[0]]
		if len(ps) != 1 || ps[0].CurrencyCode != s.opt.CurrencyCode || ps[0].Amount != cents {
			continue
		}
		rs := rulesOf[ps[0].ID]
		if len(rs) != 1 || rs[0].Attribute != "region_id" || rs[0].Operator != "eq" || rs[0].Value != s.opt.RegionID {
			continue
		}
		out[v.ID] = true
	}
	return out, nil
}
