// Package analysis ocenia katalog dostawcy pod kątem importu.
package analysis

import (
	"sort"
	"strings"

	"github.com/bartek5186/catalogsync/internal/integrations/shopify"
	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierUnder150 Tier = "under_150"
	Tier150to200 Tier = "150_to_200"
	Tier200to250 Tier = "200_to_250"
	TierOver250  Tier = "over_250"
)

var Tiers = []Tier{TierUnder150, Tier150to200, Tier200to250, TierOver250}

var (
	d150 = decimal.NewFromInt(150)
	d200 = decimal.NewFromInt(200)
	d250 = decimal.NewFromInt(250)
)

type ProductInfo struct {
	ID         int64
	Title      string
	Vendor     string
	Type       string
	SKUBase    string
	TotalStock int
	MinPrice   decimal.Decimal
	AvgPrice   decimal.Decimal
	Variants   int
	Score      int
}

type VendorCount struct {
	Vendor   string
	Products int
}

type Analysis struct {
	Total      int
	Priced     []ProductInfo // produkty z co najmniej jedną ceną > 0, w kolejności katalogu
	Categories map[string][]ProductInfo
	Vendors    []VendorCount // malejąco
	ByTier     map[Tier][]ProductInfo
	HighStock  []ProductInfo // > 20 szt.
	ZeroStock  []ProductInfo
	BadPrices  int // ceny, których nie dało się sparsować
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func TierOf(min decimal.Decimal) Tier {
	switch {
	case min.LessThan(d150):
		return TierUnder150
	case min.LessThan(d200):
		return Tier150to200
	case min.LessThan(d250):
		return Tier200to250
	default:
		return TierOver250
	}
}

// Analyze liczy kategorie, dostawców, progi cenowe i stany. Score uzupełniany wg preferred.
func Analyze(products []shopify.Product, preferred []string) Analysis {
	a := Analysis{
		Total:      len(products),
		Categories: map[string][]ProductInfo{},
		ByTier:     map[Tier][]ProductInfo{},
	}
	vendors := map[string]int{}

	for _, p := range products {
		vendor := orUnknown(p.Vendor)
		vendors[vendor]++

		info := ProductInfo{
			ID:       p.ID,
			Title:    p.Title,
			Vendor:   vendor,
			Type:     orUnknown(p.ProductType),
			Variants: len(p.Variants),
			SKUBase:  "N/A",
		}
		if len(p.Variants) > 0 {
			info.SKUBase = strings.SplitN(p.Variants[0].SKU, "-", 2)[0]
		}

		var prices []decimal.Decimal
		for _, v := range p.Variants {
			info.TotalStock += v.InventoryQuantity
			cents, err := v.PriceCents()
			if err != nil {
				a.BadPrices++
				continue
			}
			if price := decimal.New(cents, -2); price.IsPositive() {
				prices = append(prices, price)
			}
		}
		if len(prices) == 0 {
			continue
		}
		info.MinPrice = decimal.Min(prices[0], prices[1:]...)
		info.AvgPrice = decimal.Avg(prices[0], prices[1:]...)
		info.Score = Score(info, preferred)

		a.Priced = append(a.Priced, info)
		a.Categories[info.Type] = append(a.Categories[info.Type], info)
		tier := TierOf(info.MinPrice)
		a.ByTier[tier] = append(a.ByTier[tier], info)
		switch {
		case info.TotalStock > 20:
			a.HighStock = append(a.HighStock, info)
		case info.TotalStock == 0:
			a.ZeroStock = append(a.ZeroStock, info)
		}
	}

	for v, n := range vendors {
		a.Vendors = append(a.Vendors, VendorCount{Vendor: v, Products: n})
	}
	sort.Slice(a.Vendors, func(i, j int) bool {
		if a.Vendors[i].Products != a.Vendors[j].Products {
			return a.Vendors[i].Products > a.Vendors[j].Products
		}
		return a.Vendors[i].Vendor < a.Vendors[j].Vendor
	})
	return a
}

// Score – priorytet importu: stan, cena, liczba rozmiarów, dostawca.
func Score(p ProductInfo, preferred []string) int {
	score := 0
	switch {
	case p.TotalStock > 50:
		score += 30
	case p.TotalStock > 20:
		score += 20
	case p.TotalStock > 10:
		score += 10
	case p.TotalStock > 0:
		score += 5
	}

	switch TierOf(p.MinPrice) {
	case Tier150to200:
		score += 25
	case Tier200to250:
		score += 20
	case TierUnder150:
		score += 15
	default:
		score += 10
	}

	switch {
	case p.Variants > 20:
		score += 15
	case p.Variants > 10:
		score += 10
	case p.Variants > 5:
		score += 5
	}

	for _, v := range preferred {
		if strings.EqualFold(v, p.Vendor) {
			score += 10
			break
		}
	}
	return score
}

// Top: n najlepszych wg score (przy remisie kolejność katalogu).
func (a Analysis) Top(n int) []ProductInfo {
	out := append([]ProductInfo(nil), a.Priced...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type CategoryStats struct {
	Type     string
	Products int
	Stock    int
	AvgPrice decimal.Decimal // średnia ze średnich cen produktów
}

// CategorySummary – kategorie posortowane po nazwie.
func (a Analysis) CategorySummary() []CategoryStats {
	out := make([]CategoryStats, 0, len(a.Categories))
	for typ, list := range a.Categories {
		cs := CategoryStats{Type: typ, Products: len(list)}
		sum := decimal.Zero
		for _, p := range list {
			cs.Stock += p.TotalStock
			sum = sum.Add(p.AvgPrice)
		}
		cs.AvgPrice = sum.Div(decimal.NewFromInt(int64(len(list)))).Round(2)
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
