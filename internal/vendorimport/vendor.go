// Package vendorimport wyciąga produkty docelowe z katalogu dostawcy i buduje plik
// pośredni JSON (jeden produkt sklepu na kolor) dla generatora SQL.
package vendorimport

import (
	"fmt"
	"sort"
	"strings"

	conf "github.com/bartek5186/catalogsync/internal/config"
	"github.com/bartek5186/catalogsync/internal/integrations/shopify"
	"github.com/shopspring/decimal"
)

const DefaultColor = "Default"

type Target struct {
	BaseSKU      string
	Name         string
	RetailPrice  decimal.Decimal
	TitleFormat  string // {color} = kolor SEO
	HandleFormat string // {color_slug}
	Description  string // {color} = kolor jak u dostawcy
}

// TargetsFromConfig parsuje ceny detaliczne z configa.
func TargetsFromConfig(in []conf.VendorTarget) ([]Target, error) {
	out := make([]Target, 0, len(in))
	for _, t := range in {
		if t.BaseSKU == "" {
			return nil, fmt.Errorf("vendor target without base_sku")
		}
		price, err := decimal.NewFromString(t.RetailPrice)
		if err != nil {
			return nil, fmt.Errorf("target %s: retail_price %q: %w", t.BaseSKU, t.RetailPrice, err)
		}
		out = append(out, Target{
			BaseSKU:      t.BaseSKU,
			Name:         t.Name,
			RetailPrice:  price,
			TitleFormat:  t.TitleFormat,
			HandleFormat: t.HandleFormat,
			Description:  t.Description,
		})
	}
	return out, nil
}

type ColorVariant struct {
	SKU          string  `json:"sku"`
	Size         string  `json:"size"`
	ShopifyPrice string  `json:"shopify_price"`
	Inventory    int     `json:"inventory"`
	Barcode      string  `json:"barcode"`
	Weight       float64 `json:"weight"`
	VariantID    int64   `json:"variant_id"`
}

type ColorGroup struct {
	Color    string
	Variants []ColorVariant
	Images   []string // obrazki przypięte do wariantów tego koloru
}

// Extracted – jeden docelowy SKU bazowy: produkt dostawcy i warianty pogrupowane po kolorze.
type Extracted struct {
	BaseSKU string
	Product shopify.Product
	Colors  []*ColorGroup // w kolejności wystąpienia
}

func (e *Extracted) color(name string) *ColorGroup {
	for _, c := range e.Colors {
		if c.Color == name {
			return c
		}
	}
	c := &ColorGroup{Color: name}
	e.Colors = append(e.Colors, c)
	return c
}

// BaseSKU: część SKU przed pierwszym "-".
func BaseSKU(sku string) string {
	if i := strings.Index(sku, "-"); i >= 0 {
		return sku[:i]
	}
	return sku
}

// Extract zbiera warianty pasujące do celów. Produkt przypisany do celu to
// pierwszy, w którym trafił się jego wariant. Wynik w kolejności celów.
func Extract(products []shopify.Product, targets []Target) []*Extracted {
	byBase := make(map[string]*Extracted, len(targets))
	for _, t := range targets {
		byBase[t.BaseSKU] = nil
	}

	for _, p := range products {
		for _, v := range p.Variants {
			base := BaseSKU(v.SKU)
			ex, wanted := byBase[base]
			if !wanted {
				continue
			}
			if ex == nil {
				ex = &Extracted{BaseSKU: base, Product: p}
				byBase[base] = ex
			}

			name := strings.TrimSpace(v.Option1)
			if name == "" {
				name = DefaultColor
			}
			cg := ex.color(name)
			cg.Variants = append(cg.Variants, ColorVariant{
				SKU:          v.SKU,
				Size:         v.Option2,
				ShopifyPrice: v.Price,
				Inventory:    v.InventoryQuantity,
				Barcode:      v.Barcode,
				Weight:       v.Weight,
				VariantID:    v.ID,
			})
			if v.ImageID != nil {
				if src := p.ImageSrc(*v.ImageID); src != "" && !contains(cg.Images, src) {
					cg.Images = append(cg.Images, src)
				}
			}
		}
	}

	var out []*Extracted
	for _, t := range targets {
		if ex := byBase[t.BaseSKU]; ex != nil {
			out = append(out, ex)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// Missing zwraca cele, których nie ma w katalogu.
func Missing(targets []Target, found []*Extracted) []string {
	have := map[string]bool{}
	for _, e := range found {
		have[e.BaseSKU] = true
	}
	var out []string
	for _, t := range targets {
		if !have[t.BaseSKU] {
			out = append(out, t.BaseSKU)
		}
	}
	return out
}

// SortedColors – klucze mapy kolorów posortowane.
func SortedColors(m map[string]ColorProduct) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
