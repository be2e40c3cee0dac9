package analysis

import (
	"testing"

	"github.com/bartek5186/catalogsync/internal/integrations/shopify"
	"github.com/shopspring/decimal"
)

func variants(n int, price string, stock int) []shopify.Variant {
	out := make([]shopify.Variant, n)
	for i := range out {
		out[i] = shopify.Variant{SKU: "MJ425S-01-40R", Price: price, InventoryQuantity: stock}
	}
	return out
}

var preferred = []string{"Tazzio", "Perry Ellis", "Giorgio Inserti"}

func catalog() []shopify.Product {
	return []shopify.Product{
		{ID: 1, Title: "Budget", Vendor: "Acme", ProductType: "Suit", Variants: variants(3, "99.00", 0)},
		{ID: 2, Title: "Sweet Spot", Vendor: "Tazzio", ProductType: "Suit", Variants: variants(21, "179.99", 3)},
		{ID: 3, Title: "Premium", Vendor: "Acme", ProductType: "Tuxedo", Variants: variants(6, "249.99", 2)},
		{ID: 4, Title: "Luxury", Vendor: "", ProductType: "", Variants: variants(1, "300", 0)},
		{ID: 5, Title: "No price", Vendor: "Acme", Variants: variants(2, "0", 10)},
	}
}

func TestAnalyze(t *testing.T) {
	a := Analyze(catalog(), preferred)
	if a.Total != 5 || len(a.Priced) != 4 {
		t.Fatalf("total=%d priced=%d", a.Total, len(a.Priced))
	}
	if len(a.ByTier[TierUnder150]) != 1 || len(a.ByTier[Tier150to200]) != 1 ||
		len(a.ByTier[Tier200to250]) != 1 || len(a.ByTier[TierOver250]) != 1 {
		t.Fatalf("tiers = %v", a.ByTier)
	}
	if len(a.HighStock) != 1 || a.HighStock[0].ID != 2 {
		t.Fatalf("high stock = %+v", a.HighStock)
	}
	if len(a.ZeroStock) != 2 {
		t.Fatalf("zero stock = %d", len(a.ZeroStock))
	}
	if a.Vendors[0].Vendor != "Acme" || a.Vendors[0].Products != 3 {
		t.Fatalf("vendors = %+v", a.Vendors)
	}
	if _, ok := a.Categories["Unknown"]; !ok {
		t.Fatalf("empty product type should become Unknown")
	}
	if !a.Priced[1].MinPrice.Equal(decimal.RequireFromString("179.99")) {
		t.Fatalf("min price = %s", a.Priced[1].MinPrice)
	}
}

func TestScore(t *testing.T) {
	p := ProductInfo{TotalStock: 63, MinPrice: decimal.RequireFromString("179.99"), Variants: 21, Vendor: "Tazzio"}
	if got := Score(p, preferred); got != 30+25+15+10 {
		t.Fatalf("score = %d", got)
	}
	p = ProductInfo{TotalStock: 0, MinPrice: decimal.NewFromInt(250), Variants: 1, Vendor: "Acme"}
	if got := Score(p, preferred); got != 10 {
		t.Fatalf("score = %d", got)
	}
	// 150 trafia do progu 150–200
	p = ProductInfo{TotalStock: 11, MinPrice: decimal.NewFromInt(150), Variants: 6}
	if got := Score(p, nil); got != 10+25+5 {
		t.Fatalf("boundary score = %d", got)
	}
}

func TestTop(t *testing.T) {
	a := Analyze(catalog(), preferred)
	top := a.Top(2)
	if len(top) != 2 || top[0].ID != 2 {
		t.Fatalf("top = %+v", top)
	}
	if len(a.Top(0)) != 4 {
		t.Fatalf("Top(0) should return all")
	}
}

func TestCategorySummary(t *testing.T) {
	a := Analyze(catalog(), preferred)
	cs := a.CategorySummary()
	if len(cs) != 3 || cs[0].Type != "Suit" || cs[0].Products != 2 || cs[0].Stock != 63 {
		t.Fatalf("summary = %+v", cs)
	}
	if cs[0].AvgPrice.String() != "139.5" {
		t.Fatalf("avg = %s", cs[0].AvgPrice)
	}
}

func TestAnalyzeCountsBadPrices(t *testing.T) {
	p := shopify.Product{ID: 9, Title: "Mixed", Vendor: "Acme", ProductType: "Suit",
		Variants: []shopify.Variant{{Price: "abc"}, {Price: ""}, {Price: "149.995"}}}
	a := Analyze([]shopify.Product{p}, nil)
	if a.BadPrices != 1 || len(a.Priced) != 1 {
		t.Fatalf("bad=%d priced=%d", a.BadPrices, len(a.Priced))
	}
	// zaokrąglenie do centów
	if min := a.Priced[0].MinPrice; !min.Equal(decimal.RequireFromString("150")) || TierOf(min) != Tier150to200 {
		t.Fatalf("min price = %s", min)
	}
}
