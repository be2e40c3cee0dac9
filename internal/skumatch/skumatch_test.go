package skumatch

import (
	"reflect"
	"testing"

	"github.com/bartek5186/catalogsync/internal/integrations/shopify"
)

var targets = []string{"MJ425S", "SMJ830H1", "SM164H1"}

func TestStemAndSeries(t *testing.T) {
	cases := map[string][2]string{
		"MJ425S":   {"MJ", "MJ425"},
		"SMJ830H1": {"SMJ", "SMJ830"},
		"SM164H1":  {"SM", "SM164"},
		"ABC":      {"ABC", "ABC"},
	}
	for in, want := range cases {
		if got := Series(in); got != want[0] {
			t.Errorf("Series(%q) = %q, want %q", in, got, want[0])
		}
		if got := Stem(in); got != want[1] {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want[1])
		}
	}
}

func TestClassifySKU(t *testing.T) {
	cases := []struct {
		sku    string
		kind   Kind
		target string
	}{
		{"MJ425S", Exact, "MJ425S"},
		{"MJ425S-01-40R", Exact, "MJ425S"},
		{"mj425s-02-42L", Exact, "MJ425S"},
		{"MJ425SX-01-40R", Partial, "MJ425S"},
		{"MJ425T-01", Partial, "MJ425S"},
		{"SMJ830H2-05-38R", Partial, "SMJ830H1"},
		{"SM164-01", Partial, "SM164H1"},
		// SMJ164 to inna seria niż SM
		{"SMJ164-01", Unrelated, ""},
		{"MJ999S-01", Unrelated, ""},
		{"", Unrelated, ""},
	}
	for _, c := range cases {
		kind, target := ClassifySKU(c.sku, targets)
		if kind != c.kind || target != c.target {
			t.Errorf("ClassifySKU(%q) = %s/%q, want %s/%q", c.sku, kind, target, c.kind, c.target)
		}
	}
}

func TestClassifyReport(t *testing.T) {
	products := []shopify.Product{
		{ID: 1, Title: "Slim Suit", Variants: []shopify.Variant{
			{ID: 11, SKU: "MJ425S-01-40R", Title: "Black / 40R", InventoryQuantity: 3, Price: "199.99"},
			{ID: 12, SKU: "MJ425S-01-42R", Title: "Black / 42R", InventoryQuantity: 0, Price: "199.99"},
			{ID: 13, SKU: "MJ425S-04-40R", Title: "Navy / 40R", InventoryQuantity: 1, Price: "199.99"},
		}},
		{ID: 2, Title: "Vest", Variants: []shopify.Variant{
			{ID: 21, SKU: "SMJ830H2-05-38R", Title: "Grey"},
			{ID: 22, SKU: "V100-01", Title: "Red"},
		}},
	}

	rep := Classify(targets, products)
	if rep.Scanned != 5 || rep.Unrelated != 1 || len(rep.Matches) != 4 {
		t.Fatalf("report = scanned %d unrelated %d matches %d", rep.Scanned, rep.Unrelated, len(rep.Matches))
	}
	if !reflect.DeepEqual(rep.Found, []string{"MJ425S"}) {
		t.Fatalf("found = %v", rep.Found)
	}
	if !reflect.DeepEqual(rep.Missing, []string{"SMJ830H1", "SM164H1"}) {
		t.Fatalf("missing = %v", rep.Missing)
	}

	codes := ColorCodes(rep.Matches)
	if !reflect.DeepEqual(codes["01"], []string{"Black"}) || !reflect.DeepEqual(codes["04"], []string{"Navy"}) {
		t.Fatalf("color codes = %v", codes)
	}
	if _, ok := codes["05"]; ok {
		t.Fatalf("partial match should not contribute color codes")
	}

	groups := GroupByColor(rep.Matches)
	if len(groups) != 2 {
		t.Fatalf("groups = %+v", groups)
	}
	g := groups[0]
	if g.ColorCode != "01" || g.Variants != 2 || g.Stock != 3 || !reflect.DeepEqual(g.InStockSizes, []string{"40R"}) {
		t.Fatalf("group 01 = %+v", g)
	}
}

func TestParseSKU(t *testing.T) {
	if got := ParseSKU("MJ428S-01-34R"); got != (Parts{"MJ428S", "01", "34R"}) {
		t.Fatalf("ParseSKU = %+v", got)
	}
	if got := ParseSKU("MJ428S"); got != (Parts{Base: "MJ428S"}) {
		t.Fatalf("ParseSKU base only = %+v", got)
	}
}

func TestColorName(t *testing.T) {
	cases := map[string]string{
		"Wine / 40R":     "Burgundy",
		"Light Grey":     "Gray",
		"Tan Check":      "Brown/Tan",
		"Emerald / 40R":  "",
		"Black and Gold": "Black",
	}
	for in, want := range cases {
		if got := ColorName(in); got != want {
			t.Errorf("ColorName(%q) = %q, want %q", in, got, want)
		}
	}
}
