package vendorimport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	conf "github.com/bartek5186/catalogsync/internal/config"
	"github.com/bartek5186/catalogsync/internal/integrations/shopify"
)

func ptr(v int64) *int64 { return &v }

func testTargets(t *testing.T) []Target {
	t.Helper()
	targets, err := TargetsFromConfig([]conf.VendorTarget{
		{BaseSKU: "M390SK", Name: "Shiny Satin U-Shape Vest", RetailPrice: "229.99",
			TitleFormat: "Men's {color} Satin Vest Suit", HandleFormat: "mens-{color_slug}-satin-vest-suit",
			Description: "A {color} satin suit."},
		{BaseSKU: "M301H", Name: "Hybrid Fit Business", RetailPrice: "179.99"},
		{BaseSKU: "M999X", Name: "Ghost", RetailPrice: "100"},
	})
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	return targets
}

func testCatalog() []shopify.Product {
	return []shopify.Product{
		{
			ID: 1, Title: "Satin Vest Suit", Vendor: "Tazzio",
			Images: []shopify.Image{{ID: 100, Src: "https://cdn/black.jpg"}, {ID: 101, Src: "https://cdn/sky.jpg"}},
			Variants: []shopify.Variant{
				{ID: 11, SKU: "M390SK-01-40R", Option1: "Black", Option2: "40R", InventoryQuantity: 2, ImageID: ptr(100)},
				{ID: 12, SKU: "M390SK-01-42R", Option1: "Black", Option2: "42R", InventoryQuantity: 1, ImageID: ptr(100)},
				{ID: 13, SKU: "M390SK-07-40R", Option1: "Sky Blue", Option2: "40R"},
			},
		},
		{
			ID: 2, Title: "Business Suit", BodyHTML: "<p>Hybrid <b>fit</b></p><ul><li>Wool blend</li></ul>",
			Images: []shopify.Image{{ID: 1, Src: "a"}, {ID: 2, Src: "b"}, {ID: 3, Src: "c"}},
			Variants: []shopify.Variant{
				{ID: 21, SKU: "M301H-04-38R", Option1: "", Option2: "38R", InventoryQuantity: 5},
				{ID: 22, SKU: "OTHER-1"},
			},
		},
	}
}

func TestTargetsFromConfigRejectsBadPrice(t *testing.T) {
	if _, err := TargetsFromConfig([]conf.VendorTarget{{BaseSKU: "X", RetailPrice: "abc"}}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestExtractGroupsByColor(t *testing.T) {
	targets := testTargets(t)
	found := Extract(testCatalog(), targets)
	if len(found) != 2 || found[0].BaseSKU != "M390SK" || found[1].BaseSKU != "M301H" {
		t.Fatalf("found = %d", len(found))
	}

	vest := found[0]
	if len(vest.Colors) != 2 || vest.Colors[0].Color != "Black" || vest.Colors[1].Color != "Sky Blue" {
		t.Fatalf("colors = %+v", vest.Colors)
	}
	black := vest.Colors[0]
	if len(black.Variants) != 2 || len(black.Images) != 1 || black.Images[0] != "https://cdn/black.jpg" {
		t.Fatalf("black = %+v", black)
	}
	if found[1].Colors[0].Color != DefaultColor {
		t.Fatalf("empty option1 should map to %q", DefaultColor)
	}
	if m := Missing(targets, found); len(m) != 1 || m[0] != "M999X" {
		t.Fatalf("missing = %v", m)
	}
}

func TestBuild(t *testing.T) {
	targets := testTargets(t)
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	data := Build(Extract(testCatalog(), targets), targets, BuildOptions{DefaultVendor: "KCT Menswear", MaxImages: 2, Now: now})

	vest := data.Products["M390SK"]
	if vest.RetailPrice.String() != "229.99" {
		t.Fatalf("retail price = %s", vest.RetailPrice)
	}
	black := vest.Colors["Black"]
	if black.Title != "Men's Classic Black Satin Vest Suit" {
		t.Fatalf("title = %q", black.Title)
	}
	if black.Handle != "mens-black-satin-vest-suit" || black.Description != "A Black satin suit." {
		t.Fatalf("handle/description = %q / %q", black.Handle, black.Description)
	}
	if black.TotalStock != 3 || black.Vendor != "Tazzio" {
		t.Fatalf("black = %+v", black)
	}
	sky := vest.Colors["Sky Blue"]
	if sky.Handle != "mens-sky-blue-satin-vest-suit" || len(sky.Images) != 2 {
		t.Fatalf("sky = %+v", sky)
	}

	biz := data.Products["M301H"].Colors[DefaultColor]
	if biz.Vendor != "KCT Menswear" {
		t.Fatalf("vendor fallback = %q", biz.Vendor)
	}
	if biz.Description != "Hybrid fit\nWool blend" {
		t.Fatalf("html description = %q", biz.Description)
	}
	if biz.Title != "Men's Default Hybrid Fit Business Suit - Formal Professional Attire" {
		t.Fatalf("default title = %q", biz.Title)
	}
	if biz.Handle != "mens-default-formal-suit" {
		t.Fatalf("default handle = %q", biz.Handle)
	}

	if p, v := data.Counts(); p != 3 || v != 4 {
		t.Fatalf("counts = %d/%d", p, v)
	}
}

func TestBuildCapsColorImages(t *testing.T) {
	targets := testTargets(t)
	found := []*Extracted{{
		BaseSKU: "M390SK",
		Colors: []*ColorGroup{{
			Color:    "Black",
			Variants: []ColorVariant{{SKU: "M390SK-01-40R"}},
			Images:   []string{"1", "2", "3", "4", "5", "6", "7"},
		}},
	}}
	data := Build(found, targets, BuildOptions{MaxImages: 5})
	imgs := data.Products["M390SK"].Colors["Black"].Images
	if len(imgs) != 5 || imgs[0] != "1" || imgs[4] != "5" {
		t.Fatalf("images = %v", imgs)
	}
	// źródłowa grupa nietknięta
	if len(found[0].Colors[0].Images) != 7 {
		t.Fatalf("input modified")
	}
}

func TestSaveLoad(t *testing.T) {
	targets := testTargets(t)
	data := Build(Extract(testCatalog(), targets), targets, BuildOptions{MaxImages: 5})
	path := filepath.Join(t.TempDir(), "out", "vendor_import_data.json")
	if err := Save(path, data); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Timestamp.Equal(data.Timestamp) {
		t.Fatalf("timestamp = %v", got.Timestamp)
	}
	if !got.Products["M301H"].RetailPrice.Equal(data.Products["M301H"].RetailPrice) {
		t.Fatalf("retail price lost")
	}
	if len(got.Products["M390SK"].Colors["Black"].Variants) != 2 {
		t.Fatalf("variants lost")
	}
}

func TestLoadAcceptsNumericPrice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	if err := writeFile(path, `{"timestamp":"2025-09-01T10:00:00Z","products":{"M301H":{"retail_price":179.99,"colors":{}}}}`); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Products["M301H"].RetailPrice.String() != "179.99" {
		t.Fatalf("price = %s", got.Products["M301H"].RetailPrice)
	}
}

func TestHTMLText(t *testing.T) {
	if got := HTMLText("<div>Line one<br>Line   two</div>"); got != "Line one\nLine two" {
		t.Fatalf("HTMLText = %q", got)
	}
	if HTMLText("  ") != "" {
		t.Fatalf("blank html should give empty text")
	}
	if !strings.Contains(Description(Target{}, "Navy", ""), "Premium Navy formal suit") {
		t.Fatalf("fallback description")
	}
}

func TestColorHelpers(t *testing.T) {
	if SEOColor("Navy") != "Navy Blue" || SEOColor("Teal") != "Teal" {
		t.Fatalf("SEOColor")
	}
	if ColorSlug("Black/White Check") != "black-white-check" {
		t.Fatalf("ColorSlug = %q", ColorSlug("Black/White Check"))
	}
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
