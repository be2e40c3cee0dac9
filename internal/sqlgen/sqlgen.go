// Package sqlgen generuje skrypt SQL importu produktów dostawcy z pliku pośredniego.
// Skrypt jest do ręcznego uruchomienia na bazie sklepu (postgres).
package sqlgen

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bartek5186/catalogsync/internal/medusa"
	"github.com/bartek5186/catalogsync/internal/vendorimport"
)

const Source = "shopify_vendor"

const DefaultMaxImages = 5

var DefaultTags = []string{"suit", "formal wear", "wedding", "prom"}

type Options struct {
	RegionID       string
	CurrencyCode   string
	SalesChannelID string   // pusty = bez podpinania do kanału
	SkipZeroStock  []string // SKU bazowe, dla których pomijamy kolory bez stanu
	MaxImages      int      // wiersze product_image na kolor, domyślnie 5
	Tags           []string // stałe tagi SEO (kategoria), obok koloru, dostawcy i SKU bazowego
	Now            time.Time
	NewID          func(prefix string) string
}

type Stats struct {
	Products int
	Variants int
	Images   int
	Tags     int
	Skipped  []string // "M301H/Red"
}

// FileName: import_vendor_products_YYYYMMDD_HHMMSS.sql
func FileName(now time.Time) string {
	return "import_vendor_products_" + now.Format("20060102_150405") + ".sql"
}

// WriteFile zapisuje skrypt w katalogu dir i zwraca jego ścieżkę.
func WriteFile(dir string, data vendorimport.ImportData, opt Options) (string, Stats, error) {
	opt = withDefaults(opt)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Stats{}, err
	}
	path := filepath.Join(dir, FileName(opt.Now))
	f, err := os.Create(path)
	if err != nil {
		return "", Stats{}, err
	}
	defer f.Close()

	st, err := Generate(f, data, opt)
	if err != nil {
		return path, st, err
	}
	return path, st, f.Close()
}

func withDefaults(opt Options) Options {
	if opt.Now.IsZero() {
		opt.Now = time.Now()
	}
	if opt.NewID == nil {
		opt.NewID = medusa.NewID
	}
	if opt.CurrencyCode == "" {
		opt.CurrencyCode = "usd"
	}
	if opt.MaxImages <= 0 {
		opt.MaxImages = DefaultMaxImages
	}
	if opt.Tags == nil {
		opt.Tags = DefaultTags
	}
	return opt
}

// Generate pisze cały skrypt: jedna transakcja, produkt na kolor, zapytanie weryfikujące na końcu.
func Generate(w io.Writer, data vendorimport.ImportData, opt Options) (Stats, error) {
	opt = withDefaults(opt)
	var st Stats
	var b strings.Builder

	bases := make([]string, 0, len(data.Products))
	for base := range data.Products {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	skip := map[string]bool{}
	for _, s := range opt.SkipZeroStock {
		skip[s] = true
	}

	fmt.Fprintf(&b, "-- ============================================\n")
	fmt.Fprintf(&b, "-- VENDOR PRODUCT IMPORT SQL\n")
	fmt.Fprintf(&b, "-- Generated: %s\n", opt.Now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "-- Products: %s\n", strings.Join(bases, ", "))
	fmt.Fprintf(&b, "-- ============================================\n\nBEGIN;\n")

	for _, base := range bases {
		p := data.Products[base]
		cents := p.RetailPrice.Shift(2).Round(0).IntPart()
		for _, color := range vendorimport.SortedColors(p.Colors) {
			cp := p.Colors[color]
			if cp.TotalStock == 0 && skip[base] {
				st.Skipped = append(st.Skipped, base+"/"+color)
				continue
			}
			if err := writeProduct(&b, opt, &st, base, color, cp, cents); err != nil {
				return st, err
			}
			st.Products++
			st.Variants += len(cp.Variants)
		}
	}

	fmt.Fprintf(&b, "\n-- ============================================\n")
	fmt.Fprintf(&b, "-- Products: %d | Variants: %d | Images: %d | Tags: %d | Skipped: %d\n",
		st.Products, st.Variants, st.Images, st.Tags, len(st.Skipped))
	fmt.Fprintf(&b, "-- ============================================\n\nCOMMIT;\n\n")
	b.WriteString(verifyQuery)

	_, err := io.WriteString(w, b.String())
	return st, err
}

func writeProduct(b *strings.Builder, opt Options, st *Stats, base, color string, cp vendorimport.ColorProduct, cents int64) error {
	productID := opt.NewID("prod_")

	meta, err := json.Marshal(map[string]string{
		"vendor":      cp.Vendor,
		"base_sku":    base,
		"color":       color,
		"source":      Source,
		"import_date": opt.Now.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	thumb := "https://placehold.co/600x800?text=" + strings.ReplaceAll(color, " ", "+")
	if len(cp.Images) > 0 {
		thumb = cp.Images[0]
	}

	fmt.Fprintf(b, "\n-- ============================================\n")
	fmt.Fprintf(b, "-- Product: %s\n", oneLine(cp.Title))
	fmt.Fprintf(b, "-- SKU Base: %s | Color: %s\n", base, oneLine(color))
	fmt.Fprintf(b, "-- Variants: %d | Stock: %d\n", len(cp.Variants), cp.TotalStock)
	fmt.Fprintf(b, "-- ============================================\n")

	fmt.Fprintf(b, "INSERT INTO product (id, handle, title, subtitle, description, status, thumbnail, metadata, created_at, updated_at)\n")
	fmt.Fprintf(b, "VALUES (%s, %s, %s, %s, %s, 'published', %s, %s::jsonb, NOW(), NOW())\nON CONFLICT DO NOTHING;\n",
		quote(productID), quote(cp.Handle), quote(cp.Title), quote(base+" - "+color),
		quote(cp.Description), quote(thumb), quote(string(meta)))

	if opt.SalesChannelID != "" {
		fmt.Fprintf(b, "INSERT INTO product_sales_channel (id, product_id, sales_channel_id) VALUES (%s, %s, %s)\nON CONFLICT DO NOTHING;\n",
			quote(opt.NewID("prodsc_")), quote(productID), quote(opt.SalesChannelID))
	}

	tags := Tags(opt.Tags, color, cp.Vendor, base)
	if len(tags) > 0 {
		values := make([]string, 0, len(tags))
		for _, t := range tags {
			values = append(values, fmt.Sprintf("(%s, %s)", quote(productID), quote(t)))
		}
		fmt.Fprintf(b, "INSERT INTO product_tags (product_id, value) VALUES\n    %s\nON CONFLICT DO NOTHING;\n",
			strings.Join(values, ",\n    "))
		st.Tags += len(tags)
	}

	imgMeta, err := json.Marshal(map[string]string{"color": color})
	if err != nil {
		return err
	}
	for i, url := range cp.Images {
		if i >= opt.MaxImages {
			break
		}
		fmt.Fprintf(b, "INSERT INTO product_image (id, product_id, url, rank, metadata, created_at, updated_at) VALUES (%s, %s, %s, %d, %s::jsonb, NOW(), NOW())\nON CONFLICT DO NOTHING;\n",
			quote(opt.NewID("img_")), quote(productID), quote(url), i, quote(string(imgMeta)))
		st.Images++
	}

	raw := string(medusa.RawAmount(cents))
	for _, v := range cp.Variants {
		variantID := opt.NewID("variant_")
		setID := opt.NewID("pset_")
		priceID := opt.NewID("price_")

		vmeta, err := json.Marshal(map[string]any{"size": CleanSize(v.Size), "color": color, "shopify_stock": v.Inventory})
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "INSERT INTO product_variant (id, product_id, title, sku, barcode, manage_inventory, allow_backorder, weight, metadata, created_at, updated_at)\n")
		fmt.Fprintf(b, "VALUES (%s, %s, %s, %s, %s, false, true, %s, %s::jsonb, NOW(), NOW());\n",
			quote(variantID), quote(productID), quote(CleanSize(v.Size)), quote(v.SKU),
			nullable(v.Barcode), weight(v.Weight), quote(string(vmeta)))
		fmt.Fprintf(b, "INSERT INTO price_set (id, created_at, updated_at) VALUES (%s, NOW(), NOW());\n", quote(setID))
		fmt.Fprintf(b, "INSERT INTO product_variant_price_set (id, variant_id, price_set_id, created_at, updated_at) VALUES (%s, %s, %s, NOW(), NOW());\n",
			quote(opt.NewID("pvps_")), quote(variantID), quote(setID))
		fmt.Fprintf(b, "INSERT INTO price (id, price_set_id, currency_code, amount, raw_amount, created_at, updated_at) VALUES (%s, %s, %s, %d, %s::jsonb, NOW(), NOW());\n",
			quote(priceID), quote(setID), quote(opt.CurrencyCode), cents, quote(raw))
		if opt.RegionID != "" {
			fmt.Fprintf(b, "INSERT INTO price_rule (id, price_id, attribute, operator, value, priority, created_at, updated_at) VALUES (%s, %s, 'region_id', 'eq', %s, 0, NOW(), NOW());\n",
				quote(opt.NewID("prule_")), quote(priceID), quote(opt.RegionID))
		}
	}
	return nil
}

const verifyQuery = `-- weryfikacja
SELECT
    p.handle,
    p.title,
    COUNT(DISTINCT pv.id) AS variant_count,
    MIN(pr.amount) / 100.0 AS price,
    p.metadata->>'color' AS color,
    p.metadata->>'base_sku' AS base_sku
FROM product p
LEFT JOIN product_variant pv ON pv.product_id = p.id
LEFT JOIN product_variant_price_set pvps ON pvps.variant_id = pv.id
LEFT JOIN price pr ON pr.price_set_id = pvps.price_set_id
WHERE p.metadata->>'source' = '` + Source + `'
GROUP BY p.id, p.handle, p.title, p.metadata
ORDER BY p.metadata->>'base_sku', p.metadata->>'color';
`

// Tags: kolor, stałe tagi kategorii, dostawca, SKU bazowe; małe litery, bez pustych i powtórzeń.
func Tags(fixed []string, color, vendor, base string) []string {
	all := append([]string{color}, fixed...)
	all = append(all, vendor, base)
	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, t := range all {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// quote: literał SQL, apostrofy podwojone
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

func weight(w float64) string {
	if w <= 0 {
		return "NULL"
	}
	return fmt.Sprintf("%g", w)
}

// w komentarzach SQL nie może być nowej linii
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var waistSuffix = regexp.MustCompile(`/\d+W$`)

// CleanSize: "40R/34W" -> "40R"
func CleanSize(s string) string {
	return waistSuffix.ReplaceAllString(strings.TrimSpace(s), "")
}
