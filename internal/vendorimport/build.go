package vendorimport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// ImportData – plik pośredni vendor_import_data.json
type ImportData struct {
	Timestamp time.Time                `json:"timestamp"`
	Products  map[string]ImportProduct `json:"products"` // klucz: SKU bazowe
}

type ImportProduct struct {
	Name        string                  `json:"name"`
	RetailPrice decimal.Decimal         `json:"retail_price"`
	Colors      map[string]ColorProduct `json:"colors"`
}

type ColorProduct struct {
	Title       string         `json:"title"`
	Handle      string         `json:"handle"`
	Description string         `json:"description"`
	Variants    []ColorVariant `json:"variants"`
	Images      []string       `json:"images"`
	Vendor      string         `json:"vendor"`
	TotalStock  int            `json:"total_stock"`
}

type BuildOptions struct {
	DefaultVendor string
	MaxImages     int // limit obrazków na kolor (własnych albo produktu); 0 = bez limitu
	Now           time.Time
}

// Build składa plik pośredni z wyciągniętych produktów.
func Build(found []*Extracted, targets []Target, opt BuildOptions) ImportData {
	if opt.Now.IsZero() {
		opt.Now = time.Now()
	}
	byBase := make(map[string]Target, len(targets))
	for _, t := range targets {
		byBase[t.BaseSKU] = t
	}

	data := ImportData{Timestamp: opt.Now, Products: make(map[string]ImportProduct, len(found))}
	for _, ex := range found {
		t := byBase[ex.BaseSKU]
		ip := ImportProduct{Name: t.Name, RetailPrice: t.RetailPrice, Colors: make(map[string]ColorProduct, len(ex.Colors))}

		vendorName := ex.Product.Vendor
		if vendorName == "" {
			vendorName = opt.DefaultVendor
		}

		for _, cg := range ex.Colors {
			images := cg.Images
			if len(images) == 0 {
				for _, img := range ex.Product.Images {
					images = append(images, img.Src)
				}
			}
			if opt.MaxImages > 0 && len(images) > opt.MaxImages {
				images = images[:opt.MaxImages]
			}
			stock := 0
			for _, v := range cg.Variants {
				stock += v.Inventory
			}
			ip.Colors[cg.Color] = ColorProduct{
				Title:       Title(t, cg.Color),
				Handle:      Handle(t, cg.Color),
				Description: Description(t, cg.Color, ex.Product.BodyHTML),
				Variants:    cg.Variants,
				Images:      images,
				Vendor:      vendorName,
				TotalStock:  stock,
			}
		}
		data.Products[ex.BaseSKU] = ip
	}
	return data
}

// Counts: produkty (kolory) i warianty w pliku.
func (d ImportData) Counts() (products, variants int) {
	for _, p := range d.Products {
		for _, c := range p.Colors {
			products++
			variants += len(c.Variants)
		}
	}
	return products, variants
}

func Save(path string, data ImportData) error {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func Load(path string) (ImportData, error) {
	var data ImportData
	b, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(b, &data); err != nil {
		return data, fmt.Errorf("decode %s: %w", path, err)
	}
	return data, nil
}
