// internal/integrations/shopify/types.go
package shopify

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	BodyHTML    string    `json:"body_html"`
	CreatedAt   string    `json:"created_at"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
}

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

type Variant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	SKU               string  `json:"sku"`
	Title             string  `json:"title"`
	Option1           string  `json:"option1"` // kolor
	Option2           string  `json:"option2"` // rozmiar
	Option3           string  `json:"option3"`
	Price             string  `json:"price"` // string w Shopify, np. "229.99"
	CompareAtPrice    string  `json:"compare_at_price"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Barcode           string  `json:"barcode"`
	Weight            float64 `json:"weight"`
	ImageID           *int64  `json:"image_id"`
}

// PriceCents zamienia cenę Shopify na jednostki minimalne (centy).
func (v Variant) PriceCents() (int64, error) {
	return ToCents(v.Price)
}

// ToCents: "229.99" -> 22999. Pusty string = 0.
func ToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

func (p Product) TotalStock() int {
	n := 0
	for _, v := range p.Variants {
		n += v.InventoryQuantity
	}
	return n
}

// ImageSrc zwraca URL obrazka o danym id (pusty gdy brak).
func (p Product) ImageSrc(id int64) string {
	for _, img := range p.Images {
		if img.ID == id {
			return img.Src
		}
	}
	return ""
}
