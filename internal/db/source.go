package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SourceProduct – tabela products w bazie źródłowej (stary sklep).
// Kolumny mogą być NULL, stąd wskaźniki; images/sizes/tags trzymane jako json.
type SourceProduct struct {
	ID             string `gorm:"primaryKey;type:varchar(64)"`
	Title          *string
	Name           *string
	Handle         *string
	Description    *string `gorm:"type:text"`
	SKU            *string `gorm:"column:sku"`
	StyleCode      *string
	Vendor         *string
	Category       *string
	Type           *string
	Color          *string
	Price          decimal.NullDecimal `gorm:"type:numeric"`
	CompareAtPrice decimal.NullDecimal `gorm:"type:numeric"`
	ImageURL       *string             `gorm:"column:image_url"`
	Images         datatypes.JSON      `gorm:"type:jsonb"`
	Sizes          datatypes.JSON      `gorm:"type:jsonb"`
	Tags           datatypes.JSON      `gorm:"type:jsonb"`
	Status         *string
	Inventory      *int
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

func (SourceProduct) TableName() string { return "products" }

// LoadSourceProducts czyta aktywne produkty (status active albo NULL), najnowsze pierwsze.
func LoadSourceProducts(ctx context.Context, gdb *gorm.DB) ([]SourceProduct, error) {
	var out []SourceProduct
	err := gdb.WithContext(ctx).
		Where("status = ? OR status IS NULL", "active").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("błąd odczytu products: %w", err)
	}
	return out, nil
}

// Str – wartość kolumny tekstowej, NULL = "".
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
