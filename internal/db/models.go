// internal/db/models.go
package db

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// product – wiersz sklepu; tytuł unikalny, metadane jako jsonb
type Product struct {
	ID          string `gorm:"primaryKey;type:varchar(64)"`
	Title       string `gorm:"uniqueIndex;type:varchar(255)"`
	Handle      string `gorm:"uniqueIndex;type:varchar(255)"`
	Subtitle    string
	Description string `gorm:"type:text"`
	Status      string `gorm:"default:draft"`
	Thumbnail   string
	Metadata    datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string { return "product" }

// product_variant – rozmiar produktu; kasowany i odtwarzany przy rekoncyliacji
type Variant struct {
	ID              string `gorm:"primaryKey;type:varchar(64)"`
	ProductID       string `gorm:"index;type:varchar(64)"`
	Title           string
	SKU             string `gorm:"column:sku;uniqueIndex;type:varchar(255)"`
	ManageInventory bool
	AllowBackorder  bool
	Metadata        datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Variant) TableName() string { return "product_variant" }

type PriceSet struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PriceSet) TableName() string { return "price_set" }

// product_variant_price_set – łącznik wariant ↔ price set
type VariantPriceSet struct {
	ID         string `gorm:"primaryKey;type:varchar(64)"`
	VariantID  string `gorm:"index;type:varchar(64)"`
	PriceSetID string `gorm:"index;type:varchar(64)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (VariantPriceSet) TableName() string { return "product_variant_price_set" }

type Price struct {
	ID           string         `gorm:"primaryKey;type:varchar(64)"`
	PriceSetID   string         `gorm:"index;type:varchar(64)"`
	CurrencyCode string         `gorm:"type:varchar(8)"`
	Amount       int64          // w groszach/centach
	RawAmount    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Price) TableName() string { return "price" }

type PriceRule struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	PriceID   string `gorm:"index;type:varchar(64)"`
	Attribute string
	Operator  string
	Value     string
	Priority  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PriceRule) TableName() string { return "price_rule" }

// product_sales_channel – para (produkt, kanał) unikalna
type SalesChannelLink struct {
	ID             string `gorm:"primaryKey;type:varchar(64)"`
	ProductID      string `gorm:"uniqueIndex:uniq_product_channel;type:varchar(64)"`
	SalesChannelID string `gorm:"uniqueIndex:uniq_product_channel;type:varchar(64)"`
	CreatedAt      time.Time
}

func (SalesChannelLink) TableName() string { return "product_sales_channel" }

// inventory_item – jedna pozycja magazynowa na SKU
type InventoryItem struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	SKU       string `gorm:"column:sku;uniqueIndex;type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (InventoryItem) TableName() string { return "inventory_item" }

type InventoryLevel struct {
	ID               string `gorm:"primaryKey;type:varchar(64)"`
	InventoryItemID  string `gorm:"uniqueIndex:uniq_item_location;type:varchar(64)"`
	LocationID       string `gorm:"uniqueIndex:uniq_item_location;type:varchar(64)"`
	StockedQuantity  int
	ReservedQuantity int
	IncomingQuantity int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (InventoryLevel) TableName() string { return "inventory_level" }

// product_variant_inventory_item – łącznik wariant ↔ pozycja magazynowa
type VariantInventoryItem struct {
	ID               string `gorm:"primaryKey;type:varchar(64)"`
	VariantID        string `gorm:"index;type:varchar(64)"`
	InventoryItemID  string `gorm:"index;type:varchar(64)"`
	RequiredQuantity int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (VariantInventoryItem) TableName() string { return "product_variant_inventory_item" }
