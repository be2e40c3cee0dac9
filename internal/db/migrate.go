package db

import (
	"fmt"
)

// Migrate tworzy schemat – tylko dla lokalnej bazy (sqlite) i testów.
// Na produkcji schemat należy do sklepu, nie ruszamy go.
func (h *Handle) Migrate() error {
	if err := h.DB.AutoMigrate(
		&Product{},
		&Variant{},
		&PriceSet{},
		&VariantPriceSet{},
		&Price{},
		&PriceRule{},
		&SalesChannelLink{},
		&InventoryItem{},
		&InventoryLevel{},
		&VariantInventoryItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate error: %w", err)
	}
	return nil
}
