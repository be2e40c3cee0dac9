package medusa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bartek5186/catalogsync/internal/db"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MigrateOptions struct {
	DefaultVendor string          // gdy źródło nie ma dostawcy
	DefaultPrice  decimal.Decimal // cena do metadanych, gdy źródło nie ma ceny
}

type PlannedVariant struct {
	Title    string
	SKU      string
	Metadata datatypes.JSONMap
}

// ProductPlan – produkt źródłowy przełożony na wiersze sklepu (bez id).
type ProductPlan struct {
	SourceID string
	Product  db.Product
	SKUBase  string
	Variants []PlannedVariant
}

// IsSuit: kategoria, typ albo tytuł zawiera "suit" lub "tuxedo".
func IsSuit(sp db.SourceProduct, title string) bool {
	for _, s := range []string{db.Str(sp.Category), db.Str(sp.Type), title} {
		s = strings.ToLower(s)
		if strings.Contains(s, "suit") || strings.Contains(s, "tuxedo") {
			return true
		}
	}
	return false
}

// PlanProduct buduje produkt i warianty: garnitur -> pełna rozmiarówka migracji,
// rozmiary ze źródła -> po wariancie na rozmiar, inaczej jeden wariant Default.
func PlanProduct(sp db.SourceProduct, opt MigrateOptions) ProductPlan {
	title := db.Str(sp.Title)
	if title == "" {
		title = db.Str(sp.Name)
	}
	if title == "" {
		title = "Product " + sp.ID
	}
	handle := db.Str(sp.Handle)
	if handle == "" {
		handle = Slugify(title)
	}
	base := db.Str(sp.SKU)
	if base == "" {
		base = db.Str(sp.StyleCode)
	}
	if base == "" {
		base = handle
	}
	vendor := db.Str(sp.Vendor)
	if vendor == "" {
		vendor = opt.DefaultVendor
	}

	price := opt.DefaultPrice
	if sp.Price.Valid && sp.Price.Decimal.IsPositive() {
		price = sp.Price.Decimal
	}
	var compareAt any
	if sp.CompareAtPrice.Valid {
		compareAt = sp.CompareAtPrice.Decimal.InexactFloat64()
	}
	var inventory any
	if sp.Inventory != nil {
		inventory = *sp.Inventory
	}
	images := jsonStrings(sp.Images)
	tags := jsonStrings(sp.Tags)

	thumb := db.Str(sp.ImageURL)
	if thumb == "" && len(images) > 0 {
		thumb = images[0]
	}

	plan := ProductPlan{
		SourceID: sp.ID,
		SKUBase:  base,
		Product: db.Product{
			Title:       title,
			Handle:      handle,
			Subtitle:    db.Str(sp.StyleCode),
			Description: db.Str(sp.Description),
			Status:      "published",
			Thumbnail:   thumb,
			Metadata: datatypes.JSONMap{
				"sku_base":         base,
				"vendor":           vendor,
				"style":            nullable(db.Str(sp.StyleCode)),
				"color":            nullable(db.Str(sp.Color)),
				"price":            price.InexactFloat64(),
				"compare_at_price": compareAt,
				"images":           images,
				"category":         nullable(db.Str(sp.Category)),
				"type":             nullable(db.Str(sp.Type)),
				"tags":             tags,
				"source_id":        sp.ID,
				"inventory":        inventory,
			},
		},
	}

	switch sizes := jsonStrings(sp.Sizes); {
	case IsSuit(sp, title):
		for _, run := range MigrationSizeRuns() {
			for _, size := range run.Sizes {
				plan.Variants = append(plan.Variants, PlannedVariant{
					Title:    size,
					SKU:      base + "-" + size,
					Metadata: datatypes.JSONMap{"size": size, "size_type": run.Type},
				})
			}
		}
	case len(sizes) > 0:
		for _, size := range sizes {
			plan.Variants = append(plan.Variants, PlannedVariant{
				Title:    size,
				SKU:      base + "-" + size,
				Metadata: datatypes.JSONMap{"size": size},
			})
		}
	default:
		plan.Variants = []PlannedVariant{{Title: "Default", SKU: base, Metadata: datatypes.JSONMap{"default": true}}}
	}
	return plan
}

type MigrateResult struct {
	SourceID  string
	ProductID string
	Title     string
	Created   bool // false = istniejący produkt (po handle) zaktualizowany
	Variants  int  // wstawione
	Skipped   int  // SKU już zajęte
}

// MigrateProduct zapisuje jeden produkt w transakcji: upsert po handle (także skasowany),
// warianty z pominięciem zajętych SKU, podpięcie do kanału sprzedaży.
func (s *Store) MigrateProduct(ctx context.Context, plan ProductPlan) (MigrateResult, error) {
	res := MigrateResult{SourceID: plan.SourceID, Title: plan.Product.Title}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing db.Product
		err := tx.Unscoped().Where("handle = ?", plan.Product.Handle).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p := plan.Product
			p.ID = s.newID("prod_")
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("insert product %q: %w", p.Handle, err)
			}
			res.ProductID, res.Created = p.ID, true
		case err != nil:
			return fmt.Errorf("lookup handle %q: %w", plan.Product.Handle, err)
		default:
			err := tx.Unscoped().Model(&db.Product{}).Where("id = ?", existing.ID).Updates(map[string]any{
				"title":       plan.Product.Title,
				"description": plan.Product.Description,
				"thumbnail":   plan.Product.Thumbnail,
				"metadata":    plan.Product.Metadata,
				"updated_at":  s.now(),
				"deleted_at":  nil,
			}).Error
			if err != nil {
				return fmt.Errorf("update product %q: %w", plan.Product.Handle, err)
			}
			res.ProductID = existing.ID
		}

		variants := make([]db.Variant, 0, len(plan.Variants))
		for _, pv := range plan.Variants {
			variants = append(variants, db.Variant{
				ID:              s.newID("variant_"),
				ProductID:       res.ProductID,
				Title:           pv.Title,
				SKU:             pv.SKU,
				ManageInventory: true,
				Metadata:        pv.Metadata,
			})
		}
		if len(variants) > 0 {
			q := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "sku"}}, DoNothing: true}).Create(&variants)
			if q.Error != nil {
				return fmt.Errorf("insert variants: %w", q.Error)
			}
			res.Variants = int(q.RowsAffected)
			res.Skipped = len(variants) - res.Variants
		}

		return s.linkSalesChannel(tx, res.ProductID)
	})
	if err != nil {
		return MigrateResult{SourceID: plan.SourceID, Title: plan.Product.Title}, err
	}
	return res, nil
}

type MigrateSummary struct {
	Results  []MigrateResult
	Created  int
	Updated  int
	Variants int
	Failed   int
}

// MigrateProducts – każdy produkt osobno; błąd jednego nie zatrzymuje reszty.
func (s *Store) MigrateProducts(ctx context.Context, sources []db.SourceProduct, opt MigrateOptions) MigrateSummary {
	var sum MigrateSummary
	log := s.log.With().Str("op", "migrate").Logger()

	for _, sp := range sources {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Msg("migration interrupted")
			sum.Failed += len(sources) - len(sum.Results) - sum.Failed
			break
		}
		plan := PlanProduct(sp, opt)
		res, err := s.MigrateProduct(ctx, plan)
		if err != nil {
			sum.Failed++
			log.Error().Err(err).Str("source_id", sp.ID).Str("title", plan.Product.Title).Msg("product migration failed")
			continue
		}
		sum.Results = append(sum.Results, res)
		sum.Variants += res.Variants
		if res.Created {
			sum.Created++
		} else {
			sum.Updated++
		}
		log.Info().Str("title", res.Title).Bool("created", res.Created).Int("variants", res.Variants).
			Int("skipped", res.Skipped).Msg("product migrated")
	}

	log.Info().Int("created", sum.Created).Int("updated", sum.Updated).Int("variants", sum.Variants).
		Int("failed", sum.Failed).Msg("migration done")
	return sum
}

type InventoryResult struct {
	Items  int
	Levels int
	Links  int
}

const inventoryBatch = 500

// BackfillInventory uzupełnia magazyn dla wszystkich wariantów z SKU:
// pozycję na SKU, stan w lokalizacji i łącznik wariant ↔ pozycja. Istniejące wiersze zostają.
// Pusta lokalizacja = bez stanów.
func (s *Store) BackfillInventory(ctx context.Context, locationID string, stocked int) (InventoryResult, error) {
	var res InventoryResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var skus []string
		err := tx.Model(&db.Variant{}).Distinct("sku").
			Where("sku <> ''").
			Where("NOT EXISTS (?)", tx.Table("inventory_item").Select("1").Where("inventory_item.sku = product_variant.sku")).
			Order("sku").Pluck("sku", &skus).Error
		if err != nil {
			return fmt.Errorf("list skus: %w", err)
		}
		items := make([]db.InventoryItem, 0, len(skus))
		for _, sku := range skus {
			items = append(items, db.InventoryItem{ID: s.newID("iitem_"), SKU: sku})
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(&items, inventoryBatch).Error; err != nil {
				return fmt.Errorf("insert inventory items: %w", err)
			}
		}
		res.Items = len(items)

		if locationID != "" {
			var itemIDs []string
			err := tx.Model(&db.InventoryItem{}).
				Where("NOT EXISTS (?)", tx.Table("inventory_level").Select("1").
					Where("inventory_level.inventory_item_id = inventory_item.id AND inventory_level.location_id = ?", locationID)).
				Order("id").Pluck("id", &itemIDs).Error
			if err != nil {
				return fmt.Errorf("list items without level: %w", err)
			}
			levels := make([]db.InventoryLevel, 0, len(itemIDs))
			for _, id := range itemIDs {
				levels = append(levels, db.InventoryLevel{
					ID:              s.newID("ilev_"),
					InventoryItemID: id,
					LocationID:      locationID,
					StockedQuantity: stocked,
				})
			}
			if len(levels) > 0 {
				if err := tx.CreateInBatches(&levels, inventoryBatch).Error; err != nil {
					return fmt.Errorf("insert inventory levels: %w", err)
				}
			}
			res.Levels = len(levels)
		}

		var pairs []struct {
			VariantID       string
			InventoryItemID string
		}
		err = tx.Table("product_variant").
			Select("product_variant.id AS variant_id, inventory_item.id AS inventory_item_id").
			Joins("JOIN inventory_item ON inventory_item.sku = product_variant.sku").
			Where("NOT EXISTS (?)", tx.Table("product_variant_inventory_item").Select("1").
				Where("product_variant_inventory_item.variant_id = product_variant.id AND product_variant_inventory_item.inventory_item_id = inventory_item.id")).
			Order("product_variant.id").Scan(&pairs).Error
		if err != nil {
			return fmt.Errorf("list variants without inventory link: %w", err)
		}
		links := make([]db.VariantInventoryItem, 0, len(pairs))
		for _, p := range pairs {
			links = append(links, db.VariantInventoryItem{
				ID:               s.newID("pvitem_"),
				VariantID:        p.VariantID,
				InventoryItemID:  p.InventoryItemID,
				RequiredQuantity: 1,
			})
		}
		if len(links) > 0 {
			if err := tx.CreateInBatches(&links, inventoryBatch).Error; err != nil {
				return fmt.Errorf("insert inventory links: %w", err)
			}
		}
		res.Links = len(links)
		return nil
	})
	if err != nil {
		return InventoryResult{}, err
	}
	s.log.Info().Int("items", res.Items).Int("levels", res.Levels).Int("links", res.Links).
		Str("location", locationID).Msg("inventory backfilled")
	return res, nil
}

// jsonStrings: lista napisów z kolumny json; NULL albo zły format = pusta lista.
func jsonStrings(j datatypes.JSON) []string {
	var out []string
	if len(j) == 0 {
		return nil
	}
	if err := json.Unmarshal(j, &out); err != nil {
		return nil
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
