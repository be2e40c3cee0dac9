// Package medusa operuje na tabelach sklepu: produkty, warianty, price sety, ceny, reguły.
package medusa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bartek5186/catalogsync/internal/db"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type Options struct {
	RegionID        string // reguła region_id eq <RegionID> na każdej cenie
	CurrencyCode    string // usd
	SalesChannelID  string // opcjonalnie: podpinamy produkt pod kanał
	SKUBaseMaxLen   int    // 0 = bez przycinania
	ManageInventory bool
	Sizes           []string // nil = SuitSizes()
	Diff            bool     // Reconcile/ReconcileBatch używa SetVariants zamiast pełnej wymiany
}

type Store struct {
	log zerolog.Logger
	db  *gorm.DB
	opt Options

	newID func(prefix string) string
	now   func() time.Time
}

func New(log zerolog.Logger, gdb *gorm.DB, opt Options) *Store {
	if opt.CurrencyCode == "" {
		opt.CurrencyCode = "usd"
	}
	if len(opt.Sizes) == 0 {
		opt.Sizes = SuitSizes()
	}
	return &Store{log: log, db: gdb, opt: opt, newID: NewID, now: time.Now}
}

// NewID: prefiks + 24 znaki hex z uuid v4
func NewID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// FindProduct szuka nieusuniętego produktu po tytule.
func (s *Store) FindProduct(ctx context.Context, title string) (*db.Product, error) {
	return findProduct(s.db.WithContext(ctx), title)
}

func findProduct(tx *gorm.DB, title string) (*db.Product, error) {
	var p db.Product
	err := tx.Where("title = ?", title).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, title)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", title, err)
	}
	return &p, nil
}

// Slugify robi handle z tytułu: "Black & Gold/Suit" -> "black-and-gold-suit".
func Slugify(title string) string {
	r := strings.NewReplacer(" ", "-", "/", "-", "&", "and")
	s := r.Replace(strings.ToLower(strings.TrimSpace(title)))
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
