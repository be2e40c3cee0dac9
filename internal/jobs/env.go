package jobs

import (
	"context"
	"sync"
	"time"

	conf "github.com/bartek5186/catalogsync/internal/config"
	"github.com/bartek5186/catalogsync/internal/db"
	"github.com/bartek5186/catalogsync/internal/integrations/shopify"
	"github.com/bartek5186/catalogsync/internal/medusa"
	"github.com/rs/zerolog"
)

// Env – zasoby współdzielone przez joby jednego przebiegu: config, baza
// (otwierana przy pierwszym użyciu) i katalog dostawcy (pobierany raz).
type Env struct {
	Cfg *conf.Config
	Log zerolog.Logger

	OpenDB func(conf.DatabaseConfig) (*db.Handle, error)

	mu         sync.Mutex
	dbh        *db.Handle
	srch       *db.Handle
	fetched    bool
	catalog    []shopify.Product
	catalogErr error
}

func NewEnv(cfg *conf.Config, log zerolog.Logger) *Env {
	return &Env{Cfg: cfg, Log: log, OpenDB: db.Open}
}

// DB otwiera bazę przy pierwszym wywołaniu. Lokalny sqlite dostaje schemat przez Migrate.
func (e *Env) DB() (*db.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dbh != nil {
		return e.dbh, nil
	}
	h, err := e.OpenDB(e.Cfg.Database)
	if err != nil {
		return nil, err
	}
	if h.Driver == "sqlite" {
		if err := h.Migrate(); err != nil {
			h.Close()
			return nil, err
		}
	}
	e.Log.Info().Str("driver", h.Driver).Msg("DB ready")
	e.dbh = h
	return h, nil
}

// SourceDB – stara baza do migracji; bez Migrate, schemat należy do źródła.
func (e *Env) SourceDB() (*db.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.srch != nil {
		return e.srch, nil
	}
	h, err := e.OpenDB(e.Cfg.Migrate.Source)
	if err != nil {
		return nil, err
	}
	e.Log.Info().Str("driver", h.Driver).Msg("source DB ready")
	e.srch = h
	return h, nil
}

// StoreOptions – opcje sklepu z configa.
func (e *Env) StoreOptions() medusa.Options {
	sc := e.Cfg.Store
	return medusa.Options{
		RegionID:        sc.RegionID,
		CurrencyCode:    sc.CurrencyCode,
		SalesChannelID:  sc.SalesChannelID,
		SKUBaseMaxLen:   sc.SKUMaxLen(),
		ManageInventory: sc.ManageInventory,
		Diff:            e.Cfg.Reconcile.Mode == "diff",
	}
}

func (e *Env) Store() (*medusa.Store, error) {
	return e.StoreWith(e.StoreOptions())
}

func (e *Env) StoreWith(opt medusa.Options) (*medusa.Store, error) {
	h, err := e.DB()
	if err != nil {
		return nil, err
	}
	return medusa.New(e.Log.With().Str("component", "store").Logger(), h.DB, opt), nil
}

// Catalog pobiera katalog raz na przebieg. Częściowy wynik (z błędem) też jest zapamiętany.
func (e *Env) Catalog(ctx context.Context) ([]shopify.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fetched {
		return e.catalog, e.catalogErr
	}

	sc := e.Cfg.Shopify
	client, err := shopify.New(e.Log.With().Str("component", "shopify").Logger(), shopify.Config{
		Domain:      sc.Domain,
		BaseURL:     sc.BaseURL,
		APIVersion:  sc.APIVersion,
		AccessToken: sc.AccessToken,
		Pagination:  sc.Pagination,
		PageLimit:   sc.PageLimit,
		MaxPages:    sc.MaxPages,
		Timeout:     time.Duration(sc.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	e.catalog, e.catalogErr = client.FetchAll(ctx)
	e.fetched = true
	return e.catalog, e.catalogErr
}

// usableCatalog: błąd tylko gdy nie ma z czym pracować
func (e *Env) usableCatalog(ctx context.Context, log zerolog.Logger) ([]shopify.Product, error) {
	products, err := e.Catalog(ctx)
	if err != nil {
		if len(products) == 0 {
			return nil, err
		}
		log.Warn().Err(err).Int("products", len(products)).Msg("using partial catalog")
	}
	return products, nil
}

func (e *Env) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var err error
	for _, h := range []**db.Handle{&e.dbh, &e.srch} {
		if *h == nil {
			continue
		}
		if cerr := (*h).Close(); cerr != nil && err == nil {
			err = cerr
		}
		*h = nil
	}
	return err
}
