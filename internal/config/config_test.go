package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "")
	path := filepath.Join(t.TempDir(), "cfg", "config.json")

	cfg, firstRun, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if !firstRun {
		t.Fatalf("expected first run")
	}
	if cfg.Shopify.MaxPages != 20 || cfg.Shopify.PageLimit != 250 {
		t.Fatalf("pagination defaults: %+v", cfg.Shopify)
	}
	if cfg.Store.RegionID == "" || cfg.Store.CurrencyCode != "usd" {
		t.Fatalf("store defaults: %+v", cfg.Store)
	}
	if len(cfg.Reconcile.Products) != 54 {
		t.Fatalf("reconcile products = %d", len(cfg.Reconcile.Products))
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(b), "access_token") {
		t.Fatalf("token must not be written to config file")
	}

	_, firstRun, err = LoadOrCreate(path)
	if err != nil || firstRun {
		t.Fatalf("second load: firstRun=%v err=%v", firstRun, err)
	}
}

func TestLoadOrCreateEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("CATALOGSYNC_SHOPIFY_MAX_PAGES", "3")
	t.Setenv("CATALOGSYNC_LOG_LEVEL", "debug")
	t.Setenv("SOURCE_DATABASE_URL", "postgres://old:pw@legacy:5432/shop")

	cfg, _, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if cfg.Shopify.AccessToken != "shpat_test" {
		t.Fatalf("token env: %q", cfg.Shopify.AccessToken)
	}
	if cfg.Database.DSN != "postgres://u:p@db:5432/x" {
		t.Fatalf("dsn env: %q", cfg.Database.DSN)
	}
	if cfg.Shopify.MaxPages != 3 {
		t.Fatalf("max pages env: %d", cfg.Shopify.MaxPages)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level env: %q", cfg.LogLevel)
	}
	if cfg.Migrate.Source.DSN != "postgres://old:pw@legacy:5432/shop" {
		t.Fatalf("source dsn env: %q", cfg.Migrate.Source.DSN)
	}
	if cfg.Migrate.StockedQty() != 10 || cfg.Migrate.DefaultPrice != "199.99" || cfg.Migrate.Source.Driver != "postgres" {
		t.Fatalf("migrate defaults: %+v", cfg.Migrate)
	}
}

func TestLoadKeepsMetadataPatches(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Metadata.Patches = []MetadataPatch{{Title: "Black Suit", Metadata: map[string]string{"color": "Black"}}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, _, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if len(got.Metadata.Patches) != 1 || got.Metadata.Patches[0].Title != "Black Suit" {
		t.Fatalf("patches: %+v", got.Metadata.Patches)
	}
	if got.Metadata.Patches[0].Metadata["color"] != "Black" {
		t.Fatalf("patch metadata: %+v", got.Metadata.Patches[0].Metadata)
	}
}

func TestSKUBaseMaxLen(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()

	// 0 w pliku wyłącza przycinanie
	path := filepath.Join(dir, "zero.json")
	cfg := Default()
	zero := 0
	cfg.Store.SKUBaseMaxLen = &zero
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if got.Store.SKUMaxLen() != 0 {
		t.Fatalf("explicit 0 = %d", got.Store.SKUMaxLen())
	}

	// brak klucza = domyślne 20
	path = filepath.Join(dir, "absent.json")
	cfg = Default()
	cfg.Store.SKUBaseMaxLen = nil
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || strings.Contains(string(b), "sku_base_max_len") {
		t.Fatalf("key should be omitted: %v", err)
	}
	got, _, err = LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if got.Store.SKUMaxLen() != 20 {
		t.Fatalf("absent = %d", got.Store.SKUMaxLen())
	}
}

func TestLoadOrCreateBrokenFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"log_level": `), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err := LoadOrCreate(path)
	if err == nil || !strings.HasPrefix(err.Error(), "błąd parsowania configa") {
		t.Fatalf("err = %v", err)
	}
}
