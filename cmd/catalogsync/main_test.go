package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bartek5186/catalogsync/internal/db"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Chdir(home)
	t.Setenv("CATALOGSYNC_HOME", home)
	t.Setenv("CATALOGSYNC_DATABASE_DRIVER", "sqlite")
	t.Setenv("CATALOGSYNC_DATABASE_SQLITE_PATH", filepath.Join(home, "store.db"))
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "")
	return home
}

func TestFixProductExitCodes(t *testing.T) {
	home := setupHome(t)

	if code := run([]string{"fix-product", "Navy Suit"}); code != 2 {
		t.Fatalf("missing args code = %d", code)
	}
	if code := run([]string{"fix-product", "Navy Suit", "abc"}); code != 2 {
		t.Fatalf("bad price code = %d", code)
	}
	if code := run([]string{"fix-product", "Navy Suit", "22999"}); code != 1 {
		t.Fatalf("missing product code = %d", code)
	}

	h, err := db.OpenSQLite(filepath.Join(home, "store.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	seed := []db.Product{
		{ID: "prod_1", Title: "Navy Suit", Handle: "navy-suit"},
		{ID: "prod_2", Title: "Classic Black Tuxedo Slim", Handle: "classic-black-tuxedo-slim"},
	}
	if err := h.DB.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	h.Close()

	if code := run([]string{"fix-product", "Navy Suit", "22999"}); code != 0 {
		t.Fatalf("fix-product code = %d", code)
	}
	if code := run([]string{"fix-product", "Classic Black Tuxedo Slim", "19999"}); code != 0 {
		t.Fatalf("fix-product long handle code = %d", code)
	}

	h, err = db.OpenSQLite(filepath.Join(home, "store.db"))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer h.Close()
	var n int64
	h.DB.Model(&db.Variant{}).Where("sku = ?", "CLASSIC_BLACK_TUXEDO_SLIM-40R").Count(&n)
	if n != 1 {
		t.Fatalf("fix-product should keep the full handle in the sku")
	}
}

func TestJobFailuresDoNotChangeExitCode(t *testing.T) {
	home := setupHome(t)
	// brak tokena: fetch kończy się błędem, proces i tak zwraca 0
	if code := run([]string{"fetch", "no-such-job"}); code != 0 {
		t.Fatalf("code = %d", code)
	}
	if _, err := os.Stat(filepath.Join(home, "config.json")); err != nil {
		t.Fatalf("config not created: %v", err)
	}
}
