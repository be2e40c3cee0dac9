package jobs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	conf "github.com/bartek5186/catalogsync/internal/config"
	"github.com/bartek5186/catalogsync/internal/db"
	"github.com/bartek5186/catalogsync/internal/vendorimport"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const catalogJSON = `{"products":[
 {"id":1,"title":"Hybrid Suit","vendor":"Tazzio","product_type":"Suit",
  "images":[{"id":9,"src":"https://cdn/h.jpg"}],
  "variants":[
   {"id":11,"sku":"M301H-01-40R","title":"Black / 40R","option1":"Black","option2":"40R","price":"179.99","inventory_quantity":3},
   {"id":12,"sku":"M301H-09-40R","title":"Red / 40R","option1":"Red","option2":"40R","price":"179.99","inventory_quantity":0},
   {"id":13,"sku":"MJ425S-01-40R","title":"Black / 40R","option1":"Black","option2":"40R","price":"199.99","inventory_quantity":1}
  ]}
]}`

func catalogServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, catalogJSON)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testEnv(t *testing.T) (*Env, *int) {
	t.Helper()
	srv, calls := catalogServer(t)
	dir := t.TempDir()

	cfg := conf.Default()
	cfg.Shopify.BaseURL = srv.URL
	cfg.Shopify.AccessToken = "tok"
	cfg.Database = conf.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(dir, "store.db")}
	cfg.Match.ReportPath = filepath.Join(dir, "sku_matches.xlsx")
	cfg.Analysis.ReportPath = filepath.Join(dir, "vendor_analysis.xlsx")
	cfg.Vendor.OutputPath = filepath.Join(dir, "vendor_import_data.json")
	cfg.SQLGen.InputPath = cfg.Vendor.OutputPath
	cfg.SQLGen.OutputDir = filepath.Join(dir, "sql")
	cfg.Reconcile.DelayMillis = 0

	env := NewEnv(cfg, zerolog.Nop())
	t.Cleanup(func() { env.Close() })
	return env, calls
}

func runJob(t *testing.T, env *Env, name string) error {
	t.Helper()
	f, ok := Get(name)
	if !ok {
		t.Fatalf("job %q not registered", name)
	}
	job, err := f(zerolog.Nop(), env)
	if err != nil {
		t.Fatalf("init %s: %v", name, err)
	}
	if job.Name() != name {
		t.Fatalf("job name = %q", job.Name())
	}
	return job.Run(context.Background())
}

func TestAllJobsRegistered(t *testing.T) {
	want := []string{"analyze", "fetch", "match", "metadata", "migrate", "reconcile", "sqlgen", "vendor-import"}
	names := strings.Join(Names(), ",")
	for _, w := range want {
		if !strings.Contains(names, w) {
			t.Errorf("job %q missing in %s", w, names)
		}
	}
}

func TestCatalogFetchedOnce(t *testing.T) {
	env, calls := testEnv(t)
	for _, name := range []string{"fetch", "match", "analyze"} {
		if err := runJob(t, env, name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	if *calls != 1 {
		t.Fatalf("catalog requests = %d, want 1", *calls)
	}
	for _, p := range []string{env.Cfg.Match.ReportPath, env.Cfg.Analysis.ReportPath} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("report %s: %v", p, err)
		}
	}
}

func TestCatalogRequiresToken(t *testing.T) {
	env, _ := testEnv(t)
	env.Cfg.Shopify.AccessToken = ""
	if err := runJob(t, env, "fetch"); err == nil {
		t.Fatalf("expected missing token error")
	}
}

func TestVendorImportThenSQLGen(t *testing.T) {
	env, _ := testEnv(t)
	if err := runJob(t, env, "vendor-import"); err != nil {
		t.Fatalf("vendor-import: %v", err)
	}
	data, err := vendorimport.Load(env.Cfg.Vendor.OutputPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p, v := data.Counts(); p != 2 || v != 2 {
		t.Fatalf("counts = %d/%d", p, v)
	}

	if err := runJob(t, env, "sqlgen"); err != nil {
		t.Fatalf("sqlgen: %v", err)
	}
	files, _ := filepath.Glob(filepath.Join(env.Cfg.SQLGen.OutputDir, "import_vendor_products_*.sql"))
	if len(files) != 1 {
		t.Fatalf("sql files = %v", files)
	}
	b, _ := os.ReadFile(files[0])
	// M301H/Red bez stanu jest pomijany
	if strings.Contains(string(b), "M301H-09-40R") || !strings.Contains(string(b), "M301H-01-40R") {
		t.Fatalf("unexpected sql content")
	}
}

func TestStoreJobs(t *testing.T) {
	env, _ := testEnv(t)
	h, err := env.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := h.DB.Create(&db.Product{ID: "prod_1", Title: "Navy Suit", Handle: "navy-suit"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	env.Cfg.Reconcile.Products = []conf.PricedProduct{{Title: "Navy Suit", PriceCents: 22999}}
	if err := runJob(t, env, "reconcile"); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	var n int64
	h.DB.Model(&db.Variant{}).Where("product_id = ?", "prod_1").Count(&n)
	if n != 19 {
		t.Fatalf("variants = %d", n)
	}

	env.Cfg.Reconcile.Products = append(env.Cfg.Reconcile.Products, conf.PricedProduct{Title: "Missing", PriceCents: 100})
	if err := runJob(t, env, "reconcile"); err == nil {
		t.Fatalf("expected batch error for missing product")
	}

	env.Cfg.Metadata.Patches = []conf.MetadataPatch{{Title: "Navy Suit", Metadata: map[string]string{"color": "Navy", "fit": "Slim"}}}
	if err := runJob(t, env, "metadata"); err != nil {
		t.Fatalf("metadata: %v", err)
	}
	var p db.Product
	h.DB.Where("id = ?", "prod_1").Take(&p)
	if p.Metadata["color"] != "Navy" {
		t.Fatalf("metadata = %v", p.Metadata)
	}
}

func seedSource(t *testing.T, path string) {
	t.Helper()
	h, err := db.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer h.Close()
	if err := h.DB.AutoMigrate(&db.SourceProduct{}); err != nil {
		t.Fatalf("source schema: %v", err)
	}
	str := func(s string) *string { return &s }
	rows := []db.SourceProduct{
		{ID: "1", Title: str("Black Suit"), SKU: str("BS1"), Category: str("Suits"), Status: str("active"),
			Price: decimal.NullDecimal{Decimal: decimal.RequireFromString("229.99"), Valid: true}},
		{ID: "2", Title: str("Silk Tie"), SKU: str("TIE9"), Sizes: datatypes.JSON(`["S","M"]`)},
		{ID: "3", Title: str("Old Vest"), SKU: str("OV1"), Status: str("archived")},
	}
	if err := h.DB.Create(&rows).Error; err != nil {
		t.Fatalf("seed source: %v", err)
	}
}

func TestMigrateJob(t *testing.T) {
	env, _ := testEnv(t)
	src := filepath.Join(t.TempDir(), "source.db")
	seedSource(t, src)
	env.Cfg.Migrate.Source = conf.DatabaseConfig{Driver: "sqlite", SQLitePath: src}
	env.Cfg.Migrate.LocationID = "sloc_test"

	for i := 0; i < 2; i++ {
		if err := runJob(t, env, "migrate"); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	h, err := env.DB()
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	counts := map[string]int64{}
	for name, model := range map[string]any{
		"products": &db.Product{}, "variants": &db.Variant{},
		"items": &db.InventoryItem{}, "levels": &db.InventoryLevel{}, "links": &db.VariantInventoryItem{},
	} {
		var n int64
		h.DB.Model(model).Count(&n)
		counts[name] = n
	}
	if counts["products"] != 2 || counts["variants"] != 31 || counts["items"] != 31 || counts["levels"] != 31 || counts["links"] != 31 {
		t.Fatalf("counts = %v", counts)
	}

	var p db.Product
	if err := h.DB.Where("handle = ?", "black-suit").Take(&p).Error; err != nil {
		t.Fatalf("migrated product: %v", err)
	}
	if p.Metadata["price"] != 229.99 || p.Metadata["vendor"] != "KCT Menswear" {
		t.Fatalf("metadata = %v", p.Metadata)
	}
}

func TestMigrateJobBadDefaultPrice(t *testing.T) {
	env, _ := testEnv(t)
	env.Cfg.Migrate.DefaultPrice = "cheap"
	f, _ := Get("migrate")
	if _, err := f(zerolog.Nop(), env); err == nil {
		t.Fatalf("expected init error")
	}
}
