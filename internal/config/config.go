// internal/config/config.go
package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Główny config aplikacji
type Config struct {
	LogLevel string   `json:"log_level" mapstructure:"log_level"`
	Jobs     []string `json:"jobs" mapstructure:"jobs"` // domyślna kolejność gdy brak argumentów

	Shopify   ShopifyConfig   `json:"shopify" mapstructure:"shopify"`
	Database  DatabaseConfig  `json:"database" mapstructure:"database"`
	Store     StoreConfig     `json:"store" mapstructure:"store"`
	Reconcile ReconcileConfig `json:"reconcile" mapstructure:"reconcile"`
	Metadata  MetadataConfig  `json:"metadata" mapstructure:"metadata"`
	Match     MatchConfig     `json:"match" mapstructure:"match"`
	Vendor    VendorConfig    `json:"vendor" mapstructure:"vendor"`
	SQLGen    SQLGenConfig    `json:"sqlgen" mapstructure:"sqlgen"`
	Analysis  AnalysisConfig  `json:"analysis" mapstructure:"analysis"`
	Migrate   MigrateConfig   `json:"migrate" mapstructure:"migrate"`
}

type ShopifyConfig struct {
	Domain         string `json:"domain" mapstructure:"domain"`
	BaseURL        string `json:"base_url,omitempty" mapstructure:"base_url"` // nadpisuje https://<domain>
	APIVersion     string `json:"api_version" mapstructure:"api_version"`
	AccessToken    string `json:"-" mapstructure:"access_token"`        // tylko z env
	Pagination     string `json:"pagination" mapstructure:"pagination"` // link | page_info | page
	PageLimit      int    `json:"page_limit" mapstructure:"page_limit"`
	MaxPages       int    `json:"max_pages" mapstructure:"max_pages"`
	TimeoutSeconds int    `json:"timeout_seconds" mapstructure:"timeout_seconds"` // 0 = bez limitu
}

type DatabaseConfig struct {
	Driver     string `json:"driver" mapstructure:"driver"` // postgres | mysql | sqlite
	DSN        string `json:"-" mapstructure:"dsn"`         // DATABASE_URL ma pierwszeństwo
	Host       string `json:"host" mapstructure:"host"`
	Port       int    `json:"port" mapstructure:"port"`
	User       string `json:"user" mapstructure:"user"`
	Password   string `json:"-" mapstructure:"password"`
	Name       string `json:"name" mapstructure:"name"`
	SSLMode    string `json:"sslmode" mapstructure:"sslmode"`
	SQLitePath string `json:"sqlite_path" mapstructure:"sqlite_path"`
	LogSQL     bool   `json:"log_sql" mapstructure:"log_sql"`
}

type StoreConfig struct {
	RegionID        string `json:"region_id" mapstructure:"region_id"`
	CurrencyCode    string `json:"currency_code" mapstructure:"currency_code"`
	SalesChannelID  string `json:"sales_channel_id" mapstructure:"sales_channel_id"`
	SKUBaseMaxLen   *int   `json:"sku_base_max_len,omitempty" mapstructure:"sku_base_max_len"` // brak = 20, 0 = bez przycinania
	ManageInventory bool   `json:"manage_inventory" mapstructure:"manage_inventory"`
}

type PricedProduct struct {
	Title      string `json:"title" mapstructure:"title"`
	PriceCents int64  `json:"price_cents" mapstructure:"price_cents"`
}

type ReconcileConfig struct {
	Mode        string          `json:"mode" mapstructure:"mode"` // replace | diff
	DelayMillis int             `json:"delay_millis" mapstructure:"delay_millis"`
	Products    []PricedProduct `json:"products" mapstructure:"products"`
}

type MetadataPatch struct {
	Title    string            `json:"title" mapstructure:"title"`
	Metadata map[string]string `json:"metadata" mapstructure:"metadata"`
}

type MetadataConfig struct {
	Patches      []MetadataPatch `json:"patches" mapstructure:"patches"`
	CoverageKeys []string        `json:"coverage_keys" mapstructure:"coverage_keys"`
}

type MatchConfig struct {
	TargetSKUs []string `json:"target_skus" mapstructure:"target_skus"`
	ReportPath string   `json:"report_path" mapstructure:"report_path"`
}

type VendorTarget struct {
	BaseSKU      string `json:"base_sku" mapstructure:"base_sku"`
	Name         string `json:"name" mapstructure:"name"`
	RetailPrice  string `json:"retail_price" mapstructure:"retail_price"` // decimal, np. "229.99"
	TitleFormat  string `json:"title_format" mapstructure:"title_format"`
	HandleFormat string `json:"handle_format" mapstructure:"handle_format"`
	Description  string `json:"description" mapstructure:"description"`
}

type VendorConfig struct {
	Targets       []VendorTarget `json:"targets" mapstructure:"targets"`
	OutputPath    string         `json:"output_path" mapstructure:"output_path"`
	DefaultVendor string         `json:"default_vendor" mapstructure:"default_vendor"`
	MaxImages     int            `json:"max_images" mapstructure:"max_images"`
}

type SQLGenConfig struct {
	InputPath     string   `json:"input_path" mapstructure:"input_path"`
	OutputDir     string   `json:"output_dir" mapstructure:"output_dir"`
	SkipZeroStock []string `json:"skip_zero_stock" mapstructure:"skip_zero_stock"`
	Tags          []string `json:"tags" mapstructure:"tags"` // stałe tagi SEO obok koloru, dostawcy i SKU
}

type AnalysisConfig struct {
	PreferredVendors []string `json:"preferred_vendors" mapstructure:"preferred_vendors"`
	Top              int      `json:"top" mapstructure:"top"`
	ReportPath       string   `json:"report_path" mapstructure:"report_path"`
}

// MigrateConfig – przenosiny katalogu ze starej bazy (tabela products) do sklepu.
type MigrateConfig struct {
	Source          DatabaseConfig `json:"source" mapstructure:"source"`
	LocationID      string         `json:"location_id" mapstructure:"location_id"`                     // pusty = bez stanów magazynowych
	StockedQuantity *int           `json:"stocked_quantity,omitempty" mapstructure:"stocked_quantity"` // brak = 10
	DefaultVendor   string         `json:"default_vendor" mapstructure:"default_vendor"`
	DefaultPrice    string         `json:"default_price" mapstructure:"default_price"` // decimal, np. "199.99"
}

// StockedQty – stan startowy nowej pozycji magazynowej.
func (c MigrateConfig) StockedQty() int {
	if c.StockedQuantity == nil || *c.StockedQuantity < 0 {
		return 0
	}
	return *c.StockedQuantity
}

// sekrety i nadpisania z env (poza CATALOGSYNC_*)
var envAliases = map[string][]string{
	"shopify.access_token":    {"CATALOGSYNC_SHOPIFY_ACCESS_TOKEN", "SHOPIFY_ACCESS_TOKEN"},
	"shopify.domain":          {"CATALOGSYNC_SHOPIFY_DOMAIN", "SHOPIFY_DOMAIN"},
	"database.dsn":            {"CATALOGSYNC_DATABASE_DSN", "DATABASE_URL"},
	"database.password":       {"CATALOGSYNC_DATABASE_PASSWORD", "DATABASE_PASSWORD"},
	"migrate.source.dsn":      {"CATALOGSYNC_MIGRATE_SOURCE_DSN", "SOURCE_DATABASE_URL"},
	"migrate.source.password": {"CATALOGSYNC_MIGRATE_SOURCE_PASSWORD", "SOURCE_DATABASE_PASSWORD"},
}

// LoadOrCreate ładuje config z pliku lub tworzy domyślny.
// Zwraca też informację, czy plik został właśnie utworzony.
func LoadOrCreate(path string) (*Config, bool, error) {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)

	// .env obok binarki / w katalogu roboczym (opcjonalnie)
	_ = godotenv.Load()

	firstRun := false
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, false, fmt.Errorf("błąd otwierania configa: %w", err)
		}
		if err := Save(path, Default()); err != nil {
			return nil, false, fmt.Errorf("błąd zapisu domyślnego configa: %w", err)
		}
		firstRun = true
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("CATALOGSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envAliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, false, fmt.Errorf("błąd wiązania env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, false, fmt.Errorf("błąd parsowania configa: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, false, fmt.Errorf("błąd dekodowania configa: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, firstRun, nil
}

// Save zapisuje config do pliku (bez sekretów).
func Save(path string, cfg *Config) error {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// uzupełnia pola, których brakuje w starszych plikach
func (c *Config) applyDefaults() {
	d := Default()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Shopify.APIVersion == "" {
		c.Shopify.APIVersion = d.Shopify.APIVersion
	}
	if c.Shopify.Pagination == "" {
		c.Shopify.Pagination = d.Shopify.Pagination
	}
	if c.Shopify.PageLimit <= 0 {
		c.Shopify.PageLimit = d.Shopify.PageLimit
	}
	if c.Shopify.MaxPages <= 0 {
		c.Shopify.MaxPages = d.Shopify.MaxPages
	}
	if c.Reconcile.Mode == "" {
		c.Reconcile.Mode = d.Reconcile.Mode
	}
	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}
	if c.Store.CurrencyCode == "" {
		c.Store.CurrencyCode = d.Store.CurrencyCode
	}
	if c.Store.SKUBaseMaxLen == nil {
		c.Store.SKUBaseMaxLen = d.Store.SKUBaseMaxLen
	}
	if c.Vendor.OutputPath == "" {
		c.Vendor.OutputPath = d.Vendor.OutputPath
	}
	if c.Vendor.MaxImages <= 0 {
		c.Vendor.MaxImages = d.Vendor.MaxImages
	}
	if c.SQLGen.InputPath == "" {
		c.SQLGen.InputPath = c.Vendor.OutputPath
	}
	if c.SQLGen.OutputDir == "" {
		c.SQLGen.OutputDir = "."
	}
	if c.Analysis.Top <= 0 {
		c.Analysis.Top = d.Analysis.Top
	}
	if c.Migrate.Source.Driver == "" {
		c.Migrate.Source.Driver = d.Migrate.Source.Driver
	}
	if c.Migrate.StockedQuantity == nil {
		c.Migrate.StockedQuantity = d.Migrate.StockedQuantity
	}
	if c.Migrate.DefaultVendor == "" {
		c.Migrate.DefaultVendor = d.Migrate.DefaultVendor
	}
	if c.Migrate.DefaultPrice == "" {
		c.Migrate.DefaultPrice = d.Migrate.DefaultPrice
	}
}

// SKUMaxLen – długość bazy SKU z configa; 0 = bez przycinania.
func (c StoreConfig) SKUMaxLen() int {
	if c.SKUBaseMaxLen == nil || *c.SKUBaseMaxLen < 0 {
		return 0
	}
	return *c.SKUBaseMaxLen
}
