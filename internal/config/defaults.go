package conf

// Default zwraca config zapisywany przy pierwszym uruchomieniu.
// Listy produktów i łatki metadanych to dane operacyjne migracji, do edycji w config.json.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Jobs:     []string{"fetch", "match", "analyze"},
		Shopify: ShopifyConfig{
			Domain:         "suits-inventory.myshopify.com",
			APIVersion:     "2024-01",
			Pagination:     "link",
			PageLimit:      250,
			MaxPages:       20,
			TimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			Driver:     "postgres",
			Host:       "localhost",
			Port:       5432,
			User:       "postgres",
			Name:       "medusa",
			SSLMode:    "disable",
			SQLitePath: "catalogsync.db",
		},
		Store: StoreConfig{
			RegionID:      "reg_01K3S6NDGAC1DSWH9MCZCWBWWD",
			CurrencyCode:  "usd",
			SKUBaseMaxLen: intPtr(20),
		},
		Reconcile: ReconcileConfig{
			Mode:        "replace",
			DelayMillis: 500,
			Products:    defaultReconcileProducts(),
		},
		Metadata: MetadataConfig{
			Patches:      defaultMetadataPatches(),
			CoverageKeys: []string{"color", "material", "occasion", "fit", "style"},
		},
		Match: MatchConfig{
			TargetSKUs: []string{
				"MJ425S", "SMJ830H1", "MJ430S", "MJ428S", "MJ427S", "MJ426S",
				"SMJ831H1", "SMJ832H1", "SMJ833H1", "SM164H1", "SM179H1", "SM197H1",
			},
			ReportPath: "sku_matches.xlsx",
		},
		Vendor: VendorConfig{
			Targets:       defaultVendorTargets(),
			OutputPath:    "vendor_import_data.json",
			DefaultVendor: "KCT Menswear",
			MaxImages:     5,
		},
		SQLGen: SQLGenConfig{
			InputPath:     "vendor_import_data.json",
			OutputDir:     ".",
			SkipZeroStock: []string{"M301H"},
			Tags:          []string{"suit", "formal wear", "wedding", "prom"},
		},
		Analysis: AnalysisConfig{
			PreferredVendors: []string{"Tazzio", "Perry Ellis", "Giorgio Inserti"},
			Top:              20,
			ReportPath:       "vendor_analysis.xlsx",
		},
		Migrate: MigrateConfig{
			Source: DatabaseConfig{
				Driver:  "postgres",
				Host:    "localhost",
				Port:    5432,
				User:    "postgres",
				Name:    "postgres",
				SSLMode: "require",
			},
			LocationID:      "sloc_01K3RYPKMN8VRRHMZ890XXVWP5",
			StockedQuantity: intPtr(10),
			DefaultVendor:   "KCT Menswear",
			DefaultPrice:    "199.99",
		},
	}
}

func intPtr(v int) *int { return &v }

func priced(cents int64, titles ...string) []PricedProduct {
	out := make([]PricedProduct, 0, len(titles))
	for _, t := range titles {
		out = append(out, PricedProduct{Title: t, PriceCents: cents})
	}
	return out
}

func defaultReconcileProducts() []PricedProduct {
	var out []PricedProduct
	// garnitury $229.99
	out = append(out, priced(22999,
		"2 PC Double Breasted Solid Suit",
		"2 PC Satin Shawl Collar Suit - Ivory/Burgundy",
		"Black Pinstripe Shawl Lapel Double-Breasted Suit",
		"Black Strip Shawl Lapel",
		"Black Suit",
		"Brown Gold Buttons",
		"Brown Suit",
		"Burnt Orange",
		"Classic Navy Suit",
		"Classic Navy Two-Piece Suit",
		"Dark Teal",
		"Estate Blue",
		"Fall Forest Green Mocha Double Breasted Suit",
		"Fall Mocha Double Breasted Suit",
		"Fall Rust",
		"Fall Smoked Blue Double Breasted Suit",
		"Forest Green Mocha Double-Breasted Suit",
		"Light Grey",
		"Mint",
		"Navy Blue Performance Stretch Suit",
		"Navy Suit",
		"Pin Stripe Black",
		"Pin Stripe Brown",
		"Pin Stripe Canyon Clay Double Breasted Suit",
		"Pin Stripe Grey",
		"Pin Stripe Navy",
		"Pink",
		"Brick Fall Suit",
	)...)
	// smokingi $199.99
	out = append(out, priced(19999,
		"Black On Black Slim Tuxedo Tone Trim Tuxedo",
		"Black Tuxedo",
		"Blush Tuxedo",
		"Burnt Orange Tuxedo",
		"Classic Black Tuxedo with Satin Lapels",
		"Hunter Green Tuxedo",
		"Light Grey On Light Grey Slim Tuxedo Tone Trim Tuxedo",
		"Navy Tone Trim Tuxedo",
		"Sand Tuxedo",
		"Tan Tuxedo Double Breasted",
		"Wine On Wine Slim Tuxedotone Trim Tuxedo",
	)...)
	// smokingi $229.99
	out = append(out, priced(22999,
		"Black Tone Trim Tuxedo Shawl Lapel",
		"Red Tuxedo Double Breasted",
		"White Black Tuxedo",
		"White Tuxedo Double Breasted",
	)...)
	// smokingi $249.99
	out = append(out, priced(24999,
		"Black Gold Design Tuxedo",
		"Black Paisley Tuxedo",
		"Blush Pink Paisley Tuxedo",
		"Gold Paisley Tuxedo",
		"Ivory Black Tone Trim Tuxedo",
		"Ivory Gold Paisley Tuxedo",
		"Ivory Paisley Tuxedo",
		"Notch Lapel Black Velvet Tuxedo",
		"Notch Lapel Navy Velvet Tuxedo",
		"Pink Gold Design Tuxedo",
		"Vivid Purple Tuxedo Tone Trim Tuxedo",
	)...)
	return out
}

func defaultMetadataPatches() []MetadataPatch {
	return []MetadataPatch{
		{Title: "2 PC Double Breasted Solid Suit", Metadata: map[string]string{
			"color": "Classic Black", "material": "Premium Wool Blend", "fit": "Modern Fit",
			"occasion": "Business, Wedding, Formal Events", "style": "Double Breasted",
		}},
		{Title: "Black Pinstripe Shawl Lapel Double-Breasted Suit", Metadata: map[string]string{
			"color": "Black", "pattern": "Pinstripe", "material": "Wool Blend", "fit": "Modern Fit",
			"occasion": "Business, Executive, Formal", "style": "Double Breasted Shawl Lapel",
		}},
		{Title: "Black Strip Shawl Lapel", Metadata: map[string]string{
			"color": "Black", "pattern": "Striped", "material": "Premium Fabric", "fit": "Modern Fit",
			"occasion": "Formal Events, Special Occasions", "style": "Shawl Lapel",
		}},
		{Title: "Burnt Orange", Metadata: map[string]string{
			"color": "Burnt Orange", "material": "Wool Blend", "fit": "Modern Fit",
			"occasion": "Fall Weddings, Events", "style": "Two Button", "season": "Fall",
		}},
		{Title: "Fall Rust", Metadata: map[string]string{
			"color": "Rust", "material": "Wool Blend", "fit": "Modern Fit",
			"occasion": "Fall Weddings, Outdoor Events", "style": "Single Breasted", "season": "Fall",
		}},
		{Title: "Mint", Metadata: map[string]string{
			"color": "Mint Green", "material": "Lightweight Blend", "fit": "Slim Fit",
			"occasion": "Spring Weddings, Prom", "style": "Two Button", "season": "Spring",
		}},
		{Title: "Black Tuxedo", Metadata: map[string]string{
			"color": "Black", "material": "Premium Wool Blend", "fit": "Modern Fit",
			"occasion": "Black Tie, Wedding, Gala", "style": "Satin Lapel Tuxedo",
		}},
		{Title: "Notch Lapel Navy Velvet Tuxedo", Metadata: map[string]string{
			"color": "Navy", "material": "Velvet", "fit": "Slim Fit",
			"occasion": "Holiday Parties, Gala, Prom", "style": "Notch Lapel", "season": "Winter",
		}},
	}
}

func defaultVendorTargets() []VendorTarget {
	return []VendorTarget{
		{
			BaseSKU: "M390SK", Name: "Shiny Satin U-Shape Vest", RetailPrice: "229.99",
			TitleFormat:  "Men's {color} Shiny Satin U-Shape Vest 3-Piece Suit - Modern Fit Wedding Formal Wear",
			HandleFormat: "mens-{color_slug}-shiny-satin-vest-3-piece-suit",
			Description:  "Elevate your formal wardrobe with this {color} shiny satin suit featuring a distinctive U-shape vest. Complete 3-piece set (jacket, pants, vest), available in sizes 34R to 56L.",
		},
		{
			BaseSKU: "M301H", Name: "Hybrid Fit Business", RetailPrice: "179.99",
			TitleFormat:  "Men's {color} 2-Button Hybrid Fit Business Suit - Professional Office Attire",
			HandleFormat: "mens-{color_slug}-hybrid-fit-business-suit",
			Description:  "Our {color} Hybrid Fit Business Suit offers a tailored look without sacrificing comfort. 2-button single-breasted jacket, flat-front pants, sizes 34R to 56L.",
		},
		{
			BaseSKU: "M341SK", Name: "Satin Shawl Collar", RetailPrice: "229.99",
			TitleFormat:  "Men's {color} Satin Shawl Collar Tuxedo Suit - Luxury Wedding & Prom",
			HandleFormat: "mens-{color_slug}-satin-shawl-collar-tuxedo",
			Description:  "Make a statement with our {color} Satin Shawl Collar Tuxedo Suit. Elegant satin shawl lapel, one-button closure, slim fit, sizes 34R to 56L.",
		},
		{
			BaseSKU: "M392SK", Name: "Adjustable Shawl Collar", RetailPrice: "229.99",
			TitleFormat:  "Men's {color} Adjustable Shawl Collar Formal Suit - Premium Evening Wear",
			HandleFormat: "mens-{color_slug}-adjustable-shawl-collar-suit",
			Description:  "Discover refined elegance with our {color} Adjustable Shawl Collar Formal Suit with satin trim detailing, sizes 34R to 56L.",
		},
	}
}
