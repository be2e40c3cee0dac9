// Package report zapisuje wyniki dopasowań i analizy do arkusza .xlsx.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bartek5186/catalogsync/internal/analysis"
	"github.com/bartek5186/catalogsync/internal/skumatch"
	"github.com/xuri/excelize/v2"
)

const (
	SheetMatches    = "SKU matches"
	SheetColorCodes = "Color codes"
	SheetCandidates = "Import candidates"
	SheetVendors    = "Vendors"
	SheetCategories = "Categories"
)

type Workbook struct {
	f      *excelize.File
	bold   int
	sheets int
}

func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Workbook{f: f, bold: bold}, nil
}

// AddSheet: nagłówek pogrubiony w pierwszym wierszu, dane od drugiego.
func (w *Workbook) AddSheet(name string, header []any, rows [][]any) error {
	var err error
	if w.sheets == 0 {
		// pierwszy arkusz zastępuje domyślny "Sheet1"
		err = w.f.SetSheetName(w.f.GetSheetName(0), name)
	} else {
		_, err = w.f.NewSheet(name)
	}
	if err != nil {
		return fmt.Errorf("sheet %q: %w", name, err)
	}
	w.sheets++

	if err := w.f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	if err := w.f.SetRowStyle(name, 1, 1, w.bold); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := w.f.SetSheetRow(name, cell, &r); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", name, i+2, err)
		}
	}
	return nil
}

func (w *Workbook) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	w.f.SetActiveSheet(0)
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (w *Workbook) Close() error { return w.f.Close() }

// WriteMatches: arkusz trafień SKU i arkusz kodów kolorów.
func WriteMatches(path string, rep skumatch.Report) error {
	w, err := NewWorkbook()
	if err != nil {
		return err
	}
	defer w.Close()

	rows := make([][]any, 0, len(rep.Matches))
	for _, m := range rep.Matches {
		rows = append(rows, []any{
			m.Target, string(m.Kind), m.SKU, m.Parts.ColorCode, m.Parts.Size,
			m.VariantTitle, m.Price, m.Inventory, m.ProductTitle, m.Handle, m.Vendor, m.ProductID, m.VariantID,
		})
	}
	err = w.AddSheet(SheetMatches, []any{
		"Target", "Match", "SKU", "Color code", "Size", "Variant", "Price", "Stock",
		"Product", "Handle", "Vendor", "Product ID", "Variant ID",
	}, rows)
	if err != nil {
		return err
	}

	codes := skumatch.ColorCodes(rep.Matches)
	crow := make([][]any, 0, len(codes))
	for _, g := range skumatch.GroupByColor(rep.Matches) {
		crow = append(crow, []any{
			g.Target, g.ColorCode, strings.Join(codes[g.ColorCode], ", "),
			g.Price, g.Variants, g.Stock, strings.Join(g.InStockSizes, ", "),
		})
	}
	err = w.AddSheet(SheetColorCodes, []any{"Target", "Color code", "Colors", "Price", "Sizes", "Stock", "In stock"}, crow)
	if err != nil {
		return err
	}
	return w.Save(path)
}

// WriteAnalysis: kandydaci do importu (top n), dostawcy, kategorie.
func WriteAnalysis(path string, a analysis.Analysis, top int) error {
	w, err := NewWorkbook()
	if err != nil {
		return err
	}
	defer w.Close()

	var rows [][]any
	for i, p := range a.Top(top) {
		rows = append(rows, []any{
			i + 1, p.SKUBase, p.Title, p.Score, p.TotalStock,
			p.MinPrice.InexactFloat64(), p.Variants, p.Vendor, p.Type, string(analysis.TierOf(p.MinPrice)),
		})
	}
	err = w.AddSheet(SheetCandidates, []any{"#", "SKU base", "Title", "Score", "Stock", "Min price", "Variants", "Vendor", "Type", "Tier"}, rows)
	if err != nil {
		return err
	}

	var vrows [][]any
	for _, v := range a.Vendors {
		vrows = append(vrows, []any{v.Vendor, v.Products})
	}
	if err := w.AddSheet(SheetVendors, []any{"Vendor", "Products"}, vrows); err != nil {
		return err
	}

	var crows [][]any
	for _, c := range a.CategorySummary() {
		crows = append(crows, []any{c.Type, c.Products, c.Stock, c.AvgPrice.InexactFloat64()})
	}
	if err := w.AddSheet(SheetCategories, []any{"Type", "Products", "Stock", "Avg price"}, crows); err != nil {
		return err
	}
	return w.Save(path)
}
