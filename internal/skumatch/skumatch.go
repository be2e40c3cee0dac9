// Package skumatch klasyfikuje SKU z katalogu dostawcy względem docelowych SKU bazowych.
// Tylko raportowanie – nic nie zapisuje.
package skumatch

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bartek5186/catalogsync/internal/integrations/shopify"
)

type Kind string

const (
	Exact     Kind = "exact"   // SKU == baza albo baza + "-..."
	Partial   Kind = "partial" // ta sama seria liter i zawiera rdzeń celu
	Unrelated Kind = "unrelated"
)

type Match struct {
	Target string
	Kind   Kind

	ProductID    int64
	ProductTitle string
	Handle       string
	Vendor       string
	ProductType  string

	VariantID    int64
	SKU          string
	VariantTitle string
	Price        string
	Inventory    int
	Parts        Parts
}

type Report struct {
	Targets   []string
	Matches   []Match // exact + partial, w kolejności katalogu
	Scanned   int     // wszystkie warianty
	Unrelated int
	Found     []string // cele z co najmniej jednym exact
	Missing   []string
}

// Series: wiodące litery, np. "SMJ830H1" -> "SMJ".
func Series(sku string) string {
	i := strings.IndexFunc(sku, func(r rune) bool { return !unicode.IsLetter(r) })
	if i < 0 {
		return sku
	}
	return sku[:i]
}

// Stem: litery + ciąg cyfr po nich, np. "MJ425S" -> "MJ425", "SM164H1" -> "SM164".
func Stem(sku string) string {
	series := Series(sku)
	rest := sku[len(series):]
	j := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsDigit(r) })
	if j < 0 {
		return sku
	}
	return series + rest[:j]
}

// ClassifySKU porównuje jedno SKU ze wszystkimi celami; exact wygrywa z partial.
func ClassifySKU(sku string, targets []string) (Kind, string) {
	s := strings.ToUpper(strings.TrimSpace(sku))
	if s == "" {
		return Unrelated, ""
	}
	partial := ""
	for _, t := range targets {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if s == t || strings.HasPrefix(s, t+"-") {
			return Exact, t
		}
		if partial == "" && Series(s) == Series(t) && Series(t) != "" {
			if stem := Stem(t); stem != Series(t) && strings.Contains(s, stem) {
				partial = t
			}
		}
	}
	if partial != "" {
		return Partial, partial
	}
	return Unrelated, ""
}

// Classify przechodzi po wszystkich wariantach katalogu.
func Classify(targets []string, products []shopify.Product) Report {
	rep := Report{Targets: targets}
	exact := map[string]bool{}

	for _, p := range products {
		for _, v := range p.Variants {
			rep.Scanned++
			kind, target := ClassifySKU(v.SKU, targets)
			if kind == Unrelated {
				rep.Unrelated++
				continue
			}
			if kind == Exact {
				exact[target] = true
			}
			rep.Matches = append(rep.Matches, Match{
				Target:       target,
				Kind:         kind,
				ProductID:    p.ID,
				ProductTitle: p.Title,
				Handle:       p.Handle,
				Vendor:       p.Vendor,
				ProductType:  p.ProductType,
				VariantID:    v.ID,
				SKU:          v.SKU,
				VariantTitle: v.Title,
				Price:        v.Price,
				Inventory:    v.InventoryQuantity,
				Parts:        ParseSKU(v.SKU),
			})
		}
	}

	for _, t := range targets {
		if exact[strings.ToUpper(t)] {
			rep.Found = append(rep.Found, t)
		} else {
			rep.Missing = append(rep.Missing, t)
		}
	}
	return rep
}

type Parts struct {
	Base      string
	ColorCode string
	Size      string
}

// ParseSKU: "<baza>-<kod koloru>-<rozmiar>", brakujące części puste.
func ParseSKU(sku string) Parts {
	f := strings.Split(strings.TrimSpace(sku), "-")
	p := Parts{Base: f[0]}
	if len(f) > 1 {
		p.ColorCode = f[1]
	}
	if len(f) > 2 {
		p.Size = f[2]
	}
	return p
}

// słowa kluczowe w tytule wariantu -> nazwa koloru; pierwsze trafienie wygrywa
var colorKeywords = []struct {
	words []string
	color string
}{
	{[]string{"black"}, "Black"},
	{[]string{"navy"}, "Navy"},
	{[]string{"gray", "grey"}, "Gray"},
	{[]string{"white"}, "White"},
	{[]string{"blue"}, "Blue"},
	{[]string{"burgundy", "wine"}, "Burgundy"},
	{[]string{"brown", "tan"}, "Brown/Tan"},
	{[]string{"silver"}, "Silver"},
	{[]string{"gold"}, "Gold"},
}

// ColorName zgaduje kolor z tytułu wariantu ("" gdy nic nie pasuje).
func ColorName(title string) string {
	t := strings.ToLower(title)
	for _, ck := range colorKeywords {
		for _, w := range ck.words {
			if strings.Contains(t, w) {
				return ck.color
			}
		}
	}
	return ""
}

// ColorCodes zbiera nazwy kolorów per kod koloru z dokładnych trafień.
// Kod bez rozpoznanego koloru ma pustą listę.
func ColorCodes(matches []Match) map[string][]string {
	seen := map[string]map[string]bool{}
	for _, m := range matches {
		if m.Kind != Exact || m.Parts.ColorCode == "" {
			continue
		}
		if seen[m.Parts.ColorCode] == nil {
			seen[m.Parts.ColorCode] = map[string]bool{}
		}
		if c := ColorName(m.VariantTitle); c != "" {
			seen[m.Parts.ColorCode][c] = true
		}
	}

	out := make(map[string][]string, len(seen))
	for code, set := range seen {
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		out[code] = names
	}
	return out
}

type ColorGroup struct {
	Target       string
	ColorCode    string
	Price        string // cena pierwszego wariantu
	Variants     int
	Stock        int
	InStockSizes []string
}

// GroupByColor: dokładne trafienia zgrupowane po (cel, kod koloru), posortowane.
func GroupByColor(matches []Match) []ColorGroup {
	idx := map[[2]string]int{}
	var out []ColorGroup
	for _, m := range matches {
		if m.Kind != Exact {
			continue
		}
		key := [2]string{m.Target, m.Parts.ColorCode}
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, ColorGroup{Target: m.Target, ColorCode: m.Parts.ColorCode, Price: m.Price})
		}
		g := &out[i]
		g.Variants++
		g.Stock += m.Inventory
		if m.Inventory > 0 && m.Parts.Size != "" {
			g.InStockSizes = append(g.InStockSizes, m.Parts.Size)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Target != out[b].Target {
			return out[a].Target < out[b].Target
		}
		return out[a].ColorCode < out[b].ColorCode
	})
	return out
}
