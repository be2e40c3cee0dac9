package vendorimport

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// kolory dostawcy -> nazwy pod SEO
var seoColors = map[string]string{
	"Black":    "Classic Black",
	"Navy":     "Navy Blue",
	"Gray":     "Charcoal Gray",
	"Grey":     "Charcoal Grey",
	"Blue":     "Royal Blue",
	"Sky Blue": "Sky Blue",
	"Rose":     "Dusty Rose",
	"Burgundy": "Burgundy Wine",
	"White":    "Crisp White",
	"Ivory":    "Ivory Cream",
	"Silver":   "Silver",
	"Gold":     "Gold",
	"Red":      "Bold Red",
	"Green":    "Emerald Green",
	"Purple":   "Deep Purple",
	"Lavender": "Lavender",
	"Mint":     "Mint Green",
	"Pink":     "Blush Pink",
}

func SEOColor(color string) string {
	if s, ok := seoColors[color]; ok {
		return s
	}
	return color
}

// ColorSlug: "Sky Blue/White" -> "sky-blue-white"
func ColorSlug(color string) string {
	return strings.NewReplacer(" ", "-", "/", "-").Replace(strings.ToLower(color))
}

func Title(t Target, color string) string {
	if t.TitleFormat == "" {
		return "Men's " + SEOColor(color) + " " + t.Name + " Suit - Formal Professional Attire"
	}
	return strings.ReplaceAll(t.TitleFormat, "{color}", SEOColor(color))
}

func Handle(t Target, color string) string {
	format := t.HandleFormat
	if format == "" {
		format = "mens-{color_slug}-formal-suit"
	}
	return strings.ReplaceAll(format, "{color_slug}", ColorSlug(color))
}

// Description: szablon z configa, potem opis HTML dostawcy, na końcu ogólnik.
func Description(t Target, color, bodyHTML string) string {
	if t.Description != "" {
		return strings.ReplaceAll(t.Description, "{color}", color)
	}
	if txt := HTMLText(bodyHTML); txt != "" {
		return txt
	}
	return "Premium " + color + " formal suit perfect for special occasions."
}

// HTMLText zamienia body_html na zwykły tekst, blok = linia.
func HTMLText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li, h1, h2, h3, h4, tr").AppendHtml("\n")

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if l := strings.Join(strings.Fields(line), " "); l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}
