// internal/integrations/shopify/client.go
package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

var ErrNoToken = errors.New("shopify: missing access token (SHOPIFY_ACCESS_TOKEN)")

type Config struct {
	Domain      string        // suits-inventory.myshopify.com
	BaseURL     string        // nadpisuje https://<Domain> (testy, proxy)
	APIVersion  string        // 2024-01
	AccessToken string        // X-Shopify-Access-Token
	Pagination  string        // link | page_info | page
	PageLimit   int           // max 250 w REST API
	MaxPages    int           // bezpiecznik, domyślnie 20
	Timeout     time.Duration // 0 = bez limitu
}

// StatusError – odpowiedź inna niż 2xx; przerywa pobieranie.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusUnauthorized {
		return "shopify: authentication failed (401), check SHOPIFY_ACCESS_TOKEN"
	}
	return fmt.Sprintf("shopify: http %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	log   zerolog.Logger
	cfg   Config
	http  *http.Client
	base  *url.URL
	pager Pager
}

func New(log zerolog.Logger, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, ErrNoToken
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-01"
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 250
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}

	raw := cfg.BaseURL
	if raw == "" {
		raw = "https://" + cfg.Domain
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("shopify: bad base url %q: %w", raw, err)
	}
	base.Path = "/admin/api/" + cfg.APIVersion + "/products.json"

	pager, err := PagerFor(cfg.Pagination, cfg.PageLimit)
	if err != nil {
		return nil, err
	}

	return &Client{
		log:   log,
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		base:  base,
		pager: pager,
	}, nil
}

// FetchAll pobiera cały katalog do pamięci.
// Przy błędzie zwraca częściowy wynik + błąd – wywołujący może z niego korzystać.
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	products, st, err := Paginate(ctx, c.base, c.pager, c.cfg.MaxPages, c.fetchPage)
	if st.Capped {
		c.log.Warn().Int("max_pages", c.cfg.MaxPages).Int("products", len(products)).
			Msg("page cap reached, catalog may be incomplete")
	}
	if err != nil {
		c.log.Error().Err(err).Int("pages", st.Pages).Int("products", len(products)).
			Msg("catalog fetch aborted, keeping partial result")
		return products, err
	}
	c.log.Info().Int("pages", st.Pages).Int("products", len(products)).Msg("catalog fetched")
	return products, nil
}

func (c *Client) fetchPage(ctx context.Context, u *url.URL) (Page[Product], error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page[Product]{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "catalogsync/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return Page[Product]{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Page[Product]{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	r, err := bodyReader(resp)
	if err != nil {
		return Page[Product]{}, err
	}

	var payload struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return Page[Product]{}, fmt.Errorf("decode: %w", err)
	}

	c.log.Debug().Str("url", u.String()).Int("items", len(payload.Products)).Msg("page fetched")
	return Page[Product]{Items: payload.Products, Header: resp.Header}, nil
}

// JSON jest w utf-8, chyba że Content-Type mówi inaczej
func bodyReader(resp *http.Response) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || params["charset"] == "" {
		return resp.Body, nil
	}
	cs := normalizeCharset(params["charset"])
	if cs == "utf-8" {
		return resp.Body, nil
	}
	r, err := charset.NewReaderLabel(cs, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", cs, err)
	}
	return r, nil
}

// normalizeCharset mapuje nietypowe etykiety na nazwy rozpoznawane przez charset.NewReaderLabel
func normalizeCharset(cs string) string {
	c := strings.TrimSpace(strings.ToLower(cs))
	switch c {
	case "utf8", "utf_8":
		return "utf-8"
	case "latin1", "latin-1", "iso8859-1", "iso_8859-1":
		return "iso-8859-1"
	case "cp1252", "windows1252", "win-1252":
		return "windows-1252"
	default:
		return c
	}
}
