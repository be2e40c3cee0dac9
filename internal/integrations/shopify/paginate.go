package shopify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxPages – bezpiecznik na wypadek, gdyby serwer nigdy nie zgłosił końca.
const DefaultMaxPages = 20

type Page[T any] struct {
	Items  []T
	Header http.Header
}

type FetchFunc[T any] func(ctx context.Context, u *url.URL) (Page[T], error)

// Pager wyznacza kolejne strony: kursor z nagłówka Link, page_info albo numer strony.
type Pager interface {
	First(base *url.URL) *url.URL
	// Next zwraca URL następnej strony albo nil gdy to była ostatnia.
	Next(cur *url.URL, header http.Header, n int) *url.URL
}

type Stats struct {
	Pages  int
	Items  int
	Capped bool
}

// Paginate idzie po stronach aż do pustej strony, braku kursora albo limitu stron.
// Przy błędzie zwraca to, co udało się zebrać, razem z błędem.
func Paginate[T any](ctx context.Context, base *url.URL, pager Pager, maxPages int, fetch FetchFunc[T]) ([]T, Stats, error) {
	var (
		all []T
		st  Stats
	)
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	u := pager.First(base)
	for u != nil {
		if st.Pages >= maxPages {
			st.Capped = true
			break
		}
		if err := ctx.Err(); err != nil {
			return all, st, err
		}

		page, err := fetch(ctx, u)
		if err != nil {
			return all, st, fmt.Errorf("page %d: %w", st.Pages+1, err)
		}
		st.Pages++
		if len(page.Items) == 0 {
			break
		}
		all = append(all, page.Items...)
		st.Items = len(all)

		u = pager.Next(u, page.Header, len(page.Items))
	}
	return all, st, nil
}

// PagerFor mapuje nazwę z configa na strategię.
func PagerFor(name string, limit int) (Pager, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "link":
		return LinkPager{Limit: limit}, nil
	case "page_info", "cursor":
		return PageInfoPager{Limit: limit}, nil
	case "page", "page_number":
		return PageNumberPager{Limit: limit}, nil
	default:
		return nil, fmt.Errorf("unknown pagination strategy %q", name)
	}
}

// LinkPager: pełny URL z `<...>; rel="next"`.
type LinkPager struct{ Limit int }

func (p LinkPager) First(base *url.URL) *url.URL {
	return withQuery(base, map[string]string{"limit": limitStr(p.Limit)})
}

func (p LinkPager) Next(cur *url.URL, header http.Header, _ int) *url.URL {
	next := NextLink(header)
	if next == "" {
		return nil
	}
	u, err := cur.Parse(next)
	if err != nil {
		return nil
	}
	return u
}

// PageInfoPager: wyciąga sam token page_info i składa URL od nowa (limit + page_info).
type PageInfoPager struct{ Limit int }

func (p PageInfoPager) First(base *url.URL) *url.URL {
	return withQuery(base, map[string]string{"limit": limitStr(p.Limit)})
}

func (p PageInfoPager) Next(cur *url.URL, header http.Header, _ int) *url.URL {
	tok := PageInfo(NextLink(header))
	if tok == "" {
		return nil
	}
	u := *cur
	q := url.Values{}
	q.Set("limit", limitStr(p.Limit))
	q.Set("page_info", tok)
	u.RawQuery = q.Encode()
	return &u
}

// PageNumberPager: page=1,2,3... koniec na niepełnej stronie.
type PageNumberPager struct{ Limit int }

func (p PageNumberPager) First(base *url.URL) *url.URL {
	return withQuery(base, map[string]string{"limit": limitStr(p.Limit), "page": "1"})
}

func (p PageNumberPager) Next(cur *url.URL, _ http.Header, n int) *url.URL {
	if p.Limit > 0 && n < p.Limit {
		return nil
	}
	page, _ := strconv.Atoi(cur.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return withQuery(cur, map[string]string{"page": strconv.Itoa(page + 1)})
}

// NextLink zwraca URL z wpisu rel="next" nagłówka Link.
func NextLink(h http.Header) string {
	for _, v := range h.Values("Link") {
		for _, part := range strings.Split(v, ",") {
			if !strings.Contains(part, `rel="next"`) {
				continue
			}
			start := strings.Index(part, "<")
			end := strings.Index(part, ">")
			if start >= 0 && end > start {
				return strings.TrimSpace(part[start+1 : end])
			}
		}
	}
	return ""
}

var rePageInfo = regexp.MustCompile(`page_info=([^&>]+)`)

func PageInfo(link string) string {
	m := rePageInfo.FindStringSubmatch(link)
	if len(m) < 2 {
		return ""
	}
	if v, err := url.QueryUnescape(m[1]); err == nil {
		return v
	}
	return m[1]
}

func withQuery(base *url.URL, set map[string]string) *url.URL {
	u := *base
	q := u.Query()
	for k, v := range set {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return &u
}

func limitStr(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
