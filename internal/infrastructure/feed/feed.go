// Package feed reads library "new arrivals" RSS/Atom feeds into catalog records.
package feed

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/myshelf/internal/domain/catalog"
)

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "MyShelf/1.0"
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

// Reader implements usecase.BookFeedReader.
type Reader struct {
	// Timeout bounds one feed read; zero means no extra limit.
	Timeout time.Duration
}

// ReadBooks parses the feed at url and maps every entry to a book.
func (r Reader) ReadBooks(ctx context.Context, url string) ([]catalog.Book, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("feed url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	parsed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, err
	}

	books := make([]catalog.Book, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		books = append(books, toBook(item))
	}
	return books, nil
}

func toBook(item *gofeed.Item) catalog.Book {
	return catalog.Book{
		ID:       itemID(item),
		Title:    strings.TrimSpace(item.Title),
		Authors:  itemAuthors(item),
		Genre:    itemGenre(item),
		CoverURL: itemCover(item),
		Year:     itemYear(item),
	}
}

func itemID(item *gofeed.Item) string {
	for _, candidate := range []string{item.GUID, item.Link, item.Title} {
		if id := strings.TrimSpace(candidate); id != "" {
			return id
		}
	}
	return ""
}

func itemAuthors(item *gofeed.Item) []string {
	authors := make([]string, 0, len(item.Authors))
	for _, a := range item.Authors {
		if a == nil {
			continue
		}
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) == 0 && item.Author != nil {
		if name := strings.TrimSpace(item.Author.Name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

func itemGenre(item *gofeed.Item) string {
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func itemCover(item *gofeed.Item) string {
	if item.Image != nil && strings.TrimSpace(item.Image.URL) != "" {
		return strings.TrimSpace(item.Image.URL)
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"thumbnail", "content"} {
			for _, ext := range media[name] {
				if url := ext.Attrs["url"]; url != "" {
					return url
				}
			}
		}
	}
	return ""
}

func itemYear(item *gofeed.Item) string {
	var date *time.Time
	if item.PublishedParsed != nil {
		date = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		date = item.UpdatedParsed
	}
	if date == nil || date.IsZero() {
		return ""
	}
	return strconv.Itoa(date.Year())
}
