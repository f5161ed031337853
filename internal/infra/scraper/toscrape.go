// Package scraper provides implementations for pulling quotes out of
// HTML pages and RSS feeds. All scrapers wrap their HTTP calls with
// circuit breaker and retry logic.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sony/gobreaker"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/resilience/circuitbreaker"
	"github.com/makhmudjon-inadullaev/quote-service/internal/resilience/retry"
	"github.com/makhmudjon-inadullaev/quote-service/internal/usecase/ingest"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB

	defaultToScrapeURL = "https://quotes.toscrape.com/"
)

// ToScrapeScraper extracts quotes from quotes.toscrape.com style markup.
// Each quote lives in a div.quote with span.text, small.author, and a
// list of a.tag elements.
type ToScrapeScraper struct {
	client         *http.Client
	baseURL        string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewToScrapeScraper creates a new ToScrapeScraper with the given HTTP client.
// An empty baseURL falls back to the public quotes.toscrape.com site.
func NewToScrapeScraper(client *http.Client, baseURL string) *ToScrapeScraper {
	if baseURL == "" {
		baseURL = defaultToScrapeURL
	}
	return &ToScrapeScraper{
		client:         client,
		baseURL:        baseURL,
		circuitBreaker: circuitbreaker.New(circuitbreaker.WebScraperConfig()),
		retryConfig:    retry.WebScraperConfig(),
	}
}

func (s *ToScrapeScraper) Name() string { return string(entity.SourceToScrape) }

// Fetch retrieves and parses the quote page.
// It uses circuit breaker and retry logic for improved reliability.
func (s *ToScrapeScraper) Fetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	var quotes []ingest.FetchedQuote

	retryErr := retry.WithBackoff(ctx, s.retryConfig, func() error {
		cbResult, err := s.circuitBreaker.Execute(func() (interface{}, error) {
			return s.doFetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("web scraper circuit breaker open, request rejected",
					slog.String("service", "web-scraper"),
					slog.String("url", s.baseURL),
					slog.String("state", s.circuitBreaker.State().String()))
			}
			return err
		}
		quotes = cbResult.([]ingest.FetchedQuote)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return quotes, nil
}

// doFetch performs the actual scraping without retry or circuit breaker.
func (s *ToScrapeScraper) doFetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	if err := validateURL(s.baseURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	doc, err := s.fetchHTML(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch HTML failed: %w", err)
	}

	quotes := s.extractQuotes(doc)
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quotes found at %s", s.baseURL)
	}

	return quotes, nil
}

// fetchHTML fetches and parses HTML from the given URL.
func (s *ToScrapeScraper) fetchHTML(ctx context.Context, urlStr string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "QuoteServiceBot/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	limitedReader := io.LimitReader(resp.Body, maxBodySize)
	doc, err := goquery.NewDocumentFromReader(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}

// extractQuotes extracts quotes from the HTML document.
// The page wraps each quote text in typographic quote marks; those are
// stripped before the text is handed on.
func (s *ToScrapeScraper) extractQuotes(doc *goquery.Document) []ingest.FetchedQuote {
	var quotes []ingest.FetchedQuote

	doc.Find("div.quote").Each(func(i int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Find("span.text").First().Text())
		text = strings.Trim(text, "“”\"")
		if text == "" {
			slog.Debug("skipping quote with empty text", slog.Int("index", i))
			return
		}

		author := strings.TrimSpace(el.Find("small.author").First().Text())
		if author == "" {
			slog.Debug("skipping quote with empty author", slog.Int("index", i))
			return
		}

		var tags []string
		el.Find("a.tag").Each(func(_ int, tagEl *goquery.Selection) {
			if tag := strings.TrimSpace(tagEl.Text()); tag != "" {
				tags = append(tags, tag)
			}
		})

		quotes = append(quotes, ingest.FetchedQuote{
			Text:   text,
			Author: author,
			Tags:   tags,
			Source: entity.SourceToScrape,
		})
	})

	return quotes
}
