package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/resilience/circuitbreaker"
	"github.com/makhmudjon-inadullaev/quote-service/internal/resilience/retry"
	"github.com/makhmudjon-inadullaev/quote-service/internal/usecase/ingest"
)

// QOTDFetcher pulls quotes from a quote-of-the-day RSS/Atom feed.
// Feeds in this genre put the author in the item title and the quote
// text in the description.
type QOTDFetcher struct {
	client         *http.Client
	feedURL        string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewQOTDFetcher creates a new QOTDFetcher for the given feed URL.
// It automatically configures circuit breaker and retry logic.
func NewQOTDFetcher(client *http.Client, feedURL string) *QOTDFetcher {
	return &QOTDFetcher{
		client:         client,
		feedURL:        feedURL,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

func (f *QOTDFetcher) Name() string { return string(entity.SourceRSS) }

// Fetch retrieves and parses the feed.
// It uses circuit breaker and retry logic for improved reliability.
func (f *QOTDFetcher) Fetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	var quotes []ingest.FetchedQuote

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", f.feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
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

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *QOTDFetcher) doFetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	if err := validateURL(f.feedURL); err != nil {
		return nil, fmt.Errorf("URL validation failed: %w", err)
	}

	fp := gofeed.NewParser()
	fp.UserAgent = "QuoteServiceBot/1.0"
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	quotes := make([]ingest.FetchedQuote, 0, len(feed.Items))
	for i, it := range feed.Items {
		text := strings.TrimSpace(it.Description)
		text = strings.Trim(text, "“”\"")
		author := strings.TrimSpace(it.Title)
		if text == "" || author == "" {
			slog.Debug("skipping feed item without text or author",
				slog.Int("index", i),
				slog.String("feed_url", f.feedURL))
			continue
		}

		quotes = append(quotes, ingest.FetchedQuote{
			Text:   text,
			Author: author,
			Source: entity.SourceRSS,
		})
	}

	return quotes, nil
}
