package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/resilience/circuitbreaker"
	"github.com/makhmudjon-inadullaev/quote-service/internal/resilience/retry"
	"github.com/makhmudjon-inadullaev/quote-service/internal/usecase/ingest"
)

// maxResponseBody bounds API response reads to prevent memory exhaustion.
const maxResponseBody = 4 * 1024 * 1024

// QuotableFetcher pulls random quotes from the quotable API.
// It includes circuit breaker and retry logic for improved reliability.
type QuotableFetcher struct {
	client         *http.Client
	config         CrawlConfig
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewQuotableFetcher creates a new QuotableFetcher with the given HTTP client.
// It automatically configures circuit breaker and retry logic.
func NewQuotableFetcher(client *http.Client, cfg CrawlConfig) *QuotableFetcher {
	return &QuotableFetcher{
		client:         client,
		config:         cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.QuoteAPIConfig("quotable-api")),
		retryConfig:    retry.QuoteAPIConfig(),
	}
}

func (f *QuotableFetcher) Name() string { return string(entity.SourceQuotable) }

// Fetch retrieves a batch of random quotes from the quotable API.
// It uses circuit breaker and retry logic for improved reliability.
func (f *QuotableFetcher) Fetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	var quotes []ingest.FetchedQuote

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("quotable circuit breaker open, request rejected",
					slog.String("service", "quotable-api"),
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

// quotableQuote mirrors one element of the quotable API response.
type quotableQuote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// doFetch performs the actual API call without retry or circuit breaker.
func (f *QuotableFetcher) doFetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	reqURL := fmt.Sprintf("%s/quotes/random?limit=%d", f.config.QuotableBaseURL, f.config.BatchSize)
	if err := validateURL(reqURL, f.config.DenyPrivateIPs); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quotable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "quotable API"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var raw []quotableQuote
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	quotes := make([]ingest.FetchedQuote, 0, len(raw))
	for _, q := range raw {
		quotes = append(quotes, ingest.FetchedQuote{
			Text:   q.Content,
			Author: q.Author,
			Tags:   q.Tags,
			Source: entity.SourceQuotable,
		})
	}
	return quotes, nil
}
