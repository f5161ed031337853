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

// DummyJSONFetcher pulls quotes from the dummyjson API.
// The API has no tag data, so fetched quotes carry an empty tag list.
type DummyJSONFetcher struct {
	client         *http.Client
	config         CrawlConfig
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewDummyJSONFetcher creates a new DummyJSONFetcher with the given HTTP client.
func NewDummyJSONFetcher(client *http.Client, cfg CrawlConfig) *DummyJSONFetcher {
	return &DummyJSONFetcher{
		client:         client,
		config:         cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.QuoteAPIConfig("dummyjson-api")),
		retryConfig:    retry.QuoteAPIConfig(),
	}
}

func (f *DummyJSONFetcher) Name() string { return string(entity.SourceDummyJSON) }

// Fetch retrieves a batch of quotes from the dummyjson API.
func (f *DummyJSONFetcher) Fetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	var quotes []ingest.FetchedQuote

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("dummyjson circuit breaker open, request rejected",
					slog.String("service", "dummyjson-api"),
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

// dummyJSONResponse mirrors the dummyjson quotes endpoint payload.
type dummyJSONResponse struct {
	Quotes []struct {
		ID     int    `json:"id"`
		Quote  string `json:"quote"`
		Author string `json:"author"`
	} `json:"quotes"`
	Total int `json:"total"`
}

func (f *DummyJSONFetcher) doFetch(ctx context.Context) ([]ingest.FetchedQuote, error) {
	reqURL := fmt.Sprintf("%s/quotes?limit=%d", f.config.DummyJSONBaseURL, f.config.BatchSize)
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
		return nil, fmt.Errorf("fetch dummyjson: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "dummyjson API"}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var raw dummyJSONResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	quotes := make([]ingest.FetchedQuote, 0, len(raw.Quotes))
	for _, q := range raw.Quotes {
		quotes = append(quotes, ingest.FetchedQuote{
			Text:   q.Quote,
			Author: q.Author,
			Source: entity.SourceDummyJSON,
		})
	}
	return quotes, nil
}
