package carddb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultScryfallURL is the public Scryfall API.
const DefaultScryfallURL = "https://api.scryfall.com"

const userAgent = "decksim/1.0"

// ScryfallSource downloads card objects from the Scryfall API, spacing
// requests by RequestDelay as the API asks clients to.
type ScryfallSource struct {
	baseURL string
	client  *http.Client
	delay   time.Duration
	logger  *zap.Logger

	mu   sync.Mutex
	last time.Time
}

// NewScryfallSource creates a source for baseURL.
func NewScryfallSource(baseURL string, delay time.Duration, logger *zap.Logger) *ScryfallSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if baseURL == "" {
		baseURL = DefaultScryfallURL
	}
	return &ScryfallSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		delay:   delay,
		logger:  logger,
	}
}

// Fetch looks a card up by its exact name.
func (s *ScryfallSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	endpoint := s.baseURL + "/cards/named?exact=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scryfall request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read scryfall response: %w", err)
	}
	s.logger.Debug("scryfall response",
		zap.String("card", name),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("scryfall returned %s for %q", resp.Status, name)
	}
	return body, nil
}

// wait blocks until the request delay since the previous request has
// passed.
func (s *ScryfallSource) wait(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.delay > 0 && !s.last.IsZero() {
		if remaining := s.delay - time.Since(s.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	s.last = time.Now()
	return nil
}
