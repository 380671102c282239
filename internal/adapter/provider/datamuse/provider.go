package datamuse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/rhymebook-backend/internal/provider"
)

const defaultBaseURL = "https://api.datamuse.com"

// Provider fetches word matches from the Datamuse API.
type Provider struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default Datamuse API URL.
// maxResults caps the number of matches requested per lookup; zero means
// the API default.
func NewProvider(maxResults int, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    defaultBaseURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "datamuse"),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, maxResults int, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    baseURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "datamuse"),
	}
}

// Rhymes fetches words that rhyme with the given word, with syllable counts.
// An empty result list means the word has no known rhymes, not an error.
func (p *Provider) Rhymes(ctx context.Context, word string) ([]provider.WordResult, error) {
	q := url.Values{}
	q.Set("rel_rhy", word)
	q.Set("md", "s") // include numSyllables metadata
	return p.fetchWords(ctx, "rhymes", word, q)
}

// MeansLike fetches words similar in meaning to the given word.
func (p *Provider) MeansLike(ctx context.Context, word string) ([]provider.WordResult, error) {
	q := url.Values{}
	q.Set("ml", word)
	return p.fetchWords(ctx, "means-like", word, q)
}

// Ping performs a minimal lookup to verify the API is reachable.
func (p *Provider) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("ml", "ping")
	q.Set("max", "1")
	_, err := p.fetchWords(ctx, "ping", "ping", q)
	return err
}

func (p *Provider) fetchWords(ctx context.Context, kind, word string, q url.Values) ([]provider.WordResult, error) {
	if p.maxResults > 0 && q.Get("max") == "" {
		q.Set("max", strconv.Itoa(p.maxResults))
	}
	reqURL := p.baseURL + "/words?" + q.Encode()

	p.log.DebugContext(ctx, "datamuse request", slog.String("kind", kind), slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("datamuse: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "datamuse request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("datamuse: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("datamuse: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("datamuse: read body: %w", err)
	}

	var words []apiWord
	if err := json.Unmarshal(body, &words); err != nil {
		return nil, fmt.Errorf("datamuse: decode json: %w", err)
	}

	results, err := mapAPIResponse(words)
	if err != nil {
		return nil, err
	}

	p.log.DebugContext(ctx, "datamuse response",
		slog.String("kind", kind),
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("matches", len(results)),
	)

	return results, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "datamuse retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	resp, err = p.httpClient.Do(req)
	return resp, err
}

// mapAPIResponse converts API objects into provider.WordResult values.
// A result object without a word field is a decode error, not a silent
// zero value.
func mapAPIResponse(words []apiWord) ([]provider.WordResult, error) {
	results := make([]provider.WordResult, 0, len(words))
	for i, w := range words {
		if w.Word == nil {
			return nil, fmt.Errorf("datamuse: decode json: result %d missing word field", i)
		}
		results = append(results, provider.WordResult{
			Word:         *w.Word,
			Score:        w.Score,
			NumSyllables: w.NumSyllables,
		})
	}
	return results, nil
}
