package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/news-digest/internal/domain/newsdigest"
	"github.com/yanqian/news-digest/pkg/metrics"
)

const (
	defaultBaseURL  = "https://newsapi.org/v2"
	defaultLanguage = "en"
	defaultSortBy   = "relevancy"
	defaultTimeout  = 10 * time.Second

	// NewsAPI rejects pageSize values above 100.
	maxPageSize  = 100
	errBodyLimit = 4 << 10
)

// ProviderError reports a failed or unusable response from the news provider.
type ProviderError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("news provider error: status=%d body=%s: %v", e.StatusCode, e.Body, e.Err)
	}
	return fmt.Sprintf("news provider error: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Options configures the NewsAPI client.
type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	SortBy   string
	Timeout  time.Duration
}

// Client searches the NewsAPI.org "everything" endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	sortBy     string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(opts Options) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:   opts.APIKey,
		baseURL:  strings.TrimRight(base, "/"),
		language: firstNonEmpty(opts.Language, defaultLanguage),
		sortBy:   firstNonEmpty(opts.SortBy, defaultSortBy),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns at most limit articles matching topic, in provider relevance order.
func (c *Client) Fetch(ctx context.Context, topic string, limit int) ([]newsdigest.Article, error) {
	if limit < 1 {
		limit = 1
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(topic, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	articles, err := c.do(req, limit)
	metrics.ObserveUpstream(metrics.UpstreamNews, err, time.Since(start))
	return articles, err
}

func (c *Client) do(req *http.Request, limit int) ([]newsdigest.Article, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(payload)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: truncateBody(body), Err: fmt.Errorf("decode news response: %w", err)}
	}
	if raw.Status == "error" {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: raw.Code + ": " + raw.Message}
	}

	return normalizeArticles(raw.Articles, limit), nil
}

func (c *Client) searchURL(topic string, limit int) string {
	pageSize := limit
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	q := url.Values{}
	q.Set("q", topic)
	q.Set("qInTitle", topic)
	q.Set("language", c.language)
	q.Set("sortBy", c.sortBy)
	q.Set("pageSize", strconv.Itoa(pageSize))
	return c.baseURL + "/everything?" + q.Encode()
}

type apiResponse struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// removedMarker is what NewsAPI puts in every field of a withdrawn article.
const removedMarker = "[Removed]"

func normalizeArticles(items []apiArticle, limit int) []newsdigest.Article {
	out := make([]newsdigest.Article, 0, min(len(items), limit))
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		title := plainText(item.Title)
		description := plainText(item.Description)
		if title == removedMarker {
			continue
		}
		if title == "" && description == "" {
			continue
		}
		out = append(out, newsdigest.Article{Title: title, Description: description})
	}
	return out
}

func truncateBody(body []byte) string {
	if len(body) > errBodyLimit {
		body = body[:errBodyLimit]
	}
	return string(body)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
