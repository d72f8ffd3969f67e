// Package news fetches top headlines from NewsAPI and normalizes them into
// domain articles.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/lueurxax/glint/internal/core/domain"
	apperrors "github.com/lueurxax/glint/internal/core/errors"
	"github.com/lueurxax/glint/internal/platform/config"
	"github.com/lueurxax/glint/internal/platform/observability"
)

const (
	DefaultBaseURL        = "https://newsapi.org"
	DefaultAttemptTimeout = 10 * time.Second
	DefaultPageSize       = 20
	DefaultMaxRetries     = 3

	topHeadlinesPath = "/v2/top-headlines"
	statusOK         = "ok"
	statusError      = "error"
	categoryAll      = "all"
	errBodyLimit     = 200

	paramAPIKey   = "apiKey"
	paramCountry  = "country"
	paramCategory = "category"
	paramSources  = "sources"
	paramQuery    = "q"
	paramPageSize = "pageSize"
	paramPage     = "page"

	metricStatusSuccess = "success"
	metricStatusError   = "error"
)

// Filters narrows a top-headlines request. Empty fields are omitted.
type Filters struct {
	Country  string
	Category string
	Sources  string
	Query    string
}

// Fetcher calls the NewsAPI top-headlines endpoint.
type Fetcher struct {
	baseURL        string
	httpClient     *http.Client
	attemptTimeout time.Duration
	logger         *zerolog.Logger
}

// NewFetcher creates a fetcher from configuration.
func NewFetcher(cfg config.NewsConfig, logger *zerolog.Logger) *Fetcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}

	return &Fetcher{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{},
		attemptTimeout: timeout,
		logger:         logger,
	}
}

// TopHeadlines fetches one page of headlines. Transport failures are retried
// immediately up to maxRetries total attempts; provider-reported errors and
// malformed responses are returned at once.
func (f *Fetcher) TopHeadlines(ctx context.Context, apiKey string, filters Filters, pageSize, page, maxRetries int) ([]domain.NewsArticle, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperrors.Validationf("news API key is required")
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if page <= 0 {
		page = 1
	}

	if maxRetries <= 0 {
		maxRetries = 1
	}

	endpoint := f.buildURL(apiKey, filters, pageSize, page)

	var (
		attempts      int
		lastRetryable bool
	)

	backoff := retry.WithMaxRetries(uint64(maxRetries-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))

	articles, err := retry.DoValue(ctx, backoff, func(ctx context.Context) ([]domain.NewsArticle, error) {
		attempts++

		observability.NewsFetchAttempts.Inc()

		articles, retryable, err := f.fetchOnce(ctx, endpoint, filters.Category)
		lastRetryable = retryable

		if err != nil && retryable {
			f.logger.Debug().Err(err).Int("attempt", attempts).Str("category", filters.Category).Msg("headline fetch attempt failed")

			return nil, retry.RetryableError(err)
		}

		return articles, err
	})

	category := filters.Category
	if category == "" {
		category = categoryAll
	}

	if err != nil {
		observability.NewsFetchRequests.WithLabelValues(category, metricStatusError).Inc()

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: fetching headlines: %w", apperrors.ErrTransport, ctxErr)
		}

		if lastRetryable {
			return nil, fmt.Errorf("%w: request failed after %d attempts: %w", apperrors.ErrTransport, attempts, err)
		}

		return nil, err
	}

	observability.NewsFetchRequests.WithLabelValues(category, metricStatusSuccess).Inc()
	observability.NewsArticlesFetched.WithLabelValues(category).Add(float64(len(articles)))

	return articles, nil
}

func (f *Fetcher) buildURL(apiKey string, filters Filters, pageSize, page int) string {
	params := url.Values{}
	params.Set(paramAPIKey, apiKey)

	setIfPresent(params, paramCountry, filters.Country)
	setIfPresent(params, paramCategory, filters.Category)
	setIfPresent(params, paramSources, filters.Sources)
	setIfPresent(params, paramQuery, filters.Query)

	params.Set(paramPageSize, strconv.Itoa(pageSize))
	params.Set(paramPage, strconv.Itoa(page))

	return f.baseURL + topHeadlinesPath + "?" + params.Encode()
}

func setIfPresent(params url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		params.Set(key, value)
	}
}

// fetchOnce performs a single attempt. The bool reports whether the failure
// is a transport failure worth another attempt.
func (f *Fetcher) fetchOnce(ctx context.Context, endpoint, category string) ([]domain.NewsArticle, bool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create newsapi request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("newsapi request: %w", redactURLError(err))
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read newsapi response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if apiErr := checkNewsAPIError(body); apiErr != nil {
			return nil, false, apiErr
		}

		return nil, true, fmt.Errorf("newsapi unexpected status %d: %s", resp.StatusCode, truncate(string(bytes.TrimSpace(body))))
	}

	articles, err := parseHeadlines(body, category)

	return articles, false, err
}

// headlinesResponse uses pointers so absent keys can be told apart from
// empty values.
type headlinesResponse struct {
	Status   *string            `json:"status"`
	Code     string             `json:"code"`
	Message  string             `json:"message"`
	Articles *[]headlineArticle `json:"articles"`
}

type headlineArticle struct {
	Source *struct {
		ID   *string `json:"id"`
		Name *string `json:"name"`
	} `json:"source"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	URLToImage  *string `json:"urlToImage"`  //nolint:tagliatelle // NewsAPI uses camelCase
	PublishedAt *string `json:"publishedAt"` //nolint:tagliatelle // NewsAPI uses camelCase
	Content     *string `json:"content"`
}

func parseHeadlines(body []byte, category string) ([]domain.NewsArticle, error) {
	var resp headlinesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, invalidResponse("decoding body: %v", err)
	}

	if resp.Status == nil {
		return nil, invalidResponse("missing status")
	}

	if *resp.Status != statusOK {
		return nil, apiError(resp.Message)
	}

	if resp.Articles == nil {
		return nil, invalidResponse("missing articles")
	}

	articles := make([]domain.NewsArticle, 0, len(*resp.Articles))

	for i, raw := range *resp.Articles {
		article, err := normalizeArticle(raw, category)
		if err != nil {
			return nil, invalidResponse("article %d: %v", i, err)
		}

		articles = append(articles, article)
	}

	return articles, nil
}

var (
	errMissingTitle       = errors.New("missing title")
	errMissingURL         = errors.New("missing url")
	errMissingSourceName  = errors.New("missing source.name")
	errMissingPublishedAt = errors.New("missing publishedAt")
)

func normalizeArticle(raw headlineArticle, category string) (domain.NewsArticle, error) {
	switch {
	case raw.Title == nil:
		return domain.NewsArticle{}, errMissingTitle
	case raw.URL == nil:
		return domain.NewsArticle{}, errMissingURL
	case raw.Source == nil || raw.Source.Name == nil:
		return domain.NewsArticle{}, errMissingSourceName
	case raw.PublishedAt == nil:
		return domain.NewsArticle{}, errMissingPublishedAt
	}

	article := domain.NewsArticle{
		Title:       strings.TrimSpace(*raw.Title),
		Source:      *raw.Source.Name,
		Description: StripHTML(deref(raw.Description)),
		URL:         *raw.URL,
		Image:       deref(raw.URLToImage),
		PublishedAt: *raw.PublishedAt,
		Content:     StripHTML(deref(raw.Content)),
		Category:    category,
	}

	if t, err := dateparse.ParseAny(article.PublishedAt); err == nil {
		article.Published = t.UTC()
	}

	return article, nil
}

type newsAPIErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// checkNewsAPIError returns an upstream error when body is a NewsAPI error
// envelope, nil otherwise.
func checkNewsAPIError(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var errResp newsAPIErrorResponse
	if err := json.Unmarshal(trimmed, &errResp); err == nil && errResp.Status == statusError {
		return apiError(errResp.Message)
	}

	return nil
}

func apiError(message string) error {
	if message == "" {
		message = "Unknown error"
	}

	return fmt.Errorf("%w: API error: %s", apperrors.ErrUpstream, message)
}

func invalidResponse(format string, args ...any) error {
	return fmt.Errorf("%w: invalid API response: %s", apperrors.ErrUpstream, fmt.Sprintf(format, args...))
}

// redactURLError drops the request URL, which carries the API key.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}

	return err
}

func truncate(s string) string {
	if len(s) > errBodyLimit {
		return s[:errBodyLimit] + "..."
	}

	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
