// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package jackett implements the rate-limited query client against a
// Jackett-style aggregate search API.
package jackett

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/arrscanarr/scanarr/internal/buildinfo"
)

const maxTorrentDownloadBytes int64 = 16 << 20 // 16 MiB safety limit for torrent blobs

// minRetryDelay is the floor for the escalating retry delay, applied when
// the configured inter-request delay is shorter.
const minRetryDelay = 4 * time.Second

// QueryError is returned when a search could not be completed after all
// retries. It distinguishes "could not ask" from an empty result set.
type QueryError struct {
	Term     string
	Attempts int
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("search for %q failed after %d attempts: %v", e.Term, e.Attempts, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Tracker    string
	Timeout    time.Duration
	MaxRetries int
	Limiter    *RateLimiter

	// RetryDelay overrides the base delay between retry attempts.
	// Defaults to the limiter interval with a 4s floor.
	RetryDelay time.Duration
}

// Client queries the aggregate results endpoint of a Jackett instance.
// Requests are serialized through the shared RateLimiter.
type Client struct {
	baseURL    string
	apiKey     string
	tracker    string
	maxRetries int
	retryDelay time.Duration
	limiter    *RateLimiter
	httpClient *http.Client
}

// NewClient creates a new aggregate API client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(0)
	}

	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = limiter.Interval()
		if retryDelay < minRetryDelay {
			retryDelay = minRetryDelay
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		tracker:    opts.Tracker,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		limiter:    limiter,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search runs one logical search for term. Transient failures (network
// errors, non-2xx statuses, per-indexer errors in the response body) are
// retried with an escalating delay; once the retry budget is exhausted a
// *QueryError is returned. An empty slice with a nil error is a genuine
// "no results" answer.
func (c *Client) Search(ctx context.Context, term string) ([]Result, error) {
	var results []Result
	retried := false

	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			res, err := c.doSearch(ctx, term)
			if err != nil {
				return err
			}
			results = res
			return nil
		},
		retry.Attempts(uint(c.maxRetries)),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return c.retryDelay * time.Duration(n+1)
		}),
		retry.OnRetry(func(n uint, err error) {
			retried = true
			log.Warn().
				Err(err).
				Str("term", term).
				Uint("attempt", n+1).
				Int("maxRetries", c.maxRetries).
				Msg("search failed, retrying")
		}),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &QueryError{Term: term, Attempts: c.maxRetries, Err: err}
	}

	if retried {
		// The indexer pushed back during this search. Slow the rest of
		// the scan down a notch (matches the escalation operators apply
		// by hand when they see bans).
		c.limiter.Penalize(time.Second)
		log.Warn().
			Dur("interval", c.limiter.Interval()).
			Msg("search needed retries, raised the inter-request delay")
	}

	return results, nil
}

func (c *Client) doSearch(ctx context.Context, term string) ([]Result, error) {
	endpoint, err := url.JoinPath(c.baseURL, "api", "v2.0", "indexers", "all", "results")
	if err != nil {
		return nil, retry.Unrecoverable(errors.Wrap(err, "build search url"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(errors.Wrap(err, "build search request"))
	}

	query := req.URL.Query()
	query.Set("apikey", c.apiKey)
	query.Set("Query", term)
	query.Set("Tracker[]", c.tracker)
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", buildinfo.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("search returned status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decode search response")
	}

	// A 200 can still carry per-indexer failures.
	for _, idx := range payload.Indexers {
		if idx.Error == "" {
			continue
		}
		if strings.Contains(idx.Error, "TooManyRequests") {
			return nil, errors.Errorf("indexer %s rate limited the request", idx.ID)
		}
		return nil, errors.Errorf("indexer %s returned an error: %s", idx.ID, idx.Error)
	}

	return convertResults(term, payload.Results), nil
}

// convertResults maps raw response items to Results, dropping records
// without a title.
func convertResults(term string, items []resultItem) []Result {
	results := make([]Result, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			log.Warn().Str("term", term).Str("tracker", item.Tracker).Msg("dropping result without title")
			continue
		}
		results = append(results, Result{
			Title:     item.Title,
			Link:      item.Link,
			Details:   item.Details,
			Tracker:   item.Tracker,
			IndexerID: item.TrackerID,
			Size:      item.Size,
			Seeders:   item.Seeders,
			Peers:     item.Peers,
		})
	}
	return results
}

// Download retrieves the raw torrent bytes for the provided download URL.
func (c *Client) Download(ctx context.Context, downloadURL string) ([]byte, error) {
	if strings.TrimSpace(downloadURL) == "" {
		return nil, errors.New("download URL is required")
	}

	// Normalise relative URLs
	if !strings.HasPrefix(downloadURL, "http://") && !strings.HasPrefix(downloadURL, "https://") {
		downloadURL = c.baseURL + "/" + strings.TrimLeft(downloadURL, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build download request")
	}
	req.Header.Set("Accept", "application/x-bittorrent, application/octet-stream")
	req.Header.Set("User-Agent", buildinfo.UserAgent)

	// Ensure API key is present for backends that require it
	if c.apiKey != "" && !strings.Contains(downloadURL, "apikey=") {
		query := req.URL.Query()
		query.Set("apikey", c.apiKey)
		req.URL.RawQuery = query.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "torrent download failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("torrent download returned status %d", resp.StatusCode)
	}

	limitedReader := io.LimitReader(resp.Body, maxTorrentDownloadBytes+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, errors.Wrap(err, "read torrent body")
	}
	if int64(len(data)) > maxTorrentDownloadBytes {
		return nil, errors.Errorf("torrent download exceeded %d bytes limit", maxTorrentDownloadBytes)
	}

	return data, nil
}
