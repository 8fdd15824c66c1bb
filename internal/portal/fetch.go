package portal

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FetchConfig configures the portal fetcher. All state lives here or in the
// Fetcher it builds; there are no package-level mutable defaults.
type FetchConfig struct {
	UserAgents        []string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	Burst             int
	MaxBodyBytes      int64
}

// DefaultFetchConfig returns conservative settings for government portals.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		},
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RequestsPerSecond: 1,
		Burst:             2,
		MaxBodyBytes:      512 * 1024,
	}
}

// Fetcher downloads portal pages with per-host rate limiting and retry on
// transient failures.
type Fetcher struct {
	client *http.Client
	cfg    FetchConfig

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewFetcher builds a Fetcher from the config, filling zero fields from
// DefaultFetchConfig.
func NewFetcher(cfg FetchConfig) *Fetcher {
	def := DefaultFetchConfig()
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = def.UserAgents
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst == 0 {
		cfg.Burst = def.Burst
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (f *Fetcher) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(f.cfg.RequestsPerSecond), f.cfg.Burst)
		f.limiters[host] = lim
	}
	return lim
}

func (f *Fetcher) userAgent() string {
	return f.cfg.UserAgents[rand.IntN(len(f.cfg.UserAgents))]
}

// Fetch downloads a page body, retrying on network errors, 429s and 5xx with
// exponential backoff and jitter.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	lim := f.limiterFor(rawURL)

	var lastErr error
	for attempt := range f.cfg.MaxRetries {
		if err := lim.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "portal: rate limiter wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "portal: create request")
		}
		req.Header.Set("User-Agent", f.userAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			zap.L().Warn("portal: request failed, retrying",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("portal: http %d from %s", resp.StatusCode, rawURL)
			zap.L().Warn("portal: transient status, retrying",
				zap.String("url", rawURL),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			f.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("portal: unexpected status %d from %s", resp.StatusCode, rawURL)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
		_ = resp.Body.Close()
		if err != nil {
			return nil, eris.Wrap(err, "portal: read body")
		}
		return body, nil
	}

	return nil, eris.Wrap(lastErr, "portal: all retries exhausted")
}

func (f *Fetcher) backoff(ctx context.Context, attempt int) {
	base := 500 * time.Millisecond
	maxBackoff := 15 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
