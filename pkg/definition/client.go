package definition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/procview/pkg/buildinfo"
	"github.com/matzehuels/procview/pkg/cache"
	"github.com/matzehuels/procview/pkg/connector"
	perrors "github.com/matzehuels/procview/pkg/errors"
	"github.com/matzehuels/procview/pkg/httputil"
	"github.com/matzehuels/procview/pkg/observability"
)

// DefaultTTL is how long fetched catalogs stay cached.
const DefaultTTL = time.Hour

// Data is the part of the process-definition response this module reads.
type Data struct {
	EdgesForNodes connector.Catalog `json:"edgesForNodes"`
}

// Options configures a [Client].
type Options struct {
	// BaseURL is the root of the process-definition service (required).
	BaseURL string
	// Cache stores fetched catalogs. Nil disables caching.
	Cache cache.Cache
	// Keyer builds cache keys. Nil means [cache.NewDefaultKeyer].
	Keyer cache.Keyer
	// TTL of cached catalogs. Zero means [DefaultTTL].
	TTL time.Duration
	// Headers are sent with every request (e.g. Authorization).
	Headers map[string]string
	// Timeout bounds a single request. Zero means [httputil.DefaultTimeout].
	Timeout time.Duration
	// Attempts and Delay control retries of transient failures.
	Attempts int
	Delay    time.Duration
}

func (o *Options) setDefaults() {
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Attempts == 0 {
		o.Attempts = 3
	}
	if o.Delay == 0 {
		o.Delay = time.Second
	}
}

// Client fetches connector catalogs from the process-definition service.
type Client struct {
	http    *http.Client
	opts    Options
	baseURL *url.URL
}

// NewClient validates opts and returns a client.
func NewClient(opts Options) (*Client, error) {
	if err := perrors.ValidateURL(opts.BaseURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid base URL")
	}
	opts.setDefaults()
	return &Client{
		http:    httputil.NewHTTPClient(opts.Timeout),
		opts:    opts,
		baseURL: u,
	}, nil
}

// Catalog returns the connector catalog of processingType. Cached catalogs
// are served unless refresh is set.
func (c *Client) Catalog(ctx context.Context, processingType string, refresh bool) (connector.Catalog, error) {
	if processingType == "" {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "processing type cannot be empty")
	}
	key := c.opts.Keyer.CatalogKey(c.baseURL.String(), processingType)

	if !refresh {
		if raw, ok, _ := c.opts.Cache.Get(ctx, key); ok {
			var cat connector.Catalog
			if json.Unmarshal(raw, &cat) == nil {
				return cat, nil
			}
		}
	}

	var data Data
	err := httputil.Retry(ctx, c.opts.Attempts, c.opts.Delay, func() error {
		return c.get(ctx, c.endpoint(processingType), &data)
	})
	if err != nil {
		return nil, classify(err, processingType)
	}

	if raw, err := json.Marshal(data.EdgesForNodes); err == nil {
		_ = c.opts.Cache.Set(ctx, key, raw, c.opts.TTL)
	}
	return data.EdgesForNodes, nil
}

func (c *Client) endpoint(processingType string) string {
	return c.baseURL.JoinPath("api", "processDefinitionData", processingType).String()
}

func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, val := range c.opts.Headers {
		req.Header.Set(k, val)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return httputil.Retryable(fmt.Errorf("%w: %v", httputil.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := httputil.CheckResponse(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode process definition")
	}
	return nil
}

func classify(err error, processingType string) error {
	switch {
	case errors.Is(err, httputil.ErrNotFound):
		return perrors.Wrap(perrors.ErrCodeNotFound, err, "no process definition for %q", processingType)
	case errors.Is(err, context.DeadlineExceeded):
		return perrors.Wrap(perrors.ErrCodeTimeout, err, "fetch process definition %q", processingType)
	case errors.Is(err, httputil.ErrNetwork):
		return perrors.Wrap(perrors.ErrCodeNetwork, err, "fetch process definition %q", processingType)
	case perrors.GetCode(err) != "":
		return err
	default:
		return perrors.Wrap(perrors.ErrCodeInternal, err, "fetch process definition %q", processingType)
	}
}
