// Package linkid is the client SDK for a LinkID resolver. It wraps the
// resolver's HTTP contract with local result caching, transport retries
// with exponential backoff, and typed error mapping, so callers can branch
// on outcomes programmatically instead of inspecting status codes.
//
// A single Client is safe for concurrent use.
package linkid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultRetries     = 3
	defaultBackoffUnit = time.Second
	defaultCacheTTL    = 300 * time.Second
	defaultCacheSize   = 256
)

var (
	linkIDPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]{32,64}$`)
	maxAgePattern = regexp.MustCompile(`max-age=(\d+)`)
)

// Client talks to one resolver endpoint.
type Client struct {
	resolverURL string
	apiKey      string
	retries     int
	backoffUnit time.Duration
	cacheTTL    time.Duration
	cache       *resultCache
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	apiKey      string
	timeout     time.Duration
	retries     int
	backoffUnit time.Duration
	cacheTTL    time.Duration
	cacheSize   int
	noCache     bool
	httpClient  *http.Client
}

// WithAPIKey sets the bearer credential used by register, update, and
// withdraw.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) { c.apiKey = key }
}

// WithTimeout bounds each network attempt. Exceeding it counts as a
// retryable transport failure.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// WithRetries sets the transport attempt budget. Values below 1 are
// clamped to 1.
func WithRetries(n int) Option {
	return func(c *clientConfig) { c.retries = n }
}

// WithBackoffUnit sets the base delay between transport retries. The delay
// before attempt n is 2^(n-1) units.
func WithBackoffUnit(d time.Duration) Option {
	return func(c *clientConfig) { c.backoffUnit = d }
}

// WithCacheTTL sets the fallback lifetime for cached results when the
// response carries no usable max-age directive.
func WithCacheTTL(d time.Duration) Option {
	return func(c *clientConfig) { c.cacheTTL = d }
}

// WithCacheSize bounds the number of cached resolution results.
func WithCacheSize(n int) Option {
	return func(c *clientConfig) { c.cacheSize = n }
}

// WithoutCache disables local result caching entirely.
func WithoutCache() Option {
	return func(c *clientConfig) { c.noCache = true }
}

// WithHTTPClient substitutes the underlying transport. The client still
// disables redirect following on it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = hc }
}

// New creates a Client for the resolver at resolverURL.
func New(resolverURL string, opts ...Option) (*Client, error) {
	if !absoluteHTTPURL(resolverURL) {
		return nil, &ValidationError{Msg: "resolver URL must be absolute http(s)"}
	}

	cfg := clientConfig{
		timeout:     defaultTimeout,
		retries:     defaultRetries,
		backoffUnit: defaultBackoffUnit,
		cacheTTL:    defaultCacheTTL,
		cacheSize:   defaultCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.retries < 1 {
		cfg.retries = 1
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}
	// The Location header is the payload of a redirect resolution, so the
	// transport must surface 3xx responses instead of following them.
	hc.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	c := &Client{
		resolverURL: trimTrailingSlash(resolverURL),
		apiKey:      cfg.apiKey,
		retries:     cfg.retries,
		backoffUnit: cfg.backoffUnit,
		cacheTTL:    cfg.cacheTTL,
		httpClient:  hc,
	}

	if !cfg.noCache {
		cache, err := newResultCache(cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating result cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

// ResolveOption adjusts a single resolve call.
type ResolveOption func(*resolveParams)

type resolveParams struct {
	format    string
	language  string
	version   int
	timestamp string
	metadata  bool
	skipCache bool
}

// WithFormat requests a specific representation format.
func WithFormat(format string) ResolveOption {
	return func(p *resolveParams) { p.format = format }
}

// WithLanguage requests a specific language variant.
func WithLanguage(lang string) ResolveOption {
	return func(p *resolveParams) { p.language = lang }
}

// WithVersion requests a specific record version.
func WithVersion(v int) ResolveOption {
	return func(p *resolveParams) { p.version = v }
}

// WithTimestamp requests resolution as of a point in time.
func WithTimestamp(at string) ResolveOption {
	return func(p *resolveParams) { p.timestamp = at }
}

// WithMetadata asks for the record snapshot instead of a redirect.
func WithMetadata() ResolveOption {
	return func(p *resolveParams) { p.metadata = true }
}

// SkipCache bypasses the local cache for this call. The fresh result is
// still stored.
func SkipCache() ResolveOption {
	return func(p *resolveParams) { p.skipCache = true }
}

// Resolve resolves a LinkID to either a Redirect or a Metadata result.
func (c *Client) Resolve(ctx context.Context, id string, opts ...ResolveOption) (Resolution, error) {
	if !linkIDPattern.MatchString(id) {
		return nil, &ValidationError{Msg: "invalid LinkID format"}
	}

	var params resolveParams
	for _, opt := range opts {
		opt(&params)
	}

	key := cacheKey(id, params)
	if c.cache != nil && !params.skipCache {
		if res, ok := c.cache.get(key); ok {
			return markCached(res), nil
		}
	}

	resp, err := c.do(ctx, http.MethodGet, c.resolveURL(id, params), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	res, err := c.decodeResolution(id, resp)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.set(key, res, responseTTL(resp, c.cacheTTL))
	}
	return res, nil
}

// RegistrationRequest describes a new identifier to register.
type RegistrationRequest struct {
	TargetURI string         `json:"targetUri"`
	MediaType string         `json:"mediaType,omitempty"`
	Language  string         `json:"language,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Register creates a new identifier pointing at req.TargetURI.
func (c *Client) Register(ctx context.Context, req RegistrationRequest) (*Registration, error) {
	if !absoluteHTTPURL(req.TargetURI) {
		return nil, &ValidationError{Msg: "targetUri must be an absolute http(s) URL"}
	}
	if c.apiKey == "" {
		return nil, &AuthRequiredError{Operation: "register"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ValidationError{Msg: "encoding registration request: " + err.Error()}
	}

	resp, err := c.do(ctx, http.MethodPost, c.resolverURL+"/register", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, mapStatus(resp, "")
	}

	var reg Registration
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		return nil, &ResolverError{StatusCode: resp.StatusCode, Msg: "malformed registration response"}
	}
	return &reg, nil
}

// UpdateRequest carries partial field updates. Nil pointer fields are left
// untouched; metadata keys are merged into the stored map.
type UpdateRequest struct {
	TargetURI *string        `json:"targetUri,omitempty"`
	MediaType *string        `json:"mediaType,omitempty"`
	Language  *string        `json:"language,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Update applies partial field updates to an identifier the caller owns.
// On success the entire local cache is dropped: the record may have been
// cached under any combination of resolution options.
func (c *Client) Update(ctx context.Context, id string, req UpdateRequest) (*UpdateResult, error) {
	if !linkIDPattern.MatchString(id) {
		return nil, &ValidationError{Msg: "invalid LinkID format"}
	}
	if req.TargetURI != nil && !absoluteHTTPURL(*req.TargetURI) {
		return nil, &ValidationError{Msg: "targetUri must be an absolute http(s) URL"}
	}
	if c.apiKey == "" {
		return nil, &AuthRequiredError{Operation: "update"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ValidationError{Msg: "encoding update request: " + err.Error()}
	}

	resp, err := c.do(ctx, http.MethodPut, c.resolverURL+"/resolve/"+id, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatus(resp, id)
	}

	// The server-side mutation has succeeded at this point, so drop the
	// cache even if the success body turns out to be unreadable.
	if c.cache != nil {
		c.cache.purge()
	}

	var result UpdateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ResolverError{StatusCode: resp.StatusCode, Msg: "malformed update response"}
	}
	return &result, nil
}

// Withdraw permanently withdraws an identifier the caller owns. Reason is
// optional and is recorded on the tombstone. On success the entire local
// cache is dropped.
func (c *Client) Withdraw(ctx context.Context, id, reason string) (*WithdrawResult, error) {
	if !linkIDPattern.MatchString(id) {
		return nil, &ValidationError{Msg: "invalid LinkID format"}
	}
	if c.apiKey == "" {
		return nil, &AuthRequiredError{Operation: "withdraw"}
	}

	var body []byte
	if reason != "" {
		var err error
		body, err = json.Marshal(map[string]string{"reason": reason})
		if err != nil {
			return nil, &ValidationError{Msg: "encoding withdraw request: " + err.Error()}
		}
	}

	resp, err := c.do(ctx, http.MethodDelete, c.resolverURL+"/resolve/"+id, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatus(resp, id)
	}

	if c.cache != nil {
		c.cache.purge()
	}

	var result WithdrawResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ResolverError{StatusCode: resp.StatusCode, Msg: "malformed withdraw response"}
	}
	return &result, nil
}

// do issues one HTTP operation with the transport retry budget. Only
// transport failures are retried; any received HTTP response, whatever its
// status, is terminal.
func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			delay := c.backoffUnit * (1 << (attempt - 2))
			select {
			case <-ctx.Done():
				return nil, &NetworkError{Attempts: attempt - 1, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, &ValidationError{Msg: "building request: " + err.Error()}
		}
		req.Header.Set("Accept", "application/linkid+json, application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return nil, &NetworkError{Attempts: c.retries, Err: lastErr}
}

func (c *Client) resolveURL(id string, params resolveParams) string {
	q := url.Values{}
	if params.format != "" {
		q.Set("format", params.format)
	}
	if params.language != "" {
		q.Set("lang", params.language)
	}
	if params.version > 0 {
		q.Set("version", strconv.Itoa(params.version))
	}
	if params.timestamp != "" {
		q.Set("at", params.timestamp)
	}
	if params.metadata {
		q.Set("metadata", "true")
	}

	u := c.resolverURL + "/resolve/" + id
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (c *Client) decodeResolution(id string, resp *http.Response) (Resolution, error) {
	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		loc := resp.Header.Get("Location")
		if loc == "" {
			return nil, &ResolverError{StatusCode: resp.StatusCode, Msg: "redirect without Location"}
		}
		quality := 1.0
		if raw := resp.Header.Get("X-LinkID-Quality"); raw != "" {
			if q, err := strconv.ParseFloat(raw, 64); err == nil {
				quality = q
			}
		}
		permanent := resp.StatusCode == http.StatusMovedPermanently ||
			resp.StatusCode == http.StatusPermanentRedirect
		return Redirect{
			LinkID:    id,
			URI:       loc,
			Permanent: permanent,
			Resolver:  resp.Header.Get("X-LinkID-Resolver"),
			Quality:   quality,
		}, nil

	case resp.StatusCode == http.StatusOK:
		var record Record
		if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
			return nil, &ResolverError{StatusCode: resp.StatusCode, Msg: "malformed metadata response"}
		}
		return Metadata{
			LinkID:   id,
			Data:     record,
			Resolver: resp.Header.Get("X-LinkID-Resolver"),
			ETag:     resp.Header.Get("ETag"),
		}, nil

	default:
		return nil, mapStatus(resp, id)
	}
}

// mapStatus converts a failure response into the matching typed error.
func mapStatus(resp *http.Response, linkID string) error {
	var payload struct {
		Error     string     `json:"error"`
		LinkID    string     `json:"linkId"`
		Tombstone *Tombstone `json:"tombstone"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &payload)

	if payload.LinkID != "" {
		linkID = payload.LinkID
	}
	msg := payload.Error
	if msg == "" {
		msg = string(raw)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return &ValidationError{Msg: msg}
	case http.StatusUnauthorized:
		return &UnauthorizedError{LinkID: linkID}
	case http.StatusForbidden:
		return &ForbiddenError{LinkID: linkID}
	case http.StatusNotFound:
		return &NotFoundError{LinkID: linkID}
	case http.StatusGone:
		werr := &WithdrawnError{LinkID: linkID}
		if payload.Tombstone != nil {
			werr.Tombstone = *payload.Tombstone
		}
		return werr
	case http.StatusTooManyRequests:
		var retryAfter time.Duration
		if raw := resp.Header.Get("Retry-After"); raw != "" {
			if secs, err := strconv.Atoi(raw); err == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return &RateLimitedError{RetryAfter: retryAfter}
	default:
		return &ResolverError{StatusCode: resp.StatusCode, Msg: msg}
	}
}

// cacheKey composes the identifier with every resolution option in a fixed
// name order, so calls with identical effective parameters share an entry.
// Every option name is always present: absence and emptiness are the same
// key.
func cacheKey(id string, p resolveParams) string {
	return "linkid|" + id +
		"|format=" + p.format +
		"|language=" + p.language +
		"|metadata=" + strconv.FormatBool(p.metadata) +
		"|timestamp=" + p.timestamp +
		"|version=" + strconv.Itoa(p.version)
}

func markCached(res Resolution) Resolution {
	switch r := res.(type) {
	case Redirect:
		r.Cached = true
		return r
	case Metadata:
		r.Cached = true
		return r
	default:
		return res
	}
}

// responseTTL extracts max-age from Cache-Control, falling back to the
// configured default when absent or malformed.
func responseTTL(resp *http.Response, fallback time.Duration) time.Duration {
	match := maxAgePattern.FindStringSubmatch(resp.Header.Get("Cache-Control"))
	if match == nil {
		return fallback
	}
	secs, err := strconv.Atoi(match[1])
	if err != nil {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func absoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
