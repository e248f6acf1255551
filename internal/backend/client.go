package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sms-console/pkg/config"
	appErrors "github.com/noah-isme/sms-console/pkg/errors"
	"github.com/noah-isme/sms-console/pkg/middleware/requestid"
)

// Call describes one backend request.
type Call struct {
	Method     string
	Path       string
	Query      url.Values
	Body       interface{}
	Credential string
}

// Meta carries the envelope fields that are not data.
type Meta struct {
	Status  int
	Message string
	Count   *int
}

// Doer is implemented by Client and by test fakes.
type Doer interface {
	Do(ctx context.Context, call Call, dest interface{}) (Meta, error)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

type lazyClient struct {
	once   sync.Once
	client *http.Client
}

// Client dispatches calls to the backend chosen by its routing table.
// There is one *http.Client per backend, built on first use and shared by
// all concurrent calls afterwards.
type Client struct {
	table     Table
	baseURLs  map[Service]string
	clients   map[Service]*lazyClient
	newClient func(Service) *http.Client
	recorder  Recorder
	logger    *zap.Logger
}

// Recorder observes completed backend calls. Status is 0 when no response
// was received.
type Recorder interface {
	ObserveBackendCall(service string, status int, duration time.Duration)
}

// Option customises a Client.
type Option func(*Client)

// WithTable overrides the routing table.
func WithTable(t Table) Option {
	return func(c *Client) { c.table = t }
}

// WithHTTPClientFactory overrides how per-backend HTTP clients are built.
func WithHTTPClientFactory(fn func(Service) *http.Client) Option {
	return func(c *Client) { c.newClient = fn }
}

// WithRecorder reports every call to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient constructs a Client for the configured backends.
func NewClient(cfg config.ServicesConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		table: DefaultTable(),
		baseURLs: map[Service]string{
			ServiceAuth:     strings.TrimRight(cfg.AuthURL, "/"),
			ServiceUser:     strings.TrimRight(cfg.UserURL, "/"),
			ServicePlatform: strings.TrimRight(cfg.PlatformURL, "/"),
		},
		clients: map[Service]*lazyClient{
			ServiceAuth:     {},
			ServiceUser:     {},
			ServicePlatform: {},
		},
		newClient: func(Service) *http.Client { return &http.Client{} },
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve exposes the routing decision for path.
func (c *Client) Resolve(path string) Service {
	return c.table.Resolve(path)
}

func (c *Client) httpClient(svc Service) *http.Client {
	lc := c.clients[svc]
	lc.once.Do(func() {
		lc.client = c.newClient(svc)
	})
	return lc.client
}

// Do performs call and decodes the envelope's data into dest when dest is
// non-nil.
func (c *Client) Do(ctx context.Context, call Call, dest interface{}) (Meta, error) {
	svc := c.table.Resolve(call.Path)
	start := time.Now()
	meta, err := c.do(ctx, svc, call, dest)
	if c.recorder != nil {
		c.recorder.ObserveBackendCall(string(svc), meta.Status, time.Since(start))
	}
	return meta, err
}

func (c *Client) do(ctx context.Context, svc Service, call Call, dest interface{}) (Meta, error) {
	base, ok := c.baseURLs[svc]
	if _, known := c.clients[svc]; !ok || !known || base == "" {
		return Meta{}, appErrors.Connectivity(fmt.Errorf("no base url for %s backend", svc))
	}

	target := base + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return Meta{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request")
		}
		body = bytes.NewReader(payload)
	}

	method := call.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return Meta{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+call.Credential)
	}
	if reqID := requestid.FromContext(ctx); reqID != "" {
		req.Header.Set(requestid.HeaderKey, reqID)
	}

	resp, err := c.httpClient(svc).Do(req)
	if err != nil {
		c.logger.Warn("backend unreachable",
			zap.String("service", string(svc)),
			zap.String("method", method),
			zap.String("path", call.Path),
			zap.Error(err),
		)
		return Meta{}, appErrors.Connectivity(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Meta{Status: resp.StatusCode}, appErrors.Connectivity(err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		message := ""
		if decodeErr == nil {
			message = env.Message
		}
		c.logger.Warn("backend error",
			zap.String("service", string(svc)),
			zap.String("method", method),
			zap.String("path", call.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return Meta{Status: resp.StatusCode, Message: message}, appErrors.Backend(resp.StatusCode, message)
	}

	meta := Meta{Status: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) == 0 {
		return meta, nil
	}
	if decodeErr != nil {
		return meta, appErrors.Wrap(decodeErr, appErrors.ErrBackend.Code, http.StatusBadGateway, "malformed backend response")
	}
	meta.Message = env.Message
	meta.Count = env.Count

	if dest != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return meta, appErrors.Wrap(err, appErrors.ErrBackend.Code, http.StatusBadGateway, "malformed backend response")
		}
	}
	return meta, nil
}

// IsConnectivity reports whether err means no response was received.
func IsConnectivity(err error) bool {
	var appErr *appErrors.Error
	return errors.As(err, &appErr) && appErr.Code == appErrors.ErrConnectivity.Code
}
