package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"timetrack/internal/app/client/config"
	"timetrack/internal/domain/category"
	"timetrack/internal/domain/timelog"
	"timetrack/internal/domain/user"
)

var (
	ErrForbidden   = errors.New("api key rejected")
	ErrNotFound    = errors.New("not found")
	ErrBadPassword = errors.New("wrong password")
)

// StatusError is any other non-2xx answer.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server answered %d: %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("server answered %d", e.Code)
}

// HTTPClient talks to the timetrack API. Every entity call carries the
// configured API key as the first path segment.
type HTTPClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	apiKey    string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		},
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   cfg.BaseURL(),
		apiKey:    cfg.APIKey,
		userAgent: "Timetrack-Client/1.0",
	}
}

func (h *HTTPClient) HealthCheck(ctx context.Context) error {
	return h.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (h *HTTPClient) Register(ctx context.Context, req user.CreateRequest) (user.User, error) {
	var u user.User
	err := h.do(ctx, http.MethodPost, h.path("user"), req, &u)
	return u, err
}

// Login returns the id of the account the credentials belong to.
func (h *HTTPClient) Login(ctx context.Context, email, password string) (uuid.UUID, error) {
	var resp struct {
		UserID uuid.UUID `json:"userId"`
	}
	err := h.do(ctx, http.MethodPost, h.path("login"), user.LoginRequest{Email: email, Password: password}, &resp)
	return resp.UserID, err
}

func (h *HTTPClient) Categories(ctx context.Context, userID uuid.UUID) ([]category.Category, error) {
	var categories []category.Category
	err := h.do(ctx, http.MethodGet, h.path("categories", userID.String()), nil, &categories)
	return categories, err
}

func (h *HTTPClient) CreateCategory(ctx context.Context, userID uuid.UUID, req category.CreateRequest) (category.Category, error) {
	var c category.Category
	err := h.do(ctx, http.MethodPost, h.path("category", userID.String()), req, &c)
	return c, err
}

func (h *HTTPClient) Times(ctx context.Context, userID uuid.UUID) ([]timelog.Entry, error) {
	var entries []timelog.Entry
	err := h.do(ctx, http.MethodGet, h.path("times", userID.String()), nil, &entries)
	return entries, err
}

func (h *HTTPClient) CreateTime(ctx context.Context, userID uuid.UUID, req timelog.CreateRequest) (timelog.Entry, error) {
	var e timelog.Entry
	err := h.do(ctx, http.MethodPost, h.path("time", userID.String()), req, &e)
	return e, err
}

func (h *HTTPClient) UpdateTime(ctx context.Context, id uuid.UUID, patch timelog.Patch) (timelog.Entry, error) {
	var e timelog.Entry
	err := h.do(ctx, http.MethodPut, h.path("time", id.String()), patch, &e)
	return e, err
}

func (h *HTTPClient) DeleteTime(ctx context.Context, id uuid.UUID) error {
	return h.do(ctx, http.MethodDelete, h.path("time", id.String()), nil, nil)
}

func (h *HTTPClient) path(resource string, rest ...string) string {
	p := "/" + resource + "/" + url.PathEscape(h.apiKey)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

func (h *HTTPClient) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("sending request", slog.String("method", method), slog.String("resource", resourceOf(path)))

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, data)
	}
	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(code int, body []byte) error {
	switch code {
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusBadRequest:
		return ErrBadPassword
	}

	var problem struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &problem)

	if code == http.StatusNotFound {
		if problem.Detail != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, problem.Detail)
		}
		return ErrNotFound
	}
	return &StatusError{Code: code, Detail: problem.Detail}
}

// resourceOf keeps the API key out of debug logs.
func resourceOf(path string) string {
	for i := 1; i < len(path); i++ {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return path
}
