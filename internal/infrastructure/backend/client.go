// Package backend talks to the managed backend's auth and storage REST APIs.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/autocrm/autocrm/internal/shared/config"
	"github.com/autocrm/autocrm/internal/shared/constants"
	"github.com/autocrm/autocrm/internal/shared/logger"
	"github.com/autocrm/autocrm/internal/shared/utils/logutil"
)

const (
	// Maximum response body size accepted from the backend (1MB)
	maxResponseSize = 1 << 20
	// Error bodies are cut to this many characters before logging
	maxErrorBodyLog = 300
	defaultTimeout  = 15 * time.Second
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend returned %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// IsAPIError reports whether err is an APIError carrying code.
func IsAPIError(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// errorBody covers the error shapes used by the auth and storage services.
type errorBody struct {
	Error            string `json:"error"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

// restClient holds what the auth and storage clients share.
type restClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

func newRESTClient(cfg *config.BackendConfig, log logger.Interface) restClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return restClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.AnonKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

func (c *restClient) newRequest(ctx context.Context, method, path string, body io.Reader, bearer string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(constants.HeaderAPIKey, c.apiKey)
	if bearer == "" {
		bearer = c.apiKey
	}
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+bearer)
	return req, nil
}

// doJSON sends payload as JSON and decodes a 2xx response into out when out
// is non-nil.
func (c *restClient) doJSON(ctx context.Context, method, path string, payload any, bearer string, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, body, bearer)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}
	return c.do(req, out)
}

func (c *restClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, raw)
		c.logger.Warnw("backend request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"body", logutil.TruncateForLog(string(raw), maxErrorBodyLog),
		)
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = logutil.TruncateForLog(strings.TrimSpace(string(raw)), maxErrorBodyLog)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	apiErr.Code = body.ErrorCode
	if apiErr.Code == "" {
		apiErr.Code = body.Error
	}
	for _, m := range []string{body.ErrorDescription, body.Msg, body.Message, body.Error} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
