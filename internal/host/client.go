// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the helper daemon client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnavailable
	ErrTypeTimeout
	ErrTypeRejected
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnavailable = &ClientError{Type: ErrTypeUnavailable, Message: "helper daemon is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsUnavailable checks if an error indicates the daemon cannot be reached.
func IsUnavailable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnavailable
	}
	return errors.Is(err, ErrUnavailable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the helper daemon client.
type ClientConfig struct {
	// BaseURL is the daemon API base URL (default: http://127.0.0.1:49613)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout for each request (default: 10s)
	Timeout time.Duration

	// MaxRetries for transient connection failures (default: 2)
	MaxRetries int

	// RetryWait is the base delay between retries (default: 250ms)
	RetryWait time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    "http://127.0.0.1:49613",
		Timeout:    10 * time.Second,
		MaxRetries: 2,
		RetryWait:  250 * time.Millisecond,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the VoxStudio helper daemon.
//
// The Client is thread-safe for concurrent use. All methods issue a single
// logical request/response call; transient connection failures are retried
// by the underlying transport, and any error that survives the retries is
// surfaced to the caller.
//
// Example:
//
//	client := host.NewClient()
//	if err := client.Probe(ctx); err != nil {
//	    // restricted environment - installation unavailable
//	}
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new helper daemon client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new helper daemon client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:49613"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 2
	}
	if config.RetryWait == 0 {
		config.RetryWait = 250 * time.Millisecond
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = config.MaxRetries
	rc.RetryWaitMin = config.RetryWait
	rc.RetryWaitMax = 4 * config.RetryWait
	rc.Logger = nil
	rc.HTTPClient.Timeout = config.Timeout

	return &Client{
		config:     config,
		httpClient: rc.StandardClient(),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CAPABILITY PROBE
// =============================================================================

// Probe issues a no-op call against the daemon's command interface. Success
// means the environment is privileged (installation capable); any failure
// means it is restricted.
func (c *Client) Probe(ctx context.Context) error {
	var ack struct {
		Status string `json:"status"`
	}
	return c.get(ctx, "/api/probe", &ack)
}

// =============================================================================
// DETECTION OPERATIONS
// =============================================================================

// DefaultInstallPath asks the daemon for the suggested installation directory.
func (c *Client) DefaultInstallPath(ctx context.Context) (string, error) {
	var result struct {
		Path string `json:"path"`
	}
	if err := c.get(ctx, "/api/default-path", &result); err != nil {
		return "", err
	}
	return result.Path, nil
}

// FetchMachineProfile retrieves a fresh snapshot of the host machine's
// capabilities. The returned profile is never mutated by the client.
func (c *Client) FetchMachineProfile(ctx context.Context) (*MachineProfile, error) {
	var profile MachineProfile
	if err := c.get(ctx, "/api/system-info", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// =============================================================================
// INSTALLATION OPERATIONS
// =============================================================================

// StartInstall submits an installation request to the daemon. The daemon
// acknowledges acceptance and performs the work in the background; progress
// must be polled via Progress.
func (c *Client) StartInstall(ctx context.Context, req InstallRequest) (*StartAck, error) {
	if err := req.Validate(); err != nil {
		return nil, &ClientError{Type: ErrTypeRejected, Message: "invalid install request", Cause: err}
	}

	requestID := uuid.New().String()
	payload := struct {
		InstallRequest
		RequestID string `json:"request_id"`
	}{InstallRequest: req, RequestID: requestID}

	var ack StartAck
	if err := c.post(ctx, "/api/install", payload, &ack); err != nil {
		return nil, err
	}
	if ack.RequestID == "" {
		ack.RequestID = requestID
	}
	return &ack, nil
}

// Progress polls the daemon for the current installation progress. Each call
// returns a complete report; the caller replaces any previous report with it.
func (c *Client) Progress(ctx context.Context) (*ProgressReport, error) {
	var report ProgressReport
	if err := c.get(ctx, "/api/install/progress", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// =============================================================================
// POST-COMPLETION OPERATIONS
// =============================================================================

// LaunchApp asks the daemon to launch the installed application.
func (c *Client) LaunchApp(ctx context.Context, installPath string) (*LaunchResult, error) {
	payload := struct {
		InstallPath string `json:"install_path"`
	}{InstallPath: installPath}

	var result LaunchResult
	if err := c.post(ctx, "/api/launch", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// OpenInstallDir asks the daemon to open the installation directory in the
// system file manager.
func (c *Client) OpenInstallDir(ctx context.Context, installPath string) error {
	payload := struct {
		InstallPath string `json:"install_path"`
	}{InstallPath: installPath}

	return c.post(ctx, "/api/open-directory", payload, nil)
}

// =============================================================================
// TRANSPORT HELPERS
// =============================================================================

// daemonError is the error envelope returned by the daemon on non-2xx status.
type daemonError struct {
	Error string `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnavailable, Message: "failed to create request", Cause: err}
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeUnavailable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeUnavailable, Message: "helper daemon is not reachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The daemon reports failures as {"error": "..."}; surface that
		// message verbatim when present.
		var de daemonError
		if err := json.NewDecoder(resp.Body).Decode(&de); err == nil && de.Error != "" {
			return &ClientError{Type: ErrTypeRejected, Message: de.Error}
		}
		return &ClientError{
			Type:    ErrTypeRejected,
			Message: "helper daemon returned " + resp.Status,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}
