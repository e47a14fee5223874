package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// clientTimeout is the total request timeout.
	clientTimeout = 30 * time.Second
	// dialTimeout is the connection timeout.
	dialTimeout = 10 * time.Second
	// tlsHandshakeTimeout is the TLS negotiation timeout.
	tlsHandshakeTimeout = 10 * time.Second
	// responseHeaderTimeout is time to wait for response headers.
	responseHeaderTimeout = 15 * time.Second

	// maxErrorBodySize caps how much of an error response is read.
	maxErrorBodySize = 64 * 1024
)

// newHTTPClient creates an HTTP client configured for provider calls.
// Timeouts are explicit; redirects are not followed.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: clientTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Client is the production Gateway implementation: a thin REST client
// over the provider's JSON API, authenticated per platform.
type Client struct {
	baseURL    string
	secretKeys map[Platform]string
	httpClient *http.Client
}

// NewClient creates a provider client. secretKeys holds one API key
// per platform; calls against a platform with no key fail before any
// network activity.
func NewClient(baseURL string, secretKeys map[Platform]string) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKeys: secretKeys,
		httpClient: newHTTPClient(),
	}
}

// CreateAccount implements Gateway.
func (c *Client) CreateAccount(ctx context.Context, platform Platform, params *AccountParams) (*Account, error) {
	var acct Account
	if err := c.do(ctx, platform, http.MethodPost, "/v1/accounts", params, &acct); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &acct, nil
}

// UpdateAccount implements Gateway.
func (c *Client) UpdateAccount(ctx context.Context, platform Platform, accountID string, params *AccountParams) (*Account, error) {
	var acct Account
	path := "/v1/accounts/" + accountID
	if err := c.do(ctx, platform, http.MethodPost, path, params, &acct); err != nil {
		return nil, fmt.Errorf("update account %s: %w", accountID, err)
	}
	return &acct, nil
}

// GetAccount implements Gateway.
func (c *Client) GetAccount(ctx context.Context, platform Platform, accountID string) (*Account, error) {
	var acct Account
	path := "/v1/accounts/" + accountID
	if err := c.do(ctx, platform, http.MethodGet, path, nil, &acct); err != nil {
		return nil, fmt.Errorf("get account %s: %w", accountID, err)
	}
	return &acct, nil
}

// CreateAccountLink implements Gateway.
func (c *Client) CreateAccountLink(ctx context.Context, platform Platform, params *AccountLinkParams) (*AccountLink, error) {
	var link AccountLink
	if err := c.do(ctx, platform, http.MethodPost, "/v1/account_links", params, &link); err != nil {
		return nil, fmt.Errorf("create account link: %w", err)
	}
	return &link, nil
}

// do issues a single provider request and decodes the response into out.
func (c *Client) do(ctx context.Context, platform Platform, method, path string, body, out any) error {
	key, ok := c.secretKeys[platform]
	if !ok || key == "" {
		return fmt.Errorf("platform %s: %w", platform, ErrMissingSecretKey)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// providerErrorBody is the provider's error envelope.
type providerErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// decodeError converts a non-2xx response into a RemoteError.
func (c *Client) decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	if resp.StatusCode == http.StatusNotFound {
		return ErrAccountNotFound
	}

	var body providerErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		return &RemoteError{
			Status:  resp.StatusCode,
			Code:    body.Error.Code,
			Message: body.Error.Message,
		}
	}

	return &RemoteError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}
}
