package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vietddude/interact/internal/core/domain"
)

// HTTPFactory builds HTTP clients bound to an account's cookies and proxy.
type HTTPFactory struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewHTTPFactory creates a factory for the given API base URL.
func NewHTTPFactory(baseURL string, timeout time.Duration) *HTTPFactory {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFactory{
		BaseURL:   baseURL,
		UserAgent: "interact/1.0",
		Timeout:   timeout,
	}
}

// Build binds the account's session and egress path into a fresh client.
// No network I/O happens here; a bad proxy URL or an empty cookie set fails
// locally.
func (f *HTTPFactory) Build(account *domain.Account) (Client, error) {
	if !account.HasCredentials() {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, account.Username)
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if account.Proxy != "" {
		proxyURL, err := url.Parse(account.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy for %s: %w", account.Username, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &httpClient{
		baseURL:   f.BaseURL,
		userAgent: f.UserAgent,
		cookies:   account.Cookies,
		httpClient: &http.Client{
			Timeout:   f.Timeout,
			Transport: transport,
		},
	}, nil
}

type httpClient struct {
	baseURL    string
	userAgent  string
	cookies    map[string]string
	httpClient *http.Client
}

func (c *httpClient) CreatePost(ctx context.Context, text string, mediaIDs []string) (*Post, error) {
	body := map[string]any{"text": text}
	if len(mediaIDs) > 0 {
		body["media_ids"] = mediaIDs
	}
	var post Post
	if err := c.do(ctx, "POST", "/posts", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *httpClient) ReplyToPost(ctx context.Context, postID, text string, mediaIDs []string) (*Post, error) {
	body := map[string]any{"text": text, "reply_to": postID}
	if len(mediaIDs) > 0 {
		body["media_ids"] = mediaIDs
	}
	var post Post
	if err := c.do(ctx, "POST", "/posts", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *httpClient) QuotePost(ctx context.Context, postID, text string, mediaIDs []string) (*Post, error) {
	body := map[string]any{"text": text, "quoted_post_id": postID}
	if len(mediaIDs) > 0 {
		body["media_ids"] = mediaIDs
	}
	var post Post
	if err := c.do(ctx, "POST", "/posts", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *httpClient) Reshare(ctx context.Context, postID string) (*Post, error) {
	var post Post
	if err := c.do(ctx, "POST", "/posts/"+postID+"/reshare", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *httpClient) Follow(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.do(ctx, "POST", "/friendships/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpClient) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, "POST", "/account/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for name, value := range c.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NetworkError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return NetworkError(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	return c.mapError(resp, data)
}

// API error codes the platform uses inside 403 responses.
const (
	apiCodeSuspended = 64
	apiCodeLocked    = 326
)

func (c *httpClient) mapError(resp *http.Response, body []byte) error {
	var apiErr struct {
		Errors []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	_ = json.Unmarshal(body, &apiErr)

	code := 0
	message := string(body)
	if len(apiErr.Errors) > 0 {
		code = apiErr.Errors[0].Code
		message = apiErr.Errors[0].Message
	}

	e := &Error{
		Kind:       KindUnknown,
		Message:    message,
		StatusCode: resp.StatusCode,
		APICode:    code,
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.Headers = map[string]string{}
		if v := resp.Header.Get(headerRateLimitReset); v != "" {
			e.Headers[headerRateLimitReset] = v
		}
	case http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case http.StatusForbidden:
		switch code {
		case apiCodeSuspended:
			e.Kind = KindAccountSuspended
		case apiCodeLocked:
			e.Kind = KindAccountLocked
		default:
			e.Kind = KindForbidden
		}
	}

	return e
}
