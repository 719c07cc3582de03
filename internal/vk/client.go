package vk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIBaseURL = "https://api.vk.com/method"
	apiVersion        = "5.199"
)

// HTTPDoer describes the HTTP client used by the VK client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads a remote asset before it is re-uploaded.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (primarily for tests).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// WithBaseURL overrides the API method base URL (primarily for tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// Client talks to the destination platform on behalf of one operator token.
// A zero groupID targets the acting user's own wall; otherwise uploads are
// bound to the community and the wall owner is the community's negated id.
type Client struct {
	token   string
	groupID int64
	baseURL string
	client  HTTPDoer
	fetcher Fetcher
}

// New constructs a client for the given token and community.
func New(token string, groupID int64, fetcher Fetcher, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		token:   strings.TrimSpace(token),
		groupID: groupID,
		baseURL: defaultAPIBaseURL,
		client:  &http.Client{Timeout: timeout},
		fetcher: fetcher,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WallOwnerID reports the owner id wall posts are addressed to.
func (c *Client) WallOwnerID() int64 {
	if c.groupID == 0 {
		return 0
	}
	return -c.groupID
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}

type apiEnvelope struct {
	Error    *apiError       `json:"error"`
	Response json.RawMessage `json:"response"`
}

// call invokes one API method and decodes its response payload into out.
func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", c.token)
	params.Set("v", apiVersion)

	endpoint := c.baseURL + "/" + method
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned http %d", method, resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("%s failed: %s (code %d)", method, envelope.Error.Message, envelope.Error.Code)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Response, out); err != nil {
			return fmt.Errorf("decode %s payload: %w", method, err)
		}
	}
	return nil
}

// postFile transfers one file to an upload server as a multipart form and
// decodes the server's reply into out.
func (c *Client) postFile(ctx context.Context, uploadURL, fieldName, fileName string, data []byte, out any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write multipart payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upload response: %w", err)
	}
	return nil
}

func (c *Client) groupParams() url.Values {
	params := url.Values{}
	if c.groupID != 0 {
		params.Set("group_id", fmt.Sprint(c.groupID))
	}
	return params
}
