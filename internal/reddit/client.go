package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	defaultAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultAPIURL  = "https://oauth.reddit.com"
)

// ErrNotFound is returned when the API cannot resolve the submission URL.
var ErrNotFound = errors.New("submission not found")

// HTTPDoer describes the HTTP client used by the reddit client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
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

// WithEndpoints overrides the token and API base URLs (primarily for tests).
func WithEndpoints(authURL, apiURL string) Option {
	return func(c *Client) {
		if authURL != "" {
			c.authURL = authURL
		}
		if apiURL != "" {
			c.apiURL = strings.TrimRight(apiURL, "/")
		}
	}
}

// Client resolves submissions through the authenticated read API.
type Client struct {
	userAgent    string
	clientID     string
	clientSecret string
	authURL      string
	apiURL       string
	client       HTTPDoer

	token string
}

// New constructs a reddit client with the given application credentials.
func New(userAgent, clientID, clientSecret string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		userAgent:    strings.TrimSpace(userAgent),
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		authURL:      defaultAuthURL,
		apiURL:       defaultAPIURL,
		client:       &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (c *Client) authenticate(ctx context.Context) error {
	if c.token != "" {
		return nil
	}

	form := url.Values{"grant_type": []string{"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return errors.New("token endpoint returned no access token")
	}
	c.token = tok.AccessToken
	return nil
}

// submission mirrors the listing payload fields this tool consumes.
type submission struct {
	ID        string `json:"id"`
	Permalink string `json:"permalink"`
	URL       string `json:"url"`
	IsSelf    bool   `json:"is_self"`
	IsVideo   bool   `json:"is_video"`
	Media     *struct {
		RedditVideo *struct {
			FallbackURL string `json:"fallback_url"`
		} `json:"reddit_video"`
	} `json:"media"`
	GalleryData *struct {
		Items []struct {
			MediaID string `json:"media_id"`
		} `json:"items"`
	} `json:"gallery_data"`
	MediaMetadata map[string]struct {
		Previews []struct {
			URL string `json:"u"`
		} `json:"p"`
	} `json:"media_metadata"`
}

type infoListing struct {
	Data struct {
		Children []struct {
			Kind string     `json:"kind"`
			Data submission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Resolve fetches the submission behind the given post URL.
func (c *Client) Resolve(ctx context.Context, postURL string) (*Post, error) {
	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/info?url=%s", c.apiURL, url.QueryEscape(postURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolve submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("info endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var listing infoListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode info response: %w", err)
	}
	if len(listing.Data.Children) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, postURL)
	}

	return newPost(listing.Data.Children[0].Data), nil
}

func newPost(sub submission) *Post {
	post := &Post{
		ID:        sub.ID,
		Permalink: sub.Permalink,
		URL:       sub.URL,
		IsSelf:    sub.IsSelf,
		IsVideo:   sub.IsVideo,
	}
	if sub.Media != nil && sub.Media.RedditVideo != nil {
		post.FallbackVideoURL = sub.Media.RedditVideo.FallbackURL
	}
	post.GalleryItems = galleryItems(sub)
	return post
}

// galleryItems pairs media_metadata entries with the gallery's declared item
// order. media_metadata alone is an unordered map; gallery_data.items is the
// display order, so it drives iteration. When gallery_data is missing the
// ids are sorted for a deterministic fallback.
func galleryItems(sub submission) []GalleryItem {
	if len(sub.MediaMetadata) == 0 {
		return nil
	}

	var order []string
	if sub.GalleryData != nil {
		for _, item := range sub.GalleryData.Items {
			order = append(order, item.MediaID)
		}
	}
	if len(order) == 0 {
		for id := range sub.MediaMetadata {
			order = append(order, id)
		}
		sort.Strings(order)
	}

	items := make([]GalleryItem, 0, len(order))
	for _, id := range order {
		meta, ok := sub.MediaMetadata[id]
		if !ok || len(meta.Previews) == 0 {
			continue
		}
		items = append(items, GalleryItem{
			MediaID:    id,
			PreviewURL: html.UnescapeString(meta.Previews[0].URL),
		})
	}
	return items
}
