package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"pickup-vendor-backend/config"
	"pickup-vendor-backend/internal/model"
)

// TokenSource supplies the vendor's bearer token for upstream requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the logistics backend on behalf of one vendor.
type Client struct {
	cfg    *config.UpstreamConfig
	client *http.Client
	tokens TokenSource
}

// NewClient creates and initializes an upstream API client.
func NewClient(cfg *config.UpstreamConfig, tokens TokenSource) *Client {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Client will not use a proxy.", cfg.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		tokens: tokens,
	}
}

// FetchPage fetches a single page of pickup records for the given resource.
func (c *Client) FetchPage(ctx context.Context, resource string, page, pageSize int) (*PageResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(pageSize))
	endpoint := fmt.Sprintf("%s/api/%s?%s", c.cfg.BaseURL, resource, q.Encode())

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var envelope listEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s response: %w", resource, err)
	}

	resp := &PageResponse{
		Records: envelope.Data,
		Vendor:  envelope.Vendor,
	}
	if envelope.Meta != nil {
		resp.Meta = *envelope.Meta
	} else {
		// Backends without pagination metadata serve everything at once.
		resp.Meta = model.PageMeta{CurrentPage: page, LastPage: page}
	}
	return resp, nil
}

// FetchVendor fetches the vendor's own profile.
func (c *Client) FetchVendor(ctx context.Context) (*model.Vendor, error) {
	endpoint := c.cfg.BaseURL + "/api/get-vendor-details"
	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var envelope vendorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vendor response: %w", err)
	}
	if envelope.Vendor != nil {
		return envelope.Vendor, nil
	}
	if envelope.Data != nil {
		return envelope.Data, nil
	}

	// Some deployments return the profile as the top-level object.
	var vendor model.Vendor
	if err := json.Unmarshal(body, &vendor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vendor response: %w", err)
	}
	return &vendor, nil
}

// SubmitUpdate posts the assembled price payload for one pickup and
// returns the server's confirmation message.
func (c *Client) SubmitUpdate(ctx context.Context, pickupID int64, payload model.UpdatePayload) (string, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal update payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/update-flower-prices/%d", c.cfg.BaseURL, pickupID)
	body, err := c.do(ctx, http.MethodPost, endpoint, jsonBody)
	if err != nil {
		return "", err
	}

	var envelope messageEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message, nil
	}
	return "Prices updated successfully.", nil
}

// StaticTokenSource is a TokenSource with a fixed token, used in tests and
// for deployments that configure the token directly.
type StaticTokenSource string

// Token returns the fixed token.
func (s StaticTokenSource) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// do performs one authenticated request and classifies failures into the
// transport/server taxonomy.
func (c *Client) do(ctx context.Context, method, endpoint string, jsonBody []byte) ([]byte, error) {
	var reader io.Reader
	if jsonBody != nil {
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range c.cfg.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		srvErr := &ServerError{Status: resp.StatusCode}
		var envelope messageEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
			srvErr.Message = envelope.Message
		} else if len(body) > 0 {
			srvErr.Message = string(body)
		}
		return nil, srvErr
	}

	return body, nil
}
