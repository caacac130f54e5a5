package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// GotenbergClient converts HTML to PDF through the Gotenberg HTTP API.
type GotenbergClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGotenbergClient constructs a client for the Gotenberg instance at baseURL.
func NewGotenbergClient(baseURL string, timeout time.Duration) *GotenbergClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GotenbergClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ping checks that Gotenberg is reachable.
func (c *GotenbergClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

// A4 in inches with 15mm side margins.
var gotenbergFields = map[string]string{
	"paperWidth":      "8.27",
	"paperHeight":     "11.7",
	"marginTop":       "0.7",
	"marginBottom":    "0.7",
	"marginLeft":      "0.59",
	"marginRight":     "0.59",
	"printBackground": "true",
}

// RenderHTML converts a standalone HTML document into PDF bytes.
func (c *GotenbergClient) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}
	for k, v := range gotenbergFields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotenberg: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("gotenberg: render failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return io.ReadAll(resp.Body)
}

// Close is a no-op; the HTTP client holds no resources worth releasing.
func (c *GotenbergClient) Close() error { return nil }
