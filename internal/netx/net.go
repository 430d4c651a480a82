// Package netx uploads payloads to presigned object-storage URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPDoer is the part of *http.Client used here.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultClient is used when no client is supplied.
var DefaultClient HTTPDoer = &http.Client{Timeout: 30 * time.Second}

// UploadToPresignedURL PUTs body to url with the given content type. Any
// non-2xx answer is returned as an error carrying the response body.
func UploadToPresignedURL(ctx context.Context, c HTTPDoer, url, contentType string, body []byte) error {
	if c == nil {
		c = DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
