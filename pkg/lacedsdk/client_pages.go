package lacedsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// RedirectError is returned by Page when the gate answers with a redirect.
type RedirectError struct {
	StatusCode int
	Location   string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirected (%d) to %s", e.StatusCode, e.Location)
}

// Page fetches the JSON view of a storefront page such as "/" or "/account".
// A gate redirect is reported as *RedirectError.
func (c *Client) Page(ctx context.Context, path string) (*PageResponse, error) {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &RedirectError{StatusCode: resp.StatusCode, Location: resp.Header.Get("Location")}
	}

	var out PageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
