// Package netx provides plain HTTP transfer helpers that sit outside the
// authenticated API surface.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DownloadFile fetches the file at url. Report files live on public CDN
// URLs issued by the backend, so no auth header is attached.
func DownloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	return io.ReadAll(resp.Body)
}
