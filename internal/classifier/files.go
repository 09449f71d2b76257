package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	apperrors "cstdportal/internal/errors"
)

// RemoteFileEntry is a previously produced result file on the remote
// service. Entries are fetched fresh on each listing and never cached.
type RemoteFileEntry struct {
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}

// ListResultFiles fetches the result file listing. Any failure, network or
// non-2xx, is reported as ErrListingFailed.
func (c *Client) ListResultFiles(ctx context.Context) ([]RemoteFileEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.filesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrListingFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrListingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrListingFailed, remoteError(resp))
	}

	var payload struct {
		Files []string `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrListingFailed, err)
	}

	entries := make([]RemoteFileEntry, 0, len(payload.Files))
	for _, name := range payload.Files {
		entries = append(entries, RemoteFileEntry{
			Name:        name,
			DownloadURL: c.DownloadURL(name),
		})
	}
	return entries, nil
}

// DownloadURL builds the remote download reference for a listed file. No
// data is transferred until the reference is followed.
func (c *Client) DownloadURL(name string) string {
	return c.filesURL + "/" + url.PathEscape(name)
}

// Download fetches one previously produced result file.
func (c *Client) Download(ctx context.Context, name string) (*UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	filename := dispositionFilename(resp.Header.Get("Content-Disposition"))
	if filename == FallbackFilename {
		filename = name
	}
	return &UploadResult{Filename: filename, Data: data}, nil
}
