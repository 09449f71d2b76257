// Package classifier is the HTTP client of the remote classification
// service: it submits traffic logs for labeling and lists previously
// produced result files.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync/atomic"

	apperrors "cstdportal/internal/errors"
)

// FallbackFilename is used when the service reply carries no usable
// Content-Disposition filename.
const FallbackFilename = "classified_packets.csv"

// UploadResult is the labeled output of one classification run. It is
// consumed immediately and never persisted.
type UploadResult struct {
	Filename string
	Data     []byte
}

// Client talks to the classification service. At most one submission may be
// in flight per client instance.
type Client struct {
	httpClient  *http.Client
	classifyURL string
	filesURL    string
	inFlight    atomic.Bool
}

// NewClient creates a classifier client for the given endpoint base URLs.
func NewClient(classifyURL, filesURL string) *Client {
	return &Client{
		httpClient:  &http.Client{},
		classifyURL: classifyURL,
		filesURL:    filesURL,
	}
}

// Submit uploads one file for classification and returns the labeled result.
// A second submission while one is in flight is rejected locally with
// ErrBusy; no request is issued. The in-flight flag is cleared regardless of
// outcome so a new file can be submitted afterwards.
func (c *Client) Submit(ctx context.Context, filename string, file io.Reader) (*UploadResult, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, apperrors.ErrBusy
	}
	defer c.inFlight.Store(false)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.classifyURL, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

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
		return nil, fmt.Errorf("read result: %w", err)
	}
	return &UploadResult{
		Filename: dispositionFilename(resp.Header.Get("Content-Disposition")),
		Data:     data,
	}, nil
}

// remoteError reads a non-2xx body and surfaces its JSON "error" field
// verbatim, or a generic HTTP status message when the body is unparseable.
func remoteError(resp *http.Response) error {
	text, _ := io.ReadAll(resp.Body)

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(text, &payload); err == nil && payload.Error != "" {
		return &apperrors.RemoteError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &apperrors.RemoteError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// dispositionFilename extracts the suggested filename from a
// Content-Disposition header following the `filename="<name>"` or
// `filename=<name>` convention, falling back to FallbackFilename.
func dispositionFilename(header string) string {
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		value, ok := strings.CutPrefix(part, "filename=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		if value != "" {
			return value
		}
	}
	return FallbackFilename
}
