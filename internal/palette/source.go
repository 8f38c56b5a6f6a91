package palette

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// MaxImageBytes caps the size of fetched or decoded images.
	MaxImageBytes = 10 << 20

	userAgent    = "mood-playlist/1.0"
	fetchTimeout = 10 * time.Second
)

var (
	// ErrFetchFailed is returned when an image URL does not answer with 2xx.
	ErrFetchFailed = errors.New("failed to fetch image")

	// ErrImageTooLarge is returned when an image exceeds MaxImageBytes.
	ErrImageTooLarge = errors.New("image too large")

	// ErrInvalidBase64 is returned when an embedded image cannot be decoded.
	ErrInvalidBase64 = errors.New("invalid base64 image")
)

// Source describes where an image comes from. Base64 wins over URL.
// Base64 may be a bare payload or a data URL ("data:image/png;base64,...").
type Source struct {
	URL    string
	Base64 string
}

// Empty reports whether the source names no image at all.
func (s Source) Empty() bool {
	return s.URL == "" && s.Base64 == ""
}

// Loader resolves a Source into raw image bytes.
type Loader struct {
	httpClient *http.Client
}

// NewLoader creates a Loader with a bounded HTTP timeout.
func NewLoader() *Loader {
	return &Loader{
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// Load returns the image bytes for src, or nil for an empty source.
func (l *Loader) Load(ctx context.Context, src Source) ([]byte, error) {
	switch {
	case src.Base64 != "":
		return decodeBase64Image(src.Base64)
	case src.URL != "":
		return l.fetch(ctx, src.URL)
	default:
		return nil, nil
	}
}

// decodeBase64Image strips an optional data URL prefix and decodes the payload.
func decodeBase64Image(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		_, after, _ := strings.Cut(payload, ",")
		payload = after
	}
	payload = strings.TrimSpace(payload)

	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients strip padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
		}
	}
	return data, nil
}

// fetch downloads an image, refusing bodies larger than MaxImageBytes.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	return body, nil
}
