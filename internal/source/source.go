// Package source opens the chart data resources, either from a directory on disk or over
// HTTP. Both report a missing or failing resource as a StatusError so callers can tell it
// apart from a transport failure.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/katiamach/temperature-chart/internal/httpclient"
)

// StatusError reports a resource that answered with a non-success status.
type StatusError struct {
	Location   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Location, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatusError reports whether err is, or wraps, a StatusError.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// DirFetcher serves locations below a URL prefix from a file system.
type DirFetcher struct {
	fsys   fs.FS
	prefix string
}

// NewDirFetcher creates a DirFetcher mapping locations below prefix (e.g. "/data/") to
// files in fsys.
func NewDirFetcher(fsys fs.FS, prefix string) *DirFetcher {
	return &DirFetcher{fsys: fsys, prefix: prefix}
}

// Fetch opens the file behind location.
func (f *DirFetcher) Fetch(_ context.Context, location string) (io.ReadCloser, error) {
	clean := path.Clean("/" + location)
	if !strings.HasPrefix(clean, path.Clean("/"+f.prefix)+"/") {
		return nil, &StatusError{Location: location, StatusCode: http.StatusNotFound}
	}
	name := strings.TrimPrefix(clean, path.Clean("/"+f.prefix)+"/")

	file, err := f.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &StatusError{Location: location, StatusCode: http.StatusNotFound}
	}
	if errors.Is(err, fs.ErrPermission) {
		return nil, &StatusError{Location: location, StatusCode: http.StatusForbidden}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", location, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", location, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, &StatusError{Location: location, StatusCode: http.StatusNotFound}
	}

	return file, nil
}

// HTTPFetcher requests locations relative to a base URL.
type HTTPFetcher struct {
	client *httpclient.Client
	base   *url.URL
}

// NewHTTPFetcher creates an HTTPFetcher resolving locations against baseURL.
func NewHTTPFetcher(client *httpclient.Client, baseURL string) (*HTTPFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	return &HTTPFetcher{client: client, base: base}, nil
}

// Fetch requests location and returns the body of a successful response.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse location: %w", err)
	}

	response, err := f.client.Open(ctx, f.base.ResolveReference(ref).String(), nil)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		f.client.Close(response.Body)
		return nil, &StatusError{Location: location, StatusCode: response.StatusCode}
	}

	return response.Body, nil
}
