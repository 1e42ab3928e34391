package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrFragmentNotFound = errors.New("fragment not found")

// FragmentSource maps a page name to its markup fragment.
type FragmentSource interface {
	Fetch(ctx context.Context, page string) ([]byte, error)
}

func fragmentPath(page string) string {
	return "pages/" + page + ".html"
}

// FSSource reads pages/{page}.html from a file system, usually the embedded
// web assets or a directory on disk.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(ctx context.Context, page string) ([]byte, error) {
	content, err := fs.ReadFile(s.fsys, fragmentPath(page))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFragmentNotFound, page)
	}
	return content, err
}

// HTTPSource fetches {baseURL}/pages/{page}.html. Any non-2xx answer is an
// error and nothing is retried.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSource(baseURL string, httpClient *http.Client) *HTTPSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (s *HTTPSource) Fetch(ctx context.Context, page string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+fragmentPath(page), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to fetch fragment %s: %v", page, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrFragmentNotFound, page)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to load page %s.html: status %d", page, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
