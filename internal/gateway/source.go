package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SourceGateway reads the payloads from a local directory or an http(s) base URL.
type SourceGateway struct {
	decoder

	location   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSourceGateway creates a gateway for a directory or an http(s) base URL.
func NewSourceGateway(location string, files Files, logger *zap.Logger) (*SourceGateway, error) {
	if location == "" {
		return nil, fmt.Errorf("source location is required")
	}
	g := &SourceGateway{
		location:   location,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	read := g.readFile
	if isHTTP(location) {
		if _, err := url.Parse(location); err != nil {
			return nil, fmt.Errorf("failed to parse source URL: %w", err)
		}
		read = g.readURL
	}
	g.decoder = decoder{read: read, files: files}
	return g, nil
}

func isHTTP(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (g *SourceGateway) readFile(_ context.Context, name string) ([]byte, error) {
	path := filepath.Join(g.location, name)
	g.logger.Debug("reading source file", zap.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (g *SourceGateway) readURL(ctx context.Context, name string) ([]byte, error) {
	base, err := url.Parse(g.location)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source URL: %w", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	target := base.ResolveReference(&url.URL{Path: name}).String()

	g.logger.Debug("fetching source URL", zap.String("url", target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", target, err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", target, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", target, err)
	}
	return data, nil
}
