// Package gateway fetches and decodes the three source payloads, abstracting
// away where they are stored.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"go.uber.org/zap"
)

// Fetcher defines the behavior of a gateway for fetching the source payloads.
type Fetcher interface {
	FetchRoles(ctx context.Context) ([]domain.RoleGroup, error)
	FetchContributors(ctx context.Context) ([]domain.ContributorGroup, error)
	FetchReviews(ctx context.Context) ([]domain.ReviewGroup, error)
}

// Files names the three payload files inside a source location.
type Files struct {
	Roles        string
	Contributors string
	Reviews      string
}

// DefaultFiles are the file names published alongside the dashboards.
var DefaultFiles = Files{
	Roles:        "invited-expert-roles.json",
	Contributors: "pr-contributors.json",
	Reviews:      "hr-reviewers.json",
}

// githubScheme prefixes a location stored in a GitHub repository.
const githubScheme = "github:"

// New returns the gateway matching the location: "github:owner/repo[/dir][@ref]"
// for a GitHub repository, an http(s) base URL, or a local directory.
func New(location, token string, files Files, logger *zap.Logger) (Fetcher, error) {
	if strings.HasPrefix(location, githubScheme) {
		return NewGitHubGateway(location, token, files, logger)
	}
	return NewSourceGateway(location, files, logger)
}

// reader returns the raw bytes of one payload file.
type reader func(ctx context.Context, name string) ([]byte, error)

// decoder shares the decoding logic between gateways.
type decoder struct {
	read  reader
	files Files
}

func (d decoder) FetchRoles(ctx context.Context) ([]domain.RoleGroup, error) {
	return fetch[domain.RoleGroup](ctx, d.read, d.files.Roles)
}

func (d decoder) FetchContributors(ctx context.Context) ([]domain.ContributorGroup, error) {
	return fetch[domain.ContributorGroup](ctx, d.read, d.files.Contributors)
}

func (d decoder) FetchReviews(ctx context.Context) ([]domain.ReviewGroup, error) {
	return fetch[domain.ReviewGroup](ctx, d.read, d.files.Reviews)
}

func fetch[T any](ctx context.Context, read reader, name string) ([]T, error) {
	data, err := read(ctx, name)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return out, nil
}
