package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// GitHubGateway reads the payloads from a GitHub repository. Files are read
// through GraphQL; blobs GraphQL cannot return in full are downloaded through
// the REST contents API.
type GitHubGateway struct {
	decoder

	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger

	owner string
	repo  string
	dir   string
	ref   string
}

// blobQuery reads one file of the repository as text.
type blobQuery struct {
	Repository struct {
		Object struct {
			Typename string `graphql:"__typename"`
			Blob     struct {
				Text        githubv4.String
				IsTruncated githubv4.Boolean
				IsBinary    githubv4.Boolean
			} `graphql:"... on Blob"`
		} `graphql:"object(expression: $expression)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is optional; public repositories can be read anonymously through
// REST but GraphQL always requires one.
func NewGitHubGateway(location, token string, files Files, logger *zap.Logger) (*GitHubGateway, error) {
	owner, repo, dir, ref, err := ParseGitHubLocation(location)
	if err != nil {
		return nil, err
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}
	return newGitHubGateway(github.NewClient(httpClient), githubv4.NewClient(httpClient), logger, owner, repo, dir, ref, files), nil
}

func newGitHubGateway(rest *github.Client, gql *githubv4.Client, logger *zap.Logger, owner, repo, dir, ref string, files Files) *GitHubGateway {
	g := &GitHubGateway{
		restClient:    rest,
		graphqlClient: gql,
		logger:        logger,
		owner:         owner,
		repo:          repo,
		dir:           dir,
		ref:           ref,
	}
	g.decoder = decoder{read: g.readFile, files: files}
	return g
}

// ParseGitHubLocation splits "github:owner/repo[/dir][@ref]".
func ParseGitHubLocation(location string) (owner, repo, dir, ref string, err error) {
	rest, ok := strings.CutPrefix(location, githubScheme)
	if !ok {
		return "", "", "", "", fmt.Errorf("not a GitHub location: %q", location)
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest, ref = rest[:at], rest[at+1:]
	}
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", "", fmt.Errorf("invalid GitHub location %q: want github:owner/repo[/dir][@ref]", location)
	}
	owner, repo = parts[0], parts[1]
	if len(parts) == 3 {
		dir = parts[2]
	}
	return owner, repo, dir, ref, nil
}

func (g *GitHubGateway) readFile(ctx context.Context, name string) ([]byte, error) {
	filePath := path.Join(g.dir, name)
	ref := g.ref
	if ref == "" {
		ref = "HEAD"
	}
	g.logger.Debug("fetching blob using GraphQL API",
		zap.String("repo", g.owner+"/"+g.repo), zap.String("path", filePath), zap.String("ref", ref))

	var q blobQuery
	variables := map[string]interface{}{
		"owner":      githubv4.String(g.owner),
		"name":       githubv4.String(g.repo),
		"expression": githubv4.String(ref + ":" + filePath),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for %s: %w", filePath, err)
	}
	obj := q.Repository.Object
	if obj.Typename == "" {
		return nil, fmt.Errorf("file %s not found in %s/%s@%s", filePath, g.owner, g.repo, ref)
	}
	if obj.Typename != "Blob" {
		return nil, fmt.Errorf("%s in %s/%s@%s is a %s, not a file", filePath, g.owner, g.repo, ref, obj.Typename)
	}
	if !bool(obj.Blob.IsTruncated) && !bool(obj.Blob.IsBinary) {
		return []byte(obj.Blob.Text), nil
	}

	g.logger.Debug("blob truncated, falling back to REST API", zap.String("path", filePath))
	return g.download(ctx, filePath)
}

func (g *GitHubGateway) download(ctx context.Context, filePath string) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: g.ref}
	file, _, _, err := g.restClient.Repositories.GetContents(ctx, g.owner, g.repo, filePath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get contents with REST API: %w", err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}
	content, contentErr := file.GetContent()
	if contentErr == nil && content != "" {
		return []byte(content), nil
	}

	// Files above 1 MB come without inline content.
	downloadURL := file.GetDownloadURL()
	if downloadURL == "" {
		if contentErr != nil {
			return nil, fmt.Errorf("failed to decode contents of %s: %w", filePath, contentErr)
		}
		return []byte(content), nil
	}
	req, err := g.restClient.NewRequest(http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	var buf bytes.Buffer
	if _, err := g.restClient.Do(ctx, req, &buf); err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", filePath, err)
	}
	return buf.Bytes(), nil
}
