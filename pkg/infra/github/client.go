package github

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/assetpub/pkg/domain/interfaces"
	"github.com/m-mizutani/assetpub/pkg/domain/model"
	"github.com/m-mizutani/assetpub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

type client struct {
	githubClient *github.Client
}

type options struct {
	baseURL string
}

// Option is a functional option for the GitHub client
type Option func(*options)

// WithBaseURL sets the REST API endpoint, e.g. for GitHub Enterprise Server
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// NewClient creates a new GitHub client authenticated with token
func NewClient(ctx context.Context, token string, opts ...Option) (interfaces.GitHubClient, error) {
	cfg := &options{}
	for _, opt := range opts {
		opt(cfg)
	}

	var httpClient *http.Client
	if token != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}

	githubClient := github.NewClient(httpClient)

	if cfg.baseURL != "" {
		baseURL := cfg.baseURL
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL",
				goerr.V("url", cfg.baseURL),
				goerr.T(types.ErrTagConfig))
		}
		githubClient.BaseURL = parsed
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// GetLatestRelease returns the most recent published release
func (c *client) GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error) {
	release, _, err := c.githubClient.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return nil, wrapReleaseError(err, "failed to get latest release", owner, repo, model.LatestTag)
	}

	return toRelease(release), nil
}

// GetReleaseByTag returns the release with exactly the given tag
func (c *client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.Release, error) {
	release, _, err := c.githubClient.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return nil, wrapReleaseError(err, "failed to get release by tag", owner, repo, tag)
	}

	return toRelease(release), nil
}

// UploadReleaseAsset posts data to the release's upload URL and returns the browser download URL
func (c *client) UploadReleaseAsset(ctx context.Context, release *model.Release, name, contentType string, data []byte) (string, error) {
	target, err := release.UploadTarget(name)
	if err != nil {
		return "", goerr.Wrap(err, "invalid upload URL",
			goerr.V("upload_url", release.UploadURL),
			goerr.T(types.ErrTagUpload))
	}

	req, err := c.githubClient.NewUploadRequest(target, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create upload request",
			goerr.V("url", target),
			goerr.T(types.ErrTagUpload))
	}

	asset := new(github.ReleaseAsset)
	if _, err := c.githubClient.Do(ctx, req, asset); err != nil {
		return "", goerr.Wrap(err, "failed to upload release asset",
			goerr.V("name", name),
			goerr.V("url", target),
			goerr.T(types.ErrTagUpload))
	}

	return asset.GetBrowserDownloadURL(), nil
}

func toRelease(r *github.RepositoryRelease) *model.Release {
	return &model.Release{
		ID:        r.GetID(),
		Name:      r.GetName(),
		TagName:   r.GetTagName(),
		UploadURL: r.GetUploadURL(),
	}
}

func wrapReleaseError(err error, msg, owner, repo, tag string) error {
	opts := []goerr.Option{
		goerr.V("owner", owner),
		goerr.V("repo", repo),
		goerr.V("tag", tag),
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		opts = append(opts, goerr.T(types.ErrTagNotFound))
	}

	return goerr.Wrap(err, msg, opts...)
}
