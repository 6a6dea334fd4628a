package config

import (
	"context"
	"strings"

	"github.com/m-mizutani/assetpub/pkg/domain/interfaces"
	"github.com/m-mizutani/assetpub/pkg/domain/types"
	githubinfra "github.com/m-mizutani/assetpub/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token      string `masq:"secret"`
	APIURL     string
	Repository string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token to call the release API",
			Destination: &c.Token,
			Sources:     cli.EnvVars("ASSETPUB_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API endpoint",
			Value:       "https://api.github.com/",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("ASSETPUB_GITHUB_API_URL", "GITHUB_API_URL"),
		},
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Target repository in owner/repo form",
			Destination: &c.Repository,
			Sources:     cli.EnvVars("ASSETPUB_REPOSITORY", "GITHUB_REPOSITORY"),
		},
	}
}

// OwnerRepo splits Repository into owner and repository name
func (c *GitHub) OwnerRepo() (string, string, error) {
	owner, repo, ok := strings.Cut(c.Repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", goerr.New("repository must be in owner/repo form",
			goerr.V("repository", c.Repository),
			goerr.T(types.ErrTagConfig))
	}
	return owner, repo, nil
}

// NewClient creates a GitHub API client from the configuration
func (c *GitHub) NewClient(ctx context.Context) (interfaces.GitHubClient, error) {
	if c.Token == "" {
		return nil, goerr.New("GitHub token is required", goerr.T(types.ErrTagConfig))
	}

	return githubinfra.NewClient(ctx, c.Token, githubinfra.WithBaseURL(c.APIURL))
}
