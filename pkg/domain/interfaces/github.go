package interfaces

import (
	"context"

	"github.com/m-mizutani/assetpub/pkg/domain/model"
)

// GitHubClient defines operations for interacting with GitHub release API
type GitHubClient interface {
	// GetLatestRelease returns the most recent published release
	GetLatestRelease(ctx context.Context, owner, repo string) (*model.Release, error)

	// GetReleaseByTag returns the release with exactly the given tag
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.Release, error)

	// UploadReleaseAsset sends data to the release's upload target and returns the browser download URL
	UploadReleaseAsset(ctx context.Context, release *model.Release, name, contentType string, data []byte) (string, error)
}
