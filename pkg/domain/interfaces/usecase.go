package interfaces

import (
	"context"

	"github.com/m-mizutani/assetpub/pkg/domain/model"
)

// FileWalker lists files under a directory
type FileWalker interface {
	WalkFiles(root string) ([]string, error)
}

// AssetUploader uploads a single asset to a release
type AssetUploader interface {
	// Upload sends the asset and returns its download URL
	Upload(ctx context.Context, release *model.Release, asset model.Asset) (string, error)
}

// PublishUseCase resolves a release and uploads every file of the asset directory to it
type PublishUseCase interface {
	Publish(ctx context.Context) (*model.PublishResult, error)
}
