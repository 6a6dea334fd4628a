package usecase

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"github.com/m-mizutani/assetpub/pkg/domain/interfaces"
	"github.com/m-mizutani/assetpub/pkg/domain/model"
	"github.com/m-mizutani/assetpub/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultContentType is used when the content type can not be guessed from the file name
const DefaultContentType = "application/octet-stream"

type assetUploader struct {
	githubClient interfaces.GitHubClient
}

// NewAssetUploader creates a new instance of AssetUploader
func NewAssetUploader(githubClient interfaces.GitHubClient) interfaces.AssetUploader {
	return &assetUploader{
		githubClient: githubClient,
	}
}

// Upload reads the whole asset into memory and attaches it to the release
func (uc *assetUploader) Upload(ctx context.Context, release *model.Release, asset model.Asset) (string, error) {
	logger := ctxlog.From(ctx)

	contentType := GuessContentType(asset.Name)

	target, err := release.UploadTarget(asset.Name)
	if err != nil {
		return "", goerr.Wrap(err, "invalid upload URL",
			goerr.V("name", asset.Name),
			goerr.T(types.ErrTagUpload))
	}

	logger.Info("Uploading asset",
		"name", asset.Name,
		"path", asset.Path,
		"upload_url", target,
		"content_type", contentType,
	)

	data, err := os.ReadFile(asset.Path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read asset",
			goerr.V("path", asset.Path),
			goerr.T(types.ErrTagUpload))
	}

	url, err := uc.githubClient.UploadReleaseAsset(ctx, release, asset.Name, contentType, data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload asset",
			goerr.V("name", asset.Name),
			goerr.V("path", asset.Path),
			goerr.T(types.ErrTagUpload))
	}

	logger.Debug("Uploaded asset",
		"name", asset.Name,
		"size_bytes", len(data),
		"download_url", url,
	)

	return url, nil
}

// GuessContentType returns the MIME type for the extension of name, or DefaultContentType
func GuessContentType(name string) string {
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		return contentType
	}
	return DefaultContentType
}
