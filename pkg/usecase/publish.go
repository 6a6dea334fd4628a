package usecase

import (
	"context"

	"github.com/m-mizutani/assetpub/pkg/domain/interfaces"
	"github.com/m-mizutani/assetpub/pkg/domain/model"
	"github.com/m-mizutani/assetpub/pkg/domain/types"
	"github.com/m-mizutani/assetpub/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type publishUseCase struct {
	cfg          model.PublishConfig
	githubClient interfaces.GitHubClient
	walker       interfaces.FileWalker
	uploader     interfaces.AssetUploader
}

// PublishOption is a functional option for PublishUseCase
type PublishOption func(*publishUseCase)

// WithUploader replaces the default AssetUploader
func WithUploader(uploader interfaces.AssetUploader) PublishOption {
	return func(uc *publishUseCase) {
		uc.uploader = uploader
	}
}

// NewPublish creates a new instance of PublishUseCase
func NewPublish(
	cfg model.PublishConfig,
	githubClient interfaces.GitHubClient,
	walker interfaces.FileWalker,
	opts ...PublishOption,
) (interfaces.PublishUseCase, error) {
	if cfg.AssetDir == "" {
		return nil, goerr.New("asset directory is required", goerr.T(types.ErrTagConfig))
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, goerr.New("repository is required",
			goerr.V("owner", cfg.Owner),
			goerr.V("repo", cfg.Repo),
			goerr.T(types.ErrTagConfig))
	}
	if cfg.Concurrency < 0 {
		return nil, goerr.New("concurrency must not be negative",
			goerr.V("concurrency", cfg.Concurrency),
			goerr.T(types.ErrTagConfig))
	}
	if cfg.Tag == "" {
		cfg.Tag = model.LatestTag
	}

	uc := &publishUseCase{
		cfg:          cfg,
		githubClient: githubClient,
		walker:       walker,
		uploader:     NewAssetUploader(githubClient),
	}
	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

// Publish resolves the release, walks the asset directory and uploads every file.
// Any failure aborts the run and no URL is returned.
func (uc *publishUseCase) Publish(ctx context.Context) (*model.PublishResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Publishing assets",
		"owner", uc.cfg.Owner,
		"repo", uc.cfg.Repo,
		"tag", uc.cfg.Tag,
		"asset_dir", uc.cfg.AssetDir,
	)

	release, err := uc.resolveRelease(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("Resolved release",
		"id", release.ID,
		"name", release.Name,
		"tag_name", release.TagName,
	)

	paths, err := uc.walker.WalkFiles(uc.cfg.AssetDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to enumerate assets", goerr.V("asset_dir", uc.cfg.AssetDir))
	}
	assets := model.NewAssets(paths)

	logger.Info("Found assets", "count", len(assets))

	urls, err := async.Gather(ctx, assets, uc.cfg.Concurrency, func(ctx context.Context, asset model.Asset) (string, error) {
		return uc.uploader.Upload(ctx, release, asset)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload assets",
			goerr.V("tag", release.TagName),
			goerr.V("count", len(assets)))
	}

	logger.Info("Published assets",
		"tag_name", release.TagName,
		"count", len(urls),
	)

	return &model.PublishResult{
		Release: release,
		URLs:    urls,
	}, nil
}

func (uc *publishUseCase) resolveRelease(ctx context.Context) (*model.Release, error) {
	if uc.cfg.Tag == model.LatestTag {
		release, err := uc.githubClient.GetLatestRelease(ctx, uc.cfg.Owner, uc.cfg.Repo)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve latest release")
		}
		return release, nil
	}

	release, err := uc.githubClient.GetReleaseByTag(ctx, uc.cfg.Owner, uc.cfg.Repo, uc.cfg.Tag)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve release", goerr.V("tag", uc.cfg.Tag))
	}
	return release, nil
}
