package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/assetpub/pkg/cli/config"
	"github.com/m-mizutani/assetpub/pkg/domain/model"
	"github.com/m-mizutani/assetpub/pkg/infra/actions"
	"github.com/m-mizutani/assetpub/pkg/infra/walker"
	"github.com/m-mizutani/assetpub/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// OutputDownloadURLs is the step output holding the JSON array of download URLs
const OutputDownloadURLs = "download_urls"

func cmdPublish(w io.Writer) *cli.Command {
	var (
		publishCfg config.Publish
		githubCfg  config.GitHub
	)

	flags := append(publishCfg.Flags(), githubCfg.Flags()...)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Upload all files in a directory to a release",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := publishCfg.LoadFile(c.IsSet, &githubCfg); err != nil {
				return err
			}
			if err := publishCfg.Validate(); err != nil {
				return err
			}

			owner, repo, err := githubCfg.OwnerRepo()
			if err != nil {
				return err
			}

			logger.Info("Starting assetpub",
				"repository", githubCfg.Repository,
				"release", publishCfg.Release,
				"asset_dir", publishCfg.AssetDir,
				"concurrency", publishCfg.Concurrency,
			)

			githubClient, err := githubCfg.NewClient(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			publishUC, err := usecase.NewPublish(model.PublishConfig{
				Owner:       owner,
				Repo:        repo,
				Tag:         publishCfg.Release,
				AssetDir:    publishCfg.AssetDir,
				Concurrency: publishCfg.Concurrency,
			}, githubClient, walker.New())
			if err != nil {
				return err
			}

			result, err := publishUC.Publish(ctx)
			if err != nil {
				return err
			}

			urls, err := json.Marshal(result.URLs)
			if err != nil {
				return goerr.Wrap(err, "failed to encode download URLs")
			}

			out := actions.New(publishCfg.OutputFile, w)
			if err := out.SetOutput(OutputDownloadURLs, string(urls)); err != nil {
				return goerr.Wrap(err, "failed to set output", goerr.V("name", OutputDownloadURLs))
			}

			printSummary(w, result)
			return nil
		},
	}
}

func printSummary(w io.Writer, result *model.PublishResult) {
	title := color.New(color.Bold)
	url := color.New(color.FgGreen)

	title.Fprintf(w, "Uploaded %d assets to %s\n", len(result.URLs), result.Release.TagName)
	for _, u := range result.URLs {
		url.Fprintf(w, "  %s\n", u)
	}
}
