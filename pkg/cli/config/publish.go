package config

import (
	"os"

	"github.com/m-mizutani/assetpub/pkg/domain/model"
	"github.com/m-mizutani/assetpub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Publish holds publish settings
type Publish struct {
	Release     string
	AssetDir    string
	Concurrency int
	OutputFile  string
	ConfigFile  string
}

// publishFile is the schema of the TOML config file
type publishFile struct {
	Release     string `toml:"release"`
	AssetDir    string `toml:"asset_dir"`
	Concurrency int    `toml:"concurrency"`
	Repository  string `toml:"repository"`
}

// Flags returns CLI flags for publish configuration
func (c *Publish) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "release",
			Aliases:     []string{"r"},
			Usage:       `Release tag to upload to, "latest" for the most recent release`,
			Value:       model.LatestTag,
			Destination: &c.Release,
			Sources:     cli.EnvVars("ASSETPUB_RELEASE", "INPUT_RELEASE", "INPUT_RELEASE_TAG"),
		},
		&cli.StringFlag{
			Name:        "asset-dir",
			Aliases:     []string{"d"},
			Usage:       "Directory whose files are uploaded recursively",
			Destination: &c.AssetDir,
			Sources:     cli.EnvVars("ASSETPUB_ASSET_DIR", "INPUT_ASSET_DIR", "INPUT_ASSETS"),
		},
		&cli.IntFlag{
			Name:        "concurrency",
			Usage:       "Maximum number of parallel uploads, 0 for unlimited",
			Value:       0,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("ASSETPUB_CONCURRENCY"),
		},
		&cli.StringFlag{
			Name:        "github-output",
			Usage:       "File to write step outputs to",
			Destination: &c.OutputFile,
			Sources:     cli.EnvVars("GITHUB_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with default publish settings",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("ASSETPUB_CONFIG"),
		},
	}
}

// LoadFile fills settings that were not given by flags or environment variables from ConfigFile.
// isSet reports whether a flag was explicitly set.
func (c *Publish) LoadFile(isSet func(name string) bool, gh *GitHub) error {
	if c.ConfigFile == "" {
		return nil
	}

	raw, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file",
			goerr.V("path", c.ConfigFile),
			goerr.T(types.ErrTagConfig))
	}

	var file publishFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return goerr.Wrap(err, "failed to parse config file",
			goerr.V("path", c.ConfigFile),
			goerr.T(types.ErrTagConfig))
	}

	if file.Release != "" && !isSet("release") {
		c.Release = file.Release
	}
	if file.AssetDir != "" && !isSet("asset-dir") {
		c.AssetDir = file.AssetDir
	}
	if file.Concurrency != 0 && !isSet("concurrency") {
		c.Concurrency = file.Concurrency
	}
	if file.Repository != "" && gh != nil && !isSet("repository") {
		gh.Repository = file.Repository
	}

	return nil
}

// Validate checks required settings
func (c *Publish) Validate() error {
	if c.AssetDir == "" {
		return goerr.New("asset directory is required (--asset-dir)", goerr.T(types.ErrTagConfig))
	}
	return nil
}
