package model

import "path/filepath"

// Asset is a local file to be attached to a release
type Asset struct {
	Path string // Absolute path of the source file
	Name string // Registered filename, the final path segment
}

// NewAsset creates an Asset whose name is derived from the last element of path
func NewAsset(path string) Asset {
	return Asset{
		Path: path,
		Name: filepath.Base(path),
	}
}

// NewAssets converts file paths into assets, keeping their order
func NewAssets(paths []string) []Asset {
	assets := make([]Asset, len(paths))
	for i, p := range paths {
		assets[i] = NewAsset(p)
	}
	return assets
}
