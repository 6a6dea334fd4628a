package walker

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/assetpub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Walker lists files on the local filesystem
type Walker struct{}

// New creates a new Walker
func New() *Walker {
	return &Walker{}
}

// WalkFiles returns absolute paths of all non-directory entries under root, at any depth.
// Symbolic links below root are listed but not followed. The order of the result is unspecified.
func (w *Walker) WalkFiles(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve asset directory",
			goerr.V("root", root),
			goerr.T(types.ErrTagFilesystem))
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open asset directory",
			goerr.V("root", absRoot),
			goerr.T(types.ErrTagFilesystem))
	}
	if !info.IsDir() {
		return nil, goerr.New("asset directory is not a directory",
			goerr.V("root", absRoot),
			goerr.T(types.ErrTagFilesystem))
	}

	// A trailing separator makes WalkDir enter a root that is itself a symlink
	walkRoot := absRoot
	if walkRoot != string(filepath.Separator) {
		walkRoot += string(filepath.Separator)
	}

	files := []string{}
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isRegularFile(path, d) {
			files = append(files, filepath.Clean(path))
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk asset directory",
			goerr.V("root", absRoot),
			goerr.T(types.ErrTagFilesystem))
	}

	return files, nil
}

// isRegularFile reports whether the entry is a regular file or a symlink to one.
// Directories, devices, FIFOs, sockets and dangling symlinks are not assets.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
