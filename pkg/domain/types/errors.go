package types

import "github.com/m-mizutani/goerr/v2"

// Error kinds. Every kind is fatal to a publish run.
var (
	ErrTagConfig     = goerr.NewTag("config")
	ErrTagNotFound   = goerr.NewTag("not_found")
	ErrTagFilesystem = goerr.NewTag("filesystem")
	ErrTagUpload     = goerr.NewTag("upload")
)
