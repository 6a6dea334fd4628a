package model

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// LatestTag is the release tag sentinel meaning "most recent release"
const LatestTag = "latest"

// Release represents a release resolved from GitHub. It is fetched once and never modified.
type Release struct {
	ID        int64  // Release ID
	Name      string // Display name
	TagName   string // Release tag name
	UploadURL string // Upload target issued by GitHub, may be a URI template
}

// PublishResult is the outcome of a successful publish run
type PublishResult struct {
	Release *Release
	URLs    []string // Download URLs in asset order
}

// UploadTarget expands the upload URL template into the request URL for the asset name.
// The template suffix such as "{?name,label}" is dropped.
func (r *Release) UploadTarget(name string) (string, error) {
	base, _, _ := strings.Cut(r.UploadURL, "{")
	if base == "" {
		return "", goerr.New("release has no upload URL", goerr.V("release_id", r.ID))
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse upload URL", goerr.V("upload_url", r.UploadURL))
	}

	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()

	return u.String(), nil
}
