package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/assetpub/pkg/domain/model"
	"github.com/m-mizutani/assetpub/pkg/domain/types"
	githubinfra "github.com/m-mizutani/assetpub/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// callRecorder records requests received by the fake API
type callRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *callRecorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *callRecorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.calls...)
}

// newFakeGitHub starts a fake GitHub REST API serving one release tagged v1.2.3
func newFakeGitHub(t *testing.T) (*httptest.Server, *callRecorder) {
	calls := &callRecorder{}
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	release := func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         1,
			"name":       "Release 1.2.3",
			"tag_name":   "v1.2.3",
			"upload_url": server.URL + "/uploads/repos/owner/repo/releases/1/assets{?name,label}",
		})
	}

	mux.HandleFunc("GET /repos/owner/repo/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		calls.add("latest")
		release(w)
	})
	mux.HandleFunc("GET /repos/owner/repo/releases/tags/{tag}", func(w http.ResponseWriter, r *http.Request) {
		calls.add("tag:" + r.PathValue("tag"))
		if r.PathValue("tag") != "v1.2.3" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		release(w)
	})
	mux.HandleFunc("POST /uploads/repos/owner/repo/releases/1/assets", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		calls.add("upload:" + name + ":" + r.Header.Get("Content-Type"))

		if name == "duplicate.txt" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Validation Failed","errors":[{"resource":"ReleaseAsset","code":"already_exists","field":"name"}]}`))
			return
		}

		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                   10,
			"name":                 name,
			"size":                 len(body),
			"browser_download_url": "https://host/" + name,
		})
	})

	return server, calls
}

func TestClient_GetRelease(t *testing.T) {
	ctx := context.Background()
	server, calls := newFakeGitHub(t)

	client, err := githubinfra.NewClient(ctx, "test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	t.Run("latest release", func(t *testing.T) {
		release, err := client.GetLatestRelease(ctx, "owner", "repo")
		gt.NoError(t, err)
		gt.Value(t, release.ID).Equal(int64(1))
		gt.Value(t, release.TagName).Equal("v1.2.3")
		gt.Value(t, release.Name).Equal("Release 1.2.3")
		gt.String(t, release.UploadURL).Contains("{?name,label}")
	})

	t.Run("release by tag", func(t *testing.T) {
		release, err := client.GetReleaseByTag(ctx, "owner", "repo", "v1.2.3")
		gt.NoError(t, err)
		gt.Value(t, release.TagName).Equal("v1.2.3")
	})

	t.Run("missing tag is not found", func(t *testing.T) {
		release, err := client.GetReleaseByTag(ctx, "owner", "repo", "v9.9.9")
		gt.Error(t, err)
		gt.Value(t, release).Nil()
		gt.True(t, goerr.HasTag(err, types.ErrTagNotFound))
	})

	got := calls.Calls()
	gt.A(t, got).Length(3)
	gt.Value(t, got[0]).Equal("latest")
	gt.Value(t, got[1]).Equal("tag:v1.2.3")
	gt.Value(t, got[2]).Equal("tag:v9.9.9")
}

func TestClient_UploadReleaseAsset(t *testing.T) {
	ctx := context.Background()
	server, calls := newFakeGitHub(t)

	client, err := githubinfra.NewClient(ctx, "test-token", githubinfra.WithBaseURL(server.URL))
	gt.NoError(t, err)

	release, err := client.GetLatestRelease(ctx, "owner", "repo")
	gt.NoError(t, err)

	t.Run("uploads and returns download URL", func(t *testing.T) {
		url, err := client.UploadReleaseAsset(ctx, release, "readme.txt", "text/plain", []byte("hello"))
		gt.NoError(t, err)
		gt.Value(t, url).Equal("https://host/readme.txt")
		got := calls.Calls()
		gt.Value(t, got[len(got)-1]).Equal("upload:readme.txt:text/plain")
	})

	t.Run("duplicate name fails with upload error", func(t *testing.T) {
		_, err := client.UploadReleaseAsset(ctx, release, "duplicate.txt", "text/plain", []byte("hello"))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagUpload))
		gt.String(t, err.Error()).Contains("failed to upload release asset")
	})

	t.Run("release without upload URL fails", func(t *testing.T) {
		_, err := client.UploadReleaseAsset(ctx, &model.Release{ID: 2}, "a.txt", "text/plain", nil)
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, types.ErrTagUpload))
	})
}

func TestClient_WithRealAPI(t *testing.T) {
	token := os.Getenv("TEST_GITHUB_TOKEN")
	repository := os.Getenv("TEST_GITHUB_REPOSITORY")
	if token == "" || repository == "" {
		t.Skip("Test GitHub credentials not provided via environment variables")
	}

	owner, repo, ok := strings.Cut(repository, "/")
	if !ok {
		t.Fatalf("TEST_GITHUB_REPOSITORY must be owner/repo: %s", repository)
	}

	ctx := context.Background()
	client, err := githubinfra.NewClient(ctx, token)
	gt.NoError(t, err)

	release, err := client.GetLatestRelease(ctx, owner, repo)
	gt.NoError(t, err)
	t.Logf("latest release: %s (%s)", release.Name, release.TagName)
}
