package model_test

import (
	"testing"

	"github.com/m-mizutani/assetpub/pkg/domain/model"
)

func TestRelease_UploadTarget(t *testing.T) {
	tests := []struct {
		name      string
		uploadURL string
		asset     string
		want      string
		wantErr   bool
	}{
		{
			name:      "Template suffix is dropped",
			uploadURL: "https://uploads.github.com/repos/o/r/releases/1/assets{?name,label}",
			asset:     "app.exe",
			want:      "https://uploads.github.com/repos/o/r/releases/1/assets?name=app.exe",
		},
		{
			name:      "Plain URL",
			uploadURL: "https://uploads.example.com/assets",
			asset:     "my file.txt",
			want:      "https://uploads.example.com/assets?name=my+file.txt",
		},
		{
			name:      "Empty URL",
			uploadURL: "",
			asset:     "a",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := &model.Release{ID: 1, UploadURL: tt.uploadURL}
			got, err := release.UploadTarget(tt.asset)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UploadTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("UploadTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}
