package deploy_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.handmade.network/hmn/mashinka/src/config"
	"git.handmade.network/hmn/mashinka/src/deploy"
	"git.handmade.network/hmn/mashinka/src/hmns3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	failures int
	calls    int
	keys     []string
}

func (u *fakeUploader) Upload(ctx context.Context, key string, archivePath string) error {
	u.calls++
	u.keys = append(u.keys, key)
	if _, err := os.Stat(archivePath); err != nil {
		return err
	}
	if u.calls <= u.failures {
		return errors.New("storage unavailable")
	}
	return nil
}

func makeBuild(t *testing.T) string {
	root := t.TempDir()
	require.Nil(t, os.MkdirAll(filepath.Join(root, "en", "posts"), 0o755))
	require.Nil(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hi</h1>"), 0o644))
	require.Nil(t, os.WriteFile(filepath.Join(root, "en", "posts", "post.html"), []byte("post"), 0o644))
	return root
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads once", func(t *testing.T) {
		up := &fakeUploader{}
		res, err := deploy.Run(ctx, deploy.Options{
			BuildPath: makeBuild(t),
			Key:       "build.tar.gz",
			Uploader:  up,
		})
		require.Nil(t, err)
		assert.Equal(t, 1, up.calls)
		assert.Equal(t, []string{"build.tar.gz"}, up.keys)
		assert.Equal(t, 2, res.Files)
		assert.Equal(t, 1, res.Attempts)
		assert.Empty(t, res.ArchivePath)
	})
	t.Run("retries", func(t *testing.T) {
		up := &fakeUploader{failures: 2}
		res, err := deploy.Run(ctx, deploy.Options{
			BuildPath: makeBuild(t),
			Key:       "build.tar.gz",
			Uploader:  up,
			RetryMin:  time.Millisecond,
		})
		require.Nil(t, err)
		assert.Equal(t, 3, res.Attempts)
	})
	t.Run("gives up", func(t *testing.T) {
		up := &fakeUploader{failures: 10}
		_, err := deploy.Run(ctx, deploy.Options{
			BuildPath: makeBuild(t),
			Key:       "build.tar.gz",
			Uploader:  up,
			RetryMin:  time.Millisecond,
		})
		assert.NotNil(t, err)
		assert.Equal(t, deploy.DefaultAttempts, up.calls)
	})
	t.Run("cancelled while waiting", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		up := &fakeUploader{failures: 10}
		_, err := deploy.Run(cancelled, deploy.Options{
			BuildPath: makeBuild(t),
			Key:       "build.tar.gz",
			Uploader:  up,
			RetryMin:  time.Hour,
		})
		assert.NotNil(t, err)
		assert.Equal(t, 1, up.calls)
	})
	t.Run("dry run keeps the archive", func(t *testing.T) {
		up := &fakeUploader{}
		res, err := deploy.Run(ctx, deploy.Options{
			BuildPath: makeBuild(t),
			DryRun:    true,
			Uploader:  up,
		})
		require.Nil(t, err)
		defer os.Remove(res.ArchivePath)
		assert.Equal(t, 0, up.calls)
		assert.FileExists(t, res.ArchivePath)
		assert.Greater(t, res.Size, int64(0))
	})
	t.Run("missing build", func(t *testing.T) {
		_, err := deploy.Run(ctx, deploy.Options{
			BuildPath: filepath.Join(t.TempDir(), "nope"),
			Uploader:  &fakeUploader{},
		})
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestS3Uploader(t *testing.T) {
	storage := t.TempDir()
	srv := httptest.NewServer(hmns3.NewServer(storage))
	defer srv.Close()

	cfg := config.DeployConfig{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "site",
		AccessKey: "access",
		SecretKey: "secret",
		Key:       "build.tar.gz",
	}

	t.Run("extracts into a new bucket", func(t *testing.T) {
		cfg := cfg
		cfg.ExtractArchive = true
		up, err := deploy.NewS3Uploader(context.Background(), cfg)
		require.Nil(t, err)

		_, err = deploy.Run(context.Background(), deploy.Options{
			BuildPath: makeBuild(t),
			Key:       cfg.Key,
			Uploader:  up,
		})
		require.Nil(t, err)

		content, err := os.ReadFile(filepath.Join(storage, "site", "en", "posts", "post.html"))
		require.Nil(t, err)
		assert.Equal(t, "post", string(content))
		assert.NoFileExists(t, filepath.Join(storage, "site", "build.tar.gz"))
	})
	t.Run("stores the archive as an object", func(t *testing.T) {
		up, err := deploy.NewS3Uploader(context.Background(), cfg)
		require.Nil(t, err)

		_, err = deploy.Run(context.Background(), deploy.Options{
			BuildPath: makeBuild(t),
			Key:       cfg.Key,
			Uploader:  up,
		})
		require.Nil(t, err)
		assert.FileExists(t, filepath.Join(storage, "site", "build.tar.gz"))
	})
}
