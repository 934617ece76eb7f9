// Package deploy ships the built site to object storage as one tar.gz.
package deploy

import (
	"context"
	"os"
	"time"

	"git.handmade.network/hmn/mashinka/src/logging"
	"git.handmade.network/hmn/mashinka/src/oops"
	"git.handmade.network/hmn/mashinka/src/utils"
	"github.com/jpillora/backoff"
)

const (
	DefaultAttempts = 3
	DefaultRetryMin = 500 * time.Millisecond
	DefaultRetryMax = 10 * time.Second
)

type Options struct {
	BuildPath string
	Key       string
	DryRun    bool

	// Not used on dry runs.
	Uploader Uploader

	// Zero values mean the defaults above.
	Attempts int
	RetryMin time.Duration
}

type Result struct {
	ArchivePath string // kept only on dry runs
	Files       int
	Size        int64
	Key         string
	Attempts    int
}

// Run archives opts.BuildPath and uploads it. A dry run builds the archive and
// leaves it in place without uploading.
func Run(ctx context.Context, opts Options) (Result, error) {
	info, err := os.Stat(opts.BuildPath)
	if err != nil {
		return Result{}, oops.New(err, "failed to read build directory")
	}
	if !info.IsDir() {
		return Result{}, oops.New(nil, "build path %s is not a directory", opts.BuildPath)
	}

	archivePath, files, err := ArchiveToTemp(opts.BuildPath)
	if err != nil {
		return Result{}, err
	}
	archiveInfo, err := os.Stat(archivePath)
	if err != nil {
		return Result{}, oops.New(err, "failed to stat archive")
	}
	result := Result{
		ArchivePath: archivePath,
		Files:       files,
		Size:        archiveInfo.Size(),
		Key:         opts.Key,
	}
	logging.Debug().
		Str("archive", archivePath).
		Int("files", files).
		Int64("size", result.Size).
		Msg("build archived")

	if opts.DryRun {
		return result, nil
	}
	defer os.Remove(archivePath)
	result.ArchivePath = ""

	if opts.Uploader == nil {
		return Result{}, oops.New(nil, "no uploader configured")
	}
	result.Attempts, err = uploadWithRetry(ctx, opts, archivePath)
	if err != nil {
		return Result{}, err
	}
	logging.Info().Str("key", opts.Key).Int("attempts", result.Attempts).Msg("build deployed")

	return result, nil
}

func uploadWithRetry(ctx context.Context, opts Options, archivePath string) (int, error) {
	attempts := utils.OrDefault(opts.Attempts, DefaultAttempts)
	boff := backoff.Backoff{
		Min: utils.OrDefault(opts.RetryMin, DefaultRetryMin),
		Max: DefaultRetryMax,
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = opts.Uploader.Upload(ctx, opts.Key, archivePath)
		if err == nil {
			return attempt, nil
		}
		if attempt == attempts {
			break
		}

		delay := boff.Duration()
		logging.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("upload failed")
		if sleepErr := utils.SleepContext(ctx, delay); sleepErr != nil {
			return attempt, oops.New(err, "upload interrupted")
		}
	}
	return attempts, oops.New(err, "upload failed after %d attempts", attempts)
}
