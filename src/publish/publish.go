// Package publish turns a draft into a grow record and a translation catalog
// entry.
package publish

import (
	"os"
	"time"

	"git.handmade.network/hmn/mashinka/src/grow"
	"git.handmade.network/hmn/mashinka/src/logging"
	"git.handmade.network/hmn/mashinka/src/oops"
	"git.handmade.network/hmn/mashinka/src/parsing"
)

// ExcerptLength is how much of the body a dry run previews.
const ExcerptLength = 200

// Options for Run. PostsPath and TranslationsPath may be empty on dry runs.
type Options struct {
	DraftPath        string
	PostsPath        string
	TranslationsPath string
	DryRun           bool

	// Zero means now.
	PublishedAt time.Time
}

type Result struct {
	Post        grow.ApprovedPost
	RecordPath  string
	CatalogPath string
	Record      string
	Translation string

	// Only filled in on dry runs.
	Excerpt string
}

// Run publishes the draft at opts.DraftPath. The record is written first and
// the translation appended after it; if the append fails the record stays.
func Run(opts Options) (Result, error) {
	content, err := os.ReadFile(opts.DraftPath)
	if err != nil {
		return Result{}, oops.New(err, "failed to read draft")
	}

	draft, err := grow.ParseDraft(string(content))
	if err != nil {
		return Result{}, oops.New(err, "failed to parse draft %s", opts.DraftPath)
	}

	var approved grow.ApprovedPost
	if opts.PublishedAt.IsZero() {
		approved = draft.Approve()
	} else {
		approved = draft.ApproveAt(opts.PublishedAt)
	}
	if approved.Slug == "" {
		// Nothing in the title can be spelled in a slug, e.g. "!!!".
		return Result{}, &grow.ValidationError{Field: "slug", Value: approved.Title, Reason: grow.ReasonEmpty}
	}
	record := approved.Record()

	result := Result{
		Post:        approved,
		Record:      record.Render(),
		Translation: approved.Translation().Render(),
	}
	if opts.PostsPath != "" {
		result.RecordPath = record.Path(opts.PostsPath)
	}
	if opts.TranslationsPath != "" {
		result.CatalogPath = grow.CatalogPath(opts.TranslationsPath, approved.Lang)
	}
	logging.Debug().
		Str("slug", approved.Slug).
		Str("lang", approved.Lang.Code()).
		Str("record", result.RecordPath).
		Msg("draft approved")

	if opts.DryRun {
		result.Excerpt, err = parsing.Excerpt(approved.Text, ExcerptLength)
		if err != nil {
			return Result{}, oops.New(err, "failed to render excerpt")
		}
		return result, nil
	}

	if result.RecordPath == "" || result.CatalogPath == "" {
		return Result{}, oops.New(nil, "posts and translations paths are required to publish")
	}
	if err := grow.WriteFile(result.RecordPath, result.Record); err != nil {
		return Result{}, err
	}
	if err := grow.AppendFile(result.CatalogPath, result.Translation); err != nil {
		return Result{}, err
	}
	logging.Info().Str("record", result.RecordPath).Msg("post published")

	return result, nil
}
