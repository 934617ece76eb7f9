package publish

import (
	"git.handmade.network/hmn/mashinka/src/config"
	"git.handmade.network/hmn/mashinka/src/mashinka"
	"git.handmade.network/hmn/mashinka/src/utils"
	"github.com/spf13/cobra"
)

func init() {
	var draftPath, postsPath, translationsPath string

	publishCommand := &cobra.Command{
		Use:   "publish",
		Short: "Publish the draft as a grow record and add its title to the translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := Options{DryRun: mashinka.DryRun}
			var err error
			if opts.DraftPath, err = config.Require(utils.OrDefault(draftPath, config.Config.DraftPath), "--draft-path or "+config.EnvDraftPath); err != nil {
				return err
			}
			opts.PostsPath = utils.OrDefault(postsPath, config.Config.PostsPath)
			opts.TranslationsPath = utils.OrDefault(translationsPath, config.Config.TranslationsPath)
			if !opts.DryRun {
				if _, err = config.Require(opts.PostsPath, "--posts-path or "+config.EnvPostsPath); err != nil {
					return err
				}
				if _, err = config.Require(opts.TranslationsPath, "--translations-path or "+config.EnvTranslationsPath); err != nil {
					return err
				}
			}

			res, err := Run(opts)
			if err != nil {
				return err
			}

			result := mashinka.CommandResult{Command: cmd.Name()}
			result.Add("slug", res.Post.Slug)
			if res.RecordPath != "" {
				result.Add("record", res.RecordPath)
			}
			if res.CatalogPath != "" {
				result.Add("translations", res.CatalogPath)
			}
			if opts.DryRun {
				result.Add("dry run", "nothing was written")
				result.Add("excerpt", res.Excerpt)
			}
			mashinka.Report(cmd.OutOrStdout(), result)
			return nil
		},
	}
	publishCommand.Flags().StringVar(&draftPath, "draft-path", "", "Draft file to publish (default $"+config.EnvDraftPath+")")
	publishCommand.Flags().StringVar(&postsPath, "posts-path", "", "Root of the posts tree (default $"+config.EnvPostsPath+")")
	publishCommand.Flags().StringVar(&translationsPath, "translations-path", "", "Root of the translations tree (default $"+config.EnvTranslationsPath+")")

	mashinka.MashinkaCommand.AddCommand(publishCommand)
}
