package index

import (
	"strconv"

	"git.handmade.network/hmn/mashinka/src/config"
	"git.handmade.network/hmn/mashinka/src/grow"
	"git.handmade.network/hmn/mashinka/src/mashinka"
	"git.handmade.network/hmn/mashinka/src/utils"
	"github.com/spf13/cobra"
)

func init() {
	var postsPath, translationsPath, indexPath string

	indexCommand := &cobra.Command{
		Use:   "index",
		Short: "Build the search index from the published posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := Options{DryRun: mashinka.DryRun}
			var err error
			if opts.PostsPath, err = config.Require(utils.OrDefault(postsPath, config.Config.PostsPath), "--posts-path or "+config.EnvPostsPath); err != nil {
				return err
			}
			if opts.TranslationsPath, err = config.Require(utils.OrDefault(translationsPath, config.Config.TranslationsPath), "--translations-path or "+config.EnvTranslationsPath); err != nil {
				return err
			}
			opts.IndexPath = utils.OrDefault(indexPath, config.Config.IndexPath)
			if !opts.DryRun {
				if _, err = config.Require(opts.IndexPath, "--index-path or "+config.EnvIndexPath); err != nil {
					return err
				}
			}
			if opts.Langs, err = languages(config.Config.Langs); err != nil {
				return err
			}

			res, err := Run(opts)
			if err != nil {
				return err
			}

			result := mashinka.CommandResult{Command: cmd.Name()}
			result.Add("items", strconv.Itoa(len(res.Items)))
			if opts.DryRun {
				result.Add("index", res.Output)
			} else {
				result.Add("index", opts.IndexPath)
			}
			mashinka.Report(cmd.OutOrStdout(), result)
			return nil
		},
	}
	indexCommand.Flags().StringVar(&postsPath, "posts-path", "", "Root of the posts tree (default $"+config.EnvPostsPath+")")
	indexCommand.Flags().StringVar(&translationsPath, "translations-path", "", "Root of the translations tree (default $"+config.EnvTranslationsPath+")")
	indexCommand.Flags().StringVar(&indexPath, "index-path", "", "Index file to write (default $"+config.EnvIndexPath+")")

	mashinka.MashinkaCommand.AddCommand(indexCommand)
}

// languages parses the configured language codes.
func languages(codes []string) ([]grow.Lang, error) {
	if len(codes) == 0 {
		return nil, &config.MissingValueError{Name: config.EnvLangs}
	}
	langs := make([]grow.Lang, 0, len(codes))
	for _, code := range codes {
		lang, err := grow.ParseLang(code)
		if err != nil {
			return nil, err
		}
		langs = append(langs, lang)
	}
	return langs, nil
}
