package deploy

import (
	"strconv"

	"git.handmade.network/hmn/mashinka/src/config"
	"git.handmade.network/hmn/mashinka/src/mashinka"
	"git.handmade.network/hmn/mashinka/src/utils"
	"github.com/spf13/cobra"
)

func init() {
	var buildPath string

	deployCommand := &cobra.Command{
		Use:   "deploy",
		Short: "Archive the built site and upload it to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config.Deploy
			opts := Options{
				Key:    cfg.Key,
				DryRun: mashinka.DryRun,
			}
			var err error
			if opts.BuildPath, err = config.Require(utils.OrDefault(buildPath, config.Config.BuildPath), "--build-path or "+config.EnvBuildPath); err != nil {
				return err
			}

			destination := cfg.Bucket + "/" + cfg.Key
			if !opts.DryRun {
				for _, required := range []struct{ value, name string }{
					{cfg.Bucket, config.EnvDeployBucket},
					{cfg.Key, config.EnvDeployKey},
					{cfg.AccessKey, config.EnvDeployAccessKey},
					{cfg.SecretKey, config.EnvDeploySecretKey},
				} {
					if _, err := config.Require(required.value, required.name); err != nil {
						return err
					}
				}
				if opts.Uploader, err = NewS3Uploader(cmd.Context(), cfg); err != nil {
					return err
				}
			}

			res, err := Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			result := mashinka.CommandResult{Command: cmd.Name()}
			result.Add("files", strconv.Itoa(res.Files))
			result.Add("size", strconv.FormatInt(res.Size, 10)+" bytes")
			if opts.DryRun {
				result.Add("archive", res.ArchivePath)
			} else {
				result.Add("destination", cfg.Endpoint+" "+destination)
				result.Add("attempts", strconv.Itoa(res.Attempts))
			}
			mashinka.Report(cmd.OutOrStdout(), result)
			return nil
		},
	}
	deployCommand.Flags().StringVar(&buildPath, "build-path", "", "Directory with the built site (default $"+config.EnvBuildPath+")")

	mashinka.MashinkaCommand.AddCommand(deployCommand)
}
