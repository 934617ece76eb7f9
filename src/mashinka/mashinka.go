// Package mashinka holds the root command every mashinka subcommand hangs off.
package mashinka

import (
	"context"
	"fmt"
	"io"
	"os"

	color "git.handmade.network/hmn/mashinka/src/ansicolor"
	"git.handmade.network/hmn/mashinka/src/config"
	"git.handmade.network/hmn/mashinka/src/logging"
	"git.handmade.network/hmn/mashinka/src/utils"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...mashinka.Version=...".
var Version = "dev"

// Commands with this annotation run without loading any configuration.
const skipConfigAnnotation = "mashinka.skipConfig"

var (
	DryRun     bool
	configPath string
	logLevel   string
)

var MashinkaCommand = &cobra.Command{
	Use:           "mashinka",
	Short:         "Publish grow posts, build the search index and deploy the site",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, skip := cmd.Annotations[skipConfigAnnotation]; skip {
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		config.Config = cfg

		return logging.SetLevel(utils.OrDefault(logLevel, cfg.LogLevel))
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	flags := MashinkaCommand.PersistentFlags()
	flags.BoolVar(&DryRun, "dry-run", false, "Show what would happen without writing or uploading anything")
	flags.StringVar(&configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	defaultHelp := MashinkaCommand.HelpFunc()
	MashinkaCommand.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == MashinkaCommand {
			PrintHelp(cmd.OutOrStdout(), cmd)
			return
		}
		defaultHelp(cmd, args)
	})

	MashinkaCommand.SetHelpCommand(&cobra.Command{
		Use:         "help [command]",
		Short:       "Show this help, or the help of a command",
		Annotations: map[string]string{skipConfigAnnotation: ""},
		Run: func(cmd *cobra.Command, args []string) {
			target, _, err := MashinkaCommand.Find(args)
			if err != nil || target == nil {
				target = MashinkaCommand
			}
			target.Help()
		},
	})

	MashinkaCommand.AddCommand(&cobra.Command{
		Use:         "version",
		Short:       "Print the mashinka version",
		Annotations: map[string]string{skipConfigAnnotation: ""},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mashinka %s\n", Version)
		},
	})
}

// Execute runs the command line in os.Args and returns the process exit code.
func Execute() int {
	return execute(MashinkaCommand, os.Args[1:], os.Stderr)
}

func execute(cmd *cobra.Command, args []string, errOut io.Writer) int {
	err := run(cmd, args)
	if err != nil {
		logging.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(errOut, "%s %v\n", color.Paint("Mashinka error:", color.Bold, color.Red), err)
		return 1
	}
	return 0
}

func run(cmd *cobra.Command, args []string) (err error) {
	defer utils.RecoverPanicAsError(&err)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
