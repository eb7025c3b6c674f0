package ordena

import (
	"embed"
	"fmt"

	"github.com/arthur-debert/ordena/internal/version"
	"github.com/arthur-debert/ordena/pkg/cobrax/topics"
	"github.com/arthur-debert/ordena/pkg/config"
	"github.com/arthur-debert/ordena/pkg/logging"
	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:     "ordena",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity, paths.LogFilePath())
			style.Configure(cmd.OutOrStdout())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newOrganizeCmd())
	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	tm, err := topics.Load(topicsFS, "topics", topics.Options{Renderer: markdownRenderer()})
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	} else {
		tm.Install(rootCmd)
	}

	return rootCmd
}

// markdownRenderer styles markdown on a terminal and leaves it raw otherwise
func markdownRenderer() topics.Renderer {
	if !stdoutIsTerminal() {
		return &topics.PlainRenderer{}
	}
	r := topics.NewGlamourRenderer()
	r.Width = 80
	return r
}

// loadConfig merges every config layer, with overrides on top
func loadConfig(cmd *cobra.Command, overrides map[string]interface{}) (*config.Config, error) {
	configFile, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}
