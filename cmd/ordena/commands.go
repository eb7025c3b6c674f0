package ordena

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/ordena/internal/version"
	"github.com/arthur-debert/ordena/pkg/config"
	"github.com/arthur-debert/ordena/pkg/history"
	"github.com/arthur-debert/ordena/pkg/organizer"
	"github.com/arthur-debert/ordena/pkg/paths"
	"github.com/arthur-debert/ordena/pkg/report"
	"github.com/arthur-debert/ordena/pkg/style"
	"github.com/arthur-debert/ordena/pkg/taxonomy"
	"github.com/arthur-debert/ordena/pkg/types"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// sourceDir picks the directory from the positional argument or --carpeta
func sourceDir(carpeta string, args []string) (string, error) {
	switch {
	case carpeta != "" && len(args) > 0:
		return "", fmt.Errorf(MsgErrTwoSources)
	case carpeta != "":
		return carpeta, nil
	case len(args) > 0:
		return args[0], nil
	}
	return "", fmt.Errorf(MsgErrNoSource)
}

func newOrganizeCmd() *cobra.Command {
	var (
		carpeta    string
		dryRun     bool
		reportsDir string
		noPlan     bool
	)

	cmd := &cobra.Command{
		Use:     "organize [carpeta]",
		Aliases: []string{"organizar"},
		Short:   MsgOrganizeShort,
		Long:    MsgOrganizeLong,
		Example: MsgOrganizeExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := sourceDir(carpeta, args)
			if err != nil {
				return err
			}

			overrides := map[string]interface{}{}
			if reportsDir != "" {
				overrides["reports.dir"] = reportsDir
			}
			cfg, err := loadConfig(cmd, overrides)
			if err != nil {
				return err
			}
			tax, err := cfg.BuildTaxonomy()
			if err != nil {
				return fmt.Errorf(MsgErrBuildTaxonomy, err)
			}

			p, err := paths.New(source, cfg.Reports.Dir)
			if err != nil {
				return err
			}
			mode := types.ModeFor(dryRun)
			out := cmd.OutOrStdout()

			log.Info().
				Str("source", p.SourceRoot()).
				Str("reports_dir", p.ReportsDir()).
				Str("mode", string(mode)).
				Msg("Organizing")

			reporterOpts := report.Options{
				ReportsDir: p.ReportsDir(),
				Out:        out,
				ShowPlan:   !noPlan,
			}
			if cfg.History.Enabled {
				recorder := history.NewLazy(p.HistoryDBPath())
				defer func() { _ = recorder.Close() }()
				reporterOpts.History = recorder
			}

			opts := organizer.Options{
				Source:               p.SourceRoot(),
				Taxonomy:             tax,
				Mode:                 mode,
				ReportsDir:           p.ReportsDir(),
				RunLog:               cfg.Reports.RunLog,
				Lock:                 cfg.Lock.Enabled,
				MaxCollisionAttempts: cfg.Collision.MaxAttempts,
				Reporter:             report.New(reporterOpts),
			}
			// dry-run prints the plan table instead
			if !mode.IsDryRun() || noPlan {
				opts.OnFile = style.NewProgress(out).File
			}

			org, err := organizer.New(opts)
			if err != nil {
				return err
			}
			_, err = org.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&carpeta, "carpeta", "c", "", MsgFlagCarpeta)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, MsgFlagDryRun)
	cmd.Flags().StringVar(&reportsDir, "reports-dir", "", MsgFlagReportsDir)
	cmd.Flags().BoolVar(&noPlan, "no-plan", false, MsgFlagNoPlan)

	return cmd
}

func newCategoriesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"categorias"},
		Short:   MsgCategoriesShort,
		Long:    MsgCategoriesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			tax, err := cfg.BuildTaxonomy()
			if err != nil {
				return fmt.Errorf(MsgErrBuildTaxonomy, err)
			}

			var rendered string
			switch format {
			case "text", "":
				rendered = categoriesText(tax)
			case "markdown", "md":
				rendered = markdownRenderer().Render(categoriesMarkdown(tax), ".md")
			case "yaml":
				rendered, err = categoriesYAML(cfg.Categories)
				if err != nil {
					return fmt.Errorf(MsgErrRenderCategory, err)
				}
			default:
				return fmt.Errorf(MsgErrUnknownFormat, format)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(rendered, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", MsgFlagFormat)
	return cmd
}

func categoriesText(tax *taxonomy.Taxonomy) string {
	var rows [][]string
	for _, e := range tax.Entries() {
		rows = append(rows, []string{e.Route().Key(), strings.Join(e.Extensions, " ")})
	}
	rows = append(rows, []string{types.FallbackRoute().Key(), "*"})
	return style.RenderTable([]string{"Ubicación", "Extensiones"}, rows, nil)
}

func categoriesMarkdown(tax *taxonomy.Taxonomy) string {
	var b strings.Builder
	b.WriteString("# Categorías\n")

	entries := tax.Entries()
	for _, category := range tax.Categories() {
		fmt.Fprintf(&b, "\n## %s\n\n", category)
		for _, e := range entries {
			if e.Category != category {
				continue
			}
			name := e.Subcategory
			if name == "" {
				name = category
			}
			quoted := make([]string, len(e.Extensions))
			for i, ext := range e.Extensions {
				quoted[i] = "`" + ext + "`"
			}
			fmt.Fprintf(&b, "- **%s**: %s\n", name, strings.Join(quoted, ", "))
		}
	}
	fmt.Fprintf(&b, "\n## %s\n\n%s\n", types.FallbackRoute().Key(), MsgOtrosNote)
	return b.String()
}

func categoriesYAML(categories []config.Category) (string, error) {
	data, err := yaml.Marshal(struct {
		Categories []config.Category `yaml:"categories"`
	}{categories})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"historial"},
		Short:   MsgHistoryShort,
		Long:    MsgHistoryLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, MsgHistoryDisabled)
				return nil
			}

			store, err := history.Open(historyPath())
			if err != nil {
				return fmt.Errorf(MsgErrOpenHistory, err)
			}
			defer func() { _ = store.Close() }()

			entries, err := store.List(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, MsgNoHistory)
				return nil
			}
			fmt.Fprintln(out, historyTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, MsgFlagLimit)
	return cmd
}

func historyPath() string {
	return filepath.Join(paths.StateDir(), paths.HistoryDBName)
}

func historyTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp,
			string(e.Mode),
			e.Source,
			strconv.Itoa(e.FilesSeen),
			strconv.Itoa(e.FilesMoved),
			strconv.Itoa(e.Errors),
			humanize.Bytes(uint64(e.BytesMoved)),
		})
	}
	return style.RenderTable(
		[]string{"Fecha", "Modo", "Origen", "Procesados", "Movidos", "Errores", "Tamaño"},
		rows,
		[]style.Alignment{style.AlignLeft, style.AlignLeft, style.AlignLeft, style.AlignRight, style.AlignRight, style.AlignRight, style.AlignRight},
	)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			data, err := cfg.ToTOML()
			if err != nil {
				return fmt.Errorf(MsgErrRenderConfig, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(ordena completion bash)

Zsh:
  $ ordena completion zsh > "${fpath[1]}/_ordena"

Fish:
  $ ordena completion fish | source

PowerShell:
  PS> ordena completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
