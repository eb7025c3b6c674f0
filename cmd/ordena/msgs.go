package ordena

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Organize files into a category hierarchy"
	MsgOrganizeShort   = "Organize a directory into categories"
	MsgCategoriesShort = "List the categories and the extensions they take"
	MsgHistoryShort    = "List past organize runs"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgCategoriesLong = "Print the taxonomy in use: every category, its subcategories and the extensions routed to each one. Files with any other extension go to Otros."
	MsgHistoryLong    = "List the runs recorded in the history index, newest first."
	MsgConfigLong     = "Print the configuration after defaults, the user config file and ORDENA_* environment variables are merged."

	// Status messages
	MsgNoHistory       = "Sin ejecuciones registradas."
	MsgHistoryDisabled = "El historial está desactivado (history.enabled = false)."
	MsgOtrosNote       = "Cualquier otra extensión va a Otros."
	MsgVersionFormat   = "ordena version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoSource       = "a source directory is required (argument or --carpeta)"
	MsgErrTwoSources     = "give the source directory either as argument or with --carpeta, not both"
	MsgErrLoadConfig     = "failed to load configuration: %w"
	MsgErrBuildTaxonomy  = "invalid taxonomy: %w"
	MsgErrUnknownFormat  = "unknown format %q (use text, markdown or yaml)"
	MsgErrOpenHistory    = "failed to open history: %w"
	MsgErrRenderConfig   = "failed to render configuration: %w"
	MsgErrRenderCategory = "failed to render categories: %w"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Config file (default is $XDG_CONFIG_HOME/ordena/config.toml)"
	MsgFlagCarpeta    = "Directory to organize"
	MsgFlagDryRun     = "Preview the organization without moving anything"
	MsgFlagReportsDir = "Directory that receives reports and run logs"
	MsgFlagNoPlan     = "Do not print the per-file plan in dry-run"
	MsgFlagFormat     = "Output format: text, markdown or yaml"
	MsgFlagLimit      = "Maximum number of runs to list"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/organize-long.txt
	msgOrganizeLongRaw string
	MsgOrganizeLong    = strings.TrimSpace(msgOrganizeLongRaw)

	//go:embed msgs/organize-example.txt
	msgOrganizeExampleRaw string
	MsgOrganizeExample    = strings.TrimRight(msgOrganizeExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
