package envcatalog

type VarInfo struct {
	Category    string
	Name        string
	Description string
	Dynamic     bool
	Internal    bool
}

func Catalog() []VarInfo {
	return []VarInfo{
		{
			Category:    "Config",
			Name:        "CLISPEC_CONFIG",
			Description: "Path to the clispec config document (overrides local discovery).",
		},
		{
			Category:    "Config",
			Name:        "CLISPEC_<FLAG>",
			Dynamic:     true,
			Description: "Set any clispec CLI flag via environment (hyphens become underscores). Example: CLISPEC_OUTPUT=json.",
		},
		{
			Category:    "Style",
			Name:        "CLISPEC_STYLE_FILE",
			Description: "Path to a style declaration file used when resolving and generating.",
		},
		{
			Category:    "Output",
			Name:        "NO_COLOR",
			Description: "Disable ANSI color output (any non-empty value).",
		},
		{
			Category:    "CLI",
			Name:        "CLISPEC_YES",
			Description: "Auto-approve confirmations (equivalent to passing --yes).",
		},
		{
			Category:    "Logging",
			Name:        "CLISPEC_LOG_LEVEL",
			Description: "Default log level when --log-level is not provided (debug|info|warn|error).",
		},
		{
			Category:    "Features",
			Name:        "CLISPEC_FEATURE_<FLAG>",
			Dynamic:     true,
			Description: "Enable an experimental feature flag via environment. Example: CLISPEC_FEATURE_RENDER_ID=1.",
		},
	}
}
