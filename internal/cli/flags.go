package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ServeCommand — start the tabscope HTTP server.
type ServeCommand struct {
	Host      string `long:"host" description:"Override listen host"`
	Port      int    `long:"port" description:"Override listen port"`
	StaticDir string `long:"static-dir" description:"Directory of dashboard files to serve"`

	globals *GlobalFlags
	version string
}

// ImportCommand — ingest a JSON tab batch file as one snapshot.
type ImportCommand struct {
	File       string `long:"file" description:"Path to JSON batch file (required)"`
	Peak       int    `long:"peak" description:"Client-reported peak tab count"`
	NewTabs    int    `long:"new" description:"Explicit new-tab delta (0 = infer)"`
	ClosedTabs int    `long:"closed" description:"Explicit closed-tab delta (0 = infer)"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show database statistics and the latest snapshot summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// TrendCommand — print the per-day tab count trend.
type TrendCommand struct {
	Recent bool `long:"recent" description:"Rolling 14-day window with new/closed sums"`

	globals *GlobalFlags
	version string
}

// SuggestCommand — print tab grouping suggestions for the latest snapshot.
type SuggestCommand struct {
	Limit int `long:"limit" description:"Maximum suggestions" default:"10"`

	globals *GlobalFlags
	version string
}
