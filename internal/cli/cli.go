// Package cli implements the tabscope command-line interface.
package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Serve   *ServeCommand
	Import  *ImportCommand
	Status  *StatusCommand
	Trend   *TrendCommand
	Suggest *SuggestCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "tabscope"
	parser.LongDescription = "Browser tab snapshot analytics: age distributions, trends, and tab grouping suggestions."

	cmds := &commands{
		Serve:   &ServeCommand{globals: &globals, version: version},
		Import:  &ImportCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
		Trend:   &TrendCommand{globals: &globals, version: version},
		Suggest: &SuggestCommand{globals: &globals, version: version},
	}

	parser.AddCommand("serve", "Start the tabscope HTTP server", "Start the HTTP server the extension posts snapshots to and the dashboard reads from.", cmds.Serve)
	parser.AddCommand("import", "Ingest a tab batch file", "Ingest a JSON file of tabs as one snapshot.", cmds.Import)
	parser.AddCommand("status", "Show database statistics", "Show snapshot counts, time range, and top domains.", cmds.Status)
	parser.AddCommand("trend", "Print the daily tab count trend", "Print per-day average/min/max tab counts, optionally the recent window.", cmds.Trend)
	parser.AddCommand("suggest", "Print tab grouping suggestions", "Print heuristic tab grouping suggestions for the latest snapshot.", cmds.Suggest)

	return parser, &globals, cmds
}

// Run is the main entry point for the tabscope CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("tabscope %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
