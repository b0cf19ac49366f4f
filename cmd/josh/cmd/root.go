package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsim/joshc/internal/joshlog"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "josh",
	Short: "Josh simulation language tooling",
	Long: `josh drives the Josh interpreter's config and export tooling:
validating ".jshc" configuration documents and inspecting exported row
data.

The grammar/parser front end and the EngineBridge implementation a full
simulation run needs are external collaborators; this binary does not
parse or run ".josh" source files itself.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// logger returns a joshlog.Logger at LevelDebug when -v was passed, at
// LevelInfo otherwise.
func logger() *joshlog.Logger {
	level := joshlog.LevelInfo
	if verbose {
		level = joshlog.LevelDebug
	}
	return joshlog.Default().WithLevel(level)
}
