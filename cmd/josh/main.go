// Command josh runs the Josh interpreter's config/export/version tooling.
// The grammar/parser front end and the physical EngineBridge remain
// external collaborators (spec's Non-goals); this binary exercises the
// parts of the stack that are this module's own: config loading and row
// export.
package main

import (
	"fmt"
	"os"

	"github.com/joshsim/joshc/cmd/josh/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
