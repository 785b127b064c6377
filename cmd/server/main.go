// Command server runs the Re_Connect API.
//
// Without arguments it behaves like "server serve". See "server --help" for
// the operator tools.
package main

import (
	"fmt"
	"os"

	"github.com/sakif/reconnect/internal/cli"
)

// Set by the release build with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"serve"}
	}

	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
