package main

import (
	"fmt"
	"os"

	"github.com/zscript/textframe/internal/cli"
)

// Version info set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)))
}
