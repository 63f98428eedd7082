// Command vfsshell loads a CSV snapshot into an in-memory virtual filesystem
// and lets the user browse it with ls, cd and vfs-init, or mounts it
// read-only through FUSE.
package main

import (
	"errors"
	"fmt"
	"os"

	"vfsshell/internal/logging"

	"github.com/urfave/cli/v2"
)

var (
	logger = logging.GetLogger()
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vfsshell: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() != 0 {
		return coder.ExitCode()
	}
	return 1
}
