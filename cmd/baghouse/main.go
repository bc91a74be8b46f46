// Command baghouse sizes baghouse EMC retrofits and projects their savings.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/baghouse/internal/cli"
	"github.com/rshade/baghouse/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return extractExitCode(err)
}

// extractExitCode maps err to a process exit code: 0 for nil, the requested
// code for an AdvisoryExitError, 1 otherwise.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.AdvisoryExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	return 1
}
