// internal/appshell/shell.go
package appshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs a command with a context cancelled by SIGINT/SIGTERM and exits
// with its code. A second signal exits immediately with 130.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
		<-sig
		fmt.Fprintln(os.Stderr, "interrupted")
		os.Exit(130)
	}()

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"--help"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	signal.Stop(sig)
	cancel()
	os.Exit(code)
}
