// Command ecowallet is a terminal client for the ecowallet platform. It keeps
// the session in the configured credential store between invocations.
//
// Usage:
//
//	ecowallet status
//	ecowallet login --role agent --email a@example.com --password ...
//	ecowallet wallet convert --material plastic --weight 2.5
//
// Requires API_BASE_URL (or api.base_url in the config file).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, c := newRootCmd()
	if err := execute(ctx, root, c); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
