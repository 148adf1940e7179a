// Package serve runs a local server for one scenario, rebuilding the subject
// bundle on change.
package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/filips123/sentry-javascript/tools/scenario_js/build"
)

// Args holds the arguments for the serve subcommand.
type Args struct {
	Build build.Args
	Port  int
}

// Run builds the scenario once, then serves the output directory with watch
// mode enabled so subject edits rebuild the bundle. The HTML page and staged
// SDK bundles are only regenerated by the initial build; changing the
// template or switching PW_BUNDLE requires a restart.
func Run(args Args) error {
	if err := build.Run(args.Build); err != nil {
		return err
	}

	opts, _, _, err := build.Setup(args.Build)
	if err != nil {
		return err
	}
	opts.Sourcemap = api.SourceMapInline

	ctx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		return fmt.Errorf("esbuild context creation failed: %v", ctxErr)
	}

	if err := ctx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("esbuild watch failed: %v", err)
	}

	port := args.Port
	if port == 0 {
		port = 8080
	}
	serveResult, serveErr := ctx.Serve(api.ServeOptions{
		Servedir: args.Build.Out,
		Port:     port,
		Fallback: "index.html",
	})
	if serveErr != nil {
		return fmt.Errorf("esbuild serve failed: %v", serveErr)
	}

	fmt.Printf("\n  Scenario served at http://localhost:%d/\n", serveResult.Port)
	fmt.Printf("  Watching %s for changes...\n\n", args.Build.Entry)

	// Block until Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down...")
	ctx.Dispose()
	return nil
}
