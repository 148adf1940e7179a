// Package suite builds every scenario under a directory in parallel.
package suite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/filips123/sentry-javascript/tools/scenario_js/build"
	"github.com/filips123/sentry-javascript/tools/scenario_js/variant"
)

// Args holds the arguments for the suite subcommand.
type Args struct {
	Dir         string
	Out         string
	Template    string
	PackagesDir string
	Variant     variant.Variant
	Define      []string
	EnvFile     string
	EnvPrefix   string
}

// subjectNames are tried in order when locating a scenario's entry point.
var subjectNames = []string{"subject.js", "subject.ts", "subject.mjs", "init.js", "init.ts"}

// Run builds every scenario found under args.Dir. A scenario is any
// subdirectory containing a subject entry file; a local template.html
// overrides the suite-level template. Failures are collected rather than
// stopping the remaining builds, then reported together.
func Run(ctx context.Context, args Args) error {
	dirents, err := os.ReadDir(args.Dir)
	if err != nil {
		return fmt.Errorf("scanning scenarios dir: %w", err)
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var mu sync.Mutex
	var failed []string

	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		name := d.Name()
		scenarioDir := filepath.Join(args.Dir, name)
		entry := findSubject(scenarioDir)
		if entry == "" {
			continue
		}

		template := args.Template
		if local := filepath.Join(scenarioDir, "template.html"); fileExists(local) {
			template = local
		}

		g.Go(func() error {
			err := build.Run(build.Args{
				Entry:       entry,
				Template:    template,
				Out:         filepath.Join(args.Out, name),
				PackagesDir: args.PackagesDir,
				Variant:     args.Variant,
				Define:      args.Define,
				EnvFile:     args.EnvFile,
				EnvPrefix:   args.EnvPrefix,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "  scenario %s failed: %v\n", name, err)
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
			}
			return nil
		})
	}

	g.Wait()

	if len(failed) > 0 {
		sort.Strings(failed)
		return fmt.Errorf("%d scenario build(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}

// findSubject locates the scenario entry point, trying known names in order.
func findSubject(dir string) string {
	for _, name := range subjectNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
