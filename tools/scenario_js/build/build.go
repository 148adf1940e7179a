// Package build assembles a single browser integration test scenario: it
// bundles the subject entry point with esbuild and generates the scenario
// HTML page, injecting SDK bundle script tags when a raw-bundle variant is
// active.
package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/filips123/sentry-javascript/tools/scenario_js/alias"
	"github.com/filips123/sentry-javascript/tools/scenario_js/common"
	"github.com/filips123/sentry-javascript/tools/scenario_js/observer"
	"github.com/filips123/sentry-javascript/tools/scenario_js/variant"
)

// SubjectBundle is the output file name of the bundled scenario subject.
const SubjectBundle = "subject.bundle.js"

// Args holds the arguments for the build subcommand.
type Args struct {
	Entry       string
	Template    string
	Out         string
	PackagesDir string
	Variant     variant.Variant
	Define      []string
	EnvFile     string
	EnvPrefix   string
}

// Setup computes the alias table and assembles the esbuild options for a
// scenario build. The returned observer is filled in while the build runs.
// Shared by the build and serve subcommands.
func Setup(args Args) (api.BuildOptions, *observer.Observer, map[string]alias.Entry, error) {
	v := args.Variant
	if !v.Known() {
		return api.BuildOptions{}, nil, nil, fmt.Errorf("unknown build variant %q", v)
	}

	table, err := alias.Resolve(args.PackagesDir, v)
	if err != nil {
		return api.BuildOptions{}, nil, nil, err
	}

	obs := &observer.Observer{}
	plugins := []api.Plugin{obs.Plugin()}
	if v.IsBundle() {
		// Shims are registered before the alias plugin so imports of the
		// bundled packages compile to globals rather than empty modules.
		plugins = append(plugins, alias.GlobalShimPlugin(variant.Externals))
	}
	plugins = append(plugins,
		alias.Plugin(table),
		common.RawImportPlugin(),
		common.NodeBuiltinEmptyPlugin(),
	)

	define := common.ParseDefines(args.Define)
	if args.EnvFile != "" {
		envDefines, err := common.LoadEnvFiles(args.EnvFile, "test", args.EnvPrefix)
		if err != nil {
			return api.BuildOptions{}, nil, nil, fmt.Errorf("loading env files: %w", err)
		}
		for k, val := range envDefines {
			if _, ok := define[k]; !ok {
				define[k] = val
			}
		}
	}
	common.MergeEnvDefines(define, "test")

	opts := api.BuildOptions{
		EntryPoints: []string{args.Entry},
		Outfile:     filepath.Join(args.Out, SubjectBundle),
		Bundle:      true,
		Write:       true,
		Format:      api.FormatIIFE,
		Platform:    api.PlatformBrowser,
		Target:      api.ESNext,
		LogLevel:    api.LogLevelInfo,
		Loader:      common.Loaders,
		Plugins:     plugins,
		Define:      define,
		Sourcemap:   api.SourceMapLinked,
	}
	return opts, obs, table, nil
}

// Run builds one test scenario: subject bundle plus generated HTML page.
// Any failure aborts the build; there is no partial-success mode.
func Run(args Args) error {
	opts, obs, table, err := Setup(args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(args.Out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return fmt.Errorf("esbuild failed with %d errors", len(result.Errors))
	}

	return writeScenarioHTML(args, table, obs)
}
