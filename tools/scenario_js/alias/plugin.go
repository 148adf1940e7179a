package alias

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

const (
	disabledNamespace = "disabled-alias"
	globalNamespace   = "global-shim"
)

// disabledModule is loaded in place of disabled aliases. CommonJS on purpose:
// named imports against it become undefined bindings at runtime instead of
// build-time resolution errors.
const disabledModule = "module.exports = {};\n"

// Plugin returns an esbuild plugin that resolves bare import specifiers
// through the alias table. Directory targets are re-resolved with esbuild's
// own resolver so package.json exports/main/module fields are honored;
// file targets (prebuilt module artifacts) are returned directly.
func Plugin(table map[string]Entry) api.Plugin {
	return api.Plugin{
		Name: "package-alias",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: ".*"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					// Skip relative and absolute paths
					if len(args.Path) == 0 || args.Path[0] == '.' || args.Path[0] == '/' {
						return api.OnResolveResult{}, nil
					}

					// Find longest matching package name prefix
					best := ""
					for name := range table {
						if args.Path == name || strings.HasPrefix(args.Path, name+"/") {
							if len(name) > len(best) {
								best = name
							}
						}
					}
					if best == "" {
						return api.OnResolveResult{}, nil
					}

					entry := table[best]
					if entry.Disabled {
						return api.OnResolveResult{
							Path:      args.Path,
							Namespace: disabledNamespace,
						}, nil
					}

					if info, err := os.Stat(entry.Path); err == nil && !info.IsDir() {
						// Direct artifact alias (compiled-module mode).
						return api.OnResolveResult{Path: entry.Path}, nil
					}

					// Re-resolve from the package dir so exports maps,
					// main/module fields and subpaths are handled correctly.
					subpath := "."
					if args.Path != best {
						subpath = "./" + strings.TrimPrefix(args.Path, best+"/")
					}
					result := build.Resolve(subpath, api.ResolveOptions{
						ResolveDir: entry.Path,
						Kind:       args.Kind,
					})
					if len(result.Errors) == 0 {
						return api.OnResolveResult{Path: result.Path}, nil
					}
					return api.OnResolveResult{}, nil
				},
			)

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: disabledNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents := disabledModule
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   api.LoaderJS,
					}, nil
				},
			)
		},
	}
}

// GlobalShimPlugin returns an esbuild plugin that compiles imports of the
// given package names to references against globals installed by injected
// script tags. Registered before the alias plugin so shims win over the
// disabled aliases covering the same packages.
func GlobalShimPlugin(globals map[string]string) api.Plugin {
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Strings(names)
	filter := "^(" + strings.Join(names, "|") + ")$"

	return api.Plugin{
		Name: "global-shim",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: filter},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      args.Path,
						Namespace: globalNamespace,
					}, nil
				},
			)
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: globalNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents := fmt.Sprintf("module.exports = globalThis.%s;\n", globals[args.Path])
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   api.LoaderJS,
					}, nil
				},
			)
		},
	}
}
