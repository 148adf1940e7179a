package common

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Loaders maps file extensions to esbuild loaders.
var Loaders = map[string]api.Loader{
	".js":    api.LoaderJS,
	".jsx":   api.LoaderJSX,
	".ts":    api.LoaderTS,
	".tsx":   api.LoaderTSX,
	".json":  api.LoaderJSON,
	".css":   api.LoaderCSS,
	".mjs":   api.LoaderJS,
	".cjs":   api.LoaderJS,
	".woff":  api.LoaderFile,
	".woff2": api.LoaderFile,
	".ttf":   api.LoaderFile,
	".svg":   api.LoaderFile,
	".png":   api.LoaderFile,
	".jpg":   api.LoaderFile,
	".gif":   api.LoaderFile,
	".wasm":  api.LoaderFile,
}

// ParseDefines converts "key=value" pairs into an esbuild Define map.
// Values are passed through verbatim, so callers quote strings themselves.
func ParseDefines(defs []string) map[string]string {
	define := make(map[string]string, len(defs))
	for _, d := range defs {
		parts := strings.SplitN(d, "=", 2)
		if len(parts) == 2 {
			define[parts[0]] = parts[1]
		}
	}
	return define
}

// MergeEnvDefines fills in the process.env defines scenarios rely on,
// without overriding explicit values.
func MergeEnvDefines(define map[string]string, mode string) {
	if _, ok := define["process.env.NODE_ENV"]; !ok {
		define["process.env.NODE_ENV"] = fmt.Sprintf("%q", mode)
	}
}

// RawImportPlugin returns an esbuild plugin that strips ?raw suffixes from
// import paths. Files loaded this way use the text loader, returning contents
// as a string.
func RawImportPlugin() api.Plugin {
	return api.Plugin{
		Name: "raw-import",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `\?raw$`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					cleanPath := strings.TrimSuffix(args.Path, "?raw")
					resolved := filepath.Join(args.ResolveDir, cleanPath)
					return api.OnResolveResult{
						Path:      resolved,
						Namespace: "file",
					}, nil
				},
			)
		},
	}
}

// nodeBuiltins is the set of Node.js core module names that have no meaning
// in a browser scenario. Subpath forms like fs/promises are covered by the
// prefix check in NodeBuiltinEmptyPlugin.
var nodeBuiltins = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "crypto": true,
	"events": true, "fs": true, "http": true, "https": true, "module": true,
	"net": true, "os": true, "path": true, "process": true, "querystring": true,
	"stream": true, "string_decoder": true, "timers": true, "tls": true,
	"tty": true, "url": true, "util": true, "vm": true, "worker_threads": true,
	"zlib": true,
}

const emptyModuleNamespace = "empty-module"

// emptyModule is loaded in place of disabled or stubbed-out imports. It is
// CommonJS on purpose: named imports against it become undefined bindings at
// runtime instead of build-time resolution errors.
const emptyModule = "module.exports = {};\n"

// NodeBuiltinEmptyPlugin replaces imports of Node.js built-in modules with
// empty stubs for browser builds. Registered after the alias plugin so npm
// polyfill packages win when the monorepo provides one.
func NodeBuiltinEmptyPlugin() api.Plugin {
	return api.Plugin{
		Name: "node-builtin-empty",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: ".*"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					name := strings.TrimPrefix(args.Path, "node:")
					if idx := strings.IndexByte(name, '/'); idx >= 0 {
						name = name[:idx]
					}
					if !nodeBuiltins[name] {
						return api.OnResolveResult{}, nil
					}
					return api.OnResolveResult{
						Path:      args.Path,
						Namespace: emptyModuleNamespace,
					}, nil
				},
			)
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: emptyModuleNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents := emptyModule
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   api.LoaderJS,
					}, nil
				},
			)
		},
	}
}
