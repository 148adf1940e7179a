// Package observer watches import statements during a scenario build to
// detect which optional SDK pieces the scenario needs.
package observer

import (
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
)

// Import sources that mark a scenario as needing extra bundle scripts.
const (
	IntegrationsPackage = "@sentry/integrations"
	WASMPackage         = "@sentry/wasm"
)

var (
	// namedImportRe captures the first named symbol and the source of an
	// import statement: import { Foo, Bar } from "pkg". The first named
	// import is assumed to be the integration; no further validation.
	namedImportRe = regexp.MustCompile(`import\s*{\s*([A-Za-z_$][A-Za-z0-9_$]*)[^}]*}\s*from\s*["']([^"']+)["']`)
	// importSourceRe matches the source specifier of any import form:
	// import X from "pkg", import "pkg", import("pkg"), require("pkg"),
	// export { X } from "pkg".
	importSourceRe = regexp.MustCompile(`(?:from\s+|import\s*\(\s*|import\s+|require\s*\(\s*)["']([^"']+)["']`)
)

// Observer records which integrations and WASM support a scenario imports.
// It is filled in by the plugin during the build and read back afterwards to
// decide what bundle scripts the scenario page needs. State is appended to,
// never reset, within a single build.
type Observer struct {
	mu           sync.Mutex
	integrations []string
	wasm         bool
}

// Plugin returns a passive esbuild OnLoad tap over script-like files. It
// never produces contents, so the default loader still applies; esbuild may
// parse modules concurrently, hence the mutex in Scan.
func (o *Observer) Plugin() api.Plugin {
	return api.Plugin{
		Name: "import-observer",
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.(js|jsx|ts|tsx|mjs|cjs)$`},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					data, err := os.ReadFile(args.Path)
					if err != nil {
						// Leave the failure to esbuild's own loader.
						return api.OnLoadResult{}, nil
					}
					o.Scan(data)
					return api.OnLoadResult{}, nil
				},
			)
		},
	}
}

// Scan records integration and WASM imports found in one source file.
func (o *Observer) Scan(code []byte) {
	src := string(code)

	o.mu.Lock()
	defer o.mu.Unlock()

	for _, m := range namedImportRe.FindAllStringSubmatch(src, -1) {
		if m[2] == IntegrationsPackage {
			o.integrations = append(o.integrations, strings.ToLower(m[1]))
		}
	}
	for _, m := range importSourceRe.FindAllStringSubmatch(src, -1) {
		if m[1] == WASMPackage {
			o.wasm = true
		}
	}
}

// Integrations returns the recorded integration names, lower-cased, in the
// order they were seen. Duplicates are preserved.
func (o *Observer) Integrations() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.integrations))
	copy(out, o.integrations)
	return out
}

// NeedsWASM reports whether any scanned file imports the WASM support package.
func (o *Observer) NeedsWASM() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.wasm
}
