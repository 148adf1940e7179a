// Package variant models the PW_BUNDLE build variant selecting which SDK
// artifact flavor an integration test scenario loads against.
package variant

import "strings"

// Variant selects the output artifact format/feature-set for a scenario.
// An empty variant means scenarios are bundled straight from package sources.
type Variant string

// Compiled-module variants: imports resolve to prebuilt npm module artifacts.
const (
	CJS Variant = "cjs"
	ESM Variant = "esm"
)

// Category identifies a row group in the bundle path table.
type Category string

const (
	Browser      Category = "browser"
	Integrations Category = "integrations"
	WASM         Category = "wasm"
)

// IntegrationPlaceholder is substituted with an integration's lower-cased
// name when computing integration bundle paths.
const IntegrationPlaceholder = "[INTEGRATION_NAME]"

// BundlePaths maps category and variant to the artifact path relative to the
// owning package directory. Integration rows carry the [INTEGRATION_NAME]
// placeholder; wasm ships no ES5 builds.
var BundlePaths = map[Category]map[Variant]string{
	Browser: {
		CJS: "build/npm/cjs/index.js",
		ESM: "build/npm/esm/index.js",
		"bundle_es5":                    "build/bundles/bundle.es5.js",
		"bundle_es5_min":                "build/bundles/bundle.es5.min.js",
		"bundle_es6":                    "build/bundles/bundle.js",
		"bundle_es6_min":                "build/bundles/bundle.min.js",
		"bundle_replay_es6":             "build/bundles/bundle.replay.js",
		"bundle_replay_es6_min":         "build/bundles/bundle.replay.min.js",
		"bundle_tracing_es5":            "build/bundles/bundle.tracing.es5.js",
		"bundle_tracing_es5_min":        "build/bundles/bundle.tracing.es5.min.js",
		"bundle_tracing_es6":            "build/bundles/bundle.tracing.js",
		"bundle_tracing_es6_min":        "build/bundles/bundle.tracing.min.js",
		"bundle_tracing_replay_es6":     "build/bundles/bundle.tracing.replay.js",
		"bundle_tracing_replay_es6_min": "build/bundles/bundle.tracing.replay.min.js",
	},
	Integrations: {
		CJS: "build/npm/cjs/index.js",
		ESM: "build/npm/esm/index.js",
		"bundle_es5":     "build/bundles/[INTEGRATION_NAME].es5.js",
		"bundle_es5_min": "build/bundles/[INTEGRATION_NAME].es5.min.js",
		"bundle_es6":     "build/bundles/[INTEGRATION_NAME].js",
		"bundle_es6_min": "build/bundles/[INTEGRATION_NAME].min.js",
	},
	WASM: {
		CJS: "build/npm/cjs/index.js",
		ESM: "build/npm/esm/index.js",
		"bundle_es6":     "build/bundles/wasm.js",
		"bundle_es6_min": "build/bundles/wasm.min.js",
	},
}

// SpecialPackages maps the package names that ship standalone bundles to
// their bundle path table category. In raw-bundle mode these packages are
// never resolved from source; their bundles are injected as script tags.
var SpecialPackages = map[string]Category{
	"@sentry/browser":      Browser,
	"@sentry/tracing":      Browser,
	"@sentry/integrations": Integrations,
	"@sentry/wasm":         WASM,
}

// Externals maps package names to the global identifiers their imports
// compile to in raw-bundle mode. The globals are installed by the injected
// bundle script tags.
var Externals = map[string]string{
	"@sentry/browser":      "Sentry",
	"@sentry/tracing":      "Sentry",
	"@sentry/integrations": "Sentry.Integrations",
	"@sentry/wasm":         "Sentry",
}

// IsBundle reports whether v selects a raw self-contained bundle build.
func (v Variant) IsBundle() bool {
	return strings.HasPrefix(string(v), "bundle")
}

// IsCompiledModule reports whether v selects prebuilt npm module artifacts.
func (v Variant) IsCompiledModule() bool {
	return v == CJS || v == ESM
}

// Known reports whether v names a variant present in the bundle path table.
// The empty variant (build from source) is considered known.
func (v Variant) Known() bool {
	if v == "" {
		return true
	}
	_, ok := BundlePaths[Browser][v]
	return ok
}

// IntegrationVariant derives the bundle variant key used for integration and
// wasm bundles, which have no tracing/replay feature builds:
// "bundle_tracing_replay_es6_min" -> "bundle_es6_min".
func (v Variant) IntegrationVariant() Variant {
	s := strings.ReplaceAll(string(v), "_tracing", "")
	s = strings.ReplaceAll(s, "_replay", "")
	return Variant(s)
}

// Path looks up the artifact path for a category and variant.
func Path(c Category, v Variant) (string, bool) {
	row, ok := BundlePaths[c]
	if !ok {
		return "", false
	}
	p, ok := row[v]
	return p, ok
}

// IntegrationPath returns the bundle path for a single integration,
// substituting the name placeholder.
func IntegrationPath(v Variant, integration string) (string, bool) {
	p, ok := Path(Integrations, v)
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(p, IntegrationPlaceholder, integration), true
}
