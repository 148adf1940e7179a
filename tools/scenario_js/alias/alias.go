// Package alias maps monorepo package names to the targets their imports
// resolve to for a given build variant.
package alias

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/filips123/sentry-javascript/tools/scenario_js/common"
	"github.com/filips123/sentry-javascript/tools/scenario_js/variant"
)

// denylist names the directories under packages/ that are not publishable
// SDK packages and must never appear in the alias table.
var denylist = map[string]bool{
	"eslint-config-sdk": true,
	"eslint-plugin-sdk": true,
	"integration-tests": true,
	"typescript":        true,
}

// Entry is the resolution outcome for one monorepo package.
type Entry struct {
	// Dir is the package source directory; always set, including for
	// disabled entries, so bundle artifacts can be located later.
	Dir string `json:"dir"`
	// Path is the file or directory the package name resolves to.
	// Empty when Disabled.
	Path string `json:"path,omitempty"`
	// Disabled marks packages whose imports must compile to nothing in
	// raw-bundle mode; their bundles are injected as script tags instead.
	Disabled bool `json:"disabled,omitempty"`
}

// Resolve scans the packages directory once and builds the alias table for
// the given variant. Every non-denylisted package produces exactly one entry
// keyed by its declared name.
func Resolve(packagesDir string, v variant.Variant) (map[string]Entry, error) {
	dirents, err := os.ReadDir(packagesDir)
	if err != nil {
		return nil, fmt.Errorf("scanning packages dir: %w", err)
	}

	table := make(map[string]Entry)
	for _, d := range dirents {
		if !d.IsDir() || denylist[d.Name()] {
			continue
		}
		dir := filepath.Join(packagesDir, d.Name())
		m, err := common.ReadManifest(dir)
		if err != nil {
			return nil, err
		}
		table[m.Name] = entryFor(m.Name, dir, v)
	}
	return table, nil
}

// entryFor decides between the three outcomes for one package: a prebuilt
// module artifact, a disabled alias, or the package source directory.
func entryFor(name, dir string, v variant.Variant) Entry {
	if v.IsCompiledModule() {
		if rel, ok := variant.Path(variant.Browser, v); ok {
			artifact := filepath.Join(dir, filepath.FromSlash(rel))
			if info, err := os.Stat(artifact); err == nil && !info.IsDir() {
				return Entry{Dir: dir, Path: artifact}
			}
		}
		return Entry{Dir: dir, Path: dir}
	}
	if v.IsBundle() {
		if _, ok := variant.SpecialPackages[name]; ok {
			return Entry{Dir: dir, Disabled: true}
		}
	}
	return Entry{Dir: dir, Path: dir}
}
