package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PackageManifest holds the package.json fields the scenario builder needs.
// Only the declared name participates in aliasing; the rest is informational.
type PackageManifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Private bool   `json:"private"`
}

// ReadManifest reads and parses the package.json descriptor of a monorepo
// package. A missing or malformed descriptor is an error: every package
// directory that survives the denylist is expected to be a real package.
func ReadManifest(pkgDir string) (PackageManifest, error) {
	path := filepath.Join(pkgDir, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return PackageManifest{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var m PackageManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return PackageManifest{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Name == "" {
		return PackageManifest{}, fmt.Errorf("%s: missing package name", path)
	}
	return m, nil
}
