package build

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/filips123/sentry-javascript/tools/scenario_js/alias"
	"github.com/filips123/sentry-javascript/tools/scenario_js/observer"
	"github.com/filips123/sentry-javascript/tools/scenario_js/variant"
)

// defaultTemplate is used when a scenario ships no template.html of its own.
const defaultTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
</head>
<body>
</body>
</html>
`

// writeScenarioHTML generates the scenario page. In raw-bundle mode the SDK
// bundle scripts are placed ahead of the subject so that by the time the
// subject runs, integrations, wasm support and finally the core global have
// all been installed, in that order.
func writeScenarioHTML(args Args, table map[string]alias.Entry, obs *observer.Observer) error {
	html := defaultTemplate
	if args.Template != "" {
		data, err := os.ReadFile(args.Template)
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}
		html = string(data)
	}

	var tags []string
	if args.Variant.IsBundle() {
		var err error
		tags, err = bundleTags(args.Out, args.Variant, table, obs)
		if err != nil {
			return err
		}
	}
	tags = append(tags, fmt.Sprintf(`<script src="%s"></script>`, SubjectBundle))

	html = injectScripts(html, tags)
	return os.WriteFile(filepath.Join(args.Out, "index.html"), []byte(html), 0644)
}

// bundleTags stages the bundle artifacts a scenario needs into the output
// directory and returns their script tags: one per recorded integration,
// then wasm support if imported and available for this variant, then the
// core bundle last so it initializes after its dependencies.
func bundleTags(outDir string, v variant.Variant, table map[string]alias.Entry, obs *observer.Observer) ([]string, error) {
	iv := v.IntegrationVariant()

	var tags []string
	for _, name := range obs.Integrations() {
		rel, ok := variant.IntegrationPath(iv, name)
		if !ok {
			return nil, fmt.Errorf("no integration bundle path for variant %q", iv)
		}
		src, err := stageArtifact(outDir, table, observer.IntegrationsPackage, rel)
		if err != nil {
			return nil, err
		}
		tags = append(tags, scriptTag(src))
	}

	if obs.NeedsWASM() {
		// The wasm package ships no ES5 bundles; silently skip when the
		// derived variant has no row.
		if rel, ok := variant.Path(variant.WASM, iv); ok {
			src, err := stageArtifact(outDir, table, observer.WASMPackage, rel)
			if err != nil {
				return nil, err
			}
			tags = append(tags, scriptTag(src))
		}
	}

	rel, ok := variant.Path(variant.Browser, v)
	if !ok {
		return nil, fmt.Errorf("no browser bundle path for variant %q", v)
	}
	src, err := stageArtifact(outDir, table, "@sentry/browser", rel)
	if err != nil {
		return nil, err
	}
	tags = append(tags, scriptTag(src))

	return tags, nil
}

// stageArtifact copies a package's bundle artifact into the output directory
// and returns the staged file name. A missing package or artifact aborts the
// build.
func stageArtifact(outDir string, table map[string]alias.Entry, pkgName, rel string) (string, error) {
	entry, ok := table[pkgName]
	if !ok {
		return "", fmt.Errorf("package %s not found in packages dir", pkgName)
	}
	srcPath := filepath.Join(entry.Dir, filepath.FromSlash(rel))
	name := filepath.Base(srcPath)

	in, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("bundle artifact for %s: %w", pkgName, err)
	}
	defer in.Close()

	out, err := os.Create(filepath.Join(outDir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("staging %s: %w", name, err)
	}
	return name, nil
}

func scriptTag(src string) string {
	return fmt.Sprintf(`<script src="%s"></script>`, src)
}

// injectScripts inserts the script tags before </body>, falling back to
// appending when the template has no body close tag.
func injectScripts(html string, tags []string) string {
	block := strings.Join(tags, "\n") + "\n"
	if idx := strings.Index(html, "</body>"); idx >= 0 {
		return html[:idx] + block + html[idx:]
	}
	return html + block
}
