package suite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenario(t *testing.T, dir, name, subject string) {
	t.Helper()
	scenarioDir := filepath.Join(dir, name)
	if err := os.MkdirAll(scenarioDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scenarioDir, "subject.js"), []byte(subject), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_BuildsAllScenarios(t *testing.T) {
	tmp := t.TempDir()
	packagesDir := filepath.Join(tmp, "packages")
	if err := os.MkdirAll(packagesDir, 0o755); err != nil {
		t.Fatal(err)
	}

	scenariosDir := filepath.Join(tmp, "scenarios")
	writeScenario(t, scenariosDir, "basic", `console.log("basic");`)
	writeScenario(t, scenariosDir, "errors", `throw new Error("boom");`)
	// Directories without a subject are not scenarios.
	if err := os.MkdirAll(filepath.Join(scenariosDir, "fixtures"), 0o755); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(tmp, "out")
	if err := Run(context.Background(), Args{
		Dir:         scenariosDir,
		Out:         out,
		PackagesDir: packagesDir,
	}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"basic", "errors"} {
		for _, f := range []string{"subject.bundle.js", "index.html"} {
			if _, err := os.Stat(filepath.Join(out, name, f)); err != nil {
				t.Errorf("scenario %s missing %s: %v", name, f, err)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(out, "fixtures")); err == nil {
		t.Error("fixture directory should not have been built")
	}
}

func TestRun_LocalTemplateOverridesSuiteTemplate(t *testing.T) {
	tmp := t.TempDir()
	packagesDir := filepath.Join(tmp, "packages")
	if err := os.MkdirAll(packagesDir, 0o755); err != nil {
		t.Fatal(err)
	}

	scenariosDir := filepath.Join(tmp, "scenarios")
	writeScenario(t, scenariosDir, "custom", `console.log("custom");`)
	writeScenario(t, scenariosDir, "plain", `console.log("plain");`)
	if err := os.WriteFile(filepath.Join(scenariosDir, "custom", "template.html"),
		[]byte("<html><body><h1>local template</h1></body></html>\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	suiteTemplate := filepath.Join(tmp, "template.html")
	if err := os.WriteFile(suiteTemplate,
		[]byte("<html><body><h1>suite template</h1></body></html>\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(tmp, "out")
	if err := Run(context.Background(), Args{
		Dir:         scenariosDir,
		Out:         out,
		Template:    suiteTemplate,
		PackagesDir: packagesDir,
	}); err != nil {
		t.Fatal(err)
	}

	custom, err := os.ReadFile(filepath.Join(out, "custom", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(custom), "local template") {
		t.Error("expected scenario-local template to win")
	}

	plain, err := os.ReadFile(filepath.Join(out, "plain", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(plain), "suite template") {
		t.Error("expected suite-level template as fallback")
	}
}

func TestRun_CollectsFailures(t *testing.T) {
	tmp := t.TempDir()
	packagesDir := filepath.Join(tmp, "packages")
	if err := os.MkdirAll(packagesDir, 0o755); err != nil {
		t.Fatal(err)
	}

	scenariosDir := filepath.Join(tmp, "scenarios")
	writeScenario(t, scenariosDir, "good", `console.log("ok");`)
	writeScenario(t, scenariosDir, "broken", `import { nope } from "./does-not-exist";`)

	out := filepath.Join(tmp, "out")
	err := Run(context.Background(), Args{
		Dir:         scenariosDir,
		Out:         out,
		PackagesDir: packagesDir,
	})
	if err == nil {
		t.Fatal("expected suite to report the broken scenario")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error should name the failed scenario: %v", err)
	}

	// The good scenario still builds.
	if _, err := os.Stat(filepath.Join(out, "good", "index.html")); err != nil {
		t.Errorf("good scenario should have been built: %v", err)
	}
}
