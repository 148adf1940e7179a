package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
)

func buildEntry(t *testing.T, entry string, plugins ...api.Plugin) string {
	t.Helper()
	result := api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Bundle:      true,
		Write:       false,
		Outdir:      t.TempDir(),
		Platform:    api.PlatformBrowser,
		Format:      api.FormatIIFE,
		Loader:      Loaders,
		Plugins:     plugins,
	})
	if len(result.Errors) > 0 {
		var msgs []string
		for _, e := range result.Errors {
			msgs = append(msgs, e.Text)
		}
		t.Fatalf("build errors: %s", strings.Join(msgs, "; "))
	}
	if len(result.OutputFiles) == 0 {
		t.Fatal("expected output files, got none")
	}
	return string(result.OutputFiles[0].Contents)
}

func TestNodeBuiltinEmptyPlugin_StubsBuiltins(t *testing.T) {
	tmp := t.TempDir()
	entry := filepath.Join(tmp, "entry.js")
	src := `import fs from "fs";
import { join } from "node:path";
console.log(fs, join);
`
	if err := os.WriteFile(entry, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	output := buildEntry(t, entry, NodeBuiltinEmptyPlugin())

	if strings.Contains(output, `require("fs")`) {
		t.Errorf("fs import should have been stubbed out:\n%s", output)
	}
}

func TestNodeBuiltinEmptyPlugin_LeavesNpmNamesAlone(t *testing.T) {
	tmp := t.TempDir()

	// A local package whose name is not a Node builtin.
	pkg := filepath.Join(tmp, "node_modules", "leftpad")
	if err := os.MkdirAll(pkg, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkg, "package.json"), []byte(`{"name": "leftpad", "main": "index.js"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pkg, "index.js"), []byte(`export const pad = "pad";`), 0o644); err != nil {
		t.Fatal(err)
	}

	entry := filepath.Join(tmp, "entry.js")
	if err := os.WriteFile(entry, []byte(`import { pad } from "leftpad"; console.log(pad);`), 0o644); err != nil {
		t.Fatal(err)
	}

	output := buildEntry(t, entry, NodeBuiltinEmptyPlugin())

	if !strings.Contains(output, `"pad"`) {
		t.Errorf("expected npm package contents to be bundled:\n%s", output)
	}
}

func TestRawImportPlugin(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, "snippet.md"), []byte("hello raw"), 0o644); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(tmp, "entry.js")
	if err := os.WriteFile(entry, []byte(`import text from "./snippet.md?raw"; console.log(text);`), 0o644); err != nil {
		t.Fatal(err)
	}

	result := api.Build(api.BuildOptions{
		EntryPoints: []string{entry},
		Bundle:      true,
		Write:       false,
		Loader:      map[string]api.Loader{".js": api.LoaderJS, ".md": api.LoaderText},
		Plugins:     []api.Plugin{RawImportPlugin()},
	})
	if len(result.Errors) > 0 {
		t.Fatalf("build errors: %v", result.Errors[0].Text)
	}
	if !strings.Contains(string(result.OutputFiles[0].Contents), "hello raw") {
		t.Error("expected raw file contents to be inlined as text")
	}
}
