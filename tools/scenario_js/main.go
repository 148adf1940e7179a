package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/thought-machine/go-flags"

	"github.com/filips123/sentry-javascript/tools/scenario_js/alias"
	"github.com/filips123/sentry-javascript/tools/scenario_js/build"
	"github.com/filips123/sentry-javascript/tools/scenario_js/serve"
	"github.com/filips123/sentry-javascript/tools/scenario_js/suite"
	"github.com/filips123/sentry-javascript/tools/scenario_js/variant"
)

// envConfig carries the knobs read from the process environment. PW_BUNDLE
// selects the build variant the test runner exercises; flags override it.
type envConfig struct {
	Bundle      string `env:"PW_BUNDLE"`
	PackagesDir string `env:"PACKAGES_DIR" envDefault:"packages"`
}

var envCfg envConfig

var opts = struct {
	Usage string

	Build struct {
		Entry       string   `short:"e" long:"entry" required:"true" description:"Scenario subject entry point"`
		Template    string   `short:"t" long:"template" description:"HTML template for the scenario page"`
		Out         string   `short:"o" long:"out" required:"true" description:"Output directory"`
		PackagesDir string   `long:"packages-dir" description:"Monorepo packages directory (default: $PACKAGES_DIR or packages)"`
		Variant     string   `long:"variant" description:"Build variant (default: $PW_BUNDLE)"`
		Define      []string `long:"define" description:"Define substitutions (key=value)"`
		EnvFile     string   `long:"env-file" description:"Base path of .env files to load defines from"`
		EnvPrefix   string   `long:"env-prefix" default:"PW_" description:"Only env vars with this prefix become defines"`
	} `command:"build" alias:"b" description:"Build one test scenario page with esbuild"`

	Suite struct {
		Dir         string   `short:"d" long:"dir" required:"true" description:"Directory containing scenario subdirectories"`
		Out         string   `short:"o" long:"out" required:"true" description:"Output directory"`
		Template    string   `short:"t" long:"template" description:"Fallback HTML template for scenarios without one"`
		PackagesDir string   `long:"packages-dir" description:"Monorepo packages directory (default: $PACKAGES_DIR or packages)"`
		Variant     string   `long:"variant" description:"Build variant (default: $PW_BUNDLE)"`
		Define      []string `long:"define" description:"Define substitutions (key=value)"`
		EnvFile     string   `long:"env-file" description:"Base path of .env files to load defines from"`
		EnvPrefix   string   `long:"env-prefix" default:"PW_" description:"Only env vars with this prefix become defines"`
	} `command:"suite" alias:"s" description:"Build every scenario under a directory in parallel"`

	Serve struct {
		Entry       string `short:"e" long:"entry" required:"true" description:"Scenario subject entry point"`
		Template    string `short:"t" long:"template" description:"HTML template for the scenario page"`
		Out         string `short:"o" long:"out" required:"true" description:"Output directory"`
		PackagesDir string `long:"packages-dir" description:"Monorepo packages directory (default: $PACKAGES_DIR or packages)"`
		Variant     string `long:"variant" description:"Build variant (default: $PW_BUNDLE)"`
		Port        int    `short:"p" long:"port" default:"8080" description:"HTTP port"`
	} `command:"serve" description:"Build one scenario, then watch and serve it"`

	Aliases struct {
		PackagesDir string `long:"packages-dir" description:"Monorepo packages directory (default: $PACKAGES_DIR or packages)"`
		Variant     string `long:"variant" description:"Build variant (default: $PW_BUNDLE)"`
	} `command:"aliases" description:"Print the resolved package alias table as JSON"`
}{
	Usage: `
scenario_js builds browser integration test scenario pages with esbuild.

It resolves monorepo package imports to source, prebuilt npm modules, or
injected CDN-style bundles depending on the PW_BUNDLE build variant, and
generates the scenario HTML with the right SDK script tags.
`,
}

// resolved applies the environment fallbacks to per-command flag values.
func resolved(packagesDir, variantFlag string) (string, variant.Variant) {
	if packagesDir == "" {
		packagesDir = envCfg.PackagesDir
	}
	if variantFlag == "" {
		variantFlag = envCfg.Bundle
	}
	return packagesDir, variant.Variant(variantFlag)
}

var subCommands = map[string]func() int{
	"build": func() int {
		pkgs, v := resolved(opts.Build.PackagesDir, opts.Build.Variant)
		if err := build.Run(build.Args{
			Entry:       opts.Build.Entry,
			Template:    opts.Build.Template,
			Out:         opts.Build.Out,
			PackagesDir: pkgs,
			Variant:     v,
			Define:      opts.Build.Define,
			EnvFile:     opts.Build.EnvFile,
			EnvPrefix:   opts.Build.EnvPrefix,
		}); err != nil {
			log.Fatal(err)
		}
		return 0
	},
	"suite": func() int {
		pkgs, v := resolved(opts.Suite.PackagesDir, opts.Suite.Variant)
		if err := suite.Run(context.Background(), suite.Args{
			Dir:         opts.Suite.Dir,
			Out:         opts.Suite.Out,
			Template:    opts.Suite.Template,
			PackagesDir: pkgs,
			Variant:     v,
			Define:      opts.Suite.Define,
			EnvFile:     opts.Suite.EnvFile,
			EnvPrefix:   opts.Suite.EnvPrefix,
		}); err != nil {
			log.Fatal(err)
		}
		return 0
	},
	"serve": func() int {
		pkgs, v := resolved(opts.Serve.PackagesDir, opts.Serve.Variant)
		if err := serve.Run(serve.Args{
			Build: build.Args{
				Entry:       opts.Serve.Entry,
				Template:    opts.Serve.Template,
				Out:         opts.Serve.Out,
				PackagesDir: pkgs,
				Variant:     v,
			},
			Port: opts.Serve.Port,
		}); err != nil {
			log.Fatal(err)
		}
		return 0
	},
	"aliases": func() int {
		pkgs, v := resolved(opts.Aliases.PackagesDir, opts.Aliases.Variant)
		table, err := alias.Resolve(pkgs, v)
		if err != nil {
			log.Fatal(err)
		}
		out, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(append(out, '\n'))
		return 0
	},
}

func main() {
	if err := env.Parse(&envCfg); err != nil {
		log.Fatal(err)
	}

	p := flags.NewParser(&opts, flags.Default)
	cmd, err := p.Parse()
	if err != nil {
		os.Exit(1)
	}
	_ = cmd
	if p.Active == nil {
		p.WriteHelp(os.Stderr)
		os.Exit(1)
	}
	os.Exit(subCommands[p.Active.Name]())
}
