package observer

import (
	"reflect"
	"testing"
)

func TestScan_RecordsIntegrations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "single named import",
			src:  `import { MyIntegration } from "@sentry/integrations";`,
			want: []string{"myintegration"},
		},
		{
			name: "first named import wins",
			src:  `import { Dedupe, ExtraErrorData } from "@sentry/integrations";`,
			want: []string{"dedupe"},
		},
		{
			name: "single quotes",
			src:  `import { HttpClient } from '@sentry/integrations';`,
			want: []string{"httpclient"},
		},
		{
			name: "multiple statements append",
			src: `import { Dedupe } from "@sentry/integrations";
import { ReportingObserver } from "@sentry/integrations";`,
			want: []string{"dedupe", "reportingobserver"},
		},
		{
			name: "duplicates are kept",
			src: `import { Dedupe } from "@sentry/integrations";
import { Dedupe } from "@sentry/integrations";`,
			want: []string{"dedupe", "dedupe"},
		},
		{
			name: "other packages ignored",
			src:  `import { Something } from "@sentry/utils";`,
			want: nil,
		},
		{
			name: "bare import without names ignored",
			src:  `import "@sentry/integrations";`,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &Observer{}
			obs.Scan([]byte(tt.src))
			got := obs.Integrations()
			if len(got) == 0 {
				got = nil
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Integrations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScan_WASMFlag(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"static import", `import { instrumentWasm } from "@sentry/wasm";`, true},
		{"side-effect import", `import "@sentry/wasm";`, true},
		{"dynamic import", `const mod = await import("@sentry/wasm");`, true},
		{"require", `const wasm = require("@sentry/wasm");`, true},
		{"re-export", `export { instrumentWasm } from "@sentry/wasm";`, true},
		{"unrelated", `import { add } from "@sentry/utils";`, false},
		{"substring package", `import x from "@sentry/wasm-helpers";`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &Observer{}
			obs.Scan([]byte(tt.src))
			if got := obs.NeedsWASM(); got != tt.want {
				t.Errorf("NeedsWASM() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScan_AccumulatesAcrossFiles(t *testing.T) {
	obs := &Observer{}
	obs.Scan([]byte(`import { Dedupe } from "@sentry/integrations";`))
	obs.Scan([]byte(`import "@sentry/wasm";`))

	if got := obs.Integrations(); !reflect.DeepEqual(got, []string{"dedupe"}) {
		t.Errorf("Integrations() = %v", got)
	}
	if !obs.NeedsWASM() {
		t.Error("expected WASM flag to persist across scans")
	}
}
