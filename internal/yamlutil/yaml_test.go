package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdbadge/internal/yamlutil"
)

type siteConfig struct {
	Conventions string `yaml:"conventions"`
	StripDepth  int    `yaml:"stripDepth"`
	HTML        bool   `yaml:"html"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		wantMsg string
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("conventions: docs/conventions.md\nstripDepth: 2\nhtml: true"),
			dest: &siteConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*siteConfig)
				if cfg.Conventions != "docs/conventions.md" {
					t.Errorf("Conventions = %q, want %q", cfg.Conventions, "docs/conventions.md")
				}
				if cfg.StripDepth != 2 {
					t.Errorf("StripDepth = %d, want 2", cfg.StripDepth)
				}
				if !cfg.HTML {
					t.Error("HTML = false, want true")
				}
			},
		},
		{
			name: "unknown fields ignored",
			data: []byte("conventions: c.md\nextra: 1"),
			dest: &siteConfig{},
		},
		{name: "nil data", data: nil, dest: &siteConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &siteConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("html: true"), dest: nil, wantErr: yamlutil.ErrNilDestination},
		{name: "invalid syntax", data: []byte("conventions: [unclosed"), dest: &siteConfig{}, wantMsg: "yamlutil:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			checkErr(t, err, tt.wantErr, tt.wantMsg)
			if err == nil && tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		wantMsg string
	}{
		{name: "known fields only", data: []byte("conventions: c.md\nstripDepth: 1"), dest: &siteConfig{}},
		{name: "unknown field rejected", data: []byte("conventions: c.md\nstrip_depth: 1"), dest: &siteConfig{}, wantMsg: "yamlutil:"},
		{name: "nil data", data: nil, dest: &siteConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("html: true"), dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			checkErr(t, yamlutil.UnmarshalStrict(tt.data, tt.dest), tt.wantErr, tt.wantMsg)
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&siteConfig{Conventions: "c.md", StripDepth: 1})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{"conventions: c.md", "stripDepth: 1", "html: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("Marshal() output missing %q, got:\n%s", want, out)
		}
	}

	var decoded siteConfig
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("UnmarshalStrict() of marshaled output error = %v", err)
	}
	if decoded.Conventions != "c.md" || decoded.StripDepth != 1 {
		t.Errorf("decoded = %+v, want conventions c.md and stripDepth 1", decoded)
	}
}

// Modifies the global MaxInputSize, so it does not run in parallel.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 16
	data := []byte("conventions: a-long-path/conventions.md")

	err := yamlutil.Unmarshal(data, &siteConfig{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
	if !strings.Contains(err.Error(), "max 16") {
		t.Errorf("error should mention the limit, got: %v", err)
	}

	if err := yamlutil.UnmarshalStrict(data, &siteConfig{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
	}
}

func checkErr(t *testing.T, err, wantErr error, wantMsg string) {
	t.Helper()

	switch {
	case wantErr != nil:
		if !errors.Is(err, wantErr) {
			t.Fatalf("error = %v, want %v", err, wantErr)
		}
	case wantMsg != "":
		if err == nil || !strings.Contains(err.Error(), wantMsg) {
			t.Fatalf("error = %v, want containing %q", err, wantMsg)
		}
	default:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}
