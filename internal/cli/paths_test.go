package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	want := filepath.Join(customCache, appName)
	if dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestSaveTarget(t *testing.T) {
	tests := []struct {
		input, output, want string
	}{
		{"a.toml", "", "a.toml"},
		{"a.toml", "b.yaml", "b.yaml"},
	}
	for _, tt := range tests {
		if got := saveTarget(tt.input, tt.output); got != tt.want {
			t.Errorf("saveTarget(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name, output, input, want string
	}{
		{"from input", "", "sheets/kana.toml", "sheets/kana"},
		{"output with format ext", "out/page.svg", "kana.toml", "out/page"},
		{"output without ext", "out/page", "kana.toml", "out/page"},
		{"output with other ext", "out/page.v2", "kana.toml", "out/page.v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "single format with output",
			input:   "kana.toml",
			output:  "print.png",
			formats: []string{"png"},
			want:    map[string]string{"png": "print.png"},
		},
		{
			name:    "multiple formats next to input",
			input:   "kana.toml",
			formats: []string{"pdf", "svg"},
			want:    map[string]string{"pdf": "kana.pdf", "svg": "kana.svg"},
		},
		{
			name:    "multiple formats with base path",
			input:   "kana.toml",
			output:  "out/sheet.svg",
			formats: []string{"png", "svg"},
			want:    map[string]string{"png": "out/sheet.png", "svg": "out/sheet.svg"},
		},
		{
			name:    "json never overwrites a json template",
			input:   "kana.json",
			formats: []string{"json"},
			want:    map[string]string{"json": "kana.layout.json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%q] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}
