package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	errs "github.com/matzehuels/galaxy/pkg/errors"
	"github.com/matzehuels/galaxy/pkg/store"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output string
		format string
		count  int
		want   string
	}{
		{"galaxy", "json", 1, "galaxy.json"},
		{"out/spiral.ply", "ply", 1, "out/spiral.ply"},
		{"out/spiral.dat", "csv", 1, "out/spiral.dat"},
		{"out/spiral", "csv", 2, "out/spiral.csv"},
		{"out/spiral.json", "json", 2, "out/spiral.json"},
		{"out/spiral.json", "csv", 2, "out/spiral.json.csv"},
		{"", "ply", 1, "galaxy.ply"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s/%d", tt.output, tt.format, tt.count), func(t *testing.T) {
			if got := outputPath(tt.output, tt.format, tt.count); got != tt.want {
				t.Errorf("outputPath(%q, %q, %d) = %q, want %q", tt.output, tt.format, tt.count, got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"json"}},
		{"ply", []string{"ply"}},
		{"json,csv", []string{"json", "csv"}},
		{" json , ply ,", []string{"json", "ply"}},
	}

	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// testCLI returns a CLI whose config disables the cache and keeps runs in
// dir/runs.
func testCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	cfg := fmt.Sprintf("[cache]\nbackend = \"none\"\n\n[store]\nbackend = \"file\"\ndir = %q\n", filepath.Join(dir, "runs"))
	path := filepath.Join(dir, "galaxy.toml")
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return New(io.Discard, LogInfo), path
}

func execute(c *CLI, configPath string, args ...string) (string, error) {
	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", configPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateWritesArtifacts(t *testing.T) {
	c, cfg := testCLI(t)
	base := filepath.Join(filepath.Dir(cfg), "out", "spiral")

	if _, err := execute(c, cfg, "generate", "--points", "10", "-f", "json,csv", "-o", base); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(base + ".csv")
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 11 {
		t.Errorf("csv has %d lines, want header plus 10 rows", lines)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json artifact missing: %v", err)
	}

	st, err := store.NewFileStore(filepath.Join(filepath.Dir(cfg), "runs"))
	if err != nil {
		t.Fatal(err)
	}
	runs, err := st.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(runs))
	}
	if runs[0].Summary.PointCount != 10 {
		t.Errorf("recorded point count = %d, want 10", runs[0].Summary.PointCount)
	}

	if _, err := execute(c, cfg, "runs", "show", runs[0].ID); err != nil {
		t.Errorf("runs show: %v", err)
	}
}

func TestGenerateNoRecord(t *testing.T) {
	c, cfg := testCLI(t)
	out := filepath.Join(filepath.Dir(cfg), "galaxy.ply")

	if _, err := execute(c, cfg, "generate", "-n", "5", "-f", "ply", "-o", out, "--no-record"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("ply artifact missing: %v", err)
	}

	st, err := store.NewFileStore(filepath.Join(filepath.Dir(cfg), "runs"))
	if err != nil {
		t.Fatal(err)
	}
	runs, _ := st.List(context.Background(), 0)
	if len(runs) != 0 {
		t.Errorf("recorded %d runs with --no-record", len(runs))
	}
}

func TestGenerateIndexError(t *testing.T) {
	c, cfg := testCLI(t)
	out := filepath.Join(filepath.Dir(cfg), "never")

	_, err := execute(c, cfg, "generate", "--seed-count", "1", "--points", "5", "-o", out)
	if err == nil {
		t.Fatal("expected an error for a single seed in literal mode")
	}
	if code := errs.GetCode(err); code != errs.ErrCodeIndex {
		t.Errorf("code = %q, want %q", code, errs.ErrCodeIndex)
	}
	if i, ok := errs.IterationOf(err); !ok || i != 1 {
		t.Errorf("IterationOf() = %d, %v, want 1, true", i, ok)
	}
	if _, statErr := os.Stat(out + ".json"); !os.IsNotExist(statErr) {
		t.Error("no artifact should be written for a failed run")
	}

	var buf bytes.Buffer
	ReportError(&buf, err)
	for _, want := range []string{"INDEX_OUT_OF_RANGE", "iteration: 1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("ReportError() output %q missing %q", buf.String(), want)
		}
	}
}

func TestGenerateInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"mode", []string{"--mode", "spiral"}},
		{"start", []string{"--start", "1,2"}},
		{"format", []string{"-f", "svg"}},
		{"negative points", []string{"--points", "-1"}},
		{"args", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, cfg := testCLI(t)
			args := append([]string{"generate", "-o", filepath.Join(filepath.Dir(cfg), "x")}, tt.args...)
			if _, err := execute(c, cfg, args...); err == nil {
				t.Errorf("generate %v: expected error", tt.args)
			}
		})
	}
}

func TestRunsShowUnknown(t *testing.T) {
	c, cfg := testCLI(t)
	if _, err := execute(c, cfg, "runs", "show", "0b3f8a2e-6c1d-4f3a-9e2b-7d5c1a9f4e60"); err == nil {
		t.Error("expected error for an unknown run")
	}
	if _, err := execute(c, cfg, "runs", "show", "../etc/passwd"); err == nil {
		t.Error("expected error for an invalid run id")
	}
}

func TestCachePath(t *testing.T) {
	c, cfg := testCLI(t)
	out, err := execute(c, cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestConfigErrors(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := filepath.Join(t.TempDir(), "galaxy.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(c, path, "cache", "path"); err == nil {
		t.Error("expected error for an unknown cache backend")
	}
}

func TestCacheClearAfterGenerate(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	cfg := fmt.Sprintf("[cache]\nbackend = \"file\"\ndir = %q\n\n[store]\nbackend = \"memory\"\n", cacheDir)
	path := filepath.Join(dir, "galaxy.toml")
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	if _, err := execute(c, path, "generate", "-n", "20", "-o", filepath.Join(dir, "out")); err != nil {
		t.Fatalf("generate: %v", err)
	}
	shards, _ := os.ReadDir(cacheDir)
	if len(shards) == 0 {
		t.Fatal("generate should populate the file cache")
	}

	if _, err := execute(c, path, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	shards, _ = os.ReadDir(cacheDir)
	if len(shards) != 0 {
		t.Errorf("cache dir still has %d entries after clear", len(shards))
	}
}
