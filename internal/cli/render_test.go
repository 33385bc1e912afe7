package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/config"
)

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default", "", []string{"svg"}, map[string]string{"svg": "wordcloud.svg"}},
		{"explicit file", "out/cloud.svg", []string{"svg"}, map[string]string{"svg": "out/cloud.svg"}},
		{"base path", "cloud", []string{"svg", "png"}, map[string]string{"svg": "cloud.svg", "png": "cloud.png"}},
		{"strip format ext", "cloud.svg", []string{"svg", "json"}, map[string]string{"svg": "cloud.svg", "json": "cloud.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("%s: got %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Canvas.Seed = 9

	opts := renderOptions(cfg, renderFlags{formats: "png", width: 300})
	if opts.Width != 300 || opts.Height != cfg.Canvas.Height {
		t.Errorf("canvas = %gx%g", opts.Width, opts.Height)
	}
	if opts.Seed != 9 {
		t.Errorf("seed = %d, want config seed 9", opts.Seed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "png" {
		t.Errorf("formats = %v", opts.Formats)
	}

	opts = renderOptions(cfg, renderFlags{seed: 4, rotation: "none"})
	if opts.Seed != 4 || opts.Rotation != "none" {
		t.Errorf("flags not applied: seed=%d rotation=%q", opts.Seed, opts.Rotation)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "nested", "cloud")
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, base)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg = %q, %v", data, err)
	}
}
