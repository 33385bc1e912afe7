package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/observability"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// runCLI executes args against a config that stores words under dir.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		data := fmt.Sprintf("[storage]\nbackend = \"file\"\ndir = %q\n", filepath.Join(dir, "data"))
		if err := os.WriteFile(cfgPath, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestWordsCommands(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, dir, "words", "add", "Alpha", "Alpha", "Beta"); err != nil {
		t.Fatalf("words add: %v", err)
	}
	if _, err := runCLI(t, dir, "words", "remove", "Beta"); err != nil {
		t.Fatalf("words remove: %v", err)
	}

	out, err := runCLI(t, dir, "words", "list", "--json")
	if err != nil {
		t.Fatalf("words list: %v", err)
	}
	set, err := words.Decode([]byte(strings.TrimSpace(out)))
	if err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if w, _ := set.Weight("Alpha"); w != 2 {
		t.Errorf("Alpha = %d, want 2", w)
	}
	if w, ok := set.Weight("Beta"); !ok || w != 0 {
		t.Errorf("Beta = %d, %v; want kept at 0", w, ok)
	}

	if _, err := runCLI(t, dir, "words", "reset"); err != nil {
		t.Fatalf("words reset: %v", err)
	}
	out, _ = runCLI(t, dir, "words", "list", "--json")
	set, _ = words.Decode([]byte(strings.TrimSpace(out)))
	if len(set.Visible()) != 0 {
		t.Errorf("visible after reset = %v", set.Visible())
	}
}

func TestWordsAddInvalid(t *testing.T) {
	_, err := runCLI(t, t.TempDir(), "words", "add", "")
	if err == nil {
		t.Error("empty label should fail")
	}
}

func TestWordsImportAndClear(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(list, []byte("Gamma,3\nDelta\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCLI(t, dir, "words", "import", list); err != nil {
		t.Fatalf("import: %v", err)
	}
	out, _ := runCLI(t, dir, "words", "list", "--json")
	set, _ := words.Decode([]byte(strings.TrimSpace(out)))
	if w, _ := set.Weight("Gamma"); w != 3 {
		t.Errorf("Gamma = %d, want 3", w)
	}

	if _, err := runCLI(t, dir, "words", "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	out, _ = runCLI(t, dir, "words", "list", "--json")
	set, _ = words.Decode([]byte(strings.TrimSpace(out)))
	if !set.Equal(words.Defaults()) {
		t.Errorf("after clear = %v, want defaults", set)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(list, []byte("Alpha,4\nBeta,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out", "cloud")

	if _, err := runCLI(t, dir, "render", "--words", list, "-f", "svg,json", "-o", out, "--seed", "7"); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(">Alpha<")) {
		t.Errorf("svg missing Alpha")
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "render", "-f", "gif"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(dir, "config.toml") {
		t.Errorf("config path = %q", out)
	}

	out, err = runCLI(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "[storage]") || !strings.Contains(out, `backend = "file"`) {
		t.Errorf("config show = %s", out)
	}
}

func TestSetLogLevelInstallsHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)
	if _, ok := observability.Layout().(*observability.LogHooks); !ok {
		t.Errorf("layout hooks = %T, want *LogHooks", observability.Layout())
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v", c.Logger.GetLevel())
	}
}
