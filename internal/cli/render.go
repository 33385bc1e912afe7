package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/config"
	"github.com/matzehuels/wordcloud/pkg/fonts"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// defaultOutput is the base name used when -o is not given.
const defaultOutput = "wordcloud"

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output   string
	formats  string
	input    string
	width    float64
	height   float64
	seed     uint64
	rotation string
	embed    bool
	scale    float64
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command for writing clouds to files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the word cloud to SVG, PNG or JSON",
		Long: `Render lays out the stored words (or a word list given with --words) and
writes one file per format. Word lists are either the stored JSON form
([["label", 3], ...]) or plain text with one "label[,weight]" per line.`,
		Example: `  wordcloud render -f svg,png -o cloud
  wordcloud render --words words.txt --seed 42 --width 1200 --height 800`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.input, "words", "w", "", "word list file instead of the stored words (- for stdin)")
	cmd.Flags().Float64Var(&flags.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&flags.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "layout seed; 0 draws a fresh layout")
	cmd.Flags().StringVar(&flags.rotation, "rotation", "", "rotation policy: random, none, 90 (default from config)")
	cmd.Flags().BoolVar(&flags.embed, "embed-font", false, "embed the font in SVG output")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, flags renderFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	entries, source, err := c.renderInput(ctx, cfg, flags.input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts := renderOptions(cfg, flags)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %d words from %s...", len(entries.Visible()), source))
	spinner.Start()
	result, err := runner.Execute(ctx, entries, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, flags.output)
	if err != nil {
		return err
	}
	prog.done("rendered", "files", len(paths))

	printSuccess("Rendered %d words", result.Stats.Words)
	if result.Generation != nil {
		printStats(result.Stats.Placed, result.Stats.Unplaced, result.CacheHit)
		if len(result.Generation.Unplaced) > 0 {
			printDetail("Did not fit: %s", strings.Join(result.Generation.Unplaced, ", "))
		}
	} else {
		printStats(result.Stats.Words, 0, result.CacheHit)
	}
	for _, p := range paths {
		printFile(p)
	}
	if result.Stats.Words == 0 {
		printNextStep("Add a word first", "wordcloud words add <label>")
	}
	return nil
}

// renderInput returns the entries to render and a description of their source.
func (c *CLI) renderInput(ctx context.Context, cfg *config.Config, input string, stdin io.Reader) (words.Set, string, error) {
	switch input {
	case "":
		store, err := c.openWeights(ctx, cfg)
		if err != nil {
			return nil, "", err
		}
		defer store.Close()
		return store.Load(ctx), store.LastLoad().Source, nil
	case "-":
		set, err := pipeline.ParseWords(stdin)
		return set, "stdin", err
	default:
		f, err := os.Open(input)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		set, err := pipeline.ParseWords(f)
		return set, filepath.Base(input), err
	}
}

// renderOptions merges config values with explicit flags.
func renderOptions(cfg *config.Config, flags renderFlags) pipeline.Options {
	opts := pipeline.Options{
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		FontFamily: cfg.Canvas.FontFamily,
		Padding:    cfg.Canvas.Padding,
		MaxSteps:   cfg.Canvas.MaxSteps,
		Rotation:   cfg.Canvas.Rotation,
		Seed:       cfg.Canvas.Seed,
		Formats:    parseFormats(flags.formats),
		EmbedFont:  flags.embed,
		Scale:      flags.scale,
		Refresh:    flags.refresh,
		Measurer:   fonts.NewMeasurer(),
	}
	if flags.width > 0 {
		opts.Width = flags.width
	}
	if flags.height > 0 {
		opts.Height = flags.height
	}
	if flags.seed != 0 {
		opts.Seed = flags.seed
	}
	if flags.rotation != "" {
		opts.Rotation = flags.rotation
	}
	return opts
}

// outputPaths maps formats to file names. A single format with an explicit
// output uses it verbatim; otherwise the format extension is appended to the
// base path.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = defaultOutput
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); pipeline.ValidFormats[ext] {
		base = strings.TrimSuffix(base, "."+ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	paths := outputPaths(output, formats)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, err
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
