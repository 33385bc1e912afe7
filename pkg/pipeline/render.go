package pipeline

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Words are drawn
// at rest, without animation offsets.
func Render(gen *layout.Generation, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(gen, nil, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(gen, nil, sink.WithScale(opts.Scale))
		case FormatJSON:
			data, err = sink.RenderJSON(gen, nil)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	return svgOpts
}
