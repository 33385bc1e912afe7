package pipeline

import (
	"context"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places the visible entries and wraps the result as
// generation id.
func GenerateLayout(ctx context.Context, id uint64, entries words.Set, opts Options) (*layout.Generation, error) {
	lo, err := opts.LayoutOptions()
	if err != nil {
		return nil, err
	}
	engine, err := layout.New(lo)
	if err != nil {
		return nil, err
	}
	res, err := engine.Layout(ctx, entries)
	if err != nil {
		return nil, err
	}
	return layout.NewGeneration(id, res), nil
}
