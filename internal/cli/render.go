package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deptree"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/manifest"
	"github.com/matzehuels/deptree/pkg/render"
)

const (
	formatText = "text"
	formatDOT  = "dot"
	formatSVG  = "svg"

	// cacheTTL bounds how long rendered SVGs stay reusable.
	cacheTTL = 30 * 24 * time.Hour
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path; empty means stdout
	format  string // output format: "text", "dot", or "svg"
	name    string // graph name in the DOT header
	noCache bool   // bypass the SVG render cache
}

// newRenderCmd creates the render command for generating tree output.
// Text and DOT are written directly; SVG goes through Graphviz and is cached
// keyed by the hash of the DOT source.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "render <manifest>",
		Short: "Render a validated dependency tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), dot, svg")
	cmd.Flags().StringVar(&opts.name, "name", "", "graph name in DOT output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the SVG render cache")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatDOT, formatSVG:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want text, dot, or svg)", format)
	}
}

func runRender(ctx context.Context, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	b, err := manifest.Load(path)
	if err != nil {
		return err
	}
	tree, err := b.Build()
	if err != nil {
		return err
	}
	logger.Debug("tree validated", "keys", tree.Len(), "edges", tree.EdgeCount())

	var data []byte
	cached := false
	switch opts.format {
	case formatText:
		data = []byte(tree.String())
	case formatDOT:
		data = []byte(render.ToDOT(tree, render.Options{Name: opts.name}))
	case formatSVG:
		data, cached, err = renderSVG(ctx, tree, opts)
		if err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %s", path)
	printFile(opts.output)
	printStats(tree.Len(), tree.EdgeCount(), cached)
	return nil
}

// renderSVG renders the tree to SVG, consulting the artifact cache first.
// The cache key is the hash of the DOT source, so any structural change
// invalidates naturally. Returns whether the artifact came from cache.
func renderSVG(ctx context.Context, tree *deptree.Tree[string], opts *renderOpts) ([]byte, bool, error) {
	logger := loggerFromContext(ctx)
	dot := render.ToDOT(tree, render.Options{Name: opts.name})

	store := openCache(logger, opts.noCache)
	defer store.Close()

	key := cache.ArtifactKey(cache.Hash([]byte(dot)), formatSVG)
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		logger.Debug("render cache hit", "key", key)
		return data, true, nil
	}

	spinner := newSpinnerWithContext(ctx, "rendering SVG")
	spinner.Start()
	svg, err := render.SVG(ctx, dot)
	spinner.Stop()
	if err != nil {
		return nil, false, err
	}

	if err := store.Set(ctx, key, svg, cacheTTL); err != nil {
		logger.Warn("render cache write failed", "err", err)
	}
	return svg, false, nil
}

// openCache returns the file-backed artifact cache, or a null cache when
// disabled or unavailable.
func openCache(logger *log.Logger, disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Warn("cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("cache unavailable", "err", err)
		return cache.NewNullCache()
	}
	return store
}

// cacheDir returns the render cache directory, creating nothing itself.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "deptree"), nil
}
