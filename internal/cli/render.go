package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: "svg", "pdf", "png"
	path     string   // slash-separated names to zoom along, e.g. "src/pkg"
	width    float64  // viewport width in pixels, 0 uses the canvas size
	height   float64  // viewport height in pixels, 0 uses the canvas size
	noLabels bool     // omit text labels
	noCache  bool     // bypass the HTTP payload cache
	radius   float64  // overrides [navigator] radius
	color    string   // overrides [navigator] color
}

// renderCommand creates the render command. It attaches a navigator to an
// in-memory scene, zooms along --path and writes the settled scene.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [tree]",
		Short: "Render the navigator to SVG, PNG or PDF",
		Long: `Render draws the navigator for a JSON tree once all transitions have
finished. The tree is a local file or any URL the payload sources accept.

With --path the navigator first zooms along the given names, loading the
nested level of every expandable node on the way.`,
		Example: `  packnav render tree.json
  packnav render tree.json --path src/render -o render.svg
  packnav render https://example.com/tree.json -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			c.applyNavigatorFlags(cmd, opts.radius, opts.color)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "names to zoom along, separated by /")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (default: navigator canvas)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default: navigator canvas)")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit node labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP payload cache")
	cmd.Flags().Float64Var(&opts.radius, "radius", 0, "navigator radius (overrides config)")
	cmd.Flags().StringVar(&opts.color, "color", "", "fill color of the focused branch (overrides config)")

	return cmd
}

// applyNavigatorFlags lets explicitly set flags win over the loaded config.
func (c *CLI) applyNavigatorFlags(cmd *cobra.Command, radius float64, color string) {
	if cmd.Flags().Changed("radius") {
		c.Config.Navigator.Radius = radius
	}
	if cmd.Flags().Changed("color") {
		c.Config.Navigator.Color = color
	}
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "pdf": true, "png": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from the input's base name.
// If output has a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		name := filepath.Base(input)
		if name == "." || name == "/" || strings.Contains(input, "://") {
			name = "packnav"
		}
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the tree, zooms along the path and writes every format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	if err := c.Config.Validate(); err != nil {
		return err
	}

	fetcher, closeFetcher, err := c.NewFetcher(opts.noCache)
	if err != nil {
		return err
	}
	defer closeFetcher()

	prog := newProgress(logger)
	tree, err := LoadTree(ctx, fetcher, input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %s: %d nodes", input, tree.Count())

	s, err := c.newSession(tree, fetcher)
	if err != nil {
		return err
	}
	if opts.path != "" {
		if err := s.walk(ctx, opts.path); err != nil {
			return err
		}
		logger.Debug("zoomed", "focus", s.nav.Focus().Name, "levels", len(s.nav.Levels()))
	}

	svgOpts := c.svgOptions(opts)
	items := s.scene.Snapshot()
	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		var data []byte
		switch format {
		case "svg":
			data = sink.RenderSVG(items, svgOpts...)
		case "png":
			data, err = sink.RenderPNG(items, sink.WithSVGOptions(svgOpts...))
		case "pdf":
			data, err = sink.RenderPDF(items, sink.WithSVGOptions(svgOpts...))
		}
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := writeOutput(path, data); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d levels", len(s.nav.Levels())))
	return nil
}

// svgOptions sizes the output to the navigator canvas unless overridden.
func (c *CLI) svgOptions(opts *renderOpts) []sink.SVGOption {
	w, h := opts.width, opts.height
	if w <= 0 {
		w = c.Config.Canvas()
	}
	if h <= 0 {
		h = c.Config.Canvas()
	}
	out := []sink.SVGOption{sink.WithSize(w, h)}
	if opts.noLabels {
		out = append(out, sink.WithoutLabels())
	}
	return out
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

// openOutput opens path for writing. "-" selects stdout, which is not
// closed.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
