package cli

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/packnav/pkg/errors"
	pnio "github.com/matzehuels/packnav/pkg/io"
	"github.com/matzehuels/packnav/pkg/navigator"
	"github.com/matzehuels/packnav/pkg/pack"
	"github.com/matzehuels/packnav/pkg/render/sink"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	output   string
	format   string // "json", "dot" or "svg"
	depth    int    // levels of nested payloads to inline
	detailed bool   // add tags and URLs to diagram labels
	noCache  bool
}

// exportCommand creates the export command, which writes a tree as JSON, a
// DOT graph or a Graphviz node-link SVG.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{format: "json"}

	cmd := &cobra.Command{
		Use:   "export [tree]",
		Short: "Export a tree as JSON, DOT or a node-link SVG",
		Long: `Export writes the tree in another format. With --depth the payloads of
expandable nodes are fetched and inlined, up to that many levels deep, so the
result holds the whole hierarchy.`,
		Example: `  packnav export tree.json -f dot -o tree.dot
  packnav export tree.json -f json --depth 2 > full.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json, dot, svg")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "levels of nested payloads to inline")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show tags and URLs in diagram labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the HTTP payload cache")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts *exportOpts) error {
	logger := loggerFromContext(ctx)

	fetcher, closeFetcher, err := c.NewFetcher(opts.noCache)
	if err != nil {
		return err
	}
	defer closeFetcher()

	tree, err := LoadTree(ctx, fetcher, input)
	if err != nil {
		return err
	}
	if opts.depth > 0 {
		fetched, err := inline(ctx, fetcher, tree, opts.depth)
		if err != nil {
			return err
		}
		logger.Infof("Inlined %d nested payloads", fetched)
	}

	var data []byte
	switch opts.format {
	case "json":
		var buf bytes.Buffer
		if err := pnio.WriteJSON(tree, &buf); err != nil {
			return err
		}
		data = buf.Bytes()
	case "dot":
		data = []byte(sink.TreeDOT(tree, sink.DOTOptions{Detailed: opts.detailed}))
	case "svg":
		data, err = sink.RenderTreeSVG(ctx, tree, sink.DOTOptions{Detailed: opts.detailed})
		if err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %s (must be 'json', 'dot', or 'svg')", opts.format)
	}

	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	if opts.output != "-" {
		printSuccess("Exported %s", input)
		printStats(tree)
		printFile(opts.output)
	}
	return nil
}

// inline replaces expandable nodes that have no children with the children
// of their payload, descending depth levels. It returns the number of
// payloads fetched.
func inline(ctx context.Context, fetcher navigator.Fetcher, root *pack.Node, depth int) (int, error) {
	fetched := 0
	frontier := []*pack.Node{root}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []*pack.Node
		for _, top := range frontier {
			var pending []*pack.Node
			top.Walk(func(n *pack.Node) bool {
				if n.Expandable() && n.IsLeaf() {
					pending = append(pending, n)
				}
				return true
			})
			for _, n := range pending {
				sub, err := fetcher.Fetch(ctx, n.URL)
				if err != nil {
					return fetched, errors.Wrap(errors.ErrCodeFetchFailed, err, "inline %q", n.Name)
				}
				fetched++
				n.URL = ""
				for _, c := range sub.Children {
					c.Ordinal = nil
					n.AddChild(c)
				}
				next = append(next, n)
			}
		}
		frontier = next
	}
	pack.Prepare(root)
	return fetched, nil
}
